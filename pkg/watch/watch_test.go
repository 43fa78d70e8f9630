// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/licenserc/pkg/config"
	"github.com/walteh/licenserc/pkg/status"
)

func startWatcher(t *testing.T, root string, cfg *config.Config) {
	t.Helper()

	mgr := status.New(root, nil)
	w, err := New(Options{
		Root:     root,
		Config:   cfg,
		Store:    mgr,
		Reporter: mgr,
		Debounce: 50 * time.Millisecond,
		Now:      func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err, "watcher should stop cleanly")
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher stopped early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}
}

func fileContent(path string) func() string {
	return func() string {
		data, _ := os.ReadFile(path)
		return string(data)
	}
}

func TestWatcher_InsertsIntoCreatedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".licenseheader"), []byte("extensions: .go\n// Copyright %CurrentYear% Acme\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "old.go"), []byte("package old\n"), 0o644))

	startWatcher(t, root, nil)

	created := filepath.Join(root, "new.go")
	require.NoError(t, os.WriteFile(created, []byte("package fresh\n"), 0o644))

	read := fileContent(created)
	require.Eventually(t, func() bool {
		return read() == "// Copyright 2024 Acme\n\npackage fresh\n"
	}, 5*time.Second, 20*time.Millisecond, "header should be inserted into the new file")

	nested := filepath.Join(root, "pkg", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	// give the watcher a moment to pick up the new directories
	time.Sleep(100 * time.Millisecond)
	deep := filepath.Join(nested, "deep.go")
	require.NoError(t, os.WriteFile(deep, []byte("package deep\n"), 0o644))

	readDeep := fileContent(deep)
	require.Eventually(t, func() bool {
		return readDeep() == "// Copyright 2024 Acme\n\npackage deep\n"
	}, 5*time.Second, 20*time.Millisecond, "header should be inserted in new directories")

	assert.Equal(t, "package old\n", fileContent(filepath.Join(root, "old.go"))(), "existing files are left alone")
}

func TestWatcher_HonorsExclude(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".licenseheader"), []byte("extensions: .go\n// Copyright Acme\n"), 0o644))

	cfg := &config.Config{Exclude: []string{"**/*_test.go"}}
	require.NoError(t, cfg.Validate())
	startWatcher(t, root, cfg)

	skipped := filepath.Join(root, "a_test.go")
	kept := filepath.Join(root, "a.go")
	require.NoError(t, os.WriteFile(skipped, []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile(kept, []byte("package a\n"), 0o644))

	read := fileContent(kept)
	require.Eventually(t, func() bool {
		return read() == "// Copyright Acme\n\npackage a\n"
	}, 5*time.Second, 20*time.Millisecond)

	assert.Equal(t, "package a\n", fileContent(skipped)(), "excluded file should not change")
}

func TestWatcher_RunTwice(t *testing.T) {
	root := t.TempDir()
	mgr := status.New(root, nil)
	w, err := New(Options{Root: root, Store: mgr, Reporter: mgr})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 2; i++ {
		assert.NotPanics(t, func() {
			assert.NoError(t, w.Run(ctx), "run %d should stop cleanly", i)
		})
	}

	select {
	case <-w.Ready():
	default:
		t.Fatal("ready should stay closed")
	}
}
