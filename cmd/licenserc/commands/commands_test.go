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

package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/cmd/licenserc/opts"
	"github.com/walteh/licenserc/pkg/config"
	"github.com/walteh/licenserc/pkg/log"
	"github.com/walteh/licenserc/pkg/operation"
)

func newTestOpts(t *testing.T, files map[string]string) *opts.RootOpts {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return &opts.RootOpts{
		Config:  config.Default(),
		Root:    root,
		Console: log.New(io.Discard, zerolog.InfoLevel),
	}
}

func TestHeaderCommands(t *testing.T) {
	o := newTestOpts(t, map[string]string{
		".licenseheader": "extensions: .go\n// Copyright Acme\n",
		"main.go":        "package main\n",
	})
	ctx := zerolog.Nop().WithContext(context.Background())

	check := NewCheckCmd(o)
	check.SetArgs([]string{})
	err := check.ExecuteContext(ctx)
	require.Error(t, err, "check should fail while the header is missing")
	assert.True(t, errors.Is(err, operation.ErrOutOfDate))

	add := NewAddCmd(o)
	add.SetArgs([]string{})
	require.NoError(t, add.ExecuteContext(ctx))

	data, err := os.ReadFile(filepath.Join(o.Root, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "// Copyright Acme\n\npackage main\n", string(data))

	check = NewCheckCmd(o)
	check.SetArgs([]string{})
	require.NoError(t, check.ExecuteContext(ctx), "check should pass after add")

	remove := NewRemoveCmd(o)
	remove.SetArgs([]string{})
	require.NoError(t, remove.ExecuteContext(ctx))

	data, err = os.ReadFile(filepath.Join(o.Root, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
}

func TestInitCmd(t *testing.T) {
	o := newTestOpts(t, nil)
	licensePath := filepath.Join(o.Root, "LICENSE.txt")
	require.NoError(t, os.WriteFile(licensePath, []byte("Copyright [year] Acme\n"), 0o644))

	t.Run("requires_key", func(t *testing.T) {
		cmd := NewInitCmd(o)
		cmd.SetArgs([]string{"--provider", "url"})
		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a license key is required")
	})

	t.Run("rejects_bad_output", func(t *testing.T) {
		cmd := NewInitCmd(o)
		cmd.SetArgs([]string{"--provider", "url", "--license", "https://example.invalid/LICENSE", "--output", filepath.Join(o.Root, "headers.txt")})
		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must end with .licenseheader")
	})

	t.Run("unknown_provider", func(t *testing.T) {
		cmd := NewInitCmd(o)
		cmd.SetArgs([]string{"--provider", "nope", "--license", "mit"})
		err := cmd.ExecuteContext(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider: nope")
	})
}

func TestLanguagesCmd(t *testing.T) {
	o := newTestOpts(t, nil)
	cmd := NewLanguagesCmd(o)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
}
