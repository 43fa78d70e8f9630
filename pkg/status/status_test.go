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

package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/licenserc/pkg/document"
	"github.com/walteh/licenserc/pkg/replacer"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	logger := zerolog.New(os.Stderr)
	return New(dir, &logger), dir
}

func TestManager_WriteFileAtomic(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, dir string)
		path     string
		content  string
		wantMode os.FileMode
	}{
		{
			name:     "new_file",
			path:     "new.go",
			content:  "package main\n",
			wantMode: 0o644,
		},
		{
			name: "keeps_executable_bit",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "run.sh"), []byte("echo\n"), 0o755))
			},
			path:     "run.sh",
			content:  "# h\n\necho\n",
			wantMode: 0o755,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, dir := newTestManager(t)
			ctx := context.Background()
			if tt.setup != nil {
				tt.setup(t, dir)
			}

			require.NoError(t, mgr.WriteFileAtomic(ctx, tt.path, []byte(tt.content)), "WriteFileAtomic should succeed")

			got, err := mgr.ReadFile(ctx, tt.path)
			require.NoError(t, err, "ReadFile should succeed")
			assert.Equal(t, tt.content, string(got), "content should match")

			info, err := os.Stat(filepath.Join(dir, tt.path))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, info.Mode().Perm(), "mode should match")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files should remain")
		})
	}
}

func TestManager_ReadFileMissing(t *testing.T) {
	mgr, _ := newTestManager(t)
	_, err := mgr.ReadFile(context.Background(), "missing.go")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestManager_Report(t *testing.T) {
	tests := []struct {
		name       string
		outcome    replacer.Outcome
		wantStatus FileStatus
		wantDiff   bool
	}{
		{
			name:       "inserted",
			outcome:    replacer.Outcome{Path: "a.go", Action: document.Inserted, Before: "x\n", After: "// h\n\nx\n"},
			wantStatus: StatusInserted,
			wantDiff:   true,
		},
		{
			name:       "unchanged",
			outcome:    replacer.Outcome{Path: "a.go", Action: document.Unchanged, Before: "x\n", After: "x\n"},
			wantStatus: StatusUnchanged,
		},
		{
			name:       "failed",
			outcome:    replacer.Outcome{Path: "a.go", Diagnostic: "could not be parsed"},
			wantStatus: StatusFailed,
		},
		{
			name:       "cancelled",
			outcome:    replacer.Outcome{Path: "a.go", Skipped: true, Diagnostic: "cancelled"},
			wantStatus: StatusSkipped,
		},
		{
			name:       "declined_in_batch",
			outcome:    replacer.Outcome{Path: "a.go", Skipped: true},
			wantStatus: StatusSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, _ := newTestManager(t)
			ctx := context.Background()

			mgr.Report(ctx, tt.outcome)

			info, err := mgr.GetFileInfo(ctx, tt.outcome.Path)
			require.NoError(t, err, "file should be tracked")
			assert.Equal(t, tt.wantStatus, info.Status, "status should match")
			assert.Equal(t, tt.wantDiff, info.Diff != "", "diff presence should match")
			if tt.wantStatus == StatusSkipped || tt.wantStatus == StatusFailed {
				assert.NotEmpty(t, info.Diagnostic, "diagnostic should be set")
			}
		})
	}
}

func TestManager_ListFilesAndSummary(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	mgr.StartOperation(ctx, 3)
	mgr.TrackFile(ctx, "b.go", FileInfo{Status: StatusInserted})
	mgr.UpdateProgress(ctx, 1)
	mgr.TrackFile(ctx, "a.go", FileInfo{Status: StatusUnchanged})
	mgr.TrackFile(ctx, "c.go", FileInfo{Status: StatusInserted})
	mgr.FinishOperation(ctx)

	files := mgr.ListFiles(ctx)
	require.Len(t, files, 3)
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, []string{files[0].Path, files[1].Path, files[2].Path}, "files should be sorted")

	assert.Equal(t, map[FileStatus]int{StatusInserted: 2, StatusUnchanged: 1}, mgr.Summary())

	_, err := mgr.GetFileInfo(ctx, "missing.go")
	assert.Error(t, err, "untracked file should error")
}

func TestFileStatus(t *testing.T) {
	assert.Equal(t, "replaced", StatusReplaced.String())
	assert.Equal(t, "unknown", FileStatus(42).String())
	assert.True(t, StatusRemoved.Changed())
	assert.False(t, StatusSkipped.Changed())
}

func TestFormatFileLine(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	got := FormatFileLine(FileInfo{Path: "a.go", Status: StatusFailed, Diagnostic: "boom"})
	assert.Equal(t, "    ! a.go                                          failed     boom", got)

	got = FormatFileLine(FileInfo{Path: "b.go", Status: StatusInserted})
	assert.Equal(t, "    ✓ b.go                                          inserted", got)
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff("a.go", "same", "same"))

	got := Diff("a.go", "class X {}\n", "// h\n\nclass X {}\n")
	assert.Equal(t, "--- a/a.go\n+++ b/a.go\n+// h\n+\n class X {}\n", got)

	long := "// old\n\n1\n2\n3\n4\n5\n"
	got = Diff("b.go", long, "// new\n\n1\n2\n3\n4\n5\n")
	assert.Equal(t, "--- a/b.go\n+++ b/b.go\n-// old\n+// new\n \n 1\n", got, "trailing context should be limited")
}

func TestManager_Rel(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "work", "project")
	m := New(base, nil)

	assert.Equal(t, filepath.Join("pkg", "a.go"), m.Rel(filepath.Join(base, "pkg", "a.go")))
	outside := filepath.Join(string(filepath.Separator), "elsewhere", "b.go")
	assert.Equal(t, outside, m.Rel(outside), "paths outside the base are kept")
}
