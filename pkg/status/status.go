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
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/document"
	"github.com/walteh/licenserc/pkg/replacer"
)

// 📊 FileStatus is what happened to a file's header
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusInserted             // header added to a file without one
	StatusReplaced             // existing header rewritten
	StatusRemoved              // existing header dropped
	StatusUnchanged            // header already up to date
	StatusSkipped              // user declined the update
	StatusFailed               // diagnostic reported
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusInserted:
		return "inserted"
	case StatusReplaced:
		return "replaced"
	case StatusRemoved:
		return "removed"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Changed reports whether the status implies new file content.
func (s FileStatus) Changed() bool {
	return s == StatusInserted || s == StatusReplaced || s == StatusRemoved
}

// 📄 FileInfo contains what is known about a processed file
type FileInfo struct {
	Path       string     // Path as given to the replacer
	Status     FileStatus // Outcome
	Checksum   string     // Hash of the resulting content
	Diagnostic string     // Message for skipped or failed files
	Diff       string     // Pending change, only for changed files
}

// 🔧 Manager implements replacer.ContentStore and replacer.Reporter
type Manager struct {
	baseDir   string          // Base directory for relative paths
	logger    *zerolog.Logger // Logger for status updates
	formatter FileFormatter   // Formatter for status messages

	mu    sync.RWMutex
	files map[string]FileInfo

	total     int
	processed int
}

var (
	_ replacer.ContentStore = (*Manager)(nil)
	_ replacer.Reporter     = (*Manager)(nil)
)

// 🏭 New creates a new status manager
func New(baseDir string, logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// Rel returns path relative to the base directory when it lies below it.
func (m *Manager) Rel(path string) string {
	rel, err := filepath.Rel(m.baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ReadFile reads the whole file.
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// 💾 WriteFileAtomic replaces the file through a temp file in the same
// directory, keeping the permissions of the existing file.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)

	mode := os.FileMode(0o644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 📣 Report records the outcome of one replacer call.
func (m *Manager) Report(ctx context.Context, outcome replacer.Outcome) {
	info := FileInfo{Path: outcome.Path, Diagnostic: outcome.Diagnostic}

	switch {
	case outcome.Diagnostic != "" && outcome.Skipped:
		info.Status = StatusSkipped
	case outcome.Diagnostic != "":
		info.Status = StatusFailed
	case outcome.Skipped:
		info.Status = StatusSkipped
		info.Diagnostic = "non-comment header declined"
	default:
		info.Status = statusFromAction(outcome.Action)
		info.Checksum = calculateChecksum([]byte(outcome.After))
		if info.Status.Changed() {
			info.Diff = Diff(outcome.Path, outcome.Before, outcome.After)
		}
	}

	m.TrackFile(ctx, outcome.Path, info)
}

func statusFromAction(a document.Action) FileStatus {
	switch a {
	case document.Inserted:
		return StatusInserted
	case document.Replaced:
		return StatusReplaced
	case document.Removed:
		return StatusRemoved
	case document.Unchanged:
		return StatusUnchanged
	default:
		return StatusUnknown
	}
}

// TrackFile records info for path and logs it.
func (m *Manager) TrackFile(ctx context.Context, path string, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info.Path = path
	m.files[path] = info

	msg := m.formatter.FormatFileOperation(path, info.Status, info.Diagnostic)
	event := m.logger.Info()
	if info.Status == StatusFailed {
		event = m.logger.Warn()
	}
	event.Str("path", path).Stringer("status", info.Status).Msg(msg)
}

// GetFileInfo returns what was tracked for path.
func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// ListFiles returns every tracked file sorted by path.
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Summary counts tracked files per status.
func (m *Manager) Summary() map[FileStatus]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[FileStatus]int)
	for _, info := range m.files {
		counts[info.Status]++
	}
	return counts
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	m.logger.Debug().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	m.logger.Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = m.total
	m.logger.Info().
		Int("processed", m.total).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.total, m.total))
}
