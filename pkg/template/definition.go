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

package template

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

const (
	// Extension marks header definition files; they are never scanned themselves.
	Extension = ".licenseheader"

	extensionsDirective = "extensions:"
)

// IsDefinition reports whether path is a header definition file.
func IsDefinition(path string) bool {
	return hasSuffixFold(path, Extension)
}

// 📝 ParseDefinition reads a definition file. A line "extensions: .a .b" starts a
// block and every following line, up to the next directive, belongs to the
// header of those extensions. Trailing empty lines of a block are dropped.
func ParseDefinition(r io.Reader) (Headers, error) {
	headers := Headers{}
	var current []string
	var lines []string

	flush := func() {
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		for _, ext := range current {
			headers[ext] = append([]string(nil), lines...)
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		rest, ok := cutPrefixFold(strings.TrimSpace(line), extensionsDirective)
		if !ok {
			if current != nil {
				lines = append(lines, line)
			}
			continue
		}

		flush()
		current, lines = nil, nil

		for _, ext := range strings.Fields(rest) {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if defined(headers, current, ext) {
				return nil, errors.Errorf("line %d: extension %s is defined twice", lineNo, ext)
			}
			current = append(current, ext)
		}
		if len(current) == 0 {
			return nil, errors.Errorf("line %d: %s without extensions", lineNo, extensionsDirective)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading definition: %w", err)
	}
	flush()

	return headers, nil
}

// LoadDefinition parses the definition file at path.
func LoadDefinition(path string) (Headers, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening definition: %w", err)
	}
	defer f.Close()

	headers, err := ParseDefinition(f)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}
	return headers, nil
}

// 🧭 Find returns the definition file nearest to dir, walking up to the
// filesystem root. When a directory holds several, the first in lexical order
// wins. It returns "" when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", dir, err)
	}

	for {
		matches, err := doublestar.Glob(os.DirFS(dir), "*"+Extension)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", errors.Errorf("searching %s: %w", dir, err)
		}
		for _, m := range matches {
			info, err := os.Stat(filepath.Join(dir, m))
			if err == nil && info.Mode().IsRegular() {
				return filepath.Join(dir, m), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func defined(headers Headers, pending []string, ext string) bool {
	for key := range headers {
		if strings.EqualFold(key, ext) {
			return true
		}
	}
	for _, key := range pending {
		if strings.EqualFold(key, ext) {
			return true
		}
	}
	return false
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
