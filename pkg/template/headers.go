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

// Package template holds the header text configured per extension: the
// ".licenseheader" definition format, keyword expansion and generation of
// definitions from plain license text.
package template

import (
	"sort"
	"strings"
)

// 📋 Headers maps an extension (or compound extension such as ".designer.cs")
// to the lines of its header template.
type Headers map[string][]string

// 🔍 Lookup returns the template whose key is the longest case-insensitive
// suffix of path.
func (h Headers) Lookup(path string) ([]string, bool) {
	best := ""
	var lines []string
	found := false
	for key, l := range h {
		if key == "" || len(key) < len(best) || !hasSuffixFold(path, key) {
			continue
		}
		// equal length keys differ only in case, keep the choice stable
		if len(key) == len(best) && key > best {
			continue
		}
		best, lines, found = key, l, true
	}
	return lines, found
}

// Extensions returns the keys sorted for display.
func (h Headers) Extensions() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty reports whether lines hold no visible text.
func IsEmpty(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// Join concatenates template lines with the document's newline.
func Join(lines []string, nl string) string {
	return strings.Join(lines, nl)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
