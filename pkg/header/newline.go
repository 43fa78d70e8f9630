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

package header

import "strings"

// lineEnd returns the offset of the first line break at or after from, or
// len(text) when there is none.
func lineEnd(text string, from int) int {
	if from >= len(text) {
		return len(text)
	}
	if idx := strings.IndexAny(text[from:], "\r\n"); idx >= 0 {
		return from + idx
	}
	return len(text)
}

// countLineBreaks counts line breaks in s, treating "\r\n" as one.
func countLineBreaks(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			n++
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\n':
			n++
		}
	}
	return n
}

// 🔤 DetectNewline returns the first line break sequence used in text, or "\n"
// when text has none.
func DetectNewline(text string) string {
	idx := strings.IndexAny(text, "\r\n")
	switch {
	case idx < 0:
		return "\n"
	case text[idx] == '\n':
		return "\n"
	case idx+1 < len(text) && text[idx+1] == '\n':
		return "\r\n"
	default:
		return "\r"
	}
}

// TrimLeadingBlankLines removes whitespace-only lines from the start of text,
// keeping the indentation of the first non-blank line.
func TrimLeadingBlankLines(text string) string {
	cut := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\f', '\v':
		case '\r', '\n':
			cut = i + 1
		default:
			return text[cut:]
		}
	}
	return text[cut:]
}
