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
	"strings"

	"github.com/walteh/licenserc/pkg/language"
)

// 🏗️ Generate builds a definition file that comments licenseText for every
// language of reg. Languages with a line comment get one per line, the others
// a single block comment. A language is left out, and reported in skipped,
// when its block end marker occurs in the text. Extensions claimed by an
// earlier language are not repeated.
func Generate(licenseText string, reg *language.Registry) (def string, skipped []string) {
	body := strings.Split(strings.TrimRight(strings.ReplaceAll(licenseText, "\r\n", "\n"), "\n "), "\n")

	var b strings.Builder
	seen := make(map[string]bool)
	for _, lang := range reg.Languages() {
		// earlier languages win lookup, so their extensions are not repeated
		var exts []string
		for _, ext := range lang.Extensions() {
			if !seen[strings.ToLower(ext)] {
				exts = append(exts, ext)
			}
		}
		if len(exts) == 0 {
			continue
		}

		lines, ok := Comment(body, lang)
		if !ok {
			skipped = append(skipped, lang.Name())
			continue
		}
		for _, ext := range exts {
			seen[strings.ToLower(ext)] = true
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(extensionsDirective + " " + strings.Join(exts, " ") + "\n")
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
	}
	return b.String(), skipped
}

// Comment wraps lines in the comment syntax of lang.
func Comment(lines []string, lang *language.Language) ([]string, bool) {
	out := make([]string, 0, len(lines)+2)

	if lc := lang.LineComment(); lc != "" {
		for _, l := range lines {
			l = strings.TrimRight(l, " \t")
			if l == "" {
				out = append(out, lc)
				continue
			}
			out = append(out, lc+" "+l)
		}
		return out, true
	}

	for _, l := range lines {
		if strings.Contains(l, lang.EndComment()) {
			return nil, false
		}
	}
	out = append(out, lang.BeginComment())
	for _, l := range lines {
		out = append(out, strings.TrimRight(l, " \t"))
	}
	out = append(out, lang.EndComment())
	return out, true
}
