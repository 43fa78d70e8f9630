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
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const diffContext = 2

// 🔀 Diff renders a line diff of a pending change in unified style, keeping
// diffContext unchanged lines around every hunk.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	out.WriteString("--- a/" + path + "\n")
	out.WriteString("+++ b/" + path + "\n")

	for i, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&out, "-", chunk)
		case diffmatchpatch.DiffInsert:
			writeLines(&out, "+", chunk)
		case diffmatchpatch.DiffEqual:
			first, last := i == 0, i == len(diffs)-1
			switch {
			case first && len(chunk) > diffContext:
				out.WriteString("@@\n")
				chunk = chunk[len(chunk)-diffContext:]
			case last && len(chunk) > diffContext:
				chunk = chunk[:diffContext]
			case !first && !last && len(chunk) > 2*diffContext:
				writeLines(&out, " ", chunk[:diffContext])
				out.WriteString("@@\n")
				chunk = chunk[len(chunk)-diffContext:]
			}
			writeLines(&out, " ", chunk)
		}
	}

	return out.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func writeLines(out *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		out.WriteString(prefix + strings.TrimSuffix(l, "\r") + "\n")
	}
}
