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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/language"
)

var (
	lineOnly = language.MustNew(language.Spec{Name: "line", Extensions: []string{".l"}, LineComment: "//"})
	csharp   = language.MustNew(language.Spec{
		Name:         "csharp",
		Extensions:   []string{".cs"},
		LineComment:  "//",
		BeginComment: "/*",
		EndComment:   "*/",
		BeginRegion:  "#region",
		EndRegion:    "#endregion",
	})
	visualBasic = language.MustNew(language.Spec{
		Name:        "vb",
		Extensions:  []string{".vb"},
		LineComment: "'",
		BeginRegion: "#Region",
		EndRegion:   "#End Region",
	})
	xml = language.MustNew(language.Spec{Name: "xml", Extensions: []string{".xml"}, BeginComment: "<!--", EndComment: "-->"})
)

func TestScanner_Parse(t *testing.T) {
	tests := []struct {
		name string
		lang *language.Language
		text string
		want string
	}{
		{
			name: "line_comments_then_blank_line",
			lang: lineOnly,
			text: "// one\n// two\n// three\n\nclass X {}",
			want: "// one\n// two\n// three",
		},
		{
			name: "line_comments_crlf",
			lang: lineOnly,
			text: "// one\r\n// two\r\n\r\nclass X {}",
			want: "// one\r\n// two",
		},
		{
			name: "line_comments_cr",
			lang: lineOnly,
			text: "// one\r// two\r\rclass X {}",
			want: "// one\r// two",
		},
		{
			name: "line_comments_directly_followed_by_code",
			lang: lineOnly,
			text: "// one\nclass X {}",
			want: "// one",
		},
		{
			name: "leading_blank_lines_are_not_header",
			lang: lineOnly,
			text: "\n\n// one\n\nclass X {}",
			want: "\n\n// one",
		},
		{
			name: "single_crlf_does_not_end_header",
			lang: lineOnly,
			text: "// one\r\n   // two\r\n\r\ncode",
			want: "// one\r\n   // two",
		},
		{
			name: "comment_only_file",
			lang: lineOnly,
			text: "// one\n// two\n",
			want: "// one\n// two",
		},
		{
			name: "no_comment",
			lang: lineOnly,
			text: "class X {}\n// trailing",
			want: "",
		},
		{
			name: "empty_text",
			lang: lineOnly,
			text: "",
			want: "",
		},
		{
			name: "whitespace_only",
			lang: lineOnly,
			text: " \n\n\t",
			want: "",
		},
		{
			name: "block_comment_followed_by_code",
			lang: csharp,
			text: "/* license\n   text */\nusing System;",
			want: "/* license\n   text */",
		},
		{
			name: "block_comment_with_code_on_same_line",
			lang: csharp,
			text: "/* a */ using System;",
			want: "/* a */",
		},
		{
			name: "block_comment_end_marker_glued_to_begin",
			lang: csharp,
			text: "/**/\nusing System;",
			want: "/**/",
		},
		{
			name: "block_then_line_comments",
			lang: csharp,
			text: "/* a */\n// b\n\nusing System;",
			want: "/* a */\n// b",
		},
		{
			name: "region_swallows_blank_lines",
			lang: csharp,
			text: "#region License\n// a\n\n// b\n#endregion\nusing System;",
			want: "#region License\n// a\n\n// b\n#endregion",
		},
		{
			name: "nested_regions",
			lang: csharp,
			text: "#region outer\n#region inner\n// a\n#endregion\n\n#endregion\n\nusing System;",
			want: "#region outer\n#region inner\n// a\n#endregion\n\n#endregion",
		},
		{
			name: "unterminated_region_cuts_at_region_start",
			lang: csharp,
			text: "// a\n#region open\n// b\n\nusing System;",
			want: "// a\n",
		},
		{
			name: "unterminated_nested_region_cuts_at_outermost",
			lang: csharp,
			text: "#region outer\n#endregion\n#region a\n#region b\n#endregion\n",
			want: "#region outer\n#endregion\n",
		},
		{
			name: "region_marker_must_match_exactly",
			lang: csharp,
			text: "#regionx\n// a",
			want: "",
		},
		{
			name: "two_word_end_region",
			lang: visualBasic,
			text: "#Region \"License\"\n' a\n#End Region\nImports System",
			want: "#Region \"License\"\n' a\n#End Region",
		},
		{
			name: "two_word_end_region_mismatch_consumes_line",
			lang: visualBasic,
			text: "#Region \"License\"\n' a\n#End If\n#End Region\n\nImports System",
			want: "#Region \"License\"\n' a\n#End If\n#End Region",
		},
		{
			name: "two_word_end_region_split_across_lines",
			lang: visualBasic,
			text: "#Region \"License\"\n' a\n#End\nRegion\n\nImports System",
			want: "",
		},
		{
			name: "xml_comment",
			lang: xml,
			text: "<!-- license -->\n<root/>",
			want: "<!-- license -->",
		},
		{
			name: "xml_comment_token_glued_to_text",
			lang: xml,
			text: "<!--license-->\n\n<!-- not header -->",
			want: "<!--license-->",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewScanner(tt.lang).Parse(tt.text)
			require.NoError(t, err, "Parse should succeed")
			assert.Equal(t, tt.want, got, "header should match")
		})
	}
}

func TestScanner_ParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		lang       *language.Language
		text       string
		wantOffset int
	}{
		{
			name:       "unterminated_block_comment",
			lang:       csharp,
			text:       "// a\n/* never closed\nusing System;",
			wantOffset: 5,
		},
		{
			name:       "end_region_without_begin",
			lang:       csharp,
			text:       "// a\n#endregion\nusing System;",
			wantOffset: 5,
		},
		{
			name:       "two_word_end_region_without_begin",
			lang:       visualBasic,
			text:       "#End Region\nImports System",
			wantOffset: 0,
		},
		{
			name:       "extra_end_region",
			lang:       csharp,
			text:       "#region\n#endregion\n#endregion\n",
			wantOffset: 19,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScanner(tt.lang).Parse(tt.text)
			require.Error(t, err, "Parse should fail")
			assert.True(t, errors.Is(err, ErrParse), "error should wrap ErrParse")

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "error should be a *ParseError")
			assert.Equal(t, tt.wantOffset, perr.Offset, "offset should point at the offending token")
		})
	}
}

func TestScanner_ParseIsStableOnItsOwnOutput(t *testing.T) {
	texts := []string{
		"// one\n// two\n\nclass X {}",
		"/* a */\n// b\nusing System;",
		"#region x\n// a\n\n#endregion\n\ncode",
	}

	scanner := NewScanner(csharp)
	for _, text := range texts {
		hdr, err := scanner.Parse(text)
		require.NoError(t, err)

		again, err := scanner.Parse(hdr)
		require.NoError(t, err)
		assert.Equal(t, hdr, again, "header of a header should be itself")
	}
}

func TestDetectNewline(t *testing.T) {
	assert.Equal(t, "\n", DetectNewline("a\nb\r\n"))
	assert.Equal(t, "\r\n", DetectNewline("a\r\nb\n"))
	assert.Equal(t, "\r", DetectNewline("a\rb"))
	assert.Equal(t, "\r", DetectNewline("a\r"))
	assert.Equal(t, "\n", DetectNewline("no breaks"))
}

func TestTrimLeadingBlankLines(t *testing.T) {
	assert.Equal(t, "  code\n", TrimLeadingBlankLines("\n  \r\n\t\n  code\n"))
	assert.Equal(t, "code", TrimLeadingBlankLines("code"))
	assert.Equal(t, "", TrimLeadingBlankLines("\n\n"))
	assert.Equal(t, "  ", TrimLeadingBlankLines("\n  "))
}

func TestCountLineBreaks(t *testing.T) {
	assert.Equal(t, 1, countLineBreaks("\r\n"))
	assert.Equal(t, 2, countLineBreaks("\r\r"))
	assert.Equal(t, 2, countLineBreaks(" \n \n"))
	assert.Equal(t, 0, countLineBreaks("   "))
}
