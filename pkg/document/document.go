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

package document

import (
	"strings"

	"github.com/walteh/licenserc/pkg/header"
	"github.com/walteh/licenserc/pkg/language"
	"github.com/walteh/licenserc/pkg/text"
)

// Action is what Replace did to the content.
type Action int

const (
	Unchanged Action = iota
	Inserted
	Replaced
	Removed
)

func (a Action) String() string {
	switch a {
	case Unchanged:
		return "unchanged"
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Change is the outcome of Replace.
type Change struct {
	Text     string
	Action   Action
	Existing string
}

// 📄 Document binds a path to its language and its target header. A Document
// without a header only removes.
type Document struct {
	path     string
	lang     *language.Language
	scanner  *header.Scanner
	header   []string
	keywords []string
}

func (d *Document) Path() string                 { return d.path }
func (d *Document) Language() *language.Language { return d.lang }

// HasHeader reports whether the document inserts a header or only removes one.
func (d *Document) HasHeader() bool {
	return d.header != nil
}

// HeaderText joins the target header with nl.
func (d *Document) HeaderText(nl string) string {
	return strings.Join(d.header, nl)
}

// ✅ ValidateHeader reports whether the target header is made of comments of
// the document's language, so that it will be found again by the scanner.
func (d *Document) ValidateHeader() bool {
	if d.header == nil {
		return true
	}
	hdr := d.HeaderText("\n")
	got, err := d.scanner.Parse(hdr)
	return err == nil && got == hdr
}

// 🔄 Replace rewrites the header of content. An existing header is replaced when
// it carries a keyword, otherwise the new header is inserted above it. A
// *header.ParseError is returned when the existing header is malformed.
func (d *Document) Replace(content string) (Change, error) {
	skip := d.lang.Skip(content)
	prefix, body := content[:skip], content[skip:]

	end, err := d.scanner.Scan(body)
	if err != nil {
		return Change{}, err
	}
	existing, rest := body[:end], body[end:]
	found := strings.TrimSpace(existing) != "" && text.ContainsAnyFold(existing, d.keywords)

	if d.header == nil {
		if !found {
			return Change{Text: content, Action: Unchanged, Existing: existing}, nil
		}
		return Change{Text: prefix + header.TrimLeadingBlankLines(rest), Action: Removed, Existing: existing}, nil
	}

	nl := header.DetectNewline(content)
	newHeader := d.HeaderText(nl)

	if existing == newHeader {
		return Change{Text: content, Action: Unchanged, Existing: existing}, nil
	}

	if prefix != "" && !strings.HasSuffix(prefix, "\n") && !strings.HasSuffix(prefix, "\r") {
		prefix += nl
	}

	if found {
		return Change{Text: prefix + newHeader + rest, Action: Replaced, Existing: existing}, nil
	}

	switch {
	case body == "":
		return Change{Text: prefix + newHeader + nl, Action: Inserted}, nil
	case strings.HasPrefix(body, "\n"), strings.HasPrefix(body, "\r"):
		return Change{Text: prefix + newHeader + nl + body, Action: Inserted}, nil
	default:
		return Change{Text: prefix + newHeader + nl + nl + body, Action: Inserted}, nil
	}
}
