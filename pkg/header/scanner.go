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

// Package header finds the leading license header of a source file using only
// the comment delimiters of its language.
package header

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/language"
)

// ErrParse is wrapped by every *ParseError.
var ErrParse = errors.Base("malformed header")

// ❌ ParseError reports a header that cannot be delimited: an unterminated block
// comment or a region end without a matching begin.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed header at offset %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// 🔎 Scanner detects the header of a text for one language. It holds no state
// between calls and is safe for concurrent use.
type Scanner struct {
	lang *language.Language
}

// NewScanner returns a scanner for lang.
func NewScanner(lang *language.Language) *Scanner {
	return &Scanner{lang: lang}
}

// Language returns the dialect the scanner was built for.
func (s *Scanner) Language() *language.Language {
	return s.lang
}

// 📜 Parse returns the leading header of text, or "" when text does not start
// with a comment.
func (s *Scanner) Parse(text string) (string, error) {
	end, err := s.Scan(text)
	if err != nil {
		return "", err
	}
	return text[:end], nil
}

// 🎯 Scan returns the end offset of the header, so the header is text[:end].
// The header never includes whitespace following its last comment.
func (s *Scanner) Scan(text string) (int, error) {
	st := &scanState{text: text, lang: s.lang}

	for {
		start, tok, ok := st.nextToken()
		if !ok {
			break
		}
		handled, err := st.handle(start, tok)
		if err != nil {
			return 0, err
		}
		if !handled {
			break
		}
	}

	if !st.started {
		return 0, nil
	}
	if len(st.regions) > 0 {
		// an unterminated region ends the header where the outermost one began
		return st.regions[0], nil
	}
	return st.end, nil
}

type scanState struct {
	text    string
	lang    *language.Language
	pos     int
	end     int
	started bool
	regions []int
}

// nextToken skips whitespace and returns the next whitespace-delimited token.
// It reports false at the end of the text, and at a blank line once the header
// has started outside of any region.
func (st *scanState) nextToken() (int, string, bool) {
	wsStart := st.pos
	for st.pos < len(st.text) {
		r, size := utf8.DecodeRuneInString(st.text[st.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		st.pos += size
	}

	if st.pos >= len(st.text) {
		return 0, "", false
	}

	if st.started && len(st.regions) == 0 && countLineBreaks(st.text[wsStart:st.pos]) >= 2 {
		return 0, "", false
	}

	start := st.pos
	for st.pos < len(st.text) {
		r, size := utf8.DecodeRuneInString(st.text[st.pos:])
		if unicode.IsSpace(r) {
			break
		}
		st.pos += size
	}
	return start, st.text[start:st.pos], true
}

// handle consumes the header unit introduced by tok. It reports false when tok
// is not part of the header.
func (st *scanState) handle(start int, tok string) (bool, error) {
	lang := st.lang

	switch {
	case lang.LineComment() != "" && strings.HasPrefix(tok, lang.LineComment()):
		st.started = true
		st.toLineEnd()

	case lang.BeginComment() != "" && strings.HasPrefix(tok, lang.BeginComment()):
		st.started = true
		from := start + len(lang.BeginComment())
		idx := strings.Index(st.text[from:], lang.EndComment())
		if idx < 0 {
			return false, &ParseError{Offset: start, Reason: "unterminated block comment " + lang.BeginComment()}
		}
		st.pos = from + idx + len(lang.EndComment())
		st.end = st.pos

	case lang.BeginRegion() != "" && tok == lang.BeginRegion():
		st.started = true
		st.regions = append(st.regions, start)
		st.toLineEnd()

	case lang.EndRegion() != "" && tok == lang.EndRegion():
		st.started = true
		if err := st.popRegion(start); err != nil {
			return false, err
		}
		st.toLineEnd()

	case isEndRegionHead(lang.EndRegion(), tok):
		st.started = true
		rest := strings.Fields(st.text[st.pos:lineEnd(st.text, st.pos)])
		if len(rest) > 0 && tok+" "+rest[0] == lang.EndRegion() {
			if err := st.popRegion(start); err != nil {
				return false, err
			}
		}
		st.toLineEnd()

	default:
		return false, nil
	}

	return true, nil
}

func (st *scanState) popRegion(offset int) error {
	if len(st.regions) == 0 {
		return &ParseError{Offset: offset, Reason: "region end without matching " + st.lang.BeginRegion()}
	}
	st.regions = st.regions[:len(st.regions)-1]
	return nil
}

func (st *scanState) toLineEnd() {
	st.pos = lineEnd(st.text, st.pos)
	st.end = st.pos
}

// isEndRegionHead reports whether tok is the first word of a two-word region end
// marker such as "#End Region".
func isEndRegionHead(endRegion, tok string) bool {
	head, _, found := strings.Cut(endRegion, " ")
	return found && head != "" && tok == head
}
