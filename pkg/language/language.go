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

package language

import (
	"path/filepath"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalid is returned when a language violates the delimiter invariants.
var ErrInvalid = errors.Base("invalid language")

// 📝 Spec is the serializable form of a comment dialect
type Spec struct {
	Name           string   `json:"name" yaml:"name" hcl:"name,label"`
	Extensions     []string `json:"extensions" yaml:"extensions" hcl:"extensions"`
	LineComment    string   `json:"line_comment,omitempty" yaml:"line_comment,omitempty" hcl:"line_comment,optional"`
	BeginComment   string   `json:"begin_comment,omitempty" yaml:"begin_comment,omitempty" hcl:"begin_comment,optional"`
	EndComment     string   `json:"end_comment,omitempty" yaml:"end_comment,omitempty" hcl:"end_comment,optional"`
	BeginRegion    string   `json:"begin_region,omitempty" yaml:"begin_region,omitempty" hcl:"begin_region,optional"`
	EndRegion      string   `json:"end_region,omitempty" yaml:"end_region,omitempty" hcl:"end_region,optional"`
	SkipExpression string   `json:"skip_expression,omitempty" yaml:"skip_expression,omitempty" hcl:"skip_expression,optional"`
}

// 🗣️ Language is an immutable comment dialect: the extensions it applies to and
// the delimiter tokens the header scanner understands.
type Language struct {
	name         string
	extensions   []string
	lineComment  string
	beginComment string
	endComment   string
	beginRegion  string
	endRegion    string
	skip         *regexp.Regexp
}

// 🏭 New validates a spec and builds a Language from it
func New(spec Spec) (*Language, error) {
	lang := &Language{
		name:         strings.TrimSpace(spec.Name),
		lineComment:  strings.TrimSpace(spec.LineComment),
		beginComment: strings.TrimSpace(spec.BeginComment),
		endComment:   strings.TrimSpace(spec.EndComment),
		beginRegion:  strings.TrimSpace(spec.BeginRegion),
		endRegion:    strings.TrimSpace(spec.EndRegion),
	}

	for _, ext := range spec.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		lang.extensions = append(lang.extensions, ext)
	}

	if len(lang.extensions) == 0 {
		return nil, errors.Errorf("%w %q: at least one extension is required", ErrInvalid, lang.name)
	}
	if (lang.beginComment == "") != (lang.endComment == "") {
		return nil, errors.Errorf("%w %q: begin_comment and end_comment must be set together", ErrInvalid, lang.name)
	}
	if (lang.beginRegion == "") != (lang.endRegion == "") {
		return nil, errors.Errorf("%w %q: begin_region and end_region must be set together", ErrInvalid, lang.name)
	}
	if lang.lineComment == "" && lang.beginComment == "" {
		return nil, errors.Errorf("%w %q: line_comment or begin_comment is required", ErrInvalid, lang.name)
	}
	if strings.ContainsFunc(lang.lineComment+lang.beginComment+lang.beginRegion, isSpace) {
		return nil, errors.Errorf("%w %q: comment and region start tokens must not contain whitespace", ErrInvalid, lang.name)
	}

	if expr := strings.TrimSpace(spec.SkipExpression); expr != "" {
		re, err := regexp.Compile(`\A(?:` + expr + `)`)
		if err != nil {
			return nil, errors.Errorf("%w %q: compiling skip_expression: %s", ErrInvalid, lang.name, err.Error())
		}
		lang.skip = re
	}

	return lang, nil
}

// MustNew is New for statically known specs.
func MustNew(spec Spec) *Language {
	lang, err := New(spec)
	if err != nil {
		panic(err)
	}
	return lang
}

func (l *Language) Name() string         { return l.name }
func (l *Language) LineComment() string  { return l.lineComment }
func (l *Language) BeginComment() string { return l.beginComment }
func (l *Language) EndComment() string   { return l.endComment }
func (l *Language) BeginRegion() string  { return l.beginRegion }
func (l *Language) EndRegion() string    { return l.endRegion }

// Extensions returns a copy of the extensions in declaration order.
func (l *Language) Extensions() []string {
	return append([]string(nil), l.extensions...)
}

// 🔍 Matches reports whether path ends with one of the language's extensions, ignoring case
func (l *Language) Matches(path string) bool {
	for _, ext := range l.extensions {
		if hasSuffixFold(path, ext) {
			return true
		}
	}
	return false
}

// ⏭️ Skip returns the length of the leading text that precedes the header
// (e.g. a shebang or an XML declaration), including the line break after it.
func (l *Language) Skip(text string) int {
	if l.skip == nil {
		return 0
	}
	loc := l.skip.FindStringIndex(text)
	if loc == nil || loc[1] == 0 {
		return 0
	}
	end := loc[1]
	switch {
	case strings.HasPrefix(text[end:], "\r\n"):
		end += 2
	case strings.HasPrefix(text[end:], "\n"), strings.HasPrefix(text[end:], "\r"):
		end++
	}
	return end
}

// Spec returns the serializable form of the language.
func (l *Language) Spec() Spec {
	spec := Spec{
		Name:         l.name,
		Extensions:   l.Extensions(),
		LineComment:  l.lineComment,
		BeginComment: l.beginComment,
		EndComment:   l.endComment,
		BeginRegion:  l.beginRegion,
		EndRegion:    l.endRegion,
	}
	if l.skip != nil {
		expr := l.skip.String()
		spec.SkipExpression = expr[len(`\A(?:`) : len(expr)-1]
	}
	return spec
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// Ext returns the last extension of path in lower case, the key used to group
// files of the same kind.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
