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

// Package document classifies a file against the language registry and the
// configured header templates, and rewrites the header of its content.
package document

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/header"
	"github.com/walteh/licenserc/pkg/language"
	"github.com/walteh/licenserc/pkg/template"
)

// Result classifies a path before any content is read.
type Result int

const (
	// Created means a Document was resolved for the path
	Created Result = iota
	// DefinitionFile means the path is itself a header definition
	DefinitionFile
	// LanguageNotFound means no registry language matches the path
	LanguageNotFound
	// NoHeaderFound means a language matched but no template is configured for it
	NoHeaderFound
	// EmptyHeader means the configured template has no visible text
	EmptyHeader
)

func (r Result) String() string {
	switch r {
	case Created:
		return "created"
	case DefinitionFile:
		return "definition file"
	case LanguageNotFound:
		return "language not found"
	case NoHeaderFound:
		return "no header found"
	case EmptyHeader:
		return "empty header"
	default:
		return "unknown"
	}
}

// DefaultKeywords are the keywords a project configuration starts from.
var DefaultKeywords = []string{"license", "copyright", "(c)", "©"}

// 🗂️ Classifier resolves Documents for paths.
type Classifier struct {
	registry *language.Registry
	keywords []string
	expander *template.Expander
}

// NewClassifier returns a classifier over reg. An existing header is only
// replaced when it contains one of keywords; a nil slice disables the check.
func NewClassifier(reg *language.Registry, keywords []string) *Classifier {
	return &Classifier{
		registry: reg,
		keywords: keywords,
		expander: template.NewExpander(),
	}
}

// 🎯 Create classifies path. A nil headers map resolves a remove-only Document.
// The error is non-nil only when the template cannot be expanded.
func (c *Classifier) Create(ctx context.Context, path string, headers template.Headers, props []template.Property) (*Document, Result, error) {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	if template.IsDefinition(path) {
		logger.Debug().Msg("skipping header definition file")
		return nil, DefinitionFile, nil
	}

	lang, ok := c.registry.Lookup(path)
	if !ok {
		logger.Debug().Msg("no language for path")
		return nil, LanguageNotFound, nil
	}

	doc := &Document{
		path:     path,
		lang:     lang,
		scanner:  header.NewScanner(lang),
		keywords: c.keywords,
	}

	if headers == nil {
		logger.Debug().Str("language", lang.Name()).Msg("resolved remove-only document")
		return doc, Created, nil
	}

	lines, ok := headers.Lookup(path)
	if !ok {
		logger.Debug().Str("language", lang.Name()).Msg("no header template for path")
		return nil, NoHeaderFound, nil
	}
	if template.IsEmpty(lines) {
		return nil, EmptyHeader, nil
	}

	expanded := make([]string, len(lines))
	for i, line := range lines {
		exp, err := c.expander.Expand(ctx, line, path, props)
		if err != nil {
			return nil, Created, errors.Errorf("expanding header: %w", err)
		}
		expanded[i] = exp
	}
	// the scanner never includes whitespace after the last comment, so a
	// template ending in blank lines would never be found again
	for len(expanded) > 1 && strings.TrimSpace(expanded[len(expanded)-1]) == "" {
		expanded = expanded[:len(expanded)-1]
	}
	doc.header = expanded

	logger.Debug().Str("language", lang.Name()).Int("lines", len(expanded)).Msg("resolved document")
	return doc, Created, nil
}
