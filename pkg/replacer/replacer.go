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

// Package replacer inserts, replaces and removes license headers of files,
// one at a time or as a batch, turning every per-file problem into a
// diagnostic message.
package replacer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/document"
	"github.com/walteh/licenserc/pkg/header"
	"github.com/walteh/licenserc/pkg/language"
	"github.com/walteh/licenserc/pkg/template"
)

const (
	msgNonCommentText   = "The license header for files with extension %s contains text that is not a comment of that language. Insert it anyway?"
	msgInvalidHeader    = "The existing license header of %s could not be parsed: %s"
	msgLanguageNotFound = "No comment language is configured for files with extension %s."
	msgNoHeaderFound    = "No license header is defined for this file type."
	msgCancelled        = "Updating the license header of %s was cancelled."
	msgIOFailure        = "Updating the license header of %s failed: %s"
)

// 📥 Input is one file to process together with the templates that apply to
// it. Nil Headers removes the existing header.
type Input struct {
	Path       string
	Headers    template.Headers
	Properties []template.Property
}

// Inquiry asks whether to continue although the header contains non-comment
// text. A nil Inquiry always continues.
type Inquiry func(message string) bool

// NotFoundAction takes over reporting of a missing language.
type NotFoundAction func(message string)

// 💾 ContentStore reads and writes whole files.
type ContentStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, data []byte) error
}

// 📣 Reporter receives the outcome of every processed file.
type Reporter interface {
	Report(ctx context.Context, outcome Outcome)
}

// Outcome describes what happened to one file.
type Outcome struct {
	Path       string
	Action     document.Action
	Skipped    bool
	Diagnostic string
	Before     string
	After      string
}

// Options configure a Replacer.
type Options struct {
	Registry *language.Registry
	Keywords []string
	Store    ContentStore
	Reporter Reporter
	// DryRun computes changes without writing them.
	DryRun bool
}

// 🔧 Replacer updates headers. Its extension decision cache is not safe for
// concurrent batches.
type Replacer struct {
	classifier *document.Classifier
	store      ContentStore
	reporter   Reporter
	dryRun     bool

	decisions map[string]bool
}

// New creates a Replacer. A nil Registry uses language.Default().
func New(opts Options) (*Replacer, error) {
	if opts.Store == nil {
		return nil, errors.New("content store is required")
	}
	reg := opts.Registry
	if reg == nil {
		reg = language.Default()
	}
	return &Replacer{
		classifier: document.NewClassifier(reg, opts.Keywords),
		store:      opts.Store,
		reporter:   opts.Reporter,
		dryRun:     opts.DryRun,
		decisions:  make(map[string]bool),
	}, nil
}

// 🎯 RemoveOrReplace processes a single file and returns a diagnostic, empty on
// success. Configuration mismatches are only reported when calledByUser is
// set; notFound, when given, takes over reporting of a missing language.
func (r *Replacer) RemoveOrReplace(ctx context.Context, in Input, calledByUser bool, inquiry Inquiry, notFound NotFoundAction) string {
	logger := zerolog.Ctx(ctx).With().Str("path", in.Path).Logger()

	doc, result, err := r.classifier.Create(ctx, in.Path, in.Headers, in.Properties)
	if err != nil {
		logger.Debug().Err(err).Msg("resolving document")
		return fmt.Sprintf("%s %s", err.Error(), in.Path)
	}

	switch result {
	case document.Created:
		if !doc.ValidateHeader() {
			msg := fmt.Sprintf(msgNonCommentText, language.Ext(in.Path))
			if inquiry != nil && !inquiry(msg) {
				logger.Debug().Msg("non-comment header declined")
				cancelled := fmt.Sprintf(msgCancelled, in.Path)
				r.report(ctx, Outcome{Path: in.Path, Skipped: true, Diagnostic: cancelled})
				return cancelled
			}
		}
		return r.apply(ctx, doc)

	case document.LanguageNotFound:
		if !calledByUser {
			return ""
		}
		msg := fmt.Sprintf(msgLanguageNotFound, language.Ext(in.Path))
		if notFound != nil {
			notFound(msg)
			return ""
		}
		return msg

	case document.NoHeaderFound:
		if calledByUser {
			return msgNoHeaderFound
		}
	}

	logger.Debug().Stringer("result", result).Msg("nothing to do")
	return ""
}

// 📦 RemoveOrReplaceAll processes inputs in order and returns the diagnostics
// of the files that failed. Files that do not resolve to a document are
// skipped silently. The answer to a non-comment inquiry is remembered per
// extension until ResetExtensionDecisions. When ctx is done the remaining
// files are reported as cancelled.
func (r *Replacer) RemoveOrReplaceAll(ctx context.Context, inputs []Input, inquiry Inquiry) map[string]string {
	logger := zerolog.Ctx(ctx)
	diags := make(map[string]string)

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			logger.Debug().Err(err).Int("remaining", len(inputs)-i).Msg("batch cancelled")
			for _, rest := range inputs[i:] {
				diags[rest.Path] = fmt.Sprintf(msgCancelled, rest.Path)
			}
			break
		}

		doc, result, err := r.classifier.Create(ctx, in.Path, in.Headers, in.Properties)
		if err != nil {
			diags[in.Path] = fmt.Sprintf("%s %s", err.Error(), in.Path)
			continue
		}
		if result != document.Created {
			logger.Debug().Str("path", in.Path).Stringer("result", result).Msg("skipping")
			continue
		}

		if !doc.ValidateHeader() && !r.decide(in.Path, inquiry) {
			r.report(ctx, Outcome{Path: in.Path, Skipped: true})
			continue
		}

		if msg := r.apply(ctx, doc); msg != "" {
			diags[in.Path] = msg
		}
	}

	return diags
}

// ResetExtensionDecisions forgets the inquiry answers of previous batches.
func (r *Replacer) ResetExtensionDecisions() {
	clear(r.decisions)
}

func (r *Replacer) decide(path string, inquiry Inquiry) bool {
	ext := language.Ext(path)
	if proceed, ok := r.decisions[ext]; ok {
		return proceed
	}
	proceed := true
	if inquiry != nil {
		proceed = inquiry(fmt.Sprintf(msgNonCommentText, ext))
	}
	r.decisions[ext] = proceed
	return proceed
}

func (r *Replacer) apply(ctx context.Context, doc *document.Document) string {
	path := doc.Path()
	logger := zerolog.Ctx(ctx).With().Str("path", path).Str("language", doc.Language().Name()).Logger()

	data, err := r.store.ReadFile(ctx, path)
	if err != nil {
		msg := fmt.Sprintf(msgIOFailure, path, err.Error())
		r.report(ctx, Outcome{Path: path, Diagnostic: msg})
		return msg
	}
	before := string(data)

	change, err := doc.Replace(before)
	if err != nil {
		var perr *header.ParseError
		if !errors.As(err, &perr) {
			msg := fmt.Sprintf(msgIOFailure, path, err.Error())
			r.report(ctx, Outcome{Path: path, Diagnostic: msg})
			return msg
		}
		logger.Debug().Err(err).Msg("malformed header")
		msg := fmt.Sprintf(msgInvalidHeader, path, perr.Error())
		r.report(ctx, Outcome{Path: path, Diagnostic: msg})
		return msg
	}

	if change.Action != document.Unchanged && !r.dryRun {
		if err := r.store.WriteFileAtomic(ctx, path, []byte(change.Text)); err != nil {
			msg := fmt.Sprintf(msgIOFailure, path, err.Error())
			r.report(ctx, Outcome{Path: path, Diagnostic: msg})
			return msg
		}
	}

	logger.Debug().Stringer("action", change.Action).Bool("dry_run", r.dryRun).Msg("header processed")
	r.report(ctx, Outcome{Path: path, Action: change.Action, Before: before, After: change.Text})
	return ""
}

func (r *Replacer) report(ctx context.Context, outcome Outcome) {
	if r.reporter != nil {
		r.reporter.Report(ctx, outcome)
	}
}
