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

package operation

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/config"
	"github.com/walteh/licenserc/pkg/document"
	"github.com/walteh/licenserc/pkg/replacer"
	"github.com/walteh/licenserc/pkg/template"
)

var (
	// ErrFailed is returned when at least one file produced a diagnostic.
	ErrFailed = errors.Base("some files could not be processed")
	// ErrOutOfDate is returned by a check when at least one file would change.
	ErrOutOfDate = errors.Base("license headers are out of date")
)

// Kind selects what an operation does to the discovered files.
type Kind int

const (
	KindApply  Kind = iota // insert or replace headers from the definition
	KindRemove             // remove existing headers
	KindCheck              // report files whose header would change
)

func (k Kind) String() string {
	switch k {
	case KindApply:
		return "apply"
	case KindRemove:
		return "remove"
	case KindCheck:
		return "check"
	default:
		return "unknown"
	}
}

// 🎯 Operation is a unit of work executed by the runner
type Operation interface {
	Name() string
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for header operations
type Options struct {
	// Root is the directory whose files are processed
	Root string
	// Config is the project configuration; nil uses config.Default()
	Config *config.Config
	// Store reads and writes file content
	Store replacer.ContentStore
	// Reporter receives every per-file outcome, may be nil
	Reporter replacer.Reporter
	// Inquiry is asked once per extension about non-comment headers, may be nil
	Inquiry replacer.Inquiry
	// Now stamps the date properties; nil uses time.Now
	Now func() time.Time
	// Progress is told about every processed file, may be nil
	Progress Progress
}

// Progress follows how many of the planned files have been processed.
// *status.Manager implements it.
type Progress interface {
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 📊 Result summarizes an executed operation.
type Result struct {
	Files       int
	Changed     []string
	Diagnostics map[string]string
}

// HeaderOperation applies, removes or checks headers below a root directory.
type HeaderOperation struct {
	kind Kind
	opts Options

	mu     sync.Mutex
	result Result
}

var _ Operation = (*HeaderOperation)(nil)

// 🏭 New creates a header operation of kind.
func New(kind Kind, opts Options) *HeaderOperation {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &HeaderOperation{kind: kind, opts: opts}
}

// Name returns the kind of the operation.
func (o *HeaderOperation) Name() string {
	return o.kind.String()
}

// Result returns what the last Execute did.
func (o *HeaderOperation) Result() Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// 🚀 Execute discovers the files, resolves their definitions and runs the
// batch replacer over them.
func (o *HeaderOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("operation", o.Name()).Logger()
	ctx = logger.WithContext(ctx)

	if o.opts.Store == nil {
		return errors.New("content store is required")
	}

	cfg := o.opts.Config
	reg, err := cfg.Registry()
	if err != nil {
		return errors.Errorf("building registry: %w", err)
	}

	inputs, err := o.Plan(ctx)
	if err != nil {
		return err
	}
	logger.Debug().Int("files", len(inputs)).Msg("planned")

	rec := &recorder{next: o.opts.Reporter, progress: o.opts.Progress}
	if rec.progress != nil {
		rec.progress.StartOperation(ctx, len(inputs))
	}
	r, err := replacer.New(replacer.Options{
		Registry: reg,
		Keywords: cfg.KeywordList(),
		Store:    o.opts.Store,
		Reporter: rec,
		DryRun:   o.kind == KindCheck,
	})
	if err != nil {
		return errors.Errorf("creating replacer: %w", err)
	}

	diags := r.RemoveOrReplaceAll(ctx, inputs, o.opts.Inquiry)
	if rec.progress != nil {
		rec.progress.FinishOperation(ctx)
	}

	o.mu.Lock()
	o.result = Result{Files: len(inputs), Changed: rec.changedPaths(), Diagnostics: diags}
	o.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.Errorf("%s cancelled: %w", o.Name(), err)
	}
	if len(diags) > 0 {
		return errors.Errorf("%s: %d of %d files: %w", o.Name(), len(diags), len(inputs), ErrFailed)
	}
	if o.kind == KindCheck && len(rec.changed) > 0 {
		return errors.Errorf("%d files: %w", len(rec.changed), ErrOutOfDate)
	}
	return nil
}

// 📋 Plan lists the replacer inputs for the operation. Applying and checking
// skip files without a definition; removing uses nil headers for every file.
func (o *HeaderOperation) Plan(ctx context.Context) ([]replacer.Input, error) {
	logger := zerolog.Ctx(ctx)
	cfg := o.opts.Config

	root, err := filepath.Abs(o.opts.Root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}

	files, err := Discover(ctx, root, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	props := append(cfg.StaticProperties(), template.DefaultProperties(o.opts.Now())...)
	resolver := NewResolver(cfg.Definition)

	inputs := make([]replacer.Input, 0, len(files))
	for _, path := range files {
		in := replacer.Input{Path: path, Properties: props}

		if o.kind != KindRemove {
			headers, err := resolver.Headers(ctx, filepath.Dir(path))
			if err != nil {
				return nil, err
			}
			if headers == nil {
				logger.Debug().Str("path", path).Msg("no definition applies")
				continue
			}
			in.Headers = headers
		}

		inputs = append(inputs, in)
	}
	return inputs, nil
}

// recorder forwards outcomes, counts them for the progress and remembers the
// files that changed.
type recorder struct {
	next     replacer.Reporter
	progress Progress

	mu        sync.Mutex
	changed   map[string]bool
	processed int
}

func (r *recorder) Report(ctx context.Context, outcome replacer.Outcome) {
	if r.progress != nil {
		r.mu.Lock()
		r.processed++
		n := r.processed
		r.mu.Unlock()
		r.progress.UpdateProgress(ctx, n)
	}
	if outcome.Diagnostic == "" && !outcome.Skipped && outcome.Action != document.Unchanged {
		r.mu.Lock()
		if r.changed == nil {
			r.changed = make(map[string]bool)
		}
		r.changed[outcome.Path] = true
		r.mu.Unlock()
	}
	if r.next != nil {
		r.next.Report(ctx, outcome)
	}
}

func (r *recorder) changedPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, 0, len(r.changed))
	for p := range r.changed {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
