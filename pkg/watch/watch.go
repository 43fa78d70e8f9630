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

// Package watch inserts license headers into files as they are created below a
// directory tree.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/licenserc/pkg/config"
	"github.com/walteh/licenserc/pkg/operation"
	"github.com/walteh/licenserc/pkg/replacer"
	"github.com/walteh/licenserc/pkg/template"
)

// DefaultDebounce is how long a created file must stay quiet before its header
// is inserted.
const DefaultDebounce = 300 * time.Millisecond

// Options configure a Watcher.
type Options struct {
	Root     string
	Config   *config.Config
	Store    replacer.ContentStore
	Reporter replacer.Reporter
	Inquiry  replacer.Inquiry // decides about non-comment headers, nil inserts them
	Debounce time.Duration
	Now      func() time.Time
}

// 👀 Watcher inserts headers into newly created files, one file at a time.
type Watcher struct {
	root     string
	cfg      *config.Config
	replacer *replacer.Replacer
	resolver *operation.Resolver
	inquiry  replacer.Inquiry
	debounce time.Duration
	now      func() time.Time

	ready     chan struct{}
	readyOnce sync.Once
}

// 🏭 New creates a watcher for opts.Root.
func New(opts Options) (*Watcher, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}

	reg, err := opts.Config.Registry()
	if err != nil {
		return nil, errors.Errorf("building registry: %w", err)
	}

	r, err := replacer.New(replacer.Options{
		Registry: reg,
		Keywords: opts.Config.KeywordList(),
		Store:    opts.Store,
		Reporter: opts.Reporter,
	})
	if err != nil {
		return nil, errors.Errorf("creating replacer: %w", err)
	}

	return &Watcher{
		root:     root,
		cfg:      opts.Config,
		replacer: r,
		resolver: operation.NewResolver(opts.Config.Definition),
		inquiry:  opts.Inquiry,
		debounce: opts.Debounce,
		now:      opts.Now,
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once every directory is being watched by the first Run.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// 🚀 Run watches until ctx is done. Events are collected by one goroutine and
// the debounced paths are processed sequentially by another.
func (w *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addDirs(fsw, w.root); err != nil {
		return errors.Errorf("watching directories: %w", err)
	}
	w.readyOnce.Do(func() { close(w.ready) })
	logger.Info().Str("root", w.root).Msg("watching for new files")

	paths := make(chan string, 64)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(paths)
		return w.collect(gctx, fsw, paths)
	})
	g.Go(func() error {
		for path := range paths {
			w.process(gctx, path)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// collect turns fsnotify events into quiet paths. A path becomes pending when
// it is created and every later write restarts its debounce.
func (w *Watcher) collect(ctx context.Context, fsw *fsnotify.Watcher, out chan<- string) error {
	logger := zerolog.Ctx(ctx)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Has(fsnotify.Create):
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirs(fsw, event.Name); err != nil {
						logger.Warn().Err(err).Str("dir", event.Name).Msg("watching new directory")
					}
					continue
				}
				pending[event.Name] = time.Now()
			case event.Has(fsnotify.Write):
				if _, ok := pending[event.Name]; ok {
					pending[event.Name] = time.Now()
				}
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				delete(pending, event.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, path)
				select {
				case out <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// process inserts the header of one created file. Configuration mismatches
// stay silent because the user did not ask for this file.
func (w *Watcher) process(ctx context.Context, path string) {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || template.IsDefinition(path) {
		return
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil || !operation.Selected(w.cfg.Include, w.cfg.Exclude, filepath.ToSlash(rel)) {
		logger.Debug().Msg("not selected")
		return
	}

	headers, err := w.resolver.Headers(ctx, filepath.Dir(path))
	if err != nil {
		logger.Warn().Err(err).Msg("resolving definition")
		return
	}
	if headers == nil {
		return
	}

	in := replacer.Input{
		Path:       path,
		Headers:    headers,
		Properties: append(w.cfg.StaticProperties(), template.DefaultProperties(w.now())...),
	}
	if msg := w.replacer.RemoveOrReplace(ctx, in, false, w.inquiry, nil); msg != "" {
		logger.Warn().Str("diagnostic", msg).Msg("inserting header")
	}
}

func (w *Watcher) addDirs(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && operation.SkipDir(d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
