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
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/template"
)

// 📚 Resolver finds the header definition that applies to a directory. A fixed
// definition path wins over searching; otherwise the nearest .licenseheader
// file up the tree is used. Loaded definitions are cached.
type Resolver struct {
	fixed string

	mu    sync.Mutex
	dirs  map[string]string
	files map[string]template.Headers
}

// NewResolver returns a resolver. An empty definition searches per directory.
func NewResolver(definition string) *Resolver {
	return &Resolver{
		fixed: definition,
		dirs:  make(map[string]string),
		files: make(map[string]template.Headers),
	}
}

// Headers returns the definition applying to files in dir, or nil when there
// is none.
func (r *Resolver) Headers(ctx context.Context, dir string) (template.Headers, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.definitionFor(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, nil
	}

	if headers, ok := r.files[path]; ok {
		return headers, nil
	}

	zerolog.Ctx(ctx).Debug().Str("definition", path).Msg("loading header definition")
	headers, err := template.LoadDefinition(path)
	if err != nil {
		return nil, errors.Errorf("loading definition: %w", err)
	}
	r.files[path] = headers
	return headers, nil
}

func (r *Resolver) definitionFor(dir string) (string, error) {
	if r.fixed != "" {
		return r.fixed, nil
	}

	dir = filepath.Clean(dir)
	if path, ok := r.dirs[dir]; ok {
		return path, nil
	}

	path, err := template.Find(dir)
	if err != nil {
		return "", errors.Errorf("finding definition for %s: %w", dir, err)
	}
	r.dirs[dir] = path
	return path, nil
}
