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
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/template"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"vendor":       true,
	"node_modules": true,
}

// 🔍 Discover returns the regular files under root matching at least one include
// pattern and no exclude pattern. Patterns are doublestar globs matched against
// the slash separated path relative to root. Definition files are never
// returned. The result is sorted.
func Discover(ctx context.Context, root string, include, exclude []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("walking %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if SkipDir(d.Name()) || matchAny(exclude, rel) {
				logger.Debug().Str("dir", rel).Msg("skipping directory")
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || template.IsDefinition(path) {
			return nil
		}
		if !Selected(include, exclude, rel) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("discovering files: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// Selected reports whether the slash separated relative path rel matches an
// include pattern and no exclude pattern. No include patterns selects all.
func Selected(include, exclude []string, rel string) bool {
	if len(include) > 0 && !matchAny(include, rel) {
		return false
	}
	return !matchAny(exclude, rel)
}

// SkipDir reports whether a directory is never descended into.
func SkipDir(name string) bool {
	return skipDirs[name]
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
