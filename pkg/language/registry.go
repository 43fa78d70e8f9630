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
	"bytes"
	_ "embed"
	"io"
	"sync"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var defaultLanguagesYAML []byte

// 📚 Registry is an ordered, read-only collection of languages. Lookup is
// first-match, so more specific dialects must come before generic ones.
type Registry struct {
	languages []*Language
}

// 🏭 NewRegistry creates a registry with the given languages in order
func NewRegistry(langs ...*Language) *Registry {
	return &Registry{languages: append([]*Language(nil), langs...)}
}

// 🔍 Lookup returns the first language whose extensions match path
func (r *Registry) Lookup(path string) (*Language, bool) {
	if r == nil {
		return nil, false
	}
	for _, lang := range r.languages {
		if lang.Matches(path) {
			return lang, true
		}
	}
	return nil, false
}

// Languages returns the registered languages in lookup order.
func (r *Registry) Languages() []*Language {
	return append([]*Language(nil), r.languages...)
}

// Len returns the number of registered languages.
func (r *Registry) Len() int {
	return len(r.languages)
}

// ➕ Prepend returns a new registry in which langs take precedence over r
func (r *Registry) Prepend(langs ...*Language) *Registry {
	out := make([]*Language, 0, len(langs)+len(r.languages))
	out = append(out, langs...)
	out = append(out, r.languages...)
	return &Registry{languages: out}
}

// 📝 DecodeSpecs reads a YAML list of language specs
func DecodeSpecs(r io.Reader) ([]Spec, error) {
	var doc struct {
		Languages []Spec `yaml:"languages"`
	}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Errorf("parsing languages: %w", err)
	}
	return doc.Languages, nil
}

// 🏗️ FromSpecs validates every spec and builds a registry in spec order
func FromSpecs(specs []Spec) (*Registry, error) {
	langs := make([]*Language, 0, len(specs))
	for i, spec := range specs {
		lang, err := New(spec)
		if err != nil {
			return nil, errors.Errorf("language %d: %w", i, err)
		}
		langs = append(langs, lang)
	}
	return NewRegistry(langs...), nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// 🎯 Default returns the built-in registry
func Default() *Registry {
	defaultOnce.Do(func() {
		specs, err := DecodeSpecs(bytes.NewReader(defaultLanguagesYAML))
		if err != nil {
			panic(err)
		}
		reg, err := FromSpecs(specs)
		if err != nil {
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}
