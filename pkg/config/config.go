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

package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/document"
	"github.com/walteh/licenserc/pkg/language"
	"github.com/walteh/licenserc/pkg/template"
	"github.com/walteh/licenserc/pkg/text"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// FileNames are the project files Discover looks for, in order.
var FileNames = []string{".licenserc.yaml", ".licenserc.yml", ".licenserc.hcl", ".licenserc.json"}

// Non-comment header policies.
const (
	NonCommentAsk = "ask"
	NonCommentYes = "yes"
	NonCommentNo  = "no"
)

// 📜 License selects license text to generate a definition file from
type License struct {
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty" hcl:"provider,optional"`
	Key      string `json:"key" yaml:"key" hcl:"key"`
}

// 📚 Config represents the complete configuration
type Config struct {
	// Definition is a .licenseheader file used for every directory. When empty the
	// nearest definition file of each directory is used.
	Definition      string            `json:"definition,omitempty" yaml:"definition,omitempty" hcl:"definition,optional"`
	Include         []string          `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude         []string          `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Keywords        []string          `json:"keywords,omitempty" yaml:"keywords,omitempty" hcl:"keywords,optional"`
	DisableKeywords bool              `json:"disable_keywords,omitempty" yaml:"disable_keywords,omitempty" hcl:"disable_keywords,optional"`
	Properties      map[string]string `json:"properties,omitempty" yaml:"properties,omitempty" hcl:"properties,optional"`
	NonComment      string            `json:"non_comment,omitempty" yaml:"non_comment,omitempty" hcl:"non_comment,optional"`
	Languages       []language.Spec   `json:"languages,omitempty" yaml:"languages,omitempty" hcl:"language,block"`
	License         *License          `json:"license,omitempty" yaml:"license,omitempty" hcl:"license,block"`

	location string
}

// 🏭 Default returns the validated configuration used when no project file exists
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🧭 Discover returns the project file in dir, or "" when there is none
func Discover(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// Location returns the file the configuration was loaded from.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks if the configuration is valid and sets defaults
func (cfg *Config) Validate() error {
	if len(cfg.Include) == 0 {
		cfg.Include = []string{"**"}
	}
	for _, pattern := range append(append([]string(nil), cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	if cfg.Keywords == nil && !cfg.DisableKeywords {
		cfg.Keywords = append([]string(nil), document.DefaultKeywords...)
	}

	switch cfg.NonComment {
	case "":
		cfg.NonComment = NonCommentAsk
	case NonCommentAsk, NonCommentYes, NonCommentNo:
	default:
		return errors.Errorf("non_comment must be one of %s, %s or %s, got %q", NonCommentAsk, NonCommentYes, NonCommentNo, cfg.NonComment)
	}

	for name := range cfg.Properties {
		if !text.IsKeyword(text.Keyword(name)) {
			return errors.Errorf("invalid property name %q", name)
		}
	}

	for i, spec := range cfg.Languages {
		if _, err := language.New(spec); err != nil {
			return errors.Errorf("languages[%d]: %w", i, err)
		}
	}

	if cfg.License != nil {
		if cfg.License.Key == "" {
			return errors.Errorf("license.key is required")
		}
		if cfg.License.Provider == "" {
			cfg.License.Provider = "github"
		}
	}

	if cfg.Definition != "" {
		if !template.IsDefinition(cfg.Definition) {
			return errors.Errorf("definition %q must end with %s", cfg.Definition, template.Extension)
		}
		if cfg.location != "" && !filepath.IsAbs(cfg.Definition) {
			cfg.Definition = filepath.Join(filepath.Dir(cfg.location), cfg.Definition)
		}
		cfg.Definition = filepath.Clean(cfg.Definition)
	}

	return nil
}

// 📚 Registry returns the default language registry with the project languages
// taking precedence.
func (cfg *Config) Registry() (*language.Registry, error) {
	if len(cfg.Languages) == 0 {
		return language.Default(), nil
	}
	custom, err := language.FromSpecs(cfg.Languages)
	if err != nil {
		return nil, errors.Errorf("building languages: %w", err)
	}
	return language.Default().Prepend(custom.Languages()...), nil
}

// KeywordList returns the keywords gating header replacement, nil when disabled.
func (cfg *Config) KeywordList() []string {
	if cfg.DisableKeywords {
		return nil
	}
	return cfg.Keywords
}

// StaticProperties returns the user properties sorted by name.
func (cfg *Config) StaticProperties() []template.Property {
	names := make([]string, 0, len(cfg.Properties))
	for name := range cfg.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]template.Property, 0, len(names))
	for _, name := range names {
		props = append(props, template.StaticProperty(name, cfg.Properties[name]))
	}
	return props
}
