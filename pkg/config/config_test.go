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
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/licenserc/pkg/document"
	"github.com/walteh/licenserc/pkg/language"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml",
			filename: ".licenserc.yaml",
			content: `
definition: headers/project.licenseheader
include: ["**/*.go", "**/*.cs"]
exclude: ["vendor/**"]
properties:
  Company: Acme
non_comment: "no"
languages:
  - name: gotmpl
    extensions: [".go.tmpl"]
    begin_comment: "{{/*"
    end_comment: "*/}}"
license:
  key: mit
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"**/*.go", "**/*.cs"}, cfg.Include, "include should match")
				assert.Equal(t, []string{"vendor/**"}, cfg.Exclude, "exclude should match")
				assert.Equal(t, "Acme", cfg.Properties["Company"], "property should match")
				assert.Equal(t, NonCommentNo, cfg.NonComment, "non_comment should match")
				assert.Equal(t, document.DefaultKeywords, cfg.KeywordList(), "keywords should default")
				assert.Equal(t, "github", cfg.License.Provider, "license provider should default")
				assert.True(t, filepath.IsAbs(cfg.Definition), "definition should be resolved against the config file")
				assert.Equal(t, "project.licenseheader", filepath.Base(cfg.Definition))
				require.Len(t, cfg.Languages, 1)
				assert.Equal(t, "gotmpl", cfg.Languages[0].Name)
			},
		},
		{
			name:     "json",
			filename: ".licenserc.json",
			content:  `{"keywords": ["copyright"], "properties": {"Owner": "me"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"copyright"}, cfg.KeywordList())
				assert.Equal(t, []string{"**"}, cfg.Include, "include should default")
				assert.Equal(t, NonCommentAsk, cfg.NonComment, "non_comment should default")
			},
		},
		{
			name:     "hcl",
			filename: ".licenserc.hcl",
			content: `
include = ["**/*.proto"]
disable_keywords = true
properties = {
  Years = "2019-${year}"
}

language "proto" {
  extensions   = [".proto"]
  line_comment = "//"
}

license {
  provider = "github"
  key      = "apache-2.0"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"**/*.proto"}, cfg.Include)
				assert.Nil(t, cfg.KeywordList(), "keywords should be disabled")
				assert.Equal(t, "apache-2.0", cfg.License.Key)
				require.Len(t, cfg.Languages, 1)
				assert.Equal(t, "proto", cfg.Languages[0].Name)
				assert.Equal(t, []string{".proto"}, cfg.Languages[0].Extensions)
				assert.Regexp(t, `^2019-\d{4}$`, cfg.Properties["Years"], "year should be interpolated")
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    ".licenserc.yml",
			content:     "includes: ['**']\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    ".licenserc.json",
			content:     `{"includes": ["**"]}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_syntax_error",
			filename:    ".licenserc.hcl",
			content:     "include = [",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unknown_extension",
			filename:    ".licenserc.toml",
			content:     "",
			wantErr:     true,
			errContains: "no parser found",
		},
		{
			name:        "invalid_language",
			filename:    ".licenserc.yaml",
			content:     "languages:\n  - name: broken\n    extensions: ['.x']\n    begin_comment: '/*'\n",
			wantErr:     true,
			errContains: "languages[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(os.Stderr).WithContext(context.Background())
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644), "writing config should succeed")

			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		errContains string
	}{
		{name: "bad_glob", cfg: Config{Include: []string{"[a-"}}, errContains: "invalid glob pattern"},
		{name: "bad_non_comment", cfg: Config{NonComment: "maybe"}, errContains: "non_comment must be one of"},
		{name: "bad_property", cfg: Config{Properties: map[string]string{"Big Company": "x"}}, errContains: "invalid property name"},
		{name: "license_without_key", cfg: Config{License: &License{}}, errContains: "license.key is required"},
		{name: "bad_definition", cfg: Config{Definition: "header.txt"}, errContains: "must end with .licenseheader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err, "Validate should return error")
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"**"}, cfg.Include)
	assert.Equal(t, NonCommentAsk, cfg.NonComment)
	assert.Equal(t, document.DefaultKeywords, cfg.KeywordList())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	got, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, got, "no config should be found")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".licenserc.hcl"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".licenserc.yaml"), nil, 0o644))

	got, err = Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".licenserc.yaml"), got, "yaml should be preferred")
}

func TestConfig_Registry(t *testing.T) {
	cfg := &Config{Languages: []language.Spec{
		{Name: "gotmpl", Extensions: []string{".go"}, LineComment: "//"},
	}}
	require.NoError(t, cfg.Validate())

	reg, err := cfg.Registry()
	require.NoError(t, err)

	lang, ok := reg.Lookup("main.go")
	require.True(t, ok)
	assert.Equal(t, "gotmpl", lang.Name(), "project languages should win")
	assert.Equal(t, language.Default().Len()+1, reg.Len())

	def, err := Default().Registry()
	require.NoError(t, err)
	assert.Same(t, language.Default(), def)
}

func TestConfig_StaticProperties(t *testing.T) {
	cfg := &Config{Properties: map[string]string{"b": "2", "a": "1"}}
	props := cfg.StaticProperties()
	require.Len(t, props, 2)
	assert.Equal(t, "%a%", props[0].Token)
	assert.Equal(t, "1", props[0].Value("x.go"))
	assert.Equal(t, "%b%", props[1].Token)
}

func TestHCLParser_Year(t *testing.T) {
	p := &HCLParser{Now: func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }}
	cfg, err := p.Parse(context.Background(), []byte(`properties = { Year = "${year}" }`))
	require.NoError(t, err)
	assert.Equal(t, "2031", cfg.Properties["Year"])
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &YAMLParser{}, GetParser("x/.licenserc.YML"))
	assert.IsType(t, &JSONParser{}, GetParser(".licenserc.json"))
	assert.IsType(t, &HCLParser{}, GetParser(".licenserc.hcl"))
	assert.Nil(t, GetParser("licenserc.ini"))
}
