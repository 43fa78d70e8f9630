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

package template

import (
	"context"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/pkg/text"
)

// 🔑 Property substitutes one %Keyword% in a header with a value computed for
// the document being processed.
type Property struct {
	Token string
	Value func(path string) string
}

// StaticProperty returns a property that always expands to value.
func StaticProperty(name, value string) Property {
	return Property{Token: text.Keyword(name), Value: func(string) string { return value }}
}

// 🗓️ DefaultProperties returns the built-in keywords evaluated at now.
func DefaultProperties(now time.Time) []Property {
	return []Property{
		{Token: text.Keyword("FullFileName"), Value: func(path string) string {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}},
		{Token: text.Keyword("FileName"), Value: filepath.Base},
		{Token: text.Keyword("CurrentYear"), Value: func(string) string { return strconv.Itoa(now.Year()) }},
		{Token: text.Keyword("CurrentMonth"), Value: func(string) string { return strconv.Itoa(int(now.Month())) }},
		{Token: text.Keyword("CurrentDay"), Value: func(string) string { return strconv.Itoa(now.Day()) }},
		{Token: text.Keyword("CurrentTime"), Value: func(string) string { return now.Format("15:04:05") }},
		{Token: text.Keyword("UserName"), Value: func(string) string { return currentUserName() }},
	}
}

func currentUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// ✨ Expander applies properties to header text.
type Expander struct {
	replacer text.TextReplacer
}

// NewExpander returns an expander backed by the simple keyword replacer.
func NewExpander() *Expander {
	return &Expander{replacer: text.NewSimpleTextReplacer()}
}

// Expand substitutes every property in header for the document at path.
// When two properties share a token the first one wins, so callers list user
// properties before the built-ins to override them.
func (e *Expander) Expand(ctx context.Context, header, path string, props []Property) (string, error) {
	if len(props) == 0 || !strings.Contains(header, text.KeywordDelimiter) {
		return header, nil
	}

	rules := make([]text.ReplacementRule, 0, len(props))
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if p.Value == nil || seen[p.Token] {
			continue
		}
		seen[p.Token] = true
		rules = append(rules, text.ReplacementRule{FromText: p.Token, ToText: p.Value(path)})
	}
	if err := e.replacer.ValidateRules(rules); err != nil {
		return "", errors.Errorf("validating properties: %w", err)
	}

	result, err := e.replacer.ReplaceText(ctx, strings.NewReader(header), rules)
	if err != nil {
		return "", errors.Errorf("expanding header for %s: %w", path, err)
	}
	return string(result.ModifiedContent), nil
}
