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

package github

import (
	"context"
	"os"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"

	"github.com/walteh/licenserc/pkg/provider"
)

func init() {
	provider.Register("github", New)
}

// 🎯 Provider implements the provider interface with the GitHub licenses API
type Provider struct {
	client *github.Client
}

var _ provider.Provider = (*Provider)(nil)

// 🏭 New creates a new GitHub provider. GITHUB_TOKEN is used when set; the
// licenses API also works anonymously at a lower rate limit.
func New(ctx context.Context) (provider.Provider, error) {
	logger := zerolog.Ctx(ctx)

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		logger.Debug().Msg("GITHUB_TOKEN not set, using anonymous GitHub client")
		return NewWithClient(github.NewClient(nil)), nil
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return NewWithClient(github.NewClient(tc)), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *github.Client) *Provider {
	return &Provider{client: client}
}

// 📄 GetLicense returns the license template identified by key, e.g. "mit"
func (p *Provider) GetLicense(ctx context.Context, key string) (*provider.License, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil, errors.New("license key is required")
	}

	lic, _, err := p.client.Licenses.Get(ctx, key)
	if err != nil {
		return nil, errors.Errorf("getting license %s: %w", key, err)
	}

	zerolog.Ctx(ctx).Debug().Str("key", lic.GetKey()).Str("spdx_id", lic.GetSPDXID()).Msg("fetched license")

	return &provider.License{
		Key:    lic.GetKey(),
		Name:   lic.GetName(),
		SPDXID: lic.GetSPDXID(),
		Body:   lic.GetBody(),
		URL:    lic.GetHTMLURL(),
	}, nil
}

// 📂 ListLicenses returns the commonly used licenses known to GitHub
func (p *Provider) ListLicenses(ctx context.Context) ([]provider.License, error) {
	list, _, err := p.client.Licenses.List(ctx)
	if err != nil {
		return nil, errors.Errorf("listing licenses: %w", err)
	}

	out := make([]provider.License, 0, len(list))
	for _, lic := range list {
		out = append(out, provider.License{
			Key:    lic.GetKey(),
			Name:   lic.GetName(),
			SPDXID: lic.GetSPDXID(),
			URL:    lic.GetURL(),
		})
	}
	return out, nil
}
