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

package provider

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// 📜 License is the text of a license and what identifies it
type License struct {
	Key    string
	Name   string
	SPDXID string
	Body   string
	URL    string
}

// 🔌 Provider is the interface for license sources
type Provider interface {
	// 📄 GetLicense returns the license identified by key
	GetLicense(ctx context.Context, key string) (*License, error)

	// 📂 ListLicenses returns the licenses known to the source, without bodies
	ListLicenses(ctx context.Context) ([]License, error)
}

// 🏭 Factory creates a new provider
type Factory func(ctx context.Context) (Provider, error)

var (
	mu sync.RWMutex
	// 🗺️ providers is a map of provider names to factories
	providers = make(map[string]Factory)
)

func init() {
	Register("url", func(ctx context.Context) (Provider, error) {
		return NewURLProvider(http.DefaultClient), nil
	})
}

// 📝 Register registers a provider factory
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// 🎯 Get creates the provider registered as name
func Get(ctx context.Context, name string) (Provider, error) {
	mu.RLock()
	factory, ok := providers[name]
	mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown provider: %s", name)
	}
	return factory(ctx)
}

// Names returns the registered provider names sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 📥 DownloadFile downloads a file from a URL
func DownloadFile(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Errorf("making request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// 🌐 URLProvider treats the license key as the URL of a plain text license
type URLProvider struct {
	client *http.Client
}

// NewURLProvider returns a provider downloading with client.
func NewURLProvider(client *http.Client) *URLProvider {
	return &URLProvider{client: client}
}

// GetLicense downloads the license text at key.
func (p *URLProvider) GetLicense(ctx context.Context, key string) (*License, error) {
	if !strings.HasPrefix(key, "https://") && !strings.HasPrefix(key, "http://") {
		return nil, errors.Errorf("license key %q is not a URL", key)
	}

	body, err := DownloadFile(ctx, p.client, key)
	if err != nil {
		return nil, errors.Errorf("downloading license: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, errors.Errorf("reading license: %w", err)
	}

	return &License{Key: key, Name: key, Body: string(data), URL: key}, nil
}

// ListLicenses returns nothing; any URL is a license.
func (p *URLProvider) ListLicenses(ctx context.Context) ([]License, error) {
	return nil, nil
}
