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

package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/cmd/licenserc/opts"
	"github.com/walteh/licenserc/pkg/provider"
	_ "github.com/walteh/licenserc/pkg/provider/github"
	"github.com/walteh/licenserc/pkg/template"
)

// licensePlaceholders maps the placeholders of license templates to header
// properties.
var licensePlaceholders = strings.NewReplacer(
	"[year]", "%CurrentYear%",
	"[yyyy]", "%CurrentYear%",
	"<year>", "%CurrentYear%",
)

// NewInitCmd creates the init command
func NewInitCmd(o *opts.RootOpts) *cobra.Command {
	var (
		providerName string
		key          string
		output       string
		force        bool
		list         bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .licenseheader file from a license",
		Long: `Init fetches a license text and writes a definition file commenting it for
every known language. The license defaults to the license block of the
configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "init").Logger().WithContext(cmd.Context())

			if o.Config.License != nil {
				if providerName == "" {
					providerName = o.Config.License.Provider
				}
				if key == "" {
					key = o.Config.License.Key
				}
			}
			if providerName == "" {
				providerName = "github"
			}

			p, err := provider.Get(ctx, providerName)
			if err != nil {
				return errors.Errorf("creating provider: %w", err)
			}

			if list {
				licenses, err := p.ListLicenses(ctx)
				if err != nil {
					return errors.Errorf("listing licenses: %w", err)
				}
				for _, lic := range licenses {
					o.Console.Infof("%-16s %s", lic.Key, lic.Name)
				}
				return nil
			}

			if key == "" {
				return errors.New("a license key is required: pass --license or configure license.key")
			}

			if output == "" {
				output = filepath.Join(o.Root, template.Extension)
			}
			if !template.IsDefinition(output) {
				return errors.Errorf("output %q must end with %s", output, template.Extension)
			}
			if _, err := os.Stat(output); err == nil && !force {
				return errors.Errorf("%s already exists, use --force to overwrite", output)
			}

			lic, err := p.GetLicense(ctx, key)
			if err != nil {
				return errors.Errorf("fetching license: %w", err)
			}

			reg, err := o.Config.Registry()
			if err != nil {
				return errors.Errorf("building registry: %w", err)
			}

			def, skipped := template.Generate(licensePlaceholders.Replace(lic.Body), reg)
			for _, name := range skipped {
				o.Console.Warningf("skipped %s: the license text contains its block comment end", name)
			}

			if err := os.WriteFile(output, []byte(def), 0o644); err != nil {
				return errors.Errorf("writing %s: %w", output, err)
			}

			o.Console.Successf("wrote %s for %s", output, lic.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&providerName, "provider", "p", "", "license provider (github, url)")
	cmd.Flags().StringVarP(&key, "license", "l", "", "license key, e.g. mit or apache-2.0, or a URL for the url provider")
	cmd.Flags().StringVarP(&output, "output", "o", "", "definition file to write (default: .licenseheader in the root)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing definition file")
	cmd.Flags().BoolVar(&list, "list", false, "list the licenses known to the provider")

	return cmd
}
