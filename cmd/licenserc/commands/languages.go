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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/cmd/licenserc/opts"
)

// NewLanguagesCmd creates the languages command
func NewLanguagesCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the comment languages in lookup order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := o.Config.Registry()
			if err != nil {
				return errors.Errorf("building registry: %w", err)
			}
			return o.Console.Languages(reg)
		},
	}
}
