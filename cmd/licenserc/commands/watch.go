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
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/cmd/licenserc/opts"
	"github.com/walteh/licenserc/pkg/status"
	"github.com/walteh/licenserc/pkg/watch"
)

// NewWatchCmd creates the watch command
func NewWatchCmd(o *opts.RootOpts) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Insert license headers into new files as they are created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "watch").Logger().WithContext(cmd.Context())
			logger := zerolog.Ctx(ctx)

			o.Console.Header("watching " + o.Root)

			mgr := status.New(o.Root, statusLogger(logger))
			w, err := watch.New(watch.Options{
				Root:     o.Root,
				Config:   o.Config,
				Store:    mgr,
				Reporter: &opts.Reporter{Status: mgr, Console: o.Console},
				Inquiry:  o.Inquiry(ctx),
				Debounce: debounce,
			})
			if err != nil {
				return errors.Errorf("creating watcher: %w", err)
			}

			if err := w.Run(ctx); err != nil {
				return errors.Errorf("watching: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a new file is processed")
	return cmd
}
