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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/cmd/licenserc/opts"
	"github.com/walteh/licenserc/pkg/operation"
	"github.com/walteh/licenserc/pkg/status"
)

// runHeaders runs one header operation over the root directory and prints the
// outcome of every file followed by a summary.
func runHeaders(cmd *cobra.Command, o *opts.RootOpts, kind operation.Kind, title string) error {
	ctx := zerolog.Ctx(cmd.Context()).With().Str("command", cmd.Name()).Logger().WithContext(cmd.Context())
	logger := zerolog.Ctx(ctx)

	o.Console.Header(title)

	mgr := status.New(o.Root, statusLogger(logger))
	op := operation.New(kind, operation.Options{
		Root:     o.Root,
		Config:   o.Config,
		Store:    mgr,
		Reporter: &opts.Reporter{Status: mgr, Console: o.Console},
		Inquiry:  o.Inquiry(ctx),
		Progress: mgr,
	})

	runErr := operation.NewRunner(logger).Run(ctx, op)

	if kind == operation.KindCheck {
		for _, info := range mgr.ListFiles(ctx) {
			info.Path = mgr.Rel(info.Path)
			o.Console.LogDiff(info)
		}
	}

	o.Console.LogNewline()
	if err := o.Console.Summary(mgr.Summary()); err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}

	if runErr != nil {
		return runErr
	}
	o.Console.Successf("%d files processed", op.Result().Files)
	return nil
}

// statusLogger keeps the status manager quiet unless debugging, the console
// already prints every file.
func statusLogger(logger *zerolog.Logger) *zerolog.Logger {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		return logger
	}
	quiet := logger.Level(zerolog.ErrorLevel)
	return &quiet
}

// NewAddCmd creates the add command
func NewAddCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Insert or replace license headers",
		Long: `Add inserts the header defined for each file's extension, or replaces the
existing one. Files are selected by the include and exclude globs of the
configuration; the nearest .licenseheader file defines the headers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(cmd, o, operation.KindApply, "adding license headers")
		},
	}
}

// NewRemoveCmd creates the remove command
func NewRemoveCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Remove license headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(cmd, o, operation.KindRemove, "removing license headers")
		},
	}
}

// NewCheckCmd creates the check command
func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail when a license header is missing or out of date",
		Long: `Check computes what add would change without writing anything. It prints a
diff per file and exits non-zero when any file would change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(cmd, o, operation.KindCheck, "checking license headers")
		},
	}
}
