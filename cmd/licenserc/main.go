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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/walteh/licenserc/cmd/licenserc/commands"
	"github.com/walteh/licenserc/cmd/licenserc/opts"
)

func main() {
	// .env is optional, it only feeds GITHUB_TOKEN and LICENSERC_CONFIG
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		os.Stderr.WriteString("loading .env: " + err.Error() + "\n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "licenserc",
		Short: "Keep license headers of source files up to date",
		Long: `licenserc inserts, replaces and removes the license header at the top of
source files. Headers are defined per file extension in .licenseheader files and
recognized using only the comment syntax of each language.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())
			cmd.SetContext(ctx)
			return initRootOpts(ctx, o)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewAddCmd(o),
		commands.NewRemoveCmd(o),
		commands.NewCheckCmd(o),
		commands.NewWatchCmd(o),
		commands.NewInitCmd(o),
		commands.NewLanguagesCmd(o),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if o.Console != nil {
			o.Console.Error(err.Error())
		} else {
			os.Stderr.WriteString(err.Error() + "\n")
		}
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(FormatVersion()))
			return err
		},
	}
}
