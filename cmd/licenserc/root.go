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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/licenserc/cmd/licenserc/opts"
	"github.com/walteh/licenserc/pkg/config"
	"github.com/walteh/licenserc/pkg/log"
)

var (
	// Flags
	configFile string
	rootDir    string
	debug      bool
)

// initRootOpts loads the configuration and fills the shared options
func initRootOpts(ctx context.Context, o *opts.RootOpts) error {
	logger := zerolog.Ctx(ctx)

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	o.Console = log.New(os.Stdout, level)

	root, err := filepath.Abs(rootDir)
	if err != nil {
		return errors.Errorf("resolving root: %w", err)
	}
	o.Root = root

	path := configFile
	if path == "" {
		path = os.Getenv("LICENSERC_CONFIG")
	}
	if path == "" {
		path, err = config.Discover(root)
		if err != nil {
			return errors.Errorf("discovering config: %w", err)
		}
	}

	if path == "" {
		logger.Debug().Str("root", root).Msg("no config file, using defaults")
		o.Config = config.Default()
		return nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: discovered in the root directory)")
	cmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "directory whose files are processed")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
