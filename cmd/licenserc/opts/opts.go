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

package opts

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"

	"github.com/walteh/licenserc/pkg/config"
	"github.com/walteh/licenserc/pkg/log"
	"github.com/walteh/licenserc/pkg/replacer"
	"github.com/walteh/licenserc/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config  *config.Config
	Root    string
	Console *log.Logger

	// ask is replaced in tests
	ask func(message string) (bool, error)
}

// Inquiry returns the answer policy for headers that are not comments,
// following the non_comment setting of the configuration.
func (o *RootOpts) Inquiry(ctx context.Context) replacer.Inquiry {
	switch o.Config.NonComment {
	case config.NonCommentYes:
		return func(string) bool { return true }
	case config.NonCommentNo:
		return func(string) bool { return false }
	}

	ask := o.ask
	if ask == nil {
		ask = confirm
	}
	return func(message string) bool {
		ok, err := ask(message)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("asking for confirmation, declining")
			return false
		}
		return ok
	}
}

func confirm(message string) (bool, error) {
	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	err := survey.AskOne(prompt, &result)
	return result, err
}

// 📣 Reporter records outcomes in the status manager and prints each file as
// soon as it is processed.
type Reporter struct {
	Status  *status.Manager
	Console *log.Logger
}

var _ replacer.Reporter = (*Reporter)(nil)

func (r *Reporter) Report(ctx context.Context, outcome replacer.Outcome) {
	r.Status.Report(ctx, outcome)
	info, err := r.Status.GetFileInfo(ctx, outcome.Path)
	if err != nil {
		return
	}
	info.Path = r.Status.Rel(info.Path)
	r.Console.LogFile(ctx, info)
}
