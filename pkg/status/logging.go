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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 45 // Base width for filename
	statusWidth = 10 // Width for status text
)

// 🎯 FormatFileLine formats a tracked file for the final listing
func FormatFileLine(info FileInfo) string {
	var prefix string
	switch info.Status {
	case StatusInserted:
		prefix = color.GreenString("✓")
	case StatusReplaced:
		prefix = color.YellowString("⟳")
	case StatusRemoved:
		prefix = color.RedString("✗")
	case StatusFailed:
		prefix = color.HiRedString("!")
	case StatusSkipped:
		prefix = color.CyanString("~")
	default:
		prefix = color.HiBlackString("-")
	}

	line := fmt.Sprintf("%s%s %-*s %-*s",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, info.Path,
		statusWidth, info.Status,
	)
	if info.Diagnostic != "" {
		line += " " + color.HiBlackString(info.Diagnostic)
	}
	return strings.TrimRight(line, " ")
}
