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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	info := GetVersionInfo()
	assert.NotEmpty(t, info.Version, "version should default to dev")
	assert.NotEmpty(t, info.GoVersion)

	out := FormatVersion()
	assert.True(t, strings.HasPrefix(out, "🚀 licenserc version info:"))
	assert.Contains(t, out, "Platform:  "+info.Platform)
}
