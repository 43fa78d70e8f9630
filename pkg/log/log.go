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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/licenserc/pkg/language"
	"github.com/walteh/licenserc/pkg/status"
)

// summaryOrder is the row order of the summary table.
var summaryOrder = []status.FileStatus{
	status.StatusInserted,
	status.StatusReplaced,
	status.StatusRemoved,
	status.StatusUnchanged,
	status.StatusSkipped,
	status.StatusFailed,
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFile prints the outcome of one file
func (l *Logger) LogFile(ctx context.Context, info status.FileInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatFileLine(info))

	l.zlog.Debug().
		Str("file", info.Path).
		Stringer("status", info.Status).
		Str("diagnostic", info.Diagnostic).
		Msg("file processed")
}

// 📝 LogDiff prints the pending change of a file, if any
func (l *Logger) LogDiff(info status.FileInfo) {
	if info.Diff == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range strings.Split(strings.TrimSuffix(info.Diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			line = color.New(color.Bold).Sprint(line)
		case strings.HasPrefix(line, "+"):
			line = color.GreenString(line)
		case strings.HasPrefix(line, "-"):
			line = color.RedString(line)
		case strings.HasPrefix(line, "@@"):
			line = color.CyanString(line)
		}
		fmt.Fprintln(l.console, line)
	}
}

// 📊 Summary prints a table of file counts per status
func (l *Logger) Summary(counts map[status.FileStatus]int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	data := pterm.TableData{{"status", "files"}}
	for _, s := range summaryOrder {
		if counts[s] == 0 {
			continue
		}
		data = append(data, []string{s.String(), fmt.Sprint(counts[s])})
		total += counts[s]
	}
	data = append(data, []string{"total", fmt.Sprint(total)})

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(l.console, out)

	l.zlog.Info().Int("files", total).Msg("summary")
	return nil
}

// 📚 Languages prints a table of the comment dialects of reg in lookup order
func (l *Logger) Languages(reg *language.Registry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{{"name", "extensions", "line", "block", "region"}}
	for _, lang := range reg.Languages() {
		block := ""
		if lang.BeginComment() != "" {
			block = lang.BeginComment() + " " + lang.EndComment()
		}
		region := ""
		if lang.BeginRegion() != "" {
			region = lang.BeginRegion() + " / " + lang.EndRegion()
		}
		data = append(data, []string{
			lang.Name(),
			strings.Join(lang.Extensions(), " "),
			lang.LineComment(),
			block,
			region,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(l.console, out)
	return nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("licenserc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
