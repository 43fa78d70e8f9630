package status

import (
	"fmt"
)

// FileFormatter defines how file outcomes and progress are formatted
type FileFormatter interface {
	// FormatFileOperation formats the outcome of one file
	FormatFileOperation(path string, status FileStatus, diagnostic string) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFileOperation(path string, status FileStatus, diagnostic string) string {
	switch status {
	case StatusInserted:
		return fmt.Sprintf("✨ Inserted header in %s", path)
	case StatusReplaced:
		return fmt.Sprintf("📝 Replaced header in %s", path)
	case StatusRemoved:
		return fmt.Sprintf("🗑️  Removed header from %s", path)
	case StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s: %s", path, diagnostic)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s: %s", path, diagnostic)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
