package text

import (
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// KeywordDelimiter surrounds every substitutable keyword, as in %CurrentYear%.
const KeywordDelimiter = "%"

// SimpleTextReplacer implements TextReplacer using basic string replacement
type SimpleTextReplacer struct{}

// NewSimpleTextReplacer creates a new SimpleTextReplacer
func NewSimpleTextReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText. Rules are applied in order,
// so a value produced by one rule may be rewritten by a later one.
func (r *SimpleTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, rule := range rules {
		if rule.FromText == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("replacing %s: %w", rule.FromText, err)
		}

		count := strings.Count(currentContent, rule.FromText)
		if count == 0 {
			continue
		}

		currentContent = strings.ReplaceAll(currentContent, rule.FromText, rule.ToText)
		if rule.FromText != rule.ToText {
			result.WasModified = true
		}
		result.ReplacementCount += count
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	seen := make(map[string]int, len(rules))
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
		if !IsKeyword(rule.FromText) {
			return errors.Errorf("rule %d: from_text %q must look like %sName%s", i, rule.FromText, KeywordDelimiter, KeywordDelimiter)
		}
		if prev, ok := seen[rule.FromText]; ok {
			return errors.Errorf("rule %d: %s already defined by rule %d", i, rule.FromText, prev)
		}
		seen[rule.FromText] = i
	}
	return nil
}

// Keyword wraps name in keyword delimiters.
func Keyword(name string) string {
	return KeywordDelimiter + name + KeywordDelimiter
}

// IsKeyword reports whether s is a delimited keyword with a non-empty name.
func IsKeyword(s string) bool {
	name, ok := strings.CutPrefix(s, KeywordDelimiter)
	if !ok {
		return false
	}
	name, ok = strings.CutSuffix(name, KeywordDelimiter)
	return ok && name != "" && !strings.ContainsAny(name, KeywordDelimiter+" \t\r\n")
}

// 🔍 ContainsAnyFold reports whether s contains any of words, ignoring case.
// An empty word list always matches.
func ContainsAnyFold(s string, words []string) bool {
	if len(words) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
