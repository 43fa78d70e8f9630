package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/licenserc/pkg/text"
)

func ExampleSimpleTextReplacer_ReplaceText() {
	replacer := text.NewSimpleTextReplacer()

	rules := []text.ReplacementRule{
		{FromText: "%CurrentYear%", ToText: "2025"},
		{FromText: "%Company%", ToText: "Acme"},
	}

	content := strings.NewReader("// Copyright %CurrentYear% %Company%")

	result, err := replacer.ReplaceText(context.Background(), content, rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: // Copyright %CurrentYear% %Company%
	// Modified: // Copyright 2025 Acme
	// Changes: 2
	// Was Modified: true
}

func ExampleSimpleTextReplacer_ValidateRules() {
	replacer := text.NewSimpleTextReplacer()

	rules := []text.ReplacementRule{
		{FromText: "%Company%", ToText: "Acme"},
		{FromText: "Company", ToText: "Acme"},
	}

	err := replacer.ValidateRules(rules)
	fmt.Printf("Validation error: %v\n", err)

	// Output:
	// Validation error: rule 1: from_text "Company" must look like %Name%
}
