package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ailint-dev/ailint/domain"
)

// fenced code blocks, with or without a language tag
var codeBlockPattern = regexp.MustCompile("(?s)```[^\n]*\n(.*?)```")

// CodeSnippetValidator flags fenced code blocks that exceed the configured
// line budget. Oversized snippets belong in external files where they do
// not inflate the AI context.
type CodeSnippetValidator struct {
	maxLines   int
	severities domain.SeverityMap
}

// NewCodeSnippetValidator creates a code snippet validator
func NewCodeSnippetValidator(maxLines int, severities domain.SeverityMap) *CodeSnippetValidator {
	return &CodeSnippetValidator{maxLines: maxLines, severities: severities}
}

// Validate checks every fenced code block in the document. A block with
// zero non-empty lines never triggers; a block with exactly maxLines
// non-empty lines passes.
func (v *CodeSnippetValidator) Validate(file, content string) []domain.Diagnostic {
	var diags []domain.Diagnostic

	for _, m := range codeBlockPattern.FindAllStringSubmatchIndex(content, -1) {
		body := content[m[2]:m[3]]

		nonEmpty := 0
		for _, line := range strings.Split(body, "\n") {
			if strings.TrimSpace(line) != "" {
				nonEmpty++
			}
		}
		if nonEmpty <= v.maxLines {
			continue
		}

		startLine := strings.Count(content[:m[0]], "\n") + 1
		fence, _, _ := strings.Cut(content[m[0]:m[1]], "\n")
		diags = append(diags, domain.Diagnostic{
			Severity: v.severities.Of(domain.RuleCodeSnippetTooLarge, domain.SeverityWarning),
			Rule:     domain.RuleCodeSnippetTooLarge,
			Message: fmt.Sprintf(
				"Code snippet at line %d has %d lines (max: %d). Consider externalizing this code block to an external file to limit AI context size.",
				startLine, nonEmpty, v.maxLines),
			File:        file,
			Line:        startLine,
			LineContent: fence,
		})
	}

	return diags
}
