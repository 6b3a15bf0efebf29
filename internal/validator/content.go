package validator

import (
	"fmt"
	"strings"

	"github.com/ailint-dev/ailint/domain"
)

// TokenCount approximates the number of AI tokens in text by splitting on
// whitespace: consecutive whitespace is a single separator and every
// resulting token counts, punctuation attached. This deliberately diverges
// from real sub-word tokenizers and may under- or over-count for
// code-heavy content; the thresholds are calibrated against this
// approximation, so do not substitute an exact tokenizer.
func TokenCount(text string) int {
	return len(strings.Fields(text))
}

// ContentLengthValidator enforces line and approximate token budgets on
// document content.
type ContentLengthValidator struct {
	maxLines   int
	maxTokens  int
	severities domain.SeverityMap
}

// NewContentLengthValidator creates a content length validator
func NewContentLengthValidator(maxLines, maxTokens int, severities domain.SeverityMap) *ContentLengthValidator {
	return &ContentLengthValidator{maxLines: maxLines, maxTokens: maxTokens, severities: severities}
}

// Validate checks content size. startLine is the line the content begins
// on in the file (after any frontmatter).
func (v *ContentLengthValidator) Validate(file, content string, startLine int) []domain.Diagnostic {
	var diags []domain.Diagnostic

	tokens := TokenCount(content)
	if tokens > v.maxTokens {
		diags = append(diags, domain.Diagnostic{
			Severity: v.severities.Of(domain.RulePromptTokenCountExceeded, domain.SeverityWarning),
			Rule:     domain.RulePromptTokenCountExceeded,
			Message: fmt.Sprintf(
				"Content has approximately %d tokens (max: %d). Consider reducing content size.",
				tokens, v.maxTokens),
			File: file,
			Line: startLine,
		})
	} else {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityInfo,
			Rule:     domain.RuleContentComplexity,
			Message:  fmt.Sprintf("Content token count: %d/%d tokens.", tokens, v.maxTokens),
			File:     file,
			Line:     startLine,
		})
	}

	lines := strings.Count(content, "\n") + 1
	if lines > v.maxLines {
		diags = append(diags, domain.Diagnostic{
			Severity: v.severities.Of(domain.RulePromptContentTooLong, domain.SeverityWarning),
			Rule:     domain.RulePromptContentTooLong,
			Message: fmt.Sprintf(
				"Content has %d lines (max: %d). Consider splitting into multiple files.",
				lines, v.maxLines),
			File: file,
			Line: startLine,
		})
	}

	return diags
}
