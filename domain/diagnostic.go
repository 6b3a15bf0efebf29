package domain

import "strings"

// Severity represents the severity of a diagnostic
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
	SeverityDebug   Severity = "DEBUG"
)

// severityRanks orders severities from most to least severe
var severityRanks = map[Severity]int{
	SeverityError:   0,
	SeverityWarning: 1,
	SeverityInfo:    2,
	SeverityDebug:   3,
}

// Rank returns the numeric rank of the severity (lower is more severe)
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return severityRanks[SeverityInfo]
}

// IsValid reports whether the severity is one of the known levels
func (s Severity) IsValid() bool {
	_, ok := severityRanks[s]
	return ok
}

// severitySynonyms maps common abbreviations to canonical severity names
var severitySynonyms = map[string]Severity{
	"ERR":  SeverityError,
	"WARN": SeverityWarning,
	"DBG":  SeverityDebug,
}

// SeverityFromString converts a string to a Severity (case-insensitive).
// Unknown values fall back to INFO.
func SeverityFromString(value string) Severity {
	key := Severity(strings.ToUpper(strings.TrimSpace(value)))
	if key.IsValid() {
		return key
	}
	if s, ok := severitySynonyms[string(key)]; ok {
		return s
	}
	return SeverityInfo
}

// RuleCode identifies a lint rule
type RuleCode string

const (
	// Resolver rules
	RuleUnreferencedResourceFile RuleCode = "unreferenced-resource-file"

	// Structural validator rules
	RuleCodeSnippetTooLarge      RuleCode = "code-snippet-too-large"
	RulePromptContentTooLong     RuleCode = "prompt-content-too-long"
	RulePromptTokenCountExceeded RuleCode = "prompt-token-count-exceeded"
	RuleContentComplexity        RuleCode = "content-complexity"
	RuleFileReferenceNotFound    RuleCode = "file-reference-not-found"
	RuleFrontmatterMalformed     RuleCode = "frontmatter-malformed"
	RuleFrontmatterMissingKey    RuleCode = "frontmatter-missing-key"
	RuleFrontmatterUnknownKey    RuleCode = "frontmatter-unknown-key"
	RuleFrontmatterForbidden     RuleCode = "frontmatter-forbidden"
	RuleAgentsFileMissing        RuleCode = "agents-file-missing"

	// Processing rules
	RuleDirectoryNotFound RuleCode = "directory-not-found"
	RuleFileReadError     RuleCode = "file-read-error"
)

// SeverityMap resolves rule codes to severities. It is built once at
// startup from configuration; validators consult it instead of hard-coding
// severities.
type SeverityMap map[RuleCode]Severity

// Of returns the configured severity for a rule, or the fallback when the
// rule has no explicit entry
func (m SeverityMap) Of(rule RuleCode, fallback Severity) Severity {
	if s, ok := m[rule]; ok {
		return s
	}
	return fallback
}

// Diagnostic represents a single reported finding. A Diagnostic is created
// exactly once by a validator and never mutated afterwards; ownership
// transfers to the aggregator on emission.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Rule     RuleCode `json:"rule" yaml:"rule"`
	Message  string   `json:"message" yaml:"message"`

	// File is the path the finding applies to; empty means the finding is
	// not tied to a particular file and is rendered under "<unknown>"
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Line is the 1-based line number; 0 means unknown
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// LineContent optionally carries the source line for digest rendering
	LineContent string `json:"line_content,omitempty" yaml:"line_content,omitempty"`
}
