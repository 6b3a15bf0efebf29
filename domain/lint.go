package domain

import "io"

// OutputFormat represents the supported diagnostic output formats
type OutputFormat string

const (
	OutputFormatLogfmt     OutputFormat = "logfmt"
	OutputFormatFileDigest OutputFormat = "file-digest"
	OutputFormatYAML       OutputFormat = "yaml"
)

// OutputFormatFromString converts a string to an OutputFormat
func OutputFormatFromString(value string) (OutputFormat, error) {
	switch OutputFormat(value) {
	case OutputFormatLogfmt, OutputFormatFileDigest, OutputFormatYAML:
		return OutputFormat(value), nil
	default:
		return "", NewUnsupportedFormatError(value)
	}
}

// LintRequest represents a request to lint one or more directory trees
type LintRequest struct {
	// Input directories to validate
	Paths []string

	// Skills indicates the input directories contain skill packages
	// under .github/skills
	Skills bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer

	// MinLevel filters diagnostics below this severity
	MinLevel Severity

	// MaxWarnings is the number of warnings tolerated before the run
	// fails; negative means unlimited
	MaxWarnings int

	// Configuration
	ConfigPath string
	IgnoreDirs []string
}

// LintSummary provides aggregate statistics for a lint run
type LintSummary struct {
	ProjectsProcessed int `json:"projects_processed" yaml:"projects_processed"`
	SkillsProcessed   int `json:"skills_processed" yaml:"skills_processed"`
	FilesValidated    int `json:"files_validated" yaml:"files_validated"`
	Warnings          int `json:"warnings" yaml:"warnings"`
	Errors            int `json:"errors" yaml:"errors"`
}

// LintResult represents the outcome of a lint run
type LintResult struct {
	Passed     bool        `json:"passed" yaml:"passed"`
	Summary    LintSummary `json:"summary" yaml:"summary"`
	DurationMs int64       `json:"duration_ms" yaml:"duration_ms"`
}

// Exceeded reports whether the run should fail given the tolerated
// warning count. Errors always fail the run.
func (r *LintResult) Exceeded(maxWarnings int) bool {
	if r.Summary.Errors > 0 {
		return true
	}
	return maxWarnings >= 0 && r.Summary.Warnings > maxWarnings
}
