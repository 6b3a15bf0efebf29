package domain

import "context"

// LintService defines the core business logic for linting agent
// configuration trees
type LintService interface {
	// Lint validates the requested directories and reports diagnostics
	// through the configured output writer
	Lint(ctx context.Context, req LintRequest) (*LintResult, error)
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*LintRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *LintRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *LintRequest, override *LintRequest) *LintRequest
}

// ProgressManager manages progress reporting for long-running operations
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}
