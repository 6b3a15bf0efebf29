package app

import (
	"context"
	"fmt"

	"github.com/ailint-dev/ailint/domain"
)

// LintUseCase orchestrates the lint workflow
type LintUseCase struct {
	service domain.LintService
}

// NewLintUseCase creates a new lint use case
func NewLintUseCase(service domain.LintService) *LintUseCase {
	return &LintUseCase{service: service}
}

// Execute performs the complete lint workflow
func (uc *LintUseCase) Execute(ctx context.Context, req domain.LintRequest) (*domain.LintResult, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	result, err := uc.service.Lint(ctx, req)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validateRequest validates the lint request
func (uc *LintUseCase) validateRequest(req domain.LintRequest) error {
	// Missing directories are reported as diagnostics by the service,
	// so only the request shape is checked here.
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input directories specified")
	}

	if req.OutputFormat != "" {
		if _, err := domain.OutputFormatFromString(string(req.OutputFormat)); err != nil {
			return err
		}
	}

	if req.MinLevel != "" && !req.MinLevel.IsValid() {
		return fmt.Errorf("invalid log level: %s", req.MinLevel)
	}

	return nil
}

// LintUseCaseBuilder provides a builder pattern for creating LintUseCase
type LintUseCaseBuilder struct {
	service domain.LintService
}

// NewLintUseCaseBuilder creates a new builder
func NewLintUseCaseBuilder() *LintUseCaseBuilder {
	return &LintUseCaseBuilder{}
}

// WithService sets the lint service
func (b *LintUseCaseBuilder) WithService(service domain.LintService) *LintUseCaseBuilder {
	b.service = service
	return b
}

// Build creates the LintUseCase with the configured dependencies
func (b *LintUseCaseBuilder) Build() (*LintUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("lint service is required")
	}
	return &LintUseCase{service: b.service}, nil
}
