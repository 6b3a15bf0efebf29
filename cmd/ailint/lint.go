package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ailint-dev/ailint/app"
	"github.com/ailint-dev/ailint/domain"
	"github.com/ailint-dev/ailint/service"
	"github.com/spf13/cobra"
)

// LintExitError is a custom error type for lint command exit codes
type LintExitError struct {
	Code    int
	Message string
}

func (e *LintExitError) Error() string {
	return e.Message
}

var (
	lintSkills      bool
	lintMaxWarnings int
	lintIgnoreDirs  []string
	lintLogLevel    string
	lintLogFormat   string
	lintConfigPath  string
	lintQuiet       bool
)

func lintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [directory...]",
		Short: "Validate agent configuration trees",
		Long: `Validate one or more directory trees containing AI agent configuration.

Exit codes:
  0 - No errors and warnings within the allowed limit
  1 - Errors found or warning limit exceeded
  2 - Usage or configuration error

Examples:
  # Lint a project tree
  ailint lint .

  # Lint skill packages under .github/skills
  ailint lint --skills .

  # Fail on any warning
  ailint lint --max-warnings 0 .

  # Machine-readable output
  ailint lint --log-format yaml .

  # Custom config file
  ailint lint --config .ailint.yaml .`,
		RunE:          runLint,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().BoolVar(&lintSkills, "skills", false,
		"Treat input directories as containing skill packages under .github/skills")
	cmd.Flags().IntVar(&lintMaxWarnings, "max-warnings", -1,
		"Maximum number of warnings allowed before failing (-1 = unlimited)")
	cmd.Flags().StringSliceVar(&lintIgnoreDirs, "ignore-dirs", nil,
		"Directory patterns to skip during traversal")
	cmd.Flags().StringVar(&lintLogLevel, "log-level", "",
		"Minimum diagnostic level to report: ERROR, WARNING, INFO, DEBUG")
	cmd.Flags().StringVar(&lintLogFormat, "log-format", "",
		"Output format: logfmt, file-digest, yaml")
	cmd.Flags().StringVarP(&lintConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&lintQuiet, "quiet", "q", false,
		"Suppress the summary line")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &LintExitError{Code: 2, Message: "no directories specified"}
	}

	loader := service.NewConfigurationLoader()

	var base *domain.LintRequest
	if lintConfigPath != "" {
		var err error
		base, err = loader.LoadConfig(lintConfigPath)
		if err != nil {
			return &LintExitError{Code: 2, Message: err.Error()}
		}
	} else {
		base = loader.LoadDefaultConfig()
	}

	override := &domain.LintRequest{
		Paths:        args,
		Skills:       lintSkills,
		OutputWriter: os.Stdout,
		MaxWarnings:  -1,
		ConfigPath:   lintConfigPath,
	}

	if cmd.Flags().Changed("max-warnings") {
		override.MaxWarnings = lintMaxWarnings
	}
	if lintLogLevel != "" {
		level := domain.Severity(lintLogLevel)
		if !level.IsValid() {
			return &LintExitError{Code: 2, Message: fmt.Sprintf("invalid log level: %s", lintLogLevel)}
		}
		override.MinLevel = level
	}
	if lintLogFormat != "" {
		format, err := domain.OutputFormatFromString(lintLogFormat)
		if err != nil {
			return &LintExitError{Code: 2, Message: err.Error()}
		}
		override.OutputFormat = format
	}
	if cmd.Flags().Changed("ignore-dirs") {
		override.IgnoreDirs = lintIgnoreDirs
	}

	req := loader.MergeConfig(base, override)

	// Progress goes to stderr and never mixes with diagnostic output
	pm := service.NewProgressManager(!lintQuiet)
	defer pm.Close()

	useCase := app.NewLintUseCase(service.NewLintService(pm))
	result, err := useCase.Execute(context.Background(), *req)
	if err != nil {
		return &LintExitError{Code: 2, Message: err.Error()}
	}

	if !lintQuiet {
		fmt.Fprintf(os.Stderr,
			"Checked %d project(s), %d skill(s), %d file(s): %d warning(s), %d error(s) in %dms\n",
			result.Summary.ProjectsProcessed,
			result.Summary.SkillsProcessed,
			result.Summary.FilesValidated,
			result.Summary.Warnings,
			result.Summary.Errors,
			result.DurationMs,
		)
	}

	if !result.Passed {
		return &LintExitError{Code: 1}
	}
	return nil
}
