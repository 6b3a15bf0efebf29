package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ailint-dev/ailint/domain"
	"github.com/ailint-dev/ailint/internal/config"
	"github.com/ailint-dev/ailint/internal/report"
	"github.com/ailint-dev/ailint/internal/resolver"
	"github.com/ailint-dev/ailint/internal/validator"
)

// LintServiceImpl implements the LintService interface
type LintServiceImpl struct {
	progress domain.ProgressManager
}

// NewLintService creates a new lint service
func NewLintService(progress domain.ProgressManager) *LintServiceImpl {
	if progress == nil {
		progress = &NoOpProgressManager{}
	}
	return &LintServiceImpl{progress: progress}
}

// lintRun holds the per-run state shared by the individual validation steps
type lintRun struct {
	cfg        *config.Config
	aggregator *report.Aggregator
	walker     *Walker

	frontmatter *validator.FrontmatterValidator
	content     *validator.ContentLengthValidator
	snippets    *validator.CodeSnippetValidator
	fileRefs    *validator.FileReferenceValidator
	agentsFile  *validator.AgentsFileValidator
	resolver    *resolver.Resolver

	unreferencedLevel domain.Severity
	summary           domain.LintSummary
}

// Lint validates the requested directories and streams diagnostics to
// the configured writer. The run itself only fails with an error when
// input or output is unusable; lint findings are reported through the
// result.
func (s *LintServiceImpl) Lint(ctx context.Context, req domain.LintRequest) (*domain.LintResult, error) {
	start := time.Now()

	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no input directories specified", nil)
	}

	run, err := s.newRun(req)
	if err != nil {
		return nil, err
	}

	skillDirs, projectDirs, err := run.collectTargets(req)
	if err != nil {
		return nil, err
	}

	task := s.progress.StartTask("Linting", len(skillDirs)+len(projectDirs))
	defer s.progress.Close()

	for _, skillDir := range sortedKeys(skillDirs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		task.Describe(fmt.Sprintf("skill %s", filepath.Base(skillDir)))
		run.lintSkill(skillDir, skillDirs[skillDir])
		task.Increment(1)
	}

	for _, projectDir := range projectDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		task.Describe(fmt.Sprintf("project %s", filepath.Base(projectDir)))
		if err := run.lintProject(projectDir); err != nil {
			return nil, err
		}
		task.Increment(1)
	}
	task.Complete()

	if err := run.aggregator.Flush(); err != nil {
		return nil, err
	}

	run.summary.Warnings = run.aggregator.Warnings()
	run.summary.Errors = run.aggregator.Errors()

	result := &domain.LintResult{
		Summary:    run.summary,
		DurationMs: time.Since(start).Milliseconds(),
	}
	result.Passed = !result.Exceeded(req.MaxWarnings)
	return result, nil
}

// newRun resolves configuration and builds the validator set for one run
func (s *LintServiceImpl) newRun(req domain.LintRequest) (*lintRun, error) {
	cfg, err := config.LoadConfigWithTarget(req.ConfigPath, req.Paths[0])
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	if len(req.IgnoreDirs) > 0 {
		cfg.IgnoreDirs = req.IgnoreDirs
	}

	format := req.OutputFormat
	if format == "" {
		if format, err = cfg.OutputFormat(); err != nil {
			return nil, err
		}
	}
	minLevel := req.MinLevel
	if minLevel == "" {
		minLevel = cfg.MinLevel()
	}
	writer := req.OutputWriter
	if writer == nil {
		writer = os.Stdout
	}

	aggregator, err := report.NewAggregator(format, minLevel, writer)
	if err != nil {
		return nil, err
	}

	severities := cfg.SeverityMap()
	return &lintRun{
		cfg:               cfg,
		aggregator:        aggregator,
		walker:            NewWalker(cfg.IgnoreDirs),
		frontmatter:       validator.NewFrontmatterValidator(severities),
		content:           validator.NewContentLengthValidator(cfg.ContentMaxLines, cfg.TokenMaxCount, severities),
		snippets:          validator.NewCodeSnippetValidator(cfg.CodeSnippetMaxLines, severities),
		fileRefs:          validator.NewFileReferenceValidator(severities),
		agentsFile:        validator.NewAgentsFileValidator(severities),
		resolver:          resolver.New(cfg.ResourceDirs, cfg.IgnoreDirs),
		unreferencedLevel: severities.Of(domain.RuleUnreferencedResourceFile, domain.SeverityError),
	}, nil
}

// collectTargets expands the request paths into skill directories (mapped
// to their project root) and deduplicated project directories
func (run *lintRun) collectTargets(req domain.LintRequest) (map[string]string, []string, error) {
	skillDirs := make(map[string]string)
	projectSet := make(map[string]bool)

	for _, path := range req.Paths {
		dir, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, domain.NewInvalidInputError(fmt.Sprintf("invalid path: %s", path), err)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			run.aggregator.Emit(domain.Diagnostic{
				Severity: domain.SeverityError,
				Rule:     domain.RuleDirectoryNotFound,
				Message:  fmt.Sprintf("Directory '%s' does not exist or is not a directory", dir),
				File:     dir,
			})
			continue
		}

		if req.Skills {
			found, err := run.walker.DiscoverSkillDirs(dir)
			if err != nil {
				return nil, nil, domain.NewFileNotFoundError(dir, err)
			}
			for _, skillDir := range found {
				if _, seen := skillDirs[skillDir]; !seen {
					skillDirs[skillDir] = dir
				}
				projectSet[dir] = true
			}
		} else {
			projectSet[dir] = true
		}
	}

	projectDirs := make([]string, 0, len(projectSet))
	for dir := range projectSet {
		projectDirs = append(projectDirs, dir)
	}
	sort.Strings(projectDirs)
	return skillDirs, projectDirs, nil
}

// lintSkill validates a single skill package: its SKILL.md descriptor
// and the resource files reachable from it
func (run *lintRun) lintSkill(skillDir, projectDir string) {
	skillFile := filepath.Join(skillDir, SkillFileName)
	raw, err := os.ReadFile(skillFile)
	if err != nil {
		run.aggregator.Emit(domain.Diagnostic{
			Severity: domain.SeverityError,
			Rule:     domain.RuleFileReadError,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			File:     skillFile,
		})
		return
	}
	content := string(raw)
	run.summary.SkillsProcessed++
	run.summary.FilesValidated++

	run.aggregator.Emit(run.frontmatter.ValidateSkill(skillFile, content)...)

	frontmatter, body, hasFrontmatter := validator.SplitFrontmatter(content)
	startLine := validator.ContentStartLine(frontmatter, hasFrontmatter)

	run.aggregator.Emit(run.content.Validate(skillFile, body, startLine)...)
	run.aggregator.Emit(run.snippets.Validate(skillFile, content)...)
	run.aggregator.Emit(run.fileRefs.Validate([]string{skillDir, projectDir}, skillFile, body, startLine)...)

	diags, err := run.resolver.Validate(skillFile, content, skillDir, run.unreferencedLevel)
	if err != nil {
		run.aggregator.Emit(domain.Diagnostic{
			Severity: domain.SeverityError,
			Rule:     domain.RuleFileReadError,
			Message:  fmt.Sprintf("Failed to scan resource directories: %v", err),
			File:     skillFile,
		})
		return
	}
	run.aggregator.Emit(diags...)
}

// lintProject validates a project tree: every AGENTS.md in it, the
// presence of a root AGENTS.md, code snippets in all markdown files,
// and the configured prompt and agent directories
func (run *lintRun) lintProject(projectDir string) error {
	run.summary.ProjectsProcessed++

	agentsFiles, err := run.walker.AgentsFiles(projectDir)
	if err != nil {
		return domain.NewFileNotFoundError(projectDir, err)
	}
	for _, file := range agentsFiles {
		run.lintAgentsFile(file, projectDir)
	}

	run.aggregator.Emit(run.agentsFile.Validate(projectDir)...)

	markdownFiles, err := run.walker.MarkdownFiles(projectDir)
	if err != nil {
		return domain.NewFileNotFoundError(projectDir, err)
	}
	for _, file := range markdownFiles {
		// AGENTS.md snippets were already checked above
		if filepath.Base(file) == validator.AgentsFileName {
			continue
		}
		raw, err := os.ReadFile(file)
		if err != nil {
			run.aggregator.Emit(domain.Diagnostic{
				Severity: domain.SeverityError,
				Rule:     domain.RuleFileReadError,
				Message:  fmt.Sprintf("Failed to read file: %v", err),
				File:     file,
			})
			continue
		}
		run.aggregator.Emit(run.snippets.Validate(file, string(raw))...)
	}

	for _, dir := range append(append([]string{}, run.cfg.PromptDirs...), run.cfg.AgentDirs...) {
		if err := run.lintPromptDir(projectDir, dir); err != nil {
			return err
		}
	}
	return nil
}

// lintAgentsFile validates one AGENTS.md: no frontmatter, content
// limits, snippets, file references, and unreferenced resources in its
// directory
func (run *lintRun) lintAgentsFile(file, projectDir string) {
	raw, err := os.ReadFile(file)
	if err != nil {
		run.aggregator.Emit(domain.Diagnostic{
			Severity: domain.SeverityError,
			Rule:     domain.RuleFileReadError,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			File:     file,
		})
		return
	}
	content := string(raw)
	run.summary.FilesValidated++

	run.aggregator.Emit(run.frontmatter.ValidateAgent(file, content)...)

	frontmatter, body, hasFrontmatter := validator.SplitFrontmatter(content)
	startLine := validator.ContentStartLine(frontmatter, hasFrontmatter)
	baseDir := filepath.Dir(file)

	run.aggregator.Emit(run.content.Validate(file, body, startLine)...)
	run.aggregator.Emit(run.snippets.Validate(file, content)...)
	run.aggregator.Emit(run.fileRefs.Validate([]string{baseDir, projectDir}, file, body, startLine)...)

	diags, err := run.resolver.Validate(file, content, baseDir, run.unreferencedLevel)
	if err != nil {
		run.aggregator.Emit(domain.Diagnostic{
			Severity: domain.SeverityError,
			Rule:     domain.RuleFileReadError,
			Message:  fmt.Sprintf("Failed to scan resource directories: %v", err),
			File:     file,
		})
		return
	}
	run.aggregator.Emit(diags...)
}

// lintPromptDir validates the markdown files of one prompt or agent
// directory: content limits and file references
func (run *lintRun) lintPromptDir(projectDir, dir string) error {
	root := filepath.Join(projectDir, filepath.FromSlash(dir))
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil
	}

	files, err := run.walker.MarkdownFiles(root)
	if err != nil {
		return domain.NewFileNotFoundError(root, err)
	}
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			run.aggregator.Emit(domain.Diagnostic{
				Severity: domain.SeverityError,
				Rule:     domain.RuleFileReadError,
				Message:  fmt.Sprintf("Failed to read file: %v", err),
				File:     file,
			})
			continue
		}
		content := string(raw)
		run.summary.FilesValidated++

		run.aggregator.Emit(run.content.Validate(file, content, 1)...)
		run.aggregator.Emit(run.fileRefs.Validate([]string{filepath.Dir(file), projectDir}, file, content, 1)...)
	}
	return nil
}

// sortedKeys returns the map keys in sorted order for deterministic output
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
