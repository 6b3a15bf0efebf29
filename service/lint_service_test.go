package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ailint-dev/ailint/domain"
)

func newTestRequest(paths ...string) domain.LintRequest {
	return domain.LintRequest{
		Paths:        paths,
		OutputFormat: domain.OutputFormatLogfmt,
		MinLevel:     domain.SeverityInfo,
		MaxWarnings:  -1,
	}
}

func TestLintSkillTree(t *testing.T) {
	project := t.TempDir()
	skillDir := filepath.Join(project, ".github", "skills", "demo")
	writeFile(t, filepath.Join(skillDir, "SKILL.md"), `---
name: demo
description: A demo skill
---
# Demo

See ![logo](references/logo.png) for branding.
`)
	writeFile(t, filepath.Join(skillDir, "references", "logo.png"), "png")
	writeFile(t, filepath.Join(skillDir, "references", "icon.png"), "png")
	writeFile(t, filepath.Join(project, "AGENTS.md"), "# Guidance\n\nKeep instructions short.\n")

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.Skills = true
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Summary.SkillsProcessed != 1 {
		t.Errorf("Expected 1 skill processed, got %d", result.Summary.SkillsProcessed)
	}
	if result.Summary.ProjectsProcessed != 1 {
		t.Errorf("Expected 1 project processed, got %d", result.Summary.ProjectsProcessed)
	}
	// icon.png is never referenced
	if result.Summary.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", result.Summary.Errors)
	}
	if result.Passed {
		t.Error("Expected run to fail on unreferenced resource")
	}
	out := buf.String()
	if !strings.Contains(out, "unreferenced-resource-file") {
		t.Errorf("Expected unreferenced-resource-file diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "references/icon.png") {
		t.Errorf("Expected icon.png to be flagged:\n%s", out)
	}
}

func TestLintCleanProject(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "AGENTS.md"), "# Guidance\n\nUse the build script.\n")
	writeFile(t, filepath.Join(project, "README.md"), "# Readme\n")

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Summary.Errors != 0 || result.Summary.Warnings != 0 {
		t.Errorf("Expected clean run, got %d warnings %d errors:\n%s",
			result.Summary.Warnings, result.Summary.Errors, buf.String())
	}
	if !result.Passed {
		t.Error("Expected clean run to pass")
	}
}

func TestLintMissingAgentsFile(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "README.md"), "# Readme\n")

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Summary.Warnings != 1 {
		t.Errorf("Expected 1 warning, got %d:\n%s", result.Summary.Warnings, buf.String())
	}
	if !strings.Contains(buf.String(), "agents-file-missing") {
		t.Errorf("Expected agents-file-missing diagnostic:\n%s", buf.String())
	}
	// Unlimited warnings still pass
	if !result.Passed {
		t.Error("Expected run to pass with unlimited warnings")
	}
}

func TestLintMaxWarningsEnforcedAtErrorLevel(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "README.md"), "# Readme\n")

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf
	req.MinLevel = domain.SeverityError
	req.MaxWarnings = 0

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	// The missing-AGENTS.md warning is hidden at ERROR level but still
	// counts toward the limit
	if result.Summary.Warnings != 1 {
		t.Errorf("Expected 1 warning counted, got %d", result.Summary.Warnings)
	}
	if strings.Contains(buf.String(), "agents-file-missing") {
		t.Errorf("Warning should not be rendered at ERROR level:\n%s", buf.String())
	}
	if result.Passed {
		t.Error("Expected run to fail: warning limit exceeded regardless of display level")
	}
}

func TestLintMaxWarningsExceeded(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "README.md"), "# Readme\n")

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf
	req.MaxWarnings = 0

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Passed {
		t.Error("Expected run to fail when warnings exceed the limit")
	}
}

func TestLintAgentsFileWithFrontmatter(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "AGENTS.md"), `---
name: agents
---
# Guidance
`)

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Summary.Errors == 0 {
		t.Errorf("Expected frontmatter error:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "frontmatter-forbidden") {
		t.Errorf("Expected frontmatter-forbidden diagnostic:\n%s", buf.String())
	}
}

func TestLintOversizedSnippet(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "AGENTS.md"), "# Guidance\n")
	writeFile(t, filepath.Join(project, "docs", "howto.md"), "# Howto\n\n```sh\none\ntwo\nthree\nfour\nfive\n```\n")

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Summary.Warnings != 1 {
		t.Errorf("Expected 1 snippet warning, got %d:\n%s", result.Summary.Warnings, buf.String())
	}
	if !strings.Contains(buf.String(), "code-snippet-too-large") {
		t.Errorf("Expected code-snippet-too-large diagnostic:\n%s", buf.String())
	}
}

func TestLintPromptDirectory(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "AGENTS.md"), "# Guidance\n")
	writeFile(t, filepath.Join(project, ".github", "prompts", "review.md"),
		"# Review\n\nUse [the checklist](checklist.md) before merging.\n")

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Summary.Errors != 1 {
		t.Errorf("Expected 1 missing-reference error, got %d:\n%s", result.Summary.Errors, buf.String())
	}
	if !strings.Contains(buf.String(), "file-reference-not-found") {
		t.Errorf("Expected file-reference-not-found diagnostic:\n%s", buf.String())
	}
}

func TestLintDirectoryNotFound(t *testing.T) {
	var buf bytes.Buffer
	req := newTestRequest(filepath.Join(t.TempDir(), "missing"))
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	result, err := svc.Lint(context.Background(), req)
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}

	if result.Summary.Errors != 1 {
		t.Errorf("Expected 1 error, got %d", result.Summary.Errors)
	}
	if !strings.Contains(buf.String(), "directory-not-found") {
		t.Errorf("Expected directory-not-found diagnostic:\n%s", buf.String())
	}
	if result.Passed {
		t.Error("Expected run to fail")
	}
}

func TestLintNoPaths(t *testing.T) {
	svc := NewLintService(nil)
	if _, err := svc.Lint(context.Background(), domain.LintRequest{}); err == nil {
		t.Error("Expected error for empty path list")
	}
}

func TestLintCancelledContext(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "AGENTS.md"), "# Guidance\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	req := newTestRequest(project)
	req.OutputWriter = &buf

	svc := NewLintService(nil)
	if _, err := svc.Lint(ctx, req); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
