package resolver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ailint-dev/ailint/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func defaultResolver() *Resolver {
	return New([]string{"references", "assets", "scripts"}, []string{".git"})
}

func TestResolver_UnreferencedAsset(t *testing.T) {
	// Scenario: a skill directory with one referenced and one
	// unreferenced asset.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "assets", "logo.png"), "png")
	writeFile(t, filepath.Join(dir, "assets", "icon.png"), "png")
	content := "Use `assets/logo.png` as the logo."
	rootPath := filepath.Join(dir, "SKILL.md")
	writeFile(t, rootPath, content)

	diags, err := defaultResolver().Validate(rootPath, content, dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if len(diags) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Rule != domain.RuleUnreferencedResourceFile {
		t.Errorf("Expected rule '%s', got '%s'", domain.RuleUnreferencedResourceFile, diags[0].Rule)
	}
	if !strings.Contains(diags[0].Message, "icon.png") {
		t.Errorf("Diagnostic should name the unreferenced file: %s", diags[0].Message)
	}
	if strings.Contains(diags[0].Message, "logo.png") {
		t.Errorf("Referenced file should not be flagged: %s", diags[0].Message)
	}
	if diags[0].Severity != domain.SeverityWarning {
		t.Errorf("Expected configured severity WARNING, got %s", diags[0].Severity)
	}
}

func TestResolver_TransitiveReferences(t *testing.T) {
	// A resource referenced only from a transitively reached markdown
	// document counts as referenced.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "references", "guide.md"), "See `../scripts/run.sh`")
	writeFile(t, filepath.Join(dir, "scripts", "run.sh"), "#!/bin/sh")
	content := "Read [the guide](references/guide.md)"

	diags, err := defaultResolver().Validate(filepath.Join(dir, "SKILL.md"), content, dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics, got %d: %v", len(diags), diags)
	}
}

func TestResolver_UnreachedDocumentDoesNotCount(t *testing.T) {
	// A resource referenced only from a markdown document that is never
	// reached from the root stays unreferenced.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "references", "orphan.md"), "See `assets/hidden.png`")
	writeFile(t, filepath.Join(dir, "assets", "hidden.png"), "png")
	content := "No references here."

	diags, err := defaultResolver().Validate(filepath.Join(dir, "SKILL.md"), content, dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// Both orphan.md and hidden.png are unreferenced.
	if len(diags) != 2 {
		t.Errorf("Expected 2 diagnostics, got %d: %v", len(diags), diags)
	}
}

func TestResolver_CycleSafety(t *testing.T) {
	// Two documents referencing each other must not cause
	// non-termination and must yield the same reachable set.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "references", "a.md"), "See [b](b.md) and `../assets/a.png`")
	writeFile(t, filepath.Join(dir, "references", "b.md"), "See [a](a.md) and `../assets/b.png`")
	writeFile(t, filepath.Join(dir, "assets", "a.png"), "png")
	writeFile(t, filepath.Join(dir, "assets", "b.png"), "png")
	content := "Start at [a](references/a.md)"

	diags, err := defaultResolver().Validate(filepath.Join(dir, "SKILL.md"), content, dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics with cyclic references, got %d: %v", len(diags), diags)
	}
}

func TestResolver_SelfReference(t *testing.T) {
	dir := t.TempDir()
	rootPath := filepath.Join(dir, "SKILL.md")
	content := "See [self](SKILL.md) and `assets/x.png`"
	writeFile(t, rootPath, content)
	writeFile(t, filepath.Join(dir, "assets", "x.png"), "png")

	diags, err := defaultResolver().Validate(rootPath, content, dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics, got %d: %v", len(diags), diags)
	}
}

func TestResolver_MonotonicityUnderReferenceRemoval(t *testing.T) {
	// Removing the only reference to a file moves it from the reachable
	// set to the unreferenced set.
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "assets", "logo.png"), "png")
	rootPath := filepath.Join(dir, "SKILL.md")

	withRef, err := defaultResolver().Validate(rootPath, "Here: `assets/logo.png`", dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	withoutRef, err := defaultResolver().Validate(rootPath, "Nothing here.", dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if len(withRef) != 0 {
		t.Errorf("Expected no diagnostics while referenced, got %d", len(withRef))
	}
	if len(withoutRef) != 1 {
		t.Errorf("Expected 1 diagnostic after removal, got %d", len(withoutRef))
	}
}

func TestResolver_DeduplicatesAcrossSyntaxes(t *testing.T) {
	// The same target referenced through different surface forms is a
	// single reachable entry, and distinct raw forms converge after
	// normalization.
	dir := t.TempDir()
	content := "[a](assets/x.png) `./assets/x.png` ![i](assets/x.png)"

	graph := defaultResolver().Resolve(filepath.Join(dir, "SKILL.md"), content, dir)

	if len(graph.Reachable) != 1 {
		t.Errorf("Expected 1 reachable path, got %d: %v", len(graph.Reachable), graph.Reachable)
	}
}

func TestResolver_IgnoredDirectoriesExcluded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "assets", ".git", "blob"), "x")
	content := "Nothing referenced."

	diags, err := defaultResolver().Validate(filepath.Join(dir, "SKILL.md"), content, dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if len(diags) != 0 {
		t.Errorf("Files under ignored directories should be excluded, got %v", diags)
	}
}

func TestResolver_MissingResourceDirs(t *testing.T) {
	dir := t.TempDir()

	diags, err := defaultResolver().Validate(filepath.Join(dir, "SKILL.md"), "content", dir, domain.SeverityWarning)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Expected no diagnostics for absent resource dirs, got %d", len(diags))
	}
}
