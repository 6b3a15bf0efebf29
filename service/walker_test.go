package service

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func TestWalkerDiscoverSkillDirs(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".github", "skills", "alpha", "SKILL.md"), "# alpha\n")
	writeFile(t, filepath.Join(project, ".github", "skills", "beta", "SKILL.md"), "# beta\n")
	// No descriptor, not a skill
	writeFile(t, filepath.Join(project, ".github", "skills", "gamma", "notes.md"), "notes\n")

	w := NewWalker(nil)
	dirs, err := w.DiscoverSkillDirs(project)
	if err != nil {
		t.Fatalf("DiscoverSkillDirs failed: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("Expected 2 skill dirs, got %d: %v", len(dirs), dirs)
	}
	if filepath.Base(dirs[0]) != "alpha" || filepath.Base(dirs[1]) != "beta" {
		t.Errorf("Expected sorted alpha, beta; got %v", dirs)
	}
}

func TestWalkerDiscoverSkillDirsMissing(t *testing.T) {
	w := NewWalker(nil)
	dirs, err := w.DiscoverSkillDirs(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error for missing skills dir: %v", err)
	}
	if len(dirs) != 0 {
		t.Errorf("Expected no skill dirs, got %v", dirs)
	}
}

func TestWalkerMarkdownFilesSkipsIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"), "readme\n")
	writeFile(t, filepath.Join(root, "docs", "guide.md"), "guide\n")
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "README.md"), "dep\n")
	writeFile(t, filepath.Join(root, ".git", "COMMIT.md"), "commit\n")
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")

	w := NewWalker([]string{".git", "node_modules"})
	files, err := w.MarkdownFiles(root)
	if err != nil {
		t.Fatalf("MarkdownFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 markdown files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Base(f) != "README.md" && filepath.Base(f) != "guide.md" {
			t.Errorf("Unexpected file: %s", f)
		}
	}
}

func TestWalkerAgentsFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "AGENTS.md"), "root agents\n")
	writeFile(t, filepath.Join(root, "sub", "AGENTS.md"), "sub agents\n")
	writeFile(t, filepath.Join(root, "sub", "README.md"), "readme\n")
	writeFile(t, filepath.Join(root, "vendor", "AGENTS.md"), "vendored\n")

	w := NewWalker([]string{"vendor"})
	files, err := w.AgentsFiles(root)
	if err != nil {
		t.Fatalf("AgentsFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 AGENTS.md files, got %d: %v", len(files), files)
	}
}

func TestWalkerGitignoreStylePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "build", "out.md"), "out\n")
	writeFile(t, filepath.Join(root, "nested", "build", "out.md"), "out\n")
	writeFile(t, filepath.Join(root, "keep.md"), "keep\n")

	// Gitignore semantics: a bare name matches at any depth
	w := NewWalker([]string{"build"})
	files, err := w.MarkdownFiles(root)
	if err != nil {
		t.Fatalf("MarkdownFiles failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.md" {
		t.Errorf("Expected only keep.md, got %v", files)
	}
}
