package service

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// SkillFileName is the descriptor file that marks a skill directory
const SkillFileName = "SKILL.md"

// skillsSubdir is the project-relative directory holding skill packages
const skillsSubdir = ".github/skills"

// Walker discovers lintable files in a directory tree. Ignore patterns
// use gitignore syntax and match against paths relative to the walk
// root.
type Walker struct {
	matcher *ignore.GitIgnore
}

// NewWalker creates a walker that skips the given directory patterns
func NewWalker(ignoreDirs []string) *Walker {
	return &Walker{matcher: ignore.CompileIgnoreLines(ignoreDirs...)}
}

// DiscoverSkillDirs returns the skill directories under the project's
// .github/skills directory, sorted by name. A directory counts as a
// skill only when it contains a SKILL.md descriptor.
func (w *Walker) DiscoverSkillDirs(projectDir string) ([]string, error) {
	skillsDir := filepath.Join(projectDir, filepath.FromSlash(skillsSubdir))
	entries, err := os.ReadDir(skillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillDir := filepath.Join(skillsDir, entry.Name())
		if _, err := os.Stat(filepath.Join(skillDir, SkillFileName)); err == nil {
			dirs = append(dirs, skillDir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// MarkdownFiles returns all .md files under root, sorted, skipping
// ignored directories
func (w *Walker) MarkdownFiles(root string) ([]string, error) {
	return w.walkMatching(root, func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ".md")
	})
}

// AgentsFiles returns all AGENTS.md files under root, sorted, skipping
// ignored directories
func (w *Walker) AgentsFiles(root string) ([]string, error) {
	return w.walkMatching(root, func(name string) bool {
		return name == "AGENTS.md"
	})
}

func (w *Walker) walkMatching(root string, match func(name string) bool) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if info.IsDir() {
			if rel != "." && w.ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if match(info.Name()) && !w.ignored(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ignored reports whether a root-relative path matches an ignore pattern
func (w *Walker) ignored(rel string) bool {
	return w.matcher.MatchesPath(filepath.ToSlash(rel))
}
