package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ailint-dev/ailint/domain"
	"github.com/ailint-dev/ailint/internal/extract"
)

// ReferenceGraph maps a root document to the set of normalized paths it
// reaches, directly or through transitively referenced markdown documents.
// The graph is transient: it is built once per validation run and discarded.
type ReferenceGraph struct {
	Root      string
	Reachable map[string]bool
}

// Resolver determines whether every on-disk resource file is reachable from
// a root markdown document.
type Resolver struct {
	resourceDirs []string
	ignoreDirs   []string
}

// New creates a resolver for the configured resource-root directory names
func New(resourceDirs, ignoreDirs []string) *Resolver {
	return &Resolver{
		resourceDirs: resourceDirs,
		ignoreDirs:   ignoreDirs,
	}
}

// Resolve builds the reference graph for a root document. Referenced
// markdown documents are followed transitively with a visited set keyed by
// normalized path, so reference cycles terminate. Referenced files that do
// not exist or cannot be read are skipped; existence checking belongs to
// the file-reference validator, not the resolver.
func (r *Resolver) Resolve(rootPath, content, baseDir string) *ReferenceGraph {
	graph := &ReferenceGraph{
		Root:      rootPath,
		Reachable: make(map[string]bool),
	}

	type document struct {
		content string
		baseDir string
	}

	visited := map[string]bool{extract.Normalize(rootPath, baseDir): true}
	worklist := []document{{content: content, baseDir: baseDir}}

	for len(worklist) > 0 {
		doc := worklist[0]
		worklist = worklist[1:]

		for _, ref := range extract.References(doc.content) {
			normalized := extract.Normalize(ref.Target, doc.baseDir)
			if normalized == "" {
				continue
			}
			graph.Reachable[normalized] = true

			if !strings.HasSuffix(normalized, ".md") || visited[normalized] {
				continue
			}
			visited[normalized] = true

			data, err := os.ReadFile(filepath.FromSlash(normalized))
			if err != nil {
				continue
			}
			worklist = append(worklist, document{
				content: string(data),
				baseDir: filepath.ToSlash(filepath.Dir(filepath.FromSlash(normalized))),
			})
		}
	}

	return graph
}

// UnreferencedFiles enumerates every file physically present under the
// configured resource directories below baseDir and returns those missing
// from the graph's reachable set, sorted for deterministic output.
func (r *Resolver) UnreferencedFiles(baseDir string, graph *ReferenceGraph) ([]string, error) {
	var unreferenced []string

	for _, dirName := range r.resourceDirs {
		root := filepath.Join(filepath.FromSlash(baseDir), dirName)
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}

		err = filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if r.isIgnored(filepath.Base(p)) {
					return filepath.SkipDir
				}
				return nil
			}
			normalized := filepath.ToSlash(p)
			if !graph.Reachable[normalized] {
				unreferenced = append(unreferenced, normalized)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(unreferenced)
	return unreferenced, nil
}

// Validate resolves the root document and emits one diagnostic per
// unreferenced resource file at the configured severity.
func (r *Resolver) Validate(rootPath, content, baseDir string, level domain.Severity) ([]domain.Diagnostic, error) {
	graph := r.Resolve(rootPath, content, baseDir)

	unreferenced, err := r.UnreferencedFiles(baseDir, graph)
	if err != nil {
		return nil, err
	}

	diags := make([]domain.Diagnostic, 0, len(unreferenced))
	for _, file := range unreferenced {
		rel := extract.RelativeTo(file, baseDir)
		diags = append(diags, domain.Diagnostic{
			Severity: level,
			Rule:     domain.RuleUnreferencedResourceFile,
			Message:  fmt.Sprintf("File '%s' is not referenced in %s", rel, filepath.Base(rootPath)),
			File:     rootPath,
		})
	}
	return diags, nil
}

func (r *Resolver) isIgnored(name string) bool {
	for _, ignored := range r.ignoreDirs {
		if name == ignored {
			return true
		}
	}
	return false
}
