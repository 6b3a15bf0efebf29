package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/ailint-dev/ailint/domain"
)

// FileDigestFormatter buffers every diagnostic and renders a
// human-readable block per file at flush time. Files are sorted
// alphabetically; within a file diagnostics are sorted by line number
// ascending with line-less diagnostics last.
type FileDigestFormatter struct{}

// Render is a no-op; file-digest output is produced at flush
func (f *FileDigestFormatter) Render(w io.Writer, d domain.Diagnostic) {}

// Flush groups, sorts, and writes the digest
func (f *FileDigestFormatter) Flush(w io.Writer, diags []domain.Diagnostic) error {
	byFile, files, unknown := groupByFile(diags)

	for _, file := range files {
		group := make([]domain.Diagnostic, len(byFile[file]))
		copy(group, byFile[file])
		sort.SliceStable(group, func(i, j int) bool {
			return digestSortKey(group[i]) < digestSortKey(group[j])
		})

		fmt.Fprintf(w, "\n%s\n", file)
		for _, d := range group {
			if d.Line > 0 {
				fmt.Fprintf(w, "  (line %d):\n", d.Line)
				if d.LineContent != "" {
					fmt.Fprintf(w, "    %s\n", d.LineContent)
				}
			} else {
				fmt.Fprintf(w, "  (no line number):\n")
			}
			levelColor(d.Severity).Fprintf(w, "    ^-- %s (%s): %s\n", d.Rule, d.Severity, d.Message)
			fmt.Fprintln(w)
		}
	}

	if len(unknown) > 0 {
		fmt.Fprintf(w, "\n%s\n", UnknownFile)
		for _, d := range unknown {
			fmt.Fprintf(w, "  ^-- %s (%s): %s\n", d.Rule, d.Severity, d.Message)
			fmt.Fprintln(w)
		}
	}

	return nil
}

// digestSortKey orders diagnostics by line, with line-less entries last
func digestSortKey(d domain.Diagnostic) int {
	if d.Line == 0 {
		return int(^uint(0) >> 1)
	}
	return d.Line
}

// groupByFile partitions diagnostics into per-file groups (insertion order
// preserved within each group), the sorted list of file keys, and the
// bucket of diagnostics without a file.
func groupByFile(diags []domain.Diagnostic) (map[string][]domain.Diagnostic, []string, []domain.Diagnostic) {
	byFile := make(map[string][]domain.Diagnostic)
	var unknown []domain.Diagnostic

	for _, d := range diags {
		if d.File == "" {
			unknown = append(unknown, d)
			continue
		}
		path := displayPath(d.File)
		byFile[path] = append(byFile[path], d)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	return byFile, files, unknown
}
