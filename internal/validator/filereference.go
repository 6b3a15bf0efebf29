package validator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ailint-dev/ailint/domain"
	"github.com/ailint-dev/ailint/internal/extract"
)

// FileReferenceValidator checks that every reference extracted from a
// document resolves to an existing filesystem entry in one of the base
// directories (the document's own directory first, then the project root).
type FileReferenceValidator struct {
	severities domain.SeverityMap
}

// NewFileReferenceValidator creates a file reference validator
func NewFileReferenceValidator(severities domain.SeverityMap) *FileReferenceValidator {
	return &FileReferenceValidator{severities: severities}
}

// Validate emits one diagnostic per distinct broken reference. startLine
// offsets reported line numbers for content that begins partway into the
// file.
func (v *FileReferenceValidator) Validate(baseDirs []string, file, content string, startLine int) []domain.Diagnostic {
	var diags []domain.Diagnostic
	seen := make(map[string]bool)

	for _, ref := range extract.References(content) {
		target := extract.StripAnchor(ref.Target)
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true

		if v.exists(baseDirs, target) {
			continue
		}

		diags = append(diags, domain.Diagnostic{
			Severity: v.severities.Of(domain.RuleFileReferenceNotFound, domain.SeverityError),
			Rule:     domain.RuleFileReferenceNotFound,
			Message:  fmt.Sprintf("File link '%s' not found in any of the base directories", target),
			File:     file,
			Line:     ref.Line + startLine - 1,
		})
	}

	return diags
}

func (v *FileReferenceValidator) exists(baseDirs []string, target string) bool {
	if filepath.IsAbs(target) {
		_, err := os.Stat(target)
		return err == nil
	}
	for _, base := range baseDirs {
		if _, err := os.Stat(filepath.Join(base, target)); err == nil {
			return true
		}
	}
	return false
}
