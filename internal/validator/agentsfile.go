package validator

import (
	"os"
	"path/filepath"

	"github.com/ailint-dev/ailint/domain"
)

// AgentsFileName is the guidance document expected at every project root
const AgentsFileName = "AGENTS.md"

// AgentsFileValidator checks that the project root carries the designated
// guidance document.
type AgentsFileValidator struct {
	severities domain.SeverityMap
}

// NewAgentsFileValidator creates an agents file validator
func NewAgentsFileValidator(severities domain.SeverityMap) *AgentsFileValidator {
	return &AgentsFileValidator{severities: severities}
}

// Validate emits a diagnostic when AGENTS.md is absent from projectDir
func (v *AgentsFileValidator) Validate(projectDir string) []domain.Diagnostic {
	if _, err := os.Stat(filepath.Join(projectDir, AgentsFileName)); err == nil {
		return nil
	}
	return []domain.Diagnostic{{
		Severity: v.severities.Of(domain.RuleAgentsFileMissing, domain.SeverityWarning),
		Rule:     domain.RuleAgentsFileMissing,
		Message:  "AGENTS.md file is missing in the root directory. Consider creating one to provide AI assistant guidance.",
		File:     projectDir,
	}}
}
