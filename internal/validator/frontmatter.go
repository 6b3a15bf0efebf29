package validator

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ailint-dev/ailint/domain"
)

// requiredSkillKeys must be present in every skill frontmatter block
var requiredSkillKeys = []string{"name", "description"}

// allowedSkillKeys is the closed set of keys a skill frontmatter block may
// carry
var allowedSkillKeys = map[string]bool{
	"name":          true,
	"description":   true,
	"license":       true,
	"allowed-tools": true,
	"metadata":      true,
	"version":       true,
	"compatibility": true,
}

// SplitFrontmatter separates a leading YAML frontmatter block from the
// document body. ok reports whether a frontmatter block was present.
func SplitFrontmatter(content string) (frontmatter, body string, ok bool) {
	if !strings.HasPrefix(content, "---\n") && content != "---" {
		return "", content, false
	}
	rest := strings.TrimPrefix(content, "---\n")

	if idx := strings.Index(rest, "\n---\n"); idx >= 0 {
		return rest[:idx], rest[idx+len("\n---\n"):], true
	}
	if strings.HasSuffix(rest, "\n---") {
		return strings.TrimSuffix(rest, "\n---"), "", true
	}
	return "", content, false
}

// ContentStartLine returns the 1-based line the body begins on, given the
// frontmatter block preceding it
func ContentStartLine(frontmatter string, hasFrontmatter bool) int {
	if !hasFrontmatter {
		return 1
	}
	return strings.Count(frontmatter, "\n") + 4
}

// FrontmatterValidator enforces the frontmatter schema: skill files must
// declare name and description and may only use the allowed key set;
// agent guidance files must not carry frontmatter at all.
type FrontmatterValidator struct {
	severities domain.SeverityMap
}

// NewFrontmatterValidator creates a frontmatter validator
func NewFrontmatterValidator(severities domain.SeverityMap) *FrontmatterValidator {
	return &FrontmatterValidator{severities: severities}
}

// ValidateSkill checks the frontmatter of a skill file
func (v *FrontmatterValidator) ValidateSkill(file, content string) []domain.Diagnostic {
	severity := v.severities.Of(domain.RuleFrontmatterMissingKey, domain.SeverityError)

	frontmatter, _, ok := SplitFrontmatter(content)
	if !ok {
		return []domain.Diagnostic{{
			Severity: severity,
			Rule:     domain.RuleFrontmatterMissingKey,
			Message:  "Skill file has no frontmatter; 'name' and 'description' are required",
			File:     file,
			Line:     1,
		}}
	}

	var fields map[string]any
	if err := yaml.Unmarshal([]byte(frontmatter), &fields); err != nil {
		return []domain.Diagnostic{{
			Severity: v.severities.Of(domain.RuleFrontmatterMalformed, domain.SeverityError),
			Rule:     domain.RuleFrontmatterMalformed,
			Message:  fmt.Sprintf("Frontmatter is not valid YAML: %v", err),
			File:     file,
			Line:     1,
		}}
	}

	var diags []domain.Diagnostic
	for _, key := range requiredSkillKeys {
		value, present := fields[key]
		if !present || value == nil || value == "" {
			diags = append(diags, domain.Diagnostic{
				Severity: severity,
				Rule:     domain.RuleFrontmatterMissingKey,
				Message:  fmt.Sprintf("Frontmatter is missing required key '%s'", key),
				File:     file,
				Line:     1,
			})
		}
	}

	var unknown []string
	for key := range fields {
		if !allowedSkillKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		diags = append(diags, domain.Diagnostic{
			Severity: v.severities.Of(domain.RuleFrontmatterUnknownKey, domain.SeverityError),
			Rule:     domain.RuleFrontmatterUnknownKey,
			Message:  fmt.Sprintf("Frontmatter key '%s' is not allowed", key),
			File:     file,
			Line:     1,
		})
	}

	return diags
}

// ValidateAgent checks that an agent guidance file carries no frontmatter
func (v *FrontmatterValidator) ValidateAgent(file, content string) []domain.Diagnostic {
	if _, _, ok := SplitFrontmatter(content); !ok {
		return nil
	}
	return []domain.Diagnostic{{
		Severity: v.severities.Of(domain.RuleFrontmatterForbidden, domain.SeverityError),
		Rule:     domain.RuleFrontmatterForbidden,
		Message:  "AGENTS.md should not contain frontmatter",
		File:     file,
		Line:     1,
	}}
}
