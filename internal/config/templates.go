package config

import "strconv"

// Strictness represents the lint strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// StrictnessPreset holds threshold values for different strictness levels
type StrictnessPreset struct {
	CodeSnippetMaxLines    int
	ContentMaxLines        int
	TokenMaxCount          int
	UnreferencedFileLevel  string
	MissingAgentsFileLevel string
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			CodeSnippetMaxLines:    10,
			ContentMaxLines:        1000,
			TokenMaxCount:          10000,
			UnreferencedFileLevel:  "WARNING",
			MissingAgentsFileLevel: "INFO",
		},
		StrictnessStandard: {
			CodeSnippetMaxLines:    DefaultCodeSnippetMaxLines,
			ContentMaxLines:        DefaultContentMaxLines,
			TokenMaxCount:          DefaultTokenMaxCount,
			UnreferencedFileLevel:  "ERROR",
			MissingAgentsFileLevel: "WARNING",
		},
		StrictnessStrict: {
			CodeSnippetMaxLines:    DefaultCodeSnippetMaxLines,
			ContentMaxLines:        300,
			TokenMaxCount:          3000,
			UnreferencedFileLevel:  "ERROR",
			MissingAgentsFileLevel: "ERROR",
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(strictness Strictness) string {
	preset := GetStrictnessPresets()[strictness]

	return `# ailint configuration
# Documentation: https://github.com/ailint-dev/ailint

# Minimum diagnostic level to report: ERROR, WARNING, INFO, DEBUG
log_level: INFO

# Output format: logfmt (streaming), file-digest (grouped), yaml (machine-readable)
log_format: file-digest

# Fail the run when the warning count exceeds this value (-1 = unlimited)
max_warnings: -1

# Directory names skipped during traversal
ignore_dirs:
  - .git
  - node_modules

# Maximum non-empty lines in a fenced code block before it should be
# externalized into a script file
code_snippet_max_lines: ` + strconv.Itoa(preset.CodeSnippetMaxLines) + `

# Maximum content size for prompt and agent files
content_max_lines: ` + strconv.Itoa(preset.ContentMaxLines) + `
token_max_count: ` + strconv.Itoa(preset.TokenMaxCount) + `

# Project-relative directories holding prompt and agent files
prompt_dirs:
  - .github/prompts
agent_dirs:
  - .github/agents

# Skill-relative directories whose files must be referenced from SKILL.md
resource_dirs:
  - references
  - assets
  - scripts

# Severity for unreferenced resource files: ERROR, WARNING, or INFO
unreferenced_file_level: ` + preset.UnreferencedFileLevel + `

# Severity for a missing AGENTS.md in the project root
missing_agents_file_level: ` + preset.MissingAgentsFileLevel + `
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# ailint configuration (minimal)
# See full options: https://github.com/ailint-dev/ailint

log_level: INFO
log_format: file-digest

ignore_dirs:
  - .git
  - node_modules

code_snippet_max_lines: 3
`
}
