package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ailint-dev/ailint/domain"
)

// Default validation thresholds
const (
	// DefaultCodeSnippetMaxLines is the maximum non-empty line count for a
	// fenced code block before it should be externalized
	DefaultCodeSnippetMaxLines = 3

	// DefaultContentMaxLines is the maximum line count for prompt and agent
	// file content
	DefaultContentMaxLines = 500

	// DefaultTokenMaxCount is the maximum approximate token count for prompt
	// and agent file content
	DefaultTokenMaxCount = 5000
)

// Config represents the main configuration structure
type Config struct {
	// LogLevel is the minimum diagnostic level to report: ERROR, WARNING, INFO, DEBUG
	LogLevel string `json:"logLevel" mapstructure:"log_level" yaml:"log_level"`

	// LogFormat is the output format: logfmt, file-digest, yaml
	LogFormat string `json:"logFormat" mapstructure:"log_format" yaml:"log_format"`

	// MaxWarnings fails the run when the warning count exceeds it; negative means unlimited
	MaxWarnings int `json:"maxWarnings" mapstructure:"max_warnings" yaml:"max_warnings"`

	// IgnoreDirs are directory names skipped during traversal
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignore_dirs" yaml:"ignore_dirs"`

	// CodeSnippetMaxLines is the fenced-code-block size threshold
	CodeSnippetMaxLines int `json:"codeSnippetMaxLines" mapstructure:"code_snippet_max_lines" yaml:"code_snippet_max_lines"`

	// ContentMaxLines is the prompt/agent content line threshold
	ContentMaxLines int `json:"contentMaxLines" mapstructure:"content_max_lines" yaml:"content_max_lines"`

	// TokenMaxCount is the prompt/agent content token threshold
	TokenMaxCount int `json:"tokenMaxCount" mapstructure:"token_max_count" yaml:"token_max_count"`

	// PromptDirs are project-relative directories containing prompt files
	PromptDirs []string `json:"promptDirs" mapstructure:"prompt_dirs" yaml:"prompt_dirs"`

	// AgentDirs are project-relative directories containing agent files
	AgentDirs []string `json:"agentDirs" mapstructure:"agent_dirs" yaml:"agent_dirs"`

	// ResourceDirs are skill-relative directories whose files must be referenced
	ResourceDirs []string `json:"resourceDirs" mapstructure:"resource_dirs" yaml:"resource_dirs"`

	// UnreferencedFileLevel is the severity for unreferenced resource files
	UnreferencedFileLevel string `json:"unreferencedFileLevel" mapstructure:"unreferenced_file_level" yaml:"unreferenced_file_level"`

	// MissingAgentsFileLevel is the severity for a missing AGENTS.md
	MissingAgentsFileLevel string `json:"missingAgentsFileLevel" mapstructure:"missing_agents_file_level" yaml:"missing_agents_file_level"`
}

// DefaultConfig returns the built-in defaults, parsed from the embedded
// default_config.yaml so the shipped file and the code share one source.
func DefaultConfig() *Config {
	cfg, err := LoadDefaultConfig()
	if err != nil {
		// The embed is compiled into the binary; parsing can only fail
		// when default_config.yaml itself is edited into invalid YAML.
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is given, one is discovered by walking up from the
// target directory.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = FindDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Fresh viper instance per load to avoid shared state
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindDefaultConfig looks for default configuration files in common
// locations. targetPath is the path being linted; the search walks from
// there up to the filesystem root, then falls back to the current
// directory, XDG config, and the home directory.
func FindDefaultConfig(targetPath string) string {
	candidates := []string{
		".ailint.yaml",
		".ailint.yml",
		"ailint.yaml",
		"ailint.yml",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "ailint"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "ailint")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("AILINT_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !domain.Severity(c.LogLevel).IsValid() {
		return fmt.Errorf("invalid log_level '%s', must be one of: ERROR, WARNING, INFO, DEBUG", c.LogLevel)
	}

	if _, err := domain.OutputFormatFromString(c.LogFormat); err != nil {
		return fmt.Errorf("invalid log_format '%s', must be one of: logfmt, file-digest, yaml", c.LogFormat)
	}

	if c.CodeSnippetMaxLines < 1 {
		return fmt.Errorf("code_snippet_max_lines must be >= 1, got %d", c.CodeSnippetMaxLines)
	}

	if c.ContentMaxLines < 1 {
		return fmt.Errorf("content_max_lines must be >= 1, got %d", c.ContentMaxLines)
	}

	if c.TokenMaxCount < 1 {
		return fmt.Errorf("token_max_count must be >= 1, got %d", c.TokenMaxCount)
	}

	if !domain.Severity(c.UnreferencedFileLevel).IsValid() {
		return fmt.Errorf("invalid unreferenced_file_level '%s', must be one of: ERROR, WARNING, INFO, DEBUG", c.UnreferencedFileLevel)
	}

	if !domain.Severity(c.MissingAgentsFileLevel).IsValid() {
		return fmt.Errorf("invalid missing_agents_file_level '%s', must be one of: ERROR, WARNING, INFO, DEBUG", c.MissingAgentsFileLevel)
	}

	return nil
}

// SeverityMap resolves the per-rule severity overrides from this config
func (c *Config) SeverityMap() domain.SeverityMap {
	return domain.SeverityMap{
		domain.RuleUnreferencedResourceFile: domain.Severity(c.UnreferencedFileLevel),
		domain.RuleAgentsFileMissing:        domain.Severity(c.MissingAgentsFileLevel),
	}
}

// MinLevel returns the configured log level as a severity
func (c *Config) MinLevel() domain.Severity {
	return domain.SeverityFromString(c.LogLevel)
}

// OutputFormat returns the configured log format
func (c *Config) OutputFormat() (domain.OutputFormat, error) {
	return domain.OutputFormatFromString(c.LogFormat)
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("log_level", config.LogLevel)
	v.Set("log_format", config.LogFormat)
	v.Set("max_warnings", config.MaxWarnings)
	v.Set("ignore_dirs", config.IgnoreDirs)
	v.Set("code_snippet_max_lines", config.CodeSnippetMaxLines)
	v.Set("content_max_lines", config.ContentMaxLines)
	v.Set("token_max_count", config.TokenMaxCount)
	v.Set("prompt_dirs", config.PromptDirs)
	v.Set("agent_dirs", config.AgentDirs)
	v.Set("resource_dirs", config.ResourceDirs)
	v.Set("unreferenced_file_level", config.UnreferencedFileLevel)
	v.Set("missing_agents_file_level", config.MissingAgentsFileLevel)

	return v.WriteConfig()
}
