package service

import (
	"github.com/ailint-dev/ailint/domain"
	"github.com/ailint-dev/ailint/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.LintRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	req := c.convertToLintRequest(cfg)
	req.ConfigPath = path
	return req, nil
}

// LoadDefaultConfig loads the default configuration, using a discovered
// config file when one exists
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.LintRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return c.convertToLintRequest(cfg)
}

// FindDefaultConfigFile searches for a default configuration file
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	return config.FindDefaultConfig("")
}

// MergeConfig merges CLI flags with configuration file
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.LintRequest, override *domain.LintRequest) *domain.LintRequest {
	merged := *base

	// Paths and mode always come from command arguments
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	merged.Skills = merged.Skills || override.Skills

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	if override.MinLevel != "" {
		merged.MinLevel = override.MinLevel
	}

	if override.MaxWarnings >= 0 {
		merged.MaxWarnings = override.MaxWarnings
	}

	if len(override.IgnoreDirs) > 0 {
		merged.IgnoreDirs = override.IgnoreDirs
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// convertToLintRequest converts a Config to LintRequest
func (c *ConfigurationLoaderImpl) convertToLintRequest(cfg *config.Config) *domain.LintRequest {
	return &domain.LintRequest{
		// Paths are set by the caller, not from config
		Paths: []string{},

		OutputFormat: domain.OutputFormat(cfg.LogFormat),
		MinLevel:     domain.SeverityFromString(cfg.LogLevel),
		MaxWarnings:  cfg.MaxWarnings,
		IgnoreDirs:   cfg.IgnoreDirs,
	}
}
