package service

import (
	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/config"
)

// ConfigOverrides are command line values that win over the config file.
// Zero values leave the file's setting in place.
type ConfigOverrides struct {
	Marker       string
	OutputFormat domain.OutputFormat
	SyntaxCheck  bool
	IndentWidth  int
}

// ConfigurationLoaderImpl loads configuration and merges command line overrides
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configPath, or discovers a config file near the document
// when configPath is empty
func (c *ConfigurationLoaderImpl) LoadConfig(configPath, documentPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, documentPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// ResolveDocumentPath returns the document named on the command line, or
// the configured default
func (c *ConfigurationLoaderImpl) ResolveDocumentPath(args []string, cfg *config.Config) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg != nil && cfg.Document.Path != "" {
		return cfg.Document.Path
	}
	return config.DefaultDocumentPath
}

// MergeConfig applies overrides to a copy of base and validates the result
func (c *ConfigurationLoaderImpl) MergeConfig(base *config.Config, override ConfigOverrides) (*config.Config, error) {
	merged := *base

	if override.Marker != "" {
		merged.Document.Marker = override.Marker
	}
	if override.OutputFormat != "" {
		merged.Output.Format = string(override.OutputFormat)
	}
	if override.SyntaxCheck {
		merged.Braces.SyntaxCheck = true
	}
	if override.IndentWidth > 0 {
		merged.Braces.IndentWidth = override.IndentWidth
	}

	if err := merged.Validate(); err != nil {
		return nil, domain.NewInvalidInputError("invalid options", err)
	}
	return &merged, nil
}
