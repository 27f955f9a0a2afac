package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/scriptscan/internal/constants"
	"github.com/ludo-technologies/scriptscan/internal/elements"
)

// Default document and scan settings
const (
	// DefaultDocumentPath is the document scanned when no path is given
	DefaultDocumentPath = "index.html"

	// DefaultMarker locates the script block to scan
	DefaultMarker = "// --- SIMPLIFIED WORKING JAVASCRIPT --- //"

	// DefaultIndentWidth is the unit leading whitespace must be a multiple of
	DefaultIndentWidth = 4

	// DefaultMaxFixHints is how many unclosed blocks the fix suggestions list
	DefaultMaxFixHints = 3
)

// Default performance settings
const (
	DefaultMaxGoroutines  = 2
	DefaultTimeoutSeconds = 60
)

// Config represents the main configuration structure
type Config struct {
	// Document holds where the script block is found
	Document DocumentConfig `json:"document" mapstructure:"document" yaml:"document"`

	// Braces holds brace/structure scan configuration
	Braces BracesConfig `json:"braces" mapstructure:"braces" yaml:"braces"`

	// Elements holds the presence check lists
	Elements ElementsConfig `json:"elements" mapstructure:"elements" yaml:"elements"`

	// Check holds the pass/fail policy of the check command
	Check CheckConfig `json:"check" mapstructure:"check" yaml:"check"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Performance holds concurrency limits for the check command
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// DocumentConfig locates the script block within the document
type DocumentConfig struct {
	// Path is the document to scan when none is given on the command line
	Path string `json:"path" mapstructure:"path" yaml:"path"`

	// Marker is a literal string inside the script block
	Marker string `json:"marker" mapstructure:"marker" yaml:"marker"`

	// StartTag and EndTag delimit the script block
	StartTag string `json:"start_tag" mapstructure:"start_tag" yaml:"start_tag"`
	EndTag   string `json:"end_tag" mapstructure:"end_tag" yaml:"end_tag"`
}

// BracesConfig holds configuration for the structure scan
type BracesConfig struct {
	// IndentWidth is the indentation unit (default 4)
	IndentWidth int `json:"indent_width" mapstructure:"indent_width" yaml:"indent_width"`

	// SyntaxCheck additionally parses the block and reports syntax errors
	SyntaxCheck bool `json:"syntax_check" mapstructure:"syntax_check" yaml:"syntax_check"`

	// MaxFixHints limits the unclosed blocks listed under suggested fixes
	MaxFixHints int `json:"max_fix_hints" mapstructure:"max_fix_hints" yaml:"max_fix_hints"`
}

// ElementsConfig holds the presence check lists
type ElementsConfig struct {
	TemplateMarker      string   `json:"template_marker" mapstructure:"template_marker" yaml:"template_marker"`
	TemplateEnd         string   `json:"template_end" mapstructure:"template_end" yaml:"template_end"`
	ElementIDs          []string `json:"element_ids" mapstructure:"element_ids" yaml:"element_ids"`
	Functions           []string `json:"functions" mapstructure:"functions" yaml:"functions"`
	HandlerRegistration string   `json:"handler_registration" mapstructure:"handler_registration" yaml:"handler_registration"`
	TemplateContains    []string `json:"template_contains" mapstructure:"template_contains" yaml:"template_contains"`
	DuplicateID         string   `json:"duplicate_id" mapstructure:"duplicate_id" yaml:"duplicate_id"`
	InitFunction        string   `json:"init_function" mapstructure:"init_function" yaml:"init_function"`
	LogPattern          string   `json:"log_pattern" mapstructure:"log_pattern" yaml:"log_pattern"`
	MaxLogSamples       int      `json:"max_log_samples" mapstructure:"max_log_samples" yaml:"max_log_samples"`
}

// CheckConfig holds the pass/fail policy of the check command
type CheckConfig struct {
	// FailOnElements makes failed element checks fail the check command
	FailOnElements bool `json:"fail_on_elements" mapstructure:"fail_on_elements" yaml:"fail_on_elements"`

	// FailOnWarnings makes structural warnings (mismatch, indentation) fail the check command
	FailOnWarnings bool `json:"fail_on_warnings" mapstructure:"fail_on_warnings" yaml:"fail_on_warnings"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`
}

// PerformanceConfig limits concurrency of the check command
type PerformanceConfig struct {
	MaxGoroutines  int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			Path:     DefaultDocumentPath,
			Marker:   DefaultMarker,
			StartTag: "<script>",
			EndTag:   "</script>",
		},
		Braces: BracesConfig{
			IndentWidth: DefaultIndentWidth,
			SyntaxCheck: false,
			MaxFixHints: DefaultMaxFixHints,
		},
		Elements: ElementsConfigFromRules(elements.DefaultRules()),
		Check: CheckConfig{
			FailOnElements: false,
			FailOnWarnings: false,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  DefaultMaxGoroutines,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// ElementsConfigFromRules converts checker rules to their config form
func ElementsConfigFromRules(r elements.Rules) ElementsConfig {
	return ElementsConfig{
		TemplateMarker:      r.TemplateMarker,
		TemplateEnd:         r.TemplateEnd,
		ElementIDs:          r.ElementIDs,
		Functions:           r.Functions,
		HandlerRegistration: r.HandlerRegistration,
		TemplateContains:    r.TemplateContains,
		DuplicateID:         r.DuplicateID,
		InitFunction:        r.InitFunction,
		LogPattern:          r.LogPattern,
		MaxLogSamples:       r.MaxLogSamples,
	}
}

// Rules converts the config to checker rules
func (c *ElementsConfig) Rules() elements.Rules {
	return elements.Rules{
		TemplateMarker:      c.TemplateMarker,
		TemplateEnd:         c.TemplateEnd,
		ElementIDs:          c.ElementIDs,
		Functions:           c.Functions,
		HandlerRegistration: c.HandlerRegistration,
		TemplateContains:    c.TemplateContains,
		DuplicateID:         c.DuplicateID,
		InitFunction:        c.InitFunction,
		LogPattern:          c.LogPattern,
		MaxLogSamples:       c.MaxLogSamples,
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration, discovering a config file
// next to the target document when no path is given
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file over the defaults
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

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

// configCandidates are the file names searched for, in order of preference
var configCandidates = []string{
	constants.ConfigFileName,
	"scriptscan.yml",
	".scriptscan.yaml",
	".scriptscan.yml",
	"scriptscan.json",
	".scriptscan.json",
	".scriptscan.toml",
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

// findDefaultConfig looks for a config file from the target's directory
// upward, then the current directory, the XDG config dir, the home
// directory and finally the SCRIPTSCAN_CONFIG environment variable
func findDefaultConfig(targetPath string) string {
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err != nil || !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, configCandidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", configCandidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), configCandidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", constants.ToolName), configCandidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv(constants.EnvVarPrefix + "_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Document.Marker == "" {
		return fmt.Errorf("document.marker cannot be empty")
	}
	if c.Document.StartTag == "" || c.Document.EndTag == "" {
		return fmt.Errorf("document.start_tag and document.end_tag cannot be empty")
	}

	if c.Braces.IndentWidth < 1 {
		return fmt.Errorf("braces.indent_width must be >= 1, got %d", c.Braces.IndentWidth)
	}
	if c.Braces.MaxFixHints < 0 {
		return fmt.Errorf("braces.max_fix_hints must be >= 0, got %d", c.Braces.MaxFixHints)
	}

	if err := c.validateElementsConfig(); err != nil {
		return err
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// validateElementsConfig validates the presence check configuration
func (c *Config) validateElementsConfig() error {
	if c.Elements.TemplateMarker == "" {
		return fmt.Errorf("elements.template_marker cannot be empty")
	}

	if c.Elements.LogPattern != "" {
		if _, err := regexp.Compile(c.Elements.LogPattern); err != nil {
			return fmt.Errorf("invalid elements.log_pattern: %w", err)
		}
	}

	if c.Elements.MaxLogSamples < 0 {
		return fmt.Errorf("elements.max_log_samples must be >= 0, got %d", c.Elements.MaxLogSamples)
	}

	return nil
}
