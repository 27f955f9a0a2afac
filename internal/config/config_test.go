package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig should not return nil")
	}

	if config.Document.Path != DefaultDocumentPath {
		t.Errorf("Expected Path %s, got %s", DefaultDocumentPath, config.Document.Path)
	}
	if config.Document.Marker != DefaultMarker {
		t.Errorf("Expected Marker %q, got %q", DefaultMarker, config.Document.Marker)
	}
	if config.Document.StartTag != "<script>" || config.Document.EndTag != "</script>" {
		t.Errorf("Unexpected tags %q %q", config.Document.StartTag, config.Document.EndTag)
	}

	if config.Braces.IndentWidth != DefaultIndentWidth {
		t.Errorf("Expected IndentWidth %d, got %d", DefaultIndentWidth, config.Braces.IndentWidth)
	}
	if config.Braces.SyntaxCheck {
		t.Error("SyntaxCheck should be disabled by default")
	}

	if len(config.Elements.ElementIDs) != 8 {
		t.Errorf("Expected 8 element ids, got %d", len(config.Elements.ElementIDs))
	}
	if len(config.Elements.Functions) != 6 {
		t.Errorf("Expected 6 functions, got %d", len(config.Elements.Functions))
	}

	if config.Check.FailOnElements || config.Check.FailOnWarnings {
		t.Error("Check should only fail on balance by default")
	}

	if config.Output.Format != "text" {
		t.Errorf("Expected Format 'text', got '%s'", config.Output.Format)
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	config := DefaultConfig()

	err := config.Validate()
	if err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty marker", func(c *Config) { c.Document.Marker = "" }},
		{"empty start tag", func(c *Config) { c.Document.StartTag = "" }},
		{"empty end tag", func(c *Config) { c.Document.EndTag = "" }},
		{"zero indent width", func(c *Config) { c.Braces.IndentWidth = 0 }},
		{"negative fix hints", func(c *Config) { c.Braces.MaxFixHints = -1 }},
		{"empty template marker", func(c *Config) { c.Elements.TemplateMarker = "" }},
		{"bad log pattern", func(c *Config) { c.Elements.LogPattern = "console.log(" }},
		{"negative log samples", func(c *Config) { c.Elements.MaxLogSamples = -1 }},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }},
		{"negative goroutines", func(c *Config) { c.Performance.MaxGoroutines = -1 }},
		{"negative timeout", func(c *Config) { c.Performance.TimeoutSeconds = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			if err := config.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestConfig_ValidOutputFormats(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml"} {
		config := DefaultConfig()
		config.Output.Format = format
		if err := config.Validate(); err != nil {
			t.Errorf("Format '%s' should be valid, got error: %v", format, err)
		}
	}
}

func TestElementsConfig_RulesRoundTrip(t *testing.T) {
	config := DefaultConfig()
	rules := config.Elements.Rules()

	if rules.TemplateMarker != config.Elements.TemplateMarker {
		t.Errorf("TemplateMarker not carried over: %q", rules.TemplateMarker)
	}
	if len(rules.ElementIDs) != len(config.Elements.ElementIDs) {
		t.Errorf("ElementIDs not carried over: %v", rules.ElementIDs)
	}
	if rules.MaxLogSamples != config.Elements.MaxLogSamples {
		t.Errorf("MaxLogSamples not carried over: %d", rules.MaxLogSamples)
	}
}

func TestLoadConfig_Default(t *testing.T) {
	// Load with empty path should return default
	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig with empty path failed: %v", err)
	}
	if config == nil {
		t.Fatal("Config should not be nil")
	}
	if config.Braces.IndentWidth != DefaultConfig().Braces.IndentWidth {
		t.Error("Loaded config should match default")
	}
}

func TestLoadConfig_NonExistent(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for non-existent config file")
	}
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scriptscan.yaml")
	content := "braces:\n  indent_width: 2\noutput:\n  format: json\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Braces.IndentWidth != 2 {
		t.Errorf("Expected IndentWidth 2, got %d", config.Braces.IndentWidth)
	}
	if config.Output.Format != "json" {
		t.Errorf("Expected Format json, got %s", config.Output.Format)
	}
	// Untouched sections keep their defaults
	if config.Document.Marker != DefaultMarker {
		t.Errorf("Expected default marker, got %q", config.Document.Marker)
	}
	if len(config.Elements.ElementIDs) != 8 {
		t.Errorf("Expected default element ids, got %v", config.Elements.ElementIDs)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scriptscan.yaml")
	if err := os.WriteFile(configPath, []byte("braces:\n  indent_width: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("Expected error for indent_width 0")
	}
}

func TestSearchConfigInDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "scriptscan.yaml")
	if err := os.WriteFile(configPath, []byte("braces:\n  indent_width: 2"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	candidates := []string{"scriptscan.yaml", "scriptscan.yml"}
	result := searchConfigInDirectory(tempDir, candidates)
	if result != configPath {
		t.Errorf("Expected %s, got %s", configPath, result)
	}

	emptyDir := t.TempDir()
	result = searchConfigInDirectory(emptyDir, candidates)
	if result != "" {
		t.Error("Expected empty string for directory without config")
	}
}

func TestLoadConfigWithTarget_DiscoversNextToDocument(t *testing.T) {
	tempDir := t.TempDir()
	nested := filepath.Join(tempDir, "site", "pages")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}

	// Config sits two levels above the document
	configPath := filepath.Join(tempDir, ".scriptscan.yaml")
	if err := os.WriteFile(configPath, []byte("braces:\n  indent_width: 8\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	docPath := filepath.Join(nested, "index.html")
	if err := os.WriteFile(docPath, []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}

	config, err := LoadConfigWithTarget("", docPath)
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if config.Braces.IndentWidth != 8 {
		t.Errorf("Expected discovered IndentWidth 8, got %d", config.Braces.IndentWidth)
	}
}

func TestLoadConfigWithTarget_EmptyPaths(t *testing.T) {
	config, err := LoadConfigWithTarget("", "")
	if err != nil {
		t.Fatalf("LoadConfigWithTarget failed: %v", err)
	}
	if config == nil {
		t.Fatal("Config should not be nil")
	}
}
