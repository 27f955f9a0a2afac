package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/scriptscan/internal/config"
)

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scriptscan.yaml")

	cmd := initCmd()
	if _, err := runCommand(t, cmd, "--config", configPath); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"document:",
		"braces:",
		"elements:",
		"check:",
		"output:",
		"performance:",
		"indent_width",
		"max_fix_hints",
	}

	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}
}

func TestInitCommand_LoadsBack(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scriptscan.yaml")

	if _, err := runCommand(t, initCmd(), "--config", configPath, "--strictness", "strict"); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if !cfg.Check.FailOnElements || !cfg.Check.FailOnWarnings {
		t.Errorf("expected strict check policy, got %+v", cfg.Check)
	}
	if cfg.Document.Marker != config.DefaultMarker {
		t.Errorf("expected default marker, got %q", cfg.Document.Marker)
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scriptscan.yaml")

	if err := os.WriteFile(configPath, []byte("existing: true\n"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	_, err := runCommand(t, initCmd(), "--config", configPath)
	if err == nil {
		t.Fatal("Expected error when file exists without --force")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}

	if _, err := runCommand(t, initCmd(), "--config", configPath, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if !strings.Contains(string(content), "braces:") {
		t.Error("Config file was not overwritten with new content")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	fullPath := filepath.Join(tmpDir, "full.yaml")
	minimalPath := filepath.Join(tmpDir, "minimal.yaml")

	if _, err := runCommand(t, initCmd(), "--config", fullPath); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := runCommand(t, initCmd(), "--config", minimalPath, "--minimal"); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	fullContent, _ := os.ReadFile(fullPath)
	minimalContent, _ := os.ReadFile(minimalPath)

	if !strings.Contains(string(minimalContent), "marker:") {
		t.Error("Minimal config missing marker")
	}
	if len(fullContent) <= len(minimalContent) {
		t.Error("Full config should be larger than minimal config")
	}
}

func TestInitCommand_InvalidDirectory(t *testing.T) {
	_, err := runCommand(t, initCmd(), "--config", "/nonexistent/directory/scriptscan.yaml")
	if err == nil {
		t.Fatal("Expected error when directory doesn't exist")
	}
	if !strings.Contains(err.Error(), "directory does not exist") {
		t.Errorf("Expected 'directory does not exist' error, got: %v", err)
	}
}

func TestInitCommand_UnknownStrictness(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scriptscan.yaml")

	_, err := runCommand(t, initCmd(), "--config", configPath, "--strictness", "paranoid")
	if err == nil {
		t.Fatal("Expected error for unknown strictness")
	}
	if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
		t.Error("No config file should be written for an unknown strictness")
	}
}

func TestInitCmd_FlagsExist(t *testing.T) {
	cmd := initCmd()

	expectedFlags := []string{"config", "force", "minimal", "interactive", "strictness"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}

	shortFlags := map[string]string{
		"c": "config",
		"f": "force",
		"i": "interactive",
	}
	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestInitCmd_DefaultConfigPath(t *testing.T) {
	configFlag := initCmd().Flags().Lookup("config")
	if configFlag == nil {
		t.Fatal("config flag not found")
	}
	if configFlag.DefValue != "scriptscan.yaml" {
		t.Errorf("Expected default config path to be 'scriptscan.yaml', got '%s'", configFlag.DefValue)
	}
}
