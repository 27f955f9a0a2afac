package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/scriptscan/internal/config"
	"github.com/ludo-technologies/scriptscan/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a scriptscan configuration file",
		Long: `Generate a documented scriptscan configuration file with sensible defaults.

By default, creates scriptscan.yaml in the current directory with every
setting explained. Use --interactive for a guided setup wizard.

Examples:
  # Create scriptscan.yaml in current directory
  scriptscan init

  # Custom output path
  scriptscan init --config custom.yaml

  # Overwrite existing file
  scriptscan init --force

  # Generate smaller config with essential options only
  scriptscan init --minimal

  # Interactive setup wizard
  scriptscan init --interactive
  scriptscan init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.ConfigFileName,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Preset for the check command: relaxed, standard, strict")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")
	strictness, _ := cmd.Flags().GetString("strictness")

	opts := config.DefaultTemplateOptions()
	opts.Strictness = config.Strictness(strictness)
	if _, ok := config.GetStrictnessPresets()[opts.Strictness]; !ok {
		return fmt.Errorf("unknown strictness %q (use relaxed, standard or strict)", strictness)
	}

	if interactive {
		var err error
		opts, configPath, err = runInteractiveSetup(cmd.OutOrStdout(), opts, configPath)
		if err != nil {
			return err
		}
	}

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(opts)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintln(out, "\nRun 'scriptscan check' to check your page.")

	return nil
}

func runInteractiveSetup(out io.Writer, opts config.TemplateOptions, defaultConfigPath string) (config.TemplateOptions, string, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "scriptscan Configuration Setup")
	fmt.Fprintln(out, "==============================")
	fmt.Fprintln(out)

	documentPrompt := promptui.Prompt{
		Label:   "HTML document to scan",
		Default: opts.DocumentPath,
	}
	documentPath, err := documentPrompt.Run()
	if err != nil {
		return opts, "", fmt.Errorf("document path input cancelled: %w", err)
	}
	if documentPath != "" {
		opts.DocumentPath = documentPath
	}

	markerPrompt := promptui.Prompt{
		Label:   "Marker inside the script block",
		Default: opts.Marker,
	}
	marker, err := markerPrompt.Run()
	if err != nil {
		return opts, "", fmt.Errorf("marker input cancelled: %w", err)
	}
	if marker != "" {
		opts.Marker = marker
	}

	fmt.Fprintln(out)

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Fail on unbalanced braces only", config.StrictnessStandard},
		{"Relaxed", "Two-space indentation, fail on unbalanced braces only", config.StrictnessRelaxed},
		{"Strict", "Syntax check, fail on warnings and missing elements", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should the check be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return opts, "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	opts.Strictness = strictnessLevels[strictnessIdx].Value

	fmt.Fprintln(out)

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}
	outputPath, err := outputPrompt.Run()
	if err != nil {
		return opts, "", fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Creating %s... ", outputPath)

	return opts, outputPath, nil
}
