package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/scriptscan/app"
	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/config"
	"github.com/ludo-technologies/scriptscan/internal/constants"
	"github.com/ludo-technologies/scriptscan/service"
)

var (
	elementsFormat     string
	elementsJSON       bool
	elementsConfigPath string
	elementsWatch      bool
	elementsVerbose    bool
)

func elementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elements [file]",
		Short: "Check that the page carries the elements its script expects",
		Long: `Check the timer template, element ids, functions and handler wiring
listed under the elements section of the config, and list debug logs.

Failed checks are reported but do not change the exit code.

Exit codes:
  0 - The document was checked
  1 - The document could not be read

Examples:
  # Check index.html in the current directory
  scriptscan elements

  # YAML output for another page
  scriptscan elements --format yaml app.html`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runElements,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&elementsFormat, "format", "f", "",
		"Output format: text, json, yaml (default from config)")
	cmd.Flags().BoolVar(&elementsJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&elementsConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&elementsWatch, "watch", "w", false,
		"Re-run the checks when the file changes")
	cmd.Flags().BoolVarP(&elementsVerbose, "verbose", "v", false,
		"Show debug logging")

	return cmd
}

func runElements(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd, elementsVerbose)
	loader := service.NewConfigurationLoader()

	base, err := loader.LoadConfig(elementsConfigPath, targetArg(args))
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}
	cfg, err := loader.MergeConfig(base, service.ConfigOverrides{
		OutputFormat: resolveFormat(elementsFormat, elementsJSON),
	})
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}

	path := loader.ResolveDocumentPath(args, cfg)
	run := func(ctx context.Context) error {
		return executeElements(ctx, cfg, path, cmd.OutOrStdout())
	}

	if elementsWatch {
		return watchDocument(ctx, cmd, path, run)
	}
	return run(ctx)
}

func executeElements(ctx context.Context, cfg *config.Config, path string, out io.Writer) error {
	useCase := app.NewElementsUseCase(
		service.NewElementsService(&cfg.Elements),
		service.NewOutputFormatter(),
	)

	_, err := useCase.Execute(ctx, domain.ElementsRequest{
		Path:         path,
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		OutputWriter: out,
	})
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}
	return nil
}
