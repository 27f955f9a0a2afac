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
	bracesMarker     string
	bracesFormat     string
	bracesJSON       bool
	bracesConfigPath string
	bracesSyntax     bool
	bracesIndent     int
	bracesWatch      bool
	bracesVerbose    bool
)

func bracesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "braces [file]",
		Short: "Analyze brace balance and structure of the marked script block",
		Long: `Scan the <script> block that contains the marker and report brace
totals, unclosed blocks, structural issues and the declarations found.

The file defaults to document.path from the config (index.html).

Exit codes:
  0 - Braces are balanced
  1 - Braces are not balanced, or the script block could not be read

Examples:
  # Analyze index.html in the current directory
  scriptscan braces

  # Analyze another page with its own marker
  scriptscan braces --marker "// APP START" app.html

  # Also parse the block and list syntax errors
  scriptscan braces --syntax index.html

  # Re-run whenever the page is saved
  scriptscan braces --watch index.html`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runBraces,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&bracesMarker, "marker", "",
		"Marker text identifying the script block (default from config)")
	cmd.Flags().StringVarP(&bracesFormat, "format", "f", "",
		"Output format: text, json, yaml (default from config)")
	cmd.Flags().BoolVar(&bracesJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&bracesConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&bracesSyntax, "syntax", false,
		"Report syntax errors found by parsing the block")
	cmd.Flags().IntVar(&bracesIndent, "indent-width", 0,
		"Indentation width checked on each line (default from config)")
	cmd.Flags().BoolVarP(&bracesWatch, "watch", "w", false,
		"Re-run the analysis when the file changes")
	cmd.Flags().BoolVarP(&bracesVerbose, "verbose", "v", false,
		"Log declarations as they are found")

	return cmd
}

func runBraces(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd, bracesVerbose)
	loader := service.NewConfigurationLoader()

	base, err := loader.LoadConfig(bracesConfigPath, targetArg(args))
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}
	cfg, err := loader.MergeConfig(base, service.ConfigOverrides{
		Marker:       bracesMarker,
		OutputFormat: resolveFormat(bracesFormat, bracesJSON),
		SyntaxCheck:  bracesSyntax,
		IndentWidth:  bracesIndent,
	})
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}

	path := loader.ResolveDocumentPath(args, cfg)
	run := func(ctx context.Context) error {
		return executeBraces(ctx, cfg, path, cmd.OutOrStdout())
	}

	if bracesWatch {
		return watchDocument(ctx, cmd, path, run)
	}
	return run(ctx)
}

func executeBraces(ctx context.Context, cfg *config.Config, path string, out io.Writer) error {
	format := domain.OutputFormat(cfg.Output.Format)

	pm := service.NewProgressManager(format == domain.OutputFormatText)
	defer pm.Close()

	useCase, err := app.NewBracesUseCaseBuilder().
		WithService(service.NewBracesServiceWithProgress(cfg, pm)).
		WithFormatter(service.NewOutputFormatter().WithMaxFixHints(cfg.Braces.MaxFixHints)).
		Build()
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}

	response, err := useCase.Execute(ctx, domain.BracesRequest{
		Path:         path,
		Marker:       cfg.Document.Marker,
		SyntaxCheck:  cfg.Braces.SyntaxCheck,
		OutputFormat: format,
		OutputWriter: out,
	})
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}

	if !response.Report.Balanced() {
		return &ExitError{Code: constants.ExitFailure}
	}
	return nil
}
