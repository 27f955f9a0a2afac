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
	checkMarker         string
	checkFormat         string
	checkJSON           bool
	checkConfigPath     string
	checkSyntax         bool
	checkSkipElements   bool
	checkFailOnElements bool
	checkFailOnWarnings bool
	checkVerbose        bool
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Fast pass/fail check for CI/CD pipelines",
		Long: `Run the brace scan and the element checks side by side and fail when
the document has unbalanced braces or a script block that cannot be found.

Structural warnings and failed element checks are reported as warnings
unless check.fail_on_warnings or check.fail_on_elements is set.

Exit codes:
  0 - All checks pass
  1 - One or more checks failed
  2 - Analysis error (file not found, invalid config, etc.)

Examples:
  # Check index.html with defaults
  scriptscan check

  # Fail on missing elements as well
  scriptscan check --fail-on-elements index.html

  # JSON output for machine parsing
  scriptscan check --json index.html`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&checkMarker, "marker", "",
		"Marker text identifying the script block (default from config)")
	cmd.Flags().StringVarP(&checkFormat, "format", "f", "",
		"Output format: text, json, yaml (default from config)")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&checkSyntax, "syntax", false,
		"Report syntax errors as warnings")
	cmd.Flags().BoolVar(&checkSkipElements, "skip-elements", false,
		"Only run the brace scan")
	cmd.Flags().BoolVar(&checkFailOnElements, "fail-on-elements", false,
		"Treat failed element checks as errors")
	cmd.Flags().BoolVar(&checkFailOnWarnings, "fail-on-warnings", false,
		"Treat structural warnings as errors")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show debug logging")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd, checkVerbose)
	loader := service.NewConfigurationLoader()

	base, err := loader.LoadConfig(checkConfigPath, targetArg(args))
	if err != nil {
		return &ExitError{Code: constants.ExitInternal, Message: err.Error()}
	}
	cfg, err := loader.MergeConfig(base, service.ConfigOverrides{
		Marker:       checkMarker,
		OutputFormat: resolveFormat(checkFormat, checkJSON),
		SyntaxCheck:  checkSyntax,
	})
	if err != nil {
		return &ExitError{Code: constants.ExitInternal, Message: err.Error()}
	}

	// Flags only tighten the configured policy
	if checkFailOnElements {
		cfg.Check.FailOnElements = true
	}
	if checkFailOnWarnings {
		cfg.Check.FailOnWarnings = true
	}

	return executeCheck(ctx, cfg, loader.ResolveDocumentPath(args, cfg), checkSkipElements, cmd.OutOrStdout())
}

func executeCheck(ctx context.Context, cfg *config.Config, path string, skipElements bool, out io.Writer) error {
	format := domain.OutputFormat(cfg.Output.Format)

	pm := service.NewProgressManager(format == domain.OutputFormatText)
	defer pm.Close()

	useCase, err := app.NewCheckUseCaseBuilder().
		WithBracesService(service.NewBracesService(cfg)).
		WithElementsService(service.NewElementsService(&cfg.Elements)).
		WithExecutor(service.NewParallelExecutorWithProgress(&cfg.Performance, pm)).
		WithFormatter(service.NewOutputFormatter().WithMaxFixHints(cfg.Braces.MaxFixHints)).
		WithPolicy(app.CheckPolicy{
			FailOnElements: cfg.Check.FailOnElements,
			FailOnWarnings: cfg.Check.FailOnWarnings,
		}).
		Build()
	if err != nil {
		return &ExitError{Code: constants.ExitInternal, Message: err.Error()}
	}

	result, err := useCase.Execute(ctx, app.CheckRequest{
		Path:         path,
		Marker:       cfg.Document.Marker,
		SyntaxCheck:  cfg.Braces.SyntaxCheck,
		SkipElements: skipElements,
		OutputFormat: format,
		OutputWriter: out,
	})
	if err != nil {
		return &ExitError{Code: constants.ExitInternal, Message: err.Error()}
	}

	if result.ExitCode != constants.ExitOK {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
