package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/scriptscan/domain"
	"github.com/ludo-technologies/scriptscan/internal/ctxlog"
	"github.com/ludo-technologies/scriptscan/internal/version"
)

var (
	// Version information (set via ldflags during build)
	Version = version.Version
)

// ExitError carries the process exit code a command finished with.
// An empty Message means the report was already printed.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "scriptscan",
		Short: "scriptscan - brace and structure diagnostics for inline scripts",
		Long: `scriptscan inspects the marked <script> block of a static HTML page.
It reports brace balance, unclosed blocks, indentation and declaration
structure, and checks that the page carries the elements and wiring its
script depends on.`,
		Version: Version,
	}

	rootCmd.AddCommand(bracesCmd())
	rootCmd.AddCommand(elementsCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "scriptscan version %s\n", version.GetVersion())
			}
		},
	}

	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}

// commandContext attaches a stderr logger to the command's context
func commandContext(cmd *cobra.Command, verbose bool) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxlog.WithLogger(ctx, ctxlog.New(cmd.ErrOrStderr(), verbose))
}

// resolveFormat picks the output format from --json and --format, leaving
// the config's choice in place when neither is given
func resolveFormat(format string, asJSON bool) domain.OutputFormat {
	if asJSON {
		return domain.OutputFormatJSON
	}
	return domain.OutputFormat(format)
}

func targetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
