package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/scriptscan/internal/constants"
	"github.com/ludo-technologies/scriptscan/service"
)

// watchDocument runs once, then again after every settled change to path,
// until interrupted. Failed runs are reported and watching continues.
func watchDocument(ctx context.Context, cmd *cobra.Command, path string, run func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := service.NewDocumentWatcher(path, service.DefaultDebounce)
	if err != nil {
		return &ExitError{Code: constants.ExitFailure, Message: err.Error()}
	}
	defer watcher.Close()

	stderr := cmd.ErrOrStderr()
	report := func(ctx context.Context) {
		err := run(ctx)
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Message == "" {
			return
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}

	report(ctx)
	fmt.Fprintf(stderr, "\nWatching %s for changes (Ctrl+C to stop)\n", path)

	return watcher.Run(ctx, func(ctx context.Context) {
		fmt.Fprintf(stderr, "\n%s changed, re-running\n\n", path)
		report(ctx)
	})
}
