package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ludo-technologies/scriptscan/internal/ctxlog"
)

// DefaultDebounce coalesces the bursts of events editors produce on save
const DefaultDebounce = 150 * time.Millisecond

// DocumentWatcher re-runs a callback whenever one document changes
type DocumentWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewDocumentWatcher watches the directory holding path. Watching the
// directory rather than the file keeps working across atomic-rename saves.
func NewDocumentWatcher(path string, debounce time.Duration) (*DocumentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DocumentWatcher{path: abs, debounce: debounce, watcher: watcher}, nil
}

// Close stops watching
func (w *DocumentWatcher) Close() error {
	return w.watcher.Close()
}

// Run calls onChange after each settled change to the document until ctx
// is done. Calls never overlap.
func (w *DocumentWatcher) Run(ctx context.Context, onChange func(ctx context.Context)) error {
	logger := ctxlog.FromContext(ctx)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				logger.Debug("document changed", "path", event.Name, "op", event.Op.String())
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
