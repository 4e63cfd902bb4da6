// Package watch re-runs an action when files in watched directories change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
	"git.home.luguber.info/inful/factpress/internal/logfields"
)

const DefaultDebounce = 500 * time.Millisecond

// Action is invoked once per burst of changes.
type Action func(ctx context.Context) error

// Watcher debounces filesystem events from a set of directories.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	action   Action
}

// New watches dirs (non-recursively) and calls action after debounce of quiet.
func New(dirs []string, debounce time.Duration, action Action) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{dirs: dirs, debounce: debounce, action: action}
}

// Run blocks until ctx is done. Action errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.FileSystemError("failed to resolve watch directory").WithCause(err).
				WithContext("path", dir).Build()
		}
		if err := fw.Add(abs); err != nil {
			return errors.FileSystemError("failed to watch directory").WithCause(err).
				WithContext("path", abs).Build()
		}
		slog.Info("Watching for changes", logfields.Path(abs))
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		case <-timer.C:
			if err := w.action(ctx); err != nil {
				slog.Error("Re-render failed", logfields.Error(err))
			}
		}
	}
}

// relevant ignores chmod-only events and editor/atomic-write temporaries.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if base == "" || base[0] == '.' || base[len(base)-1] == '~' {
		return false
	}
	return filepath.Ext(base) != ".swp" && filepath.Ext(base) != ".tmp"
}
