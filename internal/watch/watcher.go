// Package watch re-runs the scaffold pass when the index document changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last index event before a
// pass runs.
const DefaultDebounce = 200 * time.Millisecond

// PassFunc runs one scaffold pass.
type PassFunc func(ctx context.Context) error

// Watch runs pass once, then again after every burst of changes to the file at
// indexPath, until ctx is cancelled. Pass errors are logged and watching
// continues.
//
// The parent directory is watched rather than the file itself: editors that
// save by writing a temp file and renaming it would otherwise detach the
// watch.
func Watch(ctx context.Context, indexPath string, debounce time.Duration, logger *slog.Logger, pass PassFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(indexPath)
	if err != nil {
		return fmt.Errorf("watch: resolve index: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(abs), err)
	}

	runPass := func() {
		if err := pass(ctx); err != nil {
			logger.Error("watch: pass failed", slog.String("error", err.Error()))
		}
	}

	runPass()
	logger.Info("watch: started", slog.String("index", abs))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watch: stopped")
			return nil

		case <-timerCh:
			runPass()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watch: index changed", slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}
