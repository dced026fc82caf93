package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// fileWatcher calls onChange after path is written, once per burst of events.
type fileWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(ctx context.Context) error
}

// Run blocks until ctx is cancelled or onChange fails.
func (w *fileWatcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so the directory is watched.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	w.logger.Debug("watching", "file", target, "debounce", w.debounce)

	changes := make(chan struct{}, 1)
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if name, err := filepath.Abs(event.Name); err != nil || name != target {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				w.logger.Warn("watcher error", "error", err)
			}
		}
	})

	eg.Go(func() error {
		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case <-egctx.Done():
				return nil
			case <-changes:
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				w.logger.Debug("file changed", "file", target)
				if err := w.onChange(egctx); err != nil {
					return err
				}
			}
		}
	})

	return eg.Wait()
}
