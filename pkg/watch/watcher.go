// Package watch re-runs validation on extract files as coders edit
// them. It observes the extracts subdirectories and debounces editor
// write bursts.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// Watcher observes a set of directories and invokes OnChange for every
// settled modification of a .txt file.
type Watcher struct {
	dirs     []string
	onChange func(path string)
	logger   *slog.Logger

	watcher   *fsnotify.Watcher
	debouncer *debouncer

	mu       sync.RWMutex
	rechecks int
}

// New creates a Watcher; onChange runs on the watcher goroutine.
func New(dirs []string, onChange func(path string), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{dirs: dirs, onChange: onChange, logger: logger}
}

// Start begins watching and returns immediately. The watch goroutine is
// supervised and stops when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch '%s': %w", dir, err)
		}
	}
	w.watcher = watcher
	w.debouncer = newDebouncer(debounceDelay)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("watcher failed", "error", err)
	}))
	return nil
}

// run is the main event loop.
func (w *Watcher) run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.debouncer.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) processEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if filepath.Ext(event.Name) != ".txt" {
		return
	}
	w.logger.Debug("event received", "name", event.Name)
	path := event.Name
	w.debouncer.add(path, func() {
		w.mu.Lock()
		w.rechecks++
		w.mu.Unlock()
		w.onChange(path)
	})
}
