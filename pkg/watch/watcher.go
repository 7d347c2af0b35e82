package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/saturn/pkg/telemetry/metrics"
)

// DefaultDebounce is the quiet period after the last filesystem event
// before a rescan fires.
const DefaultDebounce = 2 * time.Second

// WatcherConfig contains configuration for a Watcher.
type WatcherConfig struct {
	// Paths are the directories to watch for changes. Watching is not
	// recursive: the entries of these directories are the items, and
	// a write inside a snapshot directory is the snapshot's business.
	Paths []string

	// Debounce is the quiet period before a burst of events triggers
	// a rescan (default: 2s).
	Debounce time.Duration
}

// Watcher reacts to filesystem changes in the watched directories by
// triggering rescans. It debounces event bursts so that an archiver
// dropping many files causes one rescan.
type Watcher struct {
	watcher   *fsnotify.Watcher
	logger    *slog.Logger
	config    *WatcherConfig
	collector *metrics.Collector
	debounce  *Debouncer

	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a filesystem watcher for the configured paths.
// A nil collector disables metrics.
func NewWatcher(config *WatcherConfig, collector *metrics.Collector) (*Watcher, error) {
	if config == nil || len(config.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if collector == nil {
		collector = metrics.NewCollector(&metrics.Config{}, nil)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:   watcher,
		logger:    slog.Default().With("component", "watch.watcher"),
		config:    config,
		collector: collector,
		debounce:  NewDebouncer(config.Debounce),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Watch starts watching for filesystem changes and calls onChange
// after each debounced burst of events. This is a blocking operation
// that runs until the context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.collector.SetWatchedPaths(0)
		w.watcher.Close()
		close(w.doneCh)
	}()

	for _, path := range w.config.Paths {
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch path %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
	}
	w.collector.SetWatchedPaths(len(w.config.Paths))

	w.logger.Info("filesystem watcher started",
		"paths", len(w.config.Paths),
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("filesystem watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("filesystem watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.collector.RecordWatchEvent(opLabel(event.Op))
			w.logger.Debug("filesystem event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debounce.Trigger(func() {
				w.logger.Info("triggering rescan",
					"path", event.Name,
					"op", event.Op.String(),
				)
				w.collector.RecordRescan()
				onChange()
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("filesystem watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the watcher and waits for the watch loop to exit.
// Stopping a watcher that never started is a no-op.
func (w *Watcher) Stop() {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	if !running {
		return
	}

	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh

	w.debounce.Stop()
}

// Healthy reports whether the watch loop is running. It satisfies the
// health checker's check signature so watch mode can expose watcher
// state through the readiness endpoint.
func (w *Watcher) Healthy(context.Context) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.running {
		return errors.New("filesystem watcher is not running")
	}
	return nil
}

// shouldProcessEvent determines if an event should count toward a
// rescan. Chmod-only events and hidden files are ignored; everything
// else counts, whatever its extension, since watched directories hold
// artifacts of every kind.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}

	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	return true
}

// opLabel maps an fsnotify operation to a metric label. Combined
// operations report the most significant bit.
func opLabel(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "create"
	case op&fsnotify.Write != 0:
		return "write"
	case op&fsnotify.Remove != 0:
		return "remove"
	case op&fsnotify.Rename != 0:
		return "rename"
	case op&fsnotify.Chmod != 0:
		return "chmod"
	default:
		return "other"
	}
}
