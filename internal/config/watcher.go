package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"attune/pkg/logging"
)

// ChangeEvent signals that the project manifest changed on disk.
type ChangeEvent struct {
	// Path is the manifest file that changed.
	Path string

	// Timestamp is when the change was detected.
	Timestamp time.Time
}

// Watcher watches a project directory's manifest file and emits a debounced
// change event whenever it is written, created, or replaced. Used by
// plan --watch to re-plan on edit.
type Watcher struct {
	mu sync.Mutex

	projectDir       string
	watcher          *fsnotify.Watcher
	debounceInterval time.Duration
	pending          *time.Timer
	stopCh           chan struct{}
	running          bool
}

// NewWatcher creates a manifest watcher for a project directory.
func NewWatcher(projectDir string, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = 500 * time.Millisecond
	}
	return &Watcher{
		projectDir:       projectDir,
		debounceInterval: debounceInterval,
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching for manifest changes. Events are delivered on the
// changes channel until the context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context, changes chan<- ChangeEvent) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}

	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go stale.
	if err := watcher.Add(w.projectDir); err != nil {
		watcher.Close()
		w.mu.Unlock()
		return err
	}

	w.watcher = watcher
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	go w.processEvents(ctx, changes)

	logging.Info("Watcher", "Watching %s for manifest changes", w.projectDir)
	return nil
}

// processEvents handles filesystem events and emits debounced change events.
func (w *Watcher) processEvents(ctx context.Context, changes chan<- ChangeEvent) {
	manifestPath := filepath.Join(w.projectDir, ManifestFileName)

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return

		case <-w.stopCh:
			w.cancelPending()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != manifestPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounce(manifestPath, changes)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

// debounce coalesces rapid successive writes into one change event.
func (w *Watcher) debounce(path string, changes chan<- ChangeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounceInterval, func() {
		event := ChangeEvent{Path: path, Timestamp: time.Now()}
		select {
		case changes <- event:
			logging.Debug("Watcher", "Manifest changed: %s", path)
		default:
			logging.Warn("Watcher", "Change event channel full, dropping event for %s", path)
		}
	})
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}

// Stop gracefully stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)

	if w.watcher != nil {
		if err := w.watcher.Close(); err != nil {
			logging.Error("Watcher", err, "Error closing filesystem watcher")
		}
		w.watcher = nil
	}

	logging.Info("Watcher", "Stopped manifest watcher")
	return nil
}
