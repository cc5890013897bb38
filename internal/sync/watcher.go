package sync

import (
	"fmt"
	"path/filepath"
	stdsync "sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MikeBiancalana/calpick/internal/calendar"
	"github.com/MikeBiancalana/calpick/internal/logger"
	"github.com/MikeBiancalana/calpick/internal/perf"
)

const (
	debounceDelay       = 100 * time.Millisecond
	slowReloadThreshold = 50 * time.Millisecond
)

// LoadFunc reads picker options from a file.
type LoadFunc func(path string) (calendar.Options, error)

// OptionsChangeEvent represents a reloaded options file
type OptionsChangeEvent struct {
	FilePath string
	Options  calendar.Options
	Err      error
}

// Watcher watches an options file and reloads it on change
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	load    LoadFunc
	changes chan OptionsChangeEvent
	done    chan struct{}

	mu            stdsync.Mutex
	debounceTimer *time.Timer
	stopOnce      stdsync.Once
}

// NewWatcher creates a watcher for the options file at path
func NewWatcher(path string, load LoadFunc) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to resolve options path: %w", err)
	}

	return &Watcher{
		watcher: fsWatcher,
		path:    abs,
		load:    load,
		changes: make(chan OptionsChangeEvent, 10),
		done:    make(chan struct{}),
	}, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The directory is watched rather than the file so
// editors that replace the file on save are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		w.watcher.Close()
	})
}

// Changes returns the channel for reload notifications
func (w *Watcher) Changes() <-chan OptionsChangeEvent {
	return w.changes
}

// watch is the main event loop
func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.debounceTimer = time.AfterFunc(debounceDelay, w.reload)
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("sync: watcher error", "path", w.path, "error", err)
		}
	}
}

// reload reads the file after the debounce delay and publishes the result.
func (w *Watcher) reload() {
	timer := perf.NewTimer("sync.reload", logger.GetLogger(), slowReloadThreshold)
	opts, err := w.load(w.path)
	timer.Stop()
	if err != nil {
		logger.Warn("sync: failed to reload options", "path", w.path, "error", err)
	} else {
		logger.Info("sync: options reloaded", "path", w.path)
	}

	select {
	case <-w.done:
	case w.changes <- OptionsChangeEvent{FilePath: w.path, Options: opts, Err: err}:
	}
}
