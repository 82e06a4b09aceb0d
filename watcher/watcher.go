// Package watcher signals "the mods directory changed" with debouncing, so
// bursts of filesystem events from a single install or move collapse into one
// rescan.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period required before the callback fires.
const DefaultDebounce = 2 * time.Second

// Watcher watches directory trees and invokes a callback once events settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	log      *zap.SugaredLogger
	done     chan struct{}
}

// New creates a watcher that calls onChange after events have been quiet for
// the debounce duration. Call Watch to add directories, then Start.
func New(debounce time.Duration, onChange func(), log *zap.SugaredLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		done:     make(chan struct{}),
	}, nil
}

// Watch adds a directory and all its subdirectories. Directories created
// later are picked up as their create events arrive.
func (w *Watcher) Watch(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !entry.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Start runs the event loop until Close is called.
func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) run() {
	// The timer is created stopped; the first relevant event arms it
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isRelevant(event) {
				continue
			}
			// New directories need their own watch for recursive coverage
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err == nil {
						w.log.Debugw("Watching new directory", "path", event.Name)
					}
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.log.Debug("Directory change settled, invoking rescan")
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnw("Filesystem watcher error", "error", err)

		case <-w.done:
			timer.Stop()
			return
		}
	}
}

// Close stops the event loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func isRelevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Rename)
}
