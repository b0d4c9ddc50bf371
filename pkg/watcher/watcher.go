// Package watcher reports changes to a mesh file and the files it depends
// on. Change events are collapsed into a flag the render loop polls.
package watcher

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a set of files through their parent directories, so
// editors that save by rename are picked up too.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]bool
	timer   *time.Timer
	changed string

	pending atomic.Bool
}

// New creates a watcher that reports a change once no further events
// arrived for the debounce interval.
func New(debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &Watcher{
		fs:       fs,
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// Watch adds files to the watched set
func (w *Watcher) Watch(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		dir := filepath.Dir(absPath)
		if !w.dirs[dir] {
			if err := w.fs.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			w.dirs[dir] = true
		}
		w.files[absPath] = true
	}
	return nil
}

// Replace drops the watched set and watches files instead
func (w *Watcher) Replace(files []string) error {
	// A directory that vanished cannot be unwatched; the new set still applies
	if err := w.RemoveAll(); err != nil {
		log.Printf("warning: %v", err)
	}
	return w.Watch(files)
}

// Start pumps fsnotify events until Close is called
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					w.handleFileChange(filepath.Clean(event.Name))
				}

			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				log.Printf("watcher error: %v", err)
			}
		}
	}()
}

// handleFileChange restarts the debounce timer for a watched file
func (w *Watcher) handleFileChange(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[path] {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.changed = path
		w.mu.Unlock()
		w.pending.Store(true)
	})
}

// Poll returns the last changed file and clears the flag. It never blocks.
func (w *Watcher) Poll() (string, bool) {
	if !w.pending.CompareAndSwap(true, false) {
		return "", false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.changed, true
}

// Close stops the watcher
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fs.Close()
}

// RemoveAll removes all watched files. The watched set is cleared even when
// some directories can no longer be unwatched, e.g. because they were
// deleted; those failures are returned together.
func (w *Watcher) RemoveAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending.Store(false)

	dirs := w.dirs
	w.files = make(map[string]bool)
	w.dirs = make(map[string]bool)

	var errs []error
	for dir := range dirs {
		if err := w.fs.Remove(dir); err != nil {
			errs = append(errs, fmt.Errorf("failed to unwatch %s: %w", dir, err))
		}
	}
	return errors.Join(errs...)
}
