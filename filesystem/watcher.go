package filesystem

import (
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc receives the path of an externally modified file. It is called
// from the watcher goroutine; receivers that feed editor state must marshal
// onto the editor thread (the editor posts it into its apply queue).
type ChangeFunc func(path string)

// Watcher surfaces external file modifications through fsnotify.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	paths   map[string]bool
	closed  bool
	done    chan struct{}
}

// NewWatcher creates a watcher delivering change notifications to onChange.
func NewWatcher(onChange ChangeFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		paths:   make(map[string]bool),
		done:    make(chan struct{}),
	}

	go w.loop(onChange)
	return w, nil
}

// Add starts watching a file path.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	if w.paths[path] {
		return nil
	}
	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.paths[path] = true
	return nil
}

// Remove stops watching a file path.
func (w *Watcher) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.paths[path] {
		return
	}
	_ = w.watcher.Remove(path)
	delete(w.paths, path)
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	_ = w.watcher.Close()
	<-w.done
}

func (w *Watcher) loop(onChange ChangeFunc) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				onChange(ev.Name)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are dropped; a failed watch degrades to no
			// notifications for that path.
		}
	}
}
