package editor

import (
	"errors"
	"path/filepath"

	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/event"
	"github.com/dshills/quill/filesystem"
	"github.com/dshills/quill/window"
)

// newBuffer allocates a buffer with a fresh handle and registers it.
// New buffers join the back of the recency order; they become MRU only
// when activated.
func (e *Editor) newBuffer(name string) *buffer.Buffer {
	e.nextHandle++
	b := buffer.New(e.nextHandle, name)
	e.buffers = append(e.buffers, b)
	e.byHandle[b.Handle()] = b
	return b
}

// GetFileBuffer returns the buffer for path, deduplicated on the resolved
// path. If none exists and create is true, the file is loaded through the
// filesystem collaborator and registered; a missing file yields an empty
// buffer bound to the path. If create is false and no buffer exists, both
// results are nil: absent is not an error.
func (e *Editor) GetFileBuffer(path string, flags buffer.Flags, create bool) (*buffer.Buffer, error) {
	resolved, err := e.fs.Resolve(path)
	if err != nil {
		return nil, err
	}

	if b, ok := e.byPath[resolved]; ok {
		return b, nil
	}
	if !create {
		return nil, nil
	}

	b := e.newBuffer(filepath.Base(resolved))
	b.SetPath(resolved)
	b.SetFlags(flags)
	e.byPath[resolved] = b

	data, err := e.fs.Read(resolved)
	switch {
	case err == nil:
		b.SetText(string(data))
	case errors.Is(err, filesystem.ErrNotFound):
		// New file: empty buffer bound to the path.
	default:
		e.log.Warnf("load %s: %v", resolved, err)
	}

	e.setBufferSyntax(b)
	if e.watcher != nil && err == nil {
		if werr := e.watcher.Add(resolved); werr != nil {
			e.log.Debugf("watch %s: %v", resolved, werr)
		}
	}

	e.Notify(event.NewMessage(event.KindBuffer, b.Name()))
	return b, nil
}

// FindFileBuffer returns the buffer for path if one exists, else nil.
func (e *Editor) FindFileBuffer(path string) *buffer.Buffer {
	resolved, err := e.fs.Resolve(path)
	if err != nil {
		return nil
	}
	return e.byPath[resolved]
}

// GetEmptyBuffer creates a new scratch buffer. Names are never
// deduplicated; every call creates a new buffer.
func (e *Editor) GetEmptyBuffer(name string, flags buffer.Flags) *buffer.Buffer {
	b := e.newBuffer(name)
	b.SetFlags(flags)
	e.setBufferSyntax(b)
	e.Notify(event.NewMessage(event.KindBuffer, b.Name()))
	return b
}

// RemoveBuffer retires a buffer. Every window still viewing it is first
// redirected to the most recently used remaining buffer, or closed when no
// buffer remains. Removing the last buffer leaves a valid empty editor.
// Returns false if the buffer is not registered.
func (e *Editor) RemoveBuffer(b *buffer.Buffer) bool {
	if b == nil {
		return false
	}
	if _, ok := e.byHandle[b.Handle()]; !ok {
		return false
	}

	// Pick a replacement before unregistering: the MRU buffer that is
	// not the one being removed.
	var replacement *buffer.Buffer
	for _, cand := range e.buffers {
		if cand != b {
			replacement = cand
			break
		}
	}

	// Detach-then-remove: no window may be left viewing the dead handle.
	for _, w := range e.FindBufferWindows(b) {
		if replacement != nil {
			w.SetBuffer(replacement.Handle())
		} else if tab := w.Tab(); tab != nil {
			tab.RemoveWindow(w)
		}
	}

	delete(e.byHandle, b.Handle())
	delete(e.bufSyntax, b.Handle())
	if b.Path() != "" {
		delete(e.byPath, b.Path())
		if e.watcher != nil {
			e.watcher.Remove(b.Path())
		}
	}
	for i, cand := range e.buffers {
		if cand == b {
			e.buffers = append(e.buffers[:i], e.buffers[i+1:]...)
			break
		}
	}

	e.layout.Invalidate()
	e.Notify(event.NewMessage(event.KindBuffer, b.Name()))
	return true
}

// GetMRUBuffer returns the most recently activated buffer, or nil when no
// buffer exists.
func (e *Editor) GetMRUBuffer() *buffer.Buffer {
	if len(e.buffers) == 0 {
		return nil
	}
	return e.buffers[0]
}

// Buffers returns all buffers, most recently activated first.
func (e *Editor) Buffers() []*buffer.Buffer {
	out := make([]*buffer.Buffer, len(e.buffers))
	copy(out, e.buffers)
	return out
}

// BufferCount returns the number of registered buffers.
func (e *Editor) BufferCount() int { return len(e.buffers) }

// GetBufferFromHandle resolves a handle, or nil for a retired or unknown
// handle.
func (e *Editor) GetBufferFromHandle(h buffer.Handle) *buffer.Buffer {
	return e.byHandle[h]
}

// FindBufferWindows returns every window, across every tab, currently
// viewing the buffer.
func (e *Editor) FindBufferWindows(b *buffer.Buffer) []*window.Window {
	if b == nil {
		return nil
	}
	var out []*window.Window
	for _, tab := range e.tabs {
		for _, w := range tab.Windows() {
			if w.Buffer() == b.Handle() {
				out = append(out, w)
			}
		}
	}
	return out
}

// SaveBuffer writes a file-backed buffer through the filesystem
// collaborator and clears its dirty flag.
func (e *Editor) SaveBuffer(b *buffer.Buffer) error {
	if b == nil || b.Path() == "" {
		return ErrNoFilePath
	}
	if err := e.fs.Write(b.Path(), []byte(b.Text())); err != nil {
		return err
	}
	b.ClearFlags(buffer.FlagDirty)
	e.Notify(event.NewMessage(event.KindBuffer, b.Name()))
	return nil
}

// touchBuffer moves a buffer to the front of the recency order.
func (e *Editor) touchBuffer(b *buffer.Buffer) {
	for i, cand := range e.buffers {
		if cand == b {
			if i > 0 {
				copy(e.buffers[1:i+1], e.buffers[:i])
				e.buffers[0] = b
			}
			return
		}
	}
}
