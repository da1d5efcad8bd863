// Package window implements the editor's view topology: windows (one buffer
// view each), tab windows (ordered split layouts of windows), and the lazily
// recomputed chrome layout.
//
// Windows hold buffer handles, not buffer pointers. Resolving a handle after
// its buffer was removed is a not-found condition handled by the editor; the
// topology itself never dangles.
package window

import (
	"sync/atomic"

	"github.com/dshills/quill/buffer"
)

var nextWindowID atomic.Uint64

// Window is a viewport presenting one buffer. It is owned by exactly one
// TabWindow at a time.
type Window struct {
	id  uint64
	buf buffer.Handle

	// cursor is a rune offset into the viewed buffer.
	cursor int

	// scrollLine is the first visible buffer line.
	scrollLine int

	parent *TabWindow
}

// newWindow creates a window viewing the given buffer.
func newWindow(h buffer.Handle) *Window {
	return &Window{id: nextWindowID.Add(1), buf: h}
}

// ID returns the window's unique identifier.
func (w *Window) ID() uint64 { return w.id }

// Buffer returns the handle of the viewed buffer.
func (w *Window) Buffer() buffer.Handle { return w.buf }

// SetBuffer redirects the window to a different buffer and resets view state.
func (w *Window) SetBuffer(h buffer.Handle) {
	if w.buf == h {
		return
	}
	w.buf = h
	w.cursor = 0
	w.scrollLine = 0
}

// Cursor returns the cursor rune offset.
func (w *Window) Cursor() int { return w.cursor }

// SetCursor moves the cursor to the given rune offset.
func (w *Window) SetCursor(offset int) {
	if offset < 0 {
		offset = 0
	}
	w.cursor = offset
}

// ScrollLine returns the first visible buffer line.
func (w *Window) ScrollLine() int { return w.scrollLine }

// SetScrollLine sets the first visible buffer line.
func (w *Window) SetScrollLine(line int) {
	if line < 0 {
		line = 0
	}
	w.scrollLine = line
}

// Tab returns the owning tab window, or nil if detached.
func (w *Window) Tab() *TabWindow { return w.parent }
