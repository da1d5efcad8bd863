// Package mode defines the editing-mode contract and the two-level registry
// (global modes by name, buffer modes by file extension) the editor routes
// input through.
package mode

import (
	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/event"
	"github.com/dshills/quill/register"
	"github.com/dshills/quill/window"
)

// Key identifies non-printable keys.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// KeyEvent is one keyboard input event. Printable input carries the rune
// with Key set to KeyNone.
type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers event.Modifier
}

// IsRune reports whether the event carries printable input.
func (e KeyEvent) IsRune() bool {
	return e.Key == KeyNone && e.Rune != 0
}

// Context carries the editing state a mode acts on for one input event.
// The editor constructs it per event; modes must not retain it.
type Context struct {
	// Buffer is the active buffer. The editor only dispatches key and
	// mouse events to modes while a window is viewing a buffer, so both
	// Buffer and Window are non-nil inside HandleKey and HandleMouse.
	Buffer *buffer.Buffer

	// Window is the active window viewing Buffer.
	Window *window.Window

	// Registers is the editor's register store.
	Registers *register.Store

	// Post sends a message through the editor's notification path.
	Post func(msg *event.Message)

	// RunCommand invokes a registered ex-command by name. It reports
	// whether the command was found.
	RunCommand func(name string, args []string) bool

	// SetCommandText updates the command strip under the buffer.
	SetCommandText func(text string)
}

// Mode is a stateful input handler. A mode instance is shared by every
// buffer it serves and persists for the editor's lifetime; per-event state
// it needs lives in the Context or in the mode's own state machine.
//
// HandleKey consumes one event, producing zero or more buffer mutations via
// ctx.Buffer and zero or more messages via ctx.Post. The editor recovers
// panics at the dispatch boundary, degrading the event to a no-op.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "vim", "standard").
	Name() string

	// Begin is called when the mode becomes responsible for a window,
	// letting it reset its internal state machine.
	Begin(ctx *Context)

	// HandleKey consumes one keyboard event.
	HandleKey(ctx *Context, ev KeyEvent)
}

// MouseMode is implemented by modes that also consume pointer events.
type MouseMode interface {
	Mode

	// HandleMouse consumes one pointer message, reporting whether it acted.
	HandleMouse(ctx *Context, msg *event.Message) bool
}

// StateName is implemented by modes that expose their internal editing
// state (e.g., "normal", "insert") for status display.
type StateName interface {
	State() string
}
