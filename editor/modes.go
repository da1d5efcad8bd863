package editor

import (
	"path/filepath"
	"strings"

	"github.com/dshills/quill/event"
	"github.com/dshills/quill/mode"
)

// RegisterGlobalMode registers (or replaces) a global mode. The first
// registered global mode becomes current.
func (e *Editor) RegisterGlobalMode(m mode.Mode) {
	e.modes.RegisterGlobal(m)
}

// SetGlobalMode switches the current global mode by name.
func (e *Editor) SetGlobalMode(name string) error {
	if err := e.modes.SetCurrent(name); err != nil {
		return ErrUnknownMode
	}
	if m := e.modes.Current(); m != nil {
		m.Begin(e.modeContext())
	}
	e.RequestRefresh()
	return nil
}

// GetGlobalMode returns the current global mode.
func (e *Editor) GetGlobalMode() mode.Mode {
	return e.modes.Current()
}

// RegisterBufferMode binds a mode to a file extension, overriding the global
// mode for buffers with that extension.
func (e *Editor) RegisterBufferMode(ext string, m mode.Mode) {
	e.modes.RegisterBuffer(ext, m)
}

// GlobalModeNames returns the registered global mode names, sorted.
func (e *Editor) GlobalModeNames() []string {
	return e.modes.GlobalNames()
}

// activeMode resolves the mode for the active buffer: a buffer mode bound to
// its extension wins over the current global mode.
func (e *Editor) activeMode() mode.Mode {
	ext := ""
	if b := e.ActiveBuffer(); b != nil {
		if p := b.Path(); p != "" {
			ext = strings.TrimPrefix(filepath.Ext(p), ".")
		}
	}
	return e.modes.Resolve(ext)
}

// modeContext builds the collaborator view handed to modes on each key.
func (e *Editor) modeContext() *mode.Context {
	return &mode.Context{
		Buffer:    e.ActiveBuffer(),
		Window:    e.ActiveWindow(),
		Registers: e.registers,
		Post: func(msg *event.Message) {
			e.Notify(msg)
		},
		RunCommand: func(name string, args []string) bool {
			return e.runExCommand(name, args)
		},
		SetCommandText: func(text string) {
			e.SetCommandText(text)
		},
	}
}

// OnKey routes one key event through the active mode. Mode panics are
// contained; the session stays usable. Edits are detected by buffer version
// and announced on the bus, with a syntax rebuild scheduled.
func (e *Editor) OnKey(ev mode.KeyEvent) {
	e.drain()

	// Nothing to edit yet: keys before Init* are dropped.
	if e.ActiveWindow() == nil {
		return
	}
	m := e.activeMode()
	if m == nil {
		return
	}
	ctx := e.modeContext()

	var before int64
	if ctx.Buffer != nil {
		before = ctx.Buffer.Version()
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				e.log.Errorf("mode %s panic on key: %v", m.Name(), r)
			}
		}()
		m.HandleKey(ctx, ev)
	}()

	e.ResetCursorTimer()

	if ctx.Buffer != nil && ctx.Buffer.Version() != before {
		e.ResetLastEditTimer()
		e.Notify(event.NewMessage(event.KindBuffer, ctx.Buffer.Name()))
		e.scheduleSyntaxRebuild(ctx.Buffer)
	}
	e.RequestRefresh()
}
