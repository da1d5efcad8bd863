// Package standard implements a conventional (non-modal) editing mode:
// printable keys insert, arrows move, there is no normal/insert distinction.
package standard

import (
	"github.com/dshills/quill/mode"
)

// Name is the registry key for the standard mode.
const Name = "standard"

// Mode is the conventional editing mode. It is stateless apart from the
// shared registry contract, so one instance serves every buffer.
type Mode struct{}

// New creates the standard mode.
func New() *Mode { return &Mode{} }

// Name returns the mode identifier.
func (m *Mode) Name() string { return Name }

// State reports the single editing state.
func (m *Mode) State() string { return "insert" }

// Begin resets nothing; the standard mode has no per-window state.
func (m *Mode) Begin(*mode.Context) {}

// HandleKey consumes one keyboard event.
func (m *Mode) HandleKey(ctx *mode.Context, ev mode.KeyEvent) {
	buf := ctx.Buffer
	win := ctx.Window
	cursor := win.Cursor()

	switch {
	case ev.IsRune():
		buf.Insert(cursor, string(ev.Rune))
		win.SetCursor(cursor + 1)

	case ev.Key == mode.KeyEnter:
		buf.Insert(cursor, "\n")
		win.SetCursor(cursor + 1)

	case ev.Key == mode.KeyTab:
		buf.Insert(cursor, "\t")
		win.SetCursor(cursor + 1)

	case ev.Key == mode.KeyBackspace:
		if cursor > 0 {
			buf.Delete(cursor-1, cursor)
			win.SetCursor(cursor - 1)
		}

	case ev.Key == mode.KeyDelete:
		if cursor < buf.Len() {
			buf.Delete(cursor, cursor+1)
		}

	case ev.Key == mode.KeyLeft:
		if cursor > 0 {
			win.SetCursor(cursor - 1)
		}

	case ev.Key == mode.KeyRight:
		if cursor < buf.Len() {
			win.SetCursor(cursor + 1)
		}

	case ev.Key == mode.KeyUp:
		line, col := buf.Position(cursor)
		if line > 0 {
			win.SetCursor(buf.Offset(line-1, col))
		}

	case ev.Key == mode.KeyDown:
		line, col := buf.Position(cursor)
		if line < buf.LineCount()-1 {
			win.SetCursor(buf.Offset(line+1, col))
		}

	case ev.Key == mode.KeyHome:
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineStart(line))

	case ev.Key == mode.KeyEnd:
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineEnd(line))
	}
}
