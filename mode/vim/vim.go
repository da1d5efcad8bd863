// Package vim implements a minimal Vim-style modal grammar: normal, insert,
// visual and command-line states over the mode contract. The grammar covers
// the core motions and operators; it is a starting point for hosts, not a
// complete Vim.
package vim

import (
	"strings"

	"github.com/dshills/quill/event"
	"github.com/dshills/quill/mode"
	"github.com/dshills/quill/register"
)

// Name is the registry key for the vim mode.
const Name = "vim"

// DefaultRegister is the unnamed register used by yank and put.
const DefaultRegister = `"`

type state int

const (
	stateNormal state = iota
	stateInsert
	stateVisual
	stateCommand
)

// Mode is the Vim-style modal editing mode.
type Mode struct {
	state state

	// pending holds an operator awaiting its second key (d, y, g).
	pending rune

	// anchor is the visual-selection start offset.
	anchor int

	// cmdline accumulates the ex command being typed.
	cmdline strings.Builder
}

// New creates the vim mode in normal state.
func New() *Mode { return &Mode{} }

// Name returns the mode identifier.
func (m *Mode) Name() string { return Name }

// State reports the current editing state for status display.
func (m *Mode) State() string {
	switch m.state {
	case stateInsert:
		return "insert"
	case stateVisual:
		return "visual"
	case stateCommand:
		return "command"
	default:
		return "normal"
	}
}

// Begin resets the state machine to normal.
func (m *Mode) Begin(ctx *mode.Context) {
	m.state = stateNormal
	m.pending = 0
	m.cmdline.Reset()
	if ctx != nil && ctx.SetCommandText != nil {
		ctx.SetCommandText("")
	}
}

// HandleKey consumes one keyboard event.
func (m *Mode) HandleKey(ctx *mode.Context, ev mode.KeyEvent) {
	switch m.state {
	case stateInsert:
		m.handleInsert(ctx, ev)
	case stateVisual:
		m.handleVisual(ctx, ev)
	case stateCommand:
		m.handleCommand(ctx, ev)
	default:
		m.handleNormal(ctx, ev)
	}
}

func (m *Mode) handleNormal(ctx *mode.Context, ev mode.KeyEvent) {
	buf := ctx.Buffer
	win := ctx.Window
	cursor := win.Cursor()

	if m.pending != 0 {
		pending := m.pending
		m.pending = 0
		if !ev.IsRune() {
			return
		}
		switch {
		case pending == 'd' && ev.Rune == 'd':
			m.deleteLine(ctx)
		case pending == 'y' && ev.Rune == 'y':
			m.yankLine(ctx)
		case pending == 'g' && ev.Rune == 'g':
			win.SetCursor(0)
		}
		return
	}

	if !ev.IsRune() {
		m.handleMotionKey(ctx, ev)
		return
	}

	switch ev.Rune {
	case 'h':
		if cursor > 0 {
			win.SetCursor(cursor - 1)
		}
	case 'l':
		if cursor < buf.Len() {
			win.SetCursor(cursor + 1)
		}
	case 'j':
		line, col := buf.Position(cursor)
		if line < buf.LineCount()-1 {
			win.SetCursor(buf.Offset(line+1, col))
		}
	case 'k':
		line, col := buf.Position(cursor)
		if line > 0 {
			win.SetCursor(buf.Offset(line-1, col))
		}
	case '0':
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineStart(line))
	case '$':
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineEnd(line))
	case 'G':
		win.SetCursor(buf.LineStart(buf.LineCount() - 1))
	case 'i':
		m.state = stateInsert
	case 'a':
		if cursor < buf.Len() {
			win.SetCursor(cursor + 1)
		}
		m.state = stateInsert
	case 'A':
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineEnd(line))
		m.state = stateInsert
	case 'o':
		line, _ := buf.Position(cursor)
		end := buf.LineEnd(line)
		buf.Insert(end, "\n")
		win.SetCursor(end + 1)
		m.state = stateInsert
	case 'x':
		if cursor < buf.Len() {
			ctx.Registers.Set(DefaultRegister, register.Register{Text: substring(buf, cursor, cursor+1)})
			buf.Delete(cursor, cursor+1)
		}
	case 'd':
		m.pending = 'd'
	case 'y':
		m.pending = 'y'
	case 'g':
		m.pending = 'g'
	case 'p':
		m.put(ctx)
	case 'v':
		m.anchor = cursor
		m.state = stateVisual
	case ':':
		m.state = stateCommand
		m.cmdline.Reset()
		m.cmdline.WriteRune(':')
		m.echoCommand(ctx)
	}
}

func (m *Mode) handleInsert(ctx *mode.Context, ev mode.KeyEvent) {
	buf := ctx.Buffer
	win := ctx.Window
	cursor := win.Cursor()

	switch {
	case ev.Key == mode.KeyEscape:
		m.state = stateNormal
		if cursor > 0 {
			win.SetCursor(cursor - 1)
		}
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
	default:
		m.handleMotionKey(ctx, ev)
	}
}

func (m *Mode) handleVisual(ctx *mode.Context, ev mode.KeyEvent) {
	buf := ctx.Buffer
	win := ctx.Window

	if ev.Key == mode.KeyEscape {
		m.state = stateNormal
		return
	}
	if !ev.IsRune() {
		m.handleMotionKey(ctx, ev)
		return
	}

	switch ev.Rune {
	case 'h', 'l', 'j', 'k', '0', '$', 'G':
		m.handleNormalMotion(ctx, ev.Rune)
	case 'd', 'x':
		from, to := ordered(m.anchor, win.Cursor())
		if to < buf.Len() {
			to++
		}
		ctx.Registers.Set(DefaultRegister, register.Register{Text: substring(buf, from, to)})
		buf.Delete(from, to)
		win.SetCursor(from)
		m.state = stateNormal
	case 'y':
		from, to := ordered(m.anchor, win.Cursor())
		if to < buf.Len() {
			to++
		}
		ctx.Registers.Set(DefaultRegister, register.Register{Text: substring(buf, from, to)})
		win.SetCursor(from)
		m.state = stateNormal
	}
}

func (m *Mode) handleCommand(ctx *mode.Context, ev mode.KeyEvent) {
	switch {
	case ev.Key == mode.KeyEscape:
		m.state = stateNormal
		m.cmdline.Reset()
		m.echoCommand(ctx)

	case ev.Key == mode.KeyEnter:
		line := strings.TrimPrefix(m.cmdline.String(), ":")
		m.cmdline.Reset()
		m.state = stateNormal
		m.echoCommand(ctx)
		if line != "" && ctx.Post != nil {
			ctx.Post(event.NewMessage(event.KindHandleCommand, line))
		}

	case ev.Key == mode.KeyBackspace:
		s := m.cmdline.String()
		if len(s) > 1 {
			m.cmdline.Reset()
			m.cmdline.WriteString(s[:len(s)-1])
		} else {
			m.cmdline.Reset()
			m.state = stateNormal
		}
		m.echoCommand(ctx)

	case ev.IsRune():
		m.cmdline.WriteRune(ev.Rune)
		m.echoCommand(ctx)
	}
}

// handleNormalMotion applies a normal-mode motion rune without operator
// handling, used while extending a visual selection.
func (m *Mode) handleNormalMotion(ctx *mode.Context, r rune) {
	buf := ctx.Buffer
	win := ctx.Window
	cursor := win.Cursor()

	switch r {
	case 'h':
		if cursor > 0 {
			win.SetCursor(cursor - 1)
		}
	case 'l':
		if cursor < buf.Len() {
			win.SetCursor(cursor + 1)
		}
	case 'j':
		line, col := buf.Position(cursor)
		if line < buf.LineCount()-1 {
			win.SetCursor(buf.Offset(line+1, col))
		}
	case 'k':
		line, col := buf.Position(cursor)
		if line > 0 {
			win.SetCursor(buf.Offset(line-1, col))
		}
	case '0':
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineStart(line))
	case '$':
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineEnd(line))
	case 'G':
		win.SetCursor(buf.LineStart(buf.LineCount() - 1))
	}
}

// handleMotionKey applies arrow/home/end keys in any state.
func (m *Mode) handleMotionKey(ctx *mode.Context, ev mode.KeyEvent) {
	buf := ctx.Buffer
	win := ctx.Window
	cursor := win.Cursor()

	switch ev.Key {
	case mode.KeyLeft:
		if cursor > 0 {
			win.SetCursor(cursor - 1)
		}
	case mode.KeyRight:
		if cursor < buf.Len() {
			win.SetCursor(cursor + 1)
		}
	case mode.KeyUp:
		line, col := buf.Position(cursor)
		if line > 0 {
			win.SetCursor(buf.Offset(line-1, col))
		}
	case mode.KeyDown:
		line, col := buf.Position(cursor)
		if line < buf.LineCount()-1 {
			win.SetCursor(buf.Offset(line+1, col))
		}
	case mode.KeyHome:
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineStart(line))
	case mode.KeyEnd:
		line, _ := buf.Position(cursor)
		win.SetCursor(buf.LineEnd(line))
	}
}

// deleteLine implements dd: delete the cursor line into the default
// register, line-wise.
func (m *Mode) deleteLine(ctx *mode.Context) {
	buf := ctx.Buffer
	win := ctx.Window
	line, _ := buf.Position(win.Cursor())

	from := buf.LineStart(line)
	to := buf.LineEnd(line)
	text := substring(buf, from, to)
	if to < buf.Len() {
		to++ // take the newline with the line
	} else if from > 0 {
		from-- // last line: remove the preceding newline instead
	}

	ctx.Registers.Set(DefaultRegister, register.Register{Text: text + "\n", LineWise: true})
	buf.Delete(from, to)
	win.SetCursor(buf.LineStart(min(line, buf.LineCount()-1)))
}

// yankLine implements yy: copy the cursor line into the default register.
func (m *Mode) yankLine(ctx *mode.Context) {
	buf := ctx.Buffer
	line, _ := buf.Position(ctx.Window.Cursor())
	text := substring(buf, buf.LineStart(line), buf.LineEnd(line))
	ctx.Registers.Set(DefaultRegister, register.Register{Text: text + "\n", LineWise: true})
}

// put implements p: paste the default register after the cursor (line-wise
// registers paste on the following line).
func (m *Mode) put(ctx *mode.Context) {
	reg, ok := ctx.Registers.Get(DefaultRegister)
	if !ok || reg.Text == "" {
		return
	}
	buf := ctx.Buffer
	win := ctx.Window
	cursor := win.Cursor()

	if reg.LineWise {
		line, _ := buf.Position(cursor)
		end := buf.LineEnd(line)
		if end >= buf.Len() {
			buf.Insert(end, "\n"+strings.TrimSuffix(reg.Text, "\n"))
			win.SetCursor(end + 1)
		} else {
			buf.Insert(end+1, reg.Text)
			win.SetCursor(end + 1)
		}
		return
	}

	at := cursor
	if at < buf.Len() {
		at++
	}
	buf.Insert(at, reg.Text)
	win.SetCursor(at)
}

func (m *Mode) echoCommand(ctx *mode.Context) {
	if ctx.SetCommandText != nil {
		ctx.SetCommandText(m.cmdline.String())
	}
}

func ordered(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}

func substring(buf interface{ Text() string }, from, to int) string {
	runes := []rune(buf.Text())
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from >= to {
		return ""
	}
	return string(runes[from:to])
}
