// Package term is a tcell-backed terminal host for the editor engine: it
// implements display.Display over a terminal screen, translates tcell input
// events into engine key and mouse events, and runs the frame loop.
package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/display"
	"github.com/dshills/quill/editor"
	"github.com/dshills/quill/event"
	"github.com/dshills/quill/mode"
	"github.com/dshills/quill/syntax"
	"github.com/dshills/quill/window"
)

// Terminal hosts one editor session on a tcell screen. One terminal cell is
// one logical display unit.
type Terminal struct {
	screen tcell.Screen
	ed     *editor.Editor

	styleText    tcell.Style
	styleStatus  tcell.Style
	styleTab     tcell.Style
	styleKeyword tcell.Style
	styleComment tcell.Style
	styleString  tcell.Style
}

// New initializes a tcell screen around an editor session.
func New(ed *editor.Editor) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	screen.EnableMouse()

	base := tcell.StyleDefault
	return &Terminal{
		screen:       screen,
		ed:           ed,
		styleText:    base,
		styleStatus:  base.Reverse(true),
		styleTab:     base.Bold(true),
		styleKeyword: base.Foreground(tcell.ColorYellow),
		styleComment: base.Foreground(tcell.ColorGray),
		styleString:  base.Foreground(tcell.ColorGreen),
	}, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// PixelScale implements display.Display: terminal cells are unit-sized.
func (t *Terminal) PixelScale() display.Vec2 {
	return display.Vec2{X: 1, Y: 1}
}

// DrawRegion implements display.Display. The terminal draws whole frames in
// Run; region callbacks need no per-region work here.
func (t *Terminal) DrawRegion(display.RegionKind, display.Rect) {}

// Run drives the session until a quit request: polls tcell events,
// translates them for the engine, and redraws when the engine asks.
func (t *Terminal) Run() error {
	w, h := t.screen.Size()
	t.ed.SetDisplaySize(display.Vec2{X: float32(w), Y: float32(h)})
	t.render()

	for {
		ev := t.screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventResize:
			w, h := tev.Size()
			t.ed.SetDisplaySize(display.Vec2{X: float32(w), Y: float32(h)})
			t.screen.Sync()
			t.render()

		case *tcell.EventKey:
			t.ed.OnKey(translateKey(tev))

		case *tcell.EventMouse:
			t.handleMouse(tev)
		}

		t.ed.Tick()
		if t.ed.QuitRequested() {
			return nil
		}
		if t.ed.RefreshRequired() {
			t.render()
		}
	}
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := display.Vec2{X: float32(x), Y: float32(y)}
	mods := translateModifiers(ev.Modifiers())

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		t.ed.OnMouseWheel(pos, 1)
	case ev.Buttons()&tcell.WheelDown != 0:
		t.ed.OnMouseWheel(pos, -1)
	case ev.Buttons()&tcell.Button1 != 0:
		t.ed.OnMouseDown(pos, event.ButtonLeft, mods, 1)
	case ev.Buttons()&tcell.Button2 != 0:
		t.ed.OnMouseDown(pos, event.ButtonMiddle, mods, 1)
	case ev.Buttons()&tcell.Button3 != 0:
		t.ed.OnMouseDown(pos, event.ButtonRight, mods, 1)
	default:
		t.ed.OnMouseMove(pos)
	}
}

// render paints one full frame: tab strip, buffer text, status and command
// rows.
func (t *Terminal) render() {
	t.screen.Clear()
	t.ed.UpdateTabs()

	w, h := t.screen.Size()
	row := 0

	if tabs := t.ed.TabWindows(); len(tabs) > 1 {
		col := 0
		for _, tab := range tabs {
			style := t.styleText
			if tab == t.ed.ActiveTabWindow() {
				style = t.styleTab
			}
			col = t.drawString(col, row, " "+tab.Name()+" ", style)
		}
		row++
	}

	b := t.ed.ActiveBuffer()
	win := t.ed.ActiveWindow()

	contentRows := h - row - 2
	if b != nil && win != nil && contentRows > 0 {
		t.drawBuffer(b, win, row, contentRows, w)
	}

	t.drawStatus(b, w, h-2)
	t.drawString(0, h-1, t.ed.GetCommandText(), t.styleText)

	if b != nil && win != nil && t.ed.GetCursorBlinkState() {
		line, col := b.Position(win.Cursor())
		screenRow := row + line - win.ScrollLine()
		if screenRow >= row && screenRow < row+contentRows {
			t.screen.ShowCursor(col, screenRow)
		}
	} else {
		t.screen.HideCursor()
	}

	t.screen.Show()
}

func (t *Terminal) drawBuffer(b *buffer.Buffer, win *window.Window, top, rows, width int) {
	// Keep the cursor line in view.
	cursorLine, _ := b.Position(win.Cursor())
	scroll := win.ScrollLine()
	if cursorLine < scroll {
		scroll = cursorLine
	} else if cursorLine >= scroll+rows {
		scroll = cursorLine - rows + 1
	}
	win.SetScrollLine(scroll)

	syn := t.ed.BufferSyntax(b)
	var tokens []syntax.Token
	if syn != nil {
		tokens = syn.Tokens()
	}

	for i := 0; i < rows; i++ {
		lineNo := scroll + i
		if lineNo >= b.LineCount() {
			break
		}
		start := b.LineStart(lineNo)
		line := []rune(b.Line(lineNo))
		col := 0
		for j, r := range line {
			if col >= width {
				break
			}
			t.screen.SetContent(col, top+i, r, nil, t.styleFor(tokens, start+j))
			col += runewidth.RuneWidth(r)
		}
	}
}

// styleFor maps a rune offset to the style of the token covering it.
func (t *Terminal) styleFor(tokens []syntax.Token, offset int) tcell.Style {
	for _, tok := range tokens {
		if offset < tok.Start {
			break
		}
		if offset < tok.End {
			switch {
			case strings.HasPrefix(tok.Scope, "keyword"):
				return t.styleKeyword
			case strings.HasPrefix(tok.Scope, "comment"):
				return t.styleComment
			case strings.HasPrefix(tok.Scope, "literalstring"), strings.HasPrefix(tok.Scope, "string"):
				return t.styleString
			default:
				return t.styleText
			}
		}
	}
	return t.styleText
}

func (t *Terminal) drawStatus(b *buffer.Buffer, w, row int) {
	var sb strings.Builder
	if m := t.ed.GetGlobalMode(); m != nil {
		state := m.Name()
		if sn, ok := m.(mode.StateName); ok {
			state += ":" + sn.State()
		}
		sb.WriteString(" [" + state + "]")
	}
	if b != nil {
		sb.WriteString(" " + b.Name())
		if b.IsDirty() {
			sb.WriteString(" [+]")
		}
	}
	line := sb.String()
	for len(line) < w {
		line += " "
	}
	t.drawString(0, row, line, t.styleStatus)
}

// drawString writes text at (col, row), advancing by display width so wide
// runes occupy two cells. Returns the next free column.
func (t *Terminal) drawString(col, row int, text string, style tcell.Style) int {
	for _, r := range text {
		t.screen.SetContent(col, row, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	return col
}

func translateKey(ev *tcell.EventKey) mode.KeyEvent {
	mods := translateModifiers(ev.Modifiers())
	switch ev.Key() {
	case tcell.KeyEscape:
		return mode.KeyEvent{Key: mode.KeyEscape, Modifiers: mods}
	case tcell.KeyEnter:
		return mode.KeyEvent{Key: mode.KeyEnter, Modifiers: mods}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return mode.KeyEvent{Key: mode.KeyBackspace, Modifiers: mods}
	case tcell.KeyDelete:
		return mode.KeyEvent{Key: mode.KeyDelete, Modifiers: mods}
	case tcell.KeyTab:
		return mode.KeyEvent{Key: mode.KeyTab, Modifiers: mods}
	case tcell.KeyLeft:
		return mode.KeyEvent{Key: mode.KeyLeft, Modifiers: mods}
	case tcell.KeyRight:
		return mode.KeyEvent{Key: mode.KeyRight, Modifiers: mods}
	case tcell.KeyUp:
		return mode.KeyEvent{Key: mode.KeyUp, Modifiers: mods}
	case tcell.KeyDown:
		return mode.KeyEvent{Key: mode.KeyDown, Modifiers: mods}
	case tcell.KeyHome:
		return mode.KeyEvent{Key: mode.KeyHome, Modifiers: mods}
	case tcell.KeyEnd:
		return mode.KeyEvent{Key: mode.KeyEnd, Modifiers: mods}
	case tcell.KeyPgUp:
		return mode.KeyEvent{Key: mode.KeyPageUp, Modifiers: mods}
	case tcell.KeyPgDn:
		return mode.KeyEvent{Key: mode.KeyPageDown, Modifiers: mods}
	case tcell.KeyRune:
		return mode.KeyEvent{Rune: ev.Rune(), Modifiers: mods}
	default:
		return mode.KeyEvent{Modifiers: mods}
	}
}

func translateModifiers(m tcell.ModMask) event.Modifier {
	var out event.Modifier
	if m&tcell.ModShift != 0 {
		out |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= event.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= event.ModMeta
	}
	return out
}
