package standard

import (
	"testing"

	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/mode"
	"github.com/dshills/quill/register"
	"github.com/dshills/quill/window"
)

func newContext(text string) (*mode.Context, *buffer.Buffer, *window.Window) {
	buf := buffer.New(1, "test")
	buf.SetText(text)
	tab := window.NewTabWindow()
	win := tab.AddWindow(buf.Handle())
	return &mode.Context{
		Buffer:    buf,
		Window:    win,
		Registers: register.NewStore(),
	}, buf, win
}

func TestMode_TypeText(t *testing.T) {
	m := New()
	ctx, buf, win := newContext("")

	for _, r := range "hi" {
		m.HandleKey(ctx, mode.KeyEvent{Rune: r})
	}
	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyEnter})
	m.HandleKey(ctx, mode.KeyEvent{Rune: 'x'})

	if got := buf.Text(); got != "hi\nx" {
		t.Errorf("text = %q, want %q", got, "hi\nx")
	}
	if win.Cursor() != 4 {
		t.Errorf("cursor = %d, want 4", win.Cursor())
	}
}

func TestMode_BackspaceDelete(t *testing.T) {
	m := New()
	ctx, buf, win := newContext("abc")
	win.SetCursor(2)

	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyBackspace})
	if got := buf.Text(); got != "ac" {
		t.Errorf("backspace: %q, want %q", got, "ac")
	}
	if win.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", win.Cursor())
	}

	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyDelete})
	if got := buf.Text(); got != "a" {
		t.Errorf("delete: %q, want %q", got, "a")
	}
}

func TestMode_BackspaceAtStart(t *testing.T) {
	m := New()
	ctx, buf, _ := newContext("abc")

	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyBackspace})
	if got := buf.Text(); got != "abc" {
		t.Errorf("backspace at start mutated the buffer: %q", got)
	}
}

func TestMode_ArrowNavigation(t *testing.T) {
	m := New()
	ctx, buf, win := newContext("ab\ncd")

	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyRight})
	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyDown})
	line, col := buf.Position(win.Cursor())
	if line != 1 || col != 1 {
		t.Errorf("after right+down: (%d,%d), want (1,1)", line, col)
	}

	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyHome})
	if win.Cursor() != 3 {
		t.Errorf("home: cursor = %d, want 3", win.Cursor())
	}
	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyEnd})
	if win.Cursor() != 5 {
		t.Errorf("end: cursor = %d, want 5", win.Cursor())
	}
	m.HandleKey(ctx, mode.KeyEvent{Key: mode.KeyUp})
	line, _ = buf.Position(win.Cursor())
	if line != 0 {
		t.Errorf("up: line = %d, want 0", line)
	}
}
