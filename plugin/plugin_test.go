package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/quill/editor"
)

func newTestHost(t *testing.T) (*Host, *editor.Editor) {
	t.Helper()
	ed, err := editor.New(editor.Options{
		Flags:     editor.FlagDisableThreads,
		Clipboard: editor.NewMemoryClipboard(),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ed.Close)

	h := NewHost(ed)
	t.Cleanup(h.Close)
	return h, ed
}

func TestHost_RegisterCommand(t *testing.T) {
	h, ed := newTestHost(t)
	ed.InitWithText("t", "")

	script := `
quill.register_command("hello", function(args)
  quill.set_command_text("hello " .. (args[1] or "world"))
end)
`
	if err := h.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}

	cmd := ed.FindExCommand("hello")
	if cmd == nil {
		t.Fatal("lua command not registered")
	}
	if err := cmd.Run(ed, []string{"quill"}); err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if got := ed.GetCommandText(); got != "hello quill" {
		t.Errorf("command text = %q", got)
	}
}

func TestHost_CommandErrorString(t *testing.T) {
	h, ed := newTestHost(t)

	script := `
quill.register_command("fail", function(args)
  return "it broke"
end)
`
	if err := h.DoString(script); err != nil {
		t.Fatal(err)
	}
	err := ed.FindExCommand("fail").Run(ed, nil)
	if err == nil || err.Error() != "it broke" {
		t.Errorf("err = %v, want %q", err, "it broke")
	}
}

func TestHost_BufferAccess(t *testing.T) {
	h, ed := newTestHost(t)
	ed.InitWithText("t", "abc")

	script := `
quill.insert_text(3, "def")
text = quill.buffer_text()
`
	if err := h.DoString(script); err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if got := ed.ActiveBuffer().Text(); got != "abcdef" {
		t.Errorf("buffer = %q", got)
	}
	if got := h.state.GetGlobal("text").String(); got != "abcdef" {
		t.Errorf("lua saw %q", got)
	}
}

func TestHost_RequestQuit(t *testing.T) {
	h, ed := newTestHost(t)
	if err := h.DoString(`quill.request_quit()`); err != nil {
		t.Fatal(err)
	}
	if !ed.QuitRequested() {
		t.Error("quit request lost")
	}
}

func TestHost_LoadDir(t *testing.T) {
	h, ed := newTestHost(t)
	dir := t.TempDir()

	good := `quill.register_command("fromfile", function(args) end)`
	if err := os.WriteFile(filepath.Join(dir, "good.lua"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.lua"), []byte("this is not lua"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := h.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if ed.FindExCommand("fromfile") == nil {
		t.Error("good script not loaded")
	}
	loaded := h.Loaded()
	if len(loaded) != 1 || loaded[0] != "good" {
		t.Errorf("Loaded = %v, want [good]", loaded)
	}
}

func TestHost_Reload(t *testing.T) {
	h, _ := newTestHost(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "count.lua")
	if err := os.WriteFile(path, []byte("counter = (counter or 0) + 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := h.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if err := h.Reload("count"); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := h.state.GetGlobal("counter").String(); got != "2" {
		t.Errorf("counter = %s, want 2", got)
	}

	if err := h.Reload("absent"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("err = %v, want ErrNotLoaded", err)
	}
}

func TestHost_LoadDirMissing(t *testing.T) {
	h, _ := newTestHost(t)
	if err := h.LoadDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("missing plugin dir should error")
	}
}
