package buffer

import "testing"

func TestBuffer_InsertDelete(t *testing.T) {
	b := New(1, "test")
	b.SetText("hello world")
	if b.IsDirty() {
		t.Error("SetText should not mark the buffer dirty")
	}

	b.Insert(5, ",")
	if got := b.Text(); got != "hello, world" {
		t.Errorf("Insert: got %q, want %q", got, "hello, world")
	}
	if !b.IsDirty() {
		t.Error("Insert should mark the buffer dirty")
	}

	b.Delete(5, 6)
	if got := b.Text(); got != "hello world" {
		t.Errorf("Delete: got %q, want %q", got, "hello world")
	}
}

func TestBuffer_InsertClamped(t *testing.T) {
	b := New(1, "test")
	b.SetText("abc")

	b.Insert(-5, "x")
	if got := b.Text(); got != "xabc" {
		t.Errorf("negative offset: got %q, want %q", got, "xabc")
	}
	b.Insert(100, "y")
	if got := b.Text(); got != "xabcy" {
		t.Errorf("past-end offset: got %q, want %q", got, "xabcy")
	}
}

func TestBuffer_DeleteClamped(t *testing.T) {
	b := New(1, "test")
	b.SetText("abc")
	v := b.Version()

	b.Delete(2, 2)
	if b.Version() != v {
		t.Error("empty delete should not bump the version")
	}

	b.Delete(-10, 100)
	if got := b.Text(); got != "" {
		t.Errorf("clamped delete: got %q, want empty", got)
	}
}

func TestBuffer_ReadOnly(t *testing.T) {
	b := New(1, "test")
	b.SetText("abc")
	b.SetFlags(FlagReadOnly)
	v := b.Version()

	b.Insert(0, "x")
	b.Delete(0, 1)
	if got := b.Text(); got != "abc" {
		t.Errorf("read-only buffer mutated: %q", got)
	}
	if b.Version() != v {
		t.Error("read-only mutation bumped the version")
	}
}

func TestBuffer_Version(t *testing.T) {
	b := New(1, "test")
	if b.Version() != 0 {
		t.Errorf("new buffer version = %d, want 0", b.Version())
	}
	b.SetText("a")
	b.Insert(0, "b")
	b.Delete(0, 1)
	if b.Version() != 3 {
		t.Errorf("version = %d, want 3", b.Version())
	}
}

func TestBuffer_Lines(t *testing.T) {
	b := New(1, "test")
	b.SetText("one\ntwo\nthree")

	if got := b.LineCount(); got != 3 {
		t.Errorf("LineCount = %d, want 3", got)
	}

	tests := []struct {
		line  int
		start int
		end   int
		text  string
	}{
		{0, 0, 3, "one"},
		{1, 4, 7, "two"},
		{2, 8, 13, "three"},
		{99, 13, 13, ""},
	}
	for _, tt := range tests {
		if got := b.LineStart(tt.line); got != tt.start {
			t.Errorf("LineStart(%d) = %d, want %d", tt.line, got, tt.start)
		}
		if got := b.LineEnd(tt.line); got != tt.end {
			t.Errorf("LineEnd(%d) = %d, want %d", tt.line, got, tt.end)
		}
		if got := b.Line(tt.line); got != tt.text {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.text)
		}
	}
}

func TestBuffer_EmptyLineCount(t *testing.T) {
	b := New(1, "test")
	if got := b.LineCount(); got != 1 {
		t.Errorf("empty buffer LineCount = %d, want 1", got)
	}
}

func TestBuffer_PositionOffset(t *testing.T) {
	b := New(1, "test")
	b.SetText("ab\ncd\n")

	tests := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{3, 1, 0},
		{4, 1, 1},
		{6, 2, 0},
	}
	for _, tt := range tests {
		line, col := b.Position(tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = (%d,%d), want (%d,%d)", tt.offset, line, col, tt.line, tt.col)
		}
		if got := b.Offset(tt.line, tt.col); got != tt.offset {
			t.Errorf("Offset(%d,%d) = %d, want %d", tt.line, tt.col, got, tt.offset)
		}
	}

	// Column clamps to the line extent.
	if got := b.Offset(0, 99); got != 2 {
		t.Errorf("Offset(0,99) = %d, want 2", got)
	}
}

func TestBuffer_UnicodeOffsets(t *testing.T) {
	b := New(1, "test")
	b.SetText("héllo")
	b.Insert(2, "x")
	if got := b.Text(); got != "héxllo" {
		t.Errorf("rune-offset insert: got %q", got)
	}
	if got := b.Len(); got != 6 {
		t.Errorf("Len = %d, want 6 runes", got)
	}
}

func TestBuffer_Scratch(t *testing.T) {
	b := New(1, "scratch")
	if !b.IsScratch() {
		t.Error("buffer without path should be scratch")
	}
	b.SetPath("/tmp/file.txt")
	if b.IsScratch() {
		t.Error("buffer with path should not be scratch")
	}
}

func TestFlags_Has(t *testing.T) {
	f := FlagReadOnly | FlagDirty
	if !f.Has(FlagReadOnly) || !f.Has(FlagDirty) {
		t.Error("expected both flags set")
	}
	if f.Has(FlagLocked) {
		t.Error("FlagLocked should not be set")
	}
	if f.Has(FlagReadOnly | FlagLocked) {
		t.Error("Has requires all bits")
	}
}
