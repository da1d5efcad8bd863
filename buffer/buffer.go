// Package buffer provides the in-memory text container managed by the editor.
//
// A Buffer is identified by a stable numeric Handle. Windows and background
// jobs refer to buffers by handle, never by pointer; resolving a handle after
// the buffer was removed is a defined not-found condition. Buffers are owned
// exclusively by the editor's registry and mutated only on the editor thread.
package buffer

import (
	"strings"
	"sync/atomic"
)

// Handle is a stable numeric buffer identifier. Handles are never reused
// within an editor session.
type Handle uint64

// None is the zero handle; it never resolves to a buffer.
const None Handle = 0

// Flags describe buffer state and creation options.
type Flags uint32

const (
	// FlagReadOnly marks a buffer that refuses mutation.
	FlagReadOnly Flags = 1 << iota
	// FlagLocked marks a buffer that must not be removed (e.g., UI-owned).
	FlagLocked
	// FlagDirty marks unsaved changes.
	FlagDirty
)

// Has reports whether all bits in value are set.
func (f Flags) Has(value Flags) bool {
	return f&value == value
}

// Buffer is one edited document: text content plus identity and state.
type Buffer struct {
	handle Handle
	path   string // resolved file path, empty for scratch buffers
	name   string
	flags  Flags

	text []rune

	// version increments on every mutation. Background work snapshots the
	// version at submission and discards results when it has moved on.
	version atomic.Int64

	syntaxID string
}

// New creates a buffer with the given handle and display name.
func New(handle Handle, name string) *Buffer {
	return &Buffer{handle: handle, name: name}
}

// Handle returns the buffer's stable identifier.
func (b *Buffer) Handle() Handle { return b.handle }

// Path returns the resolved file path, or "" for scratch buffers.
func (b *Buffer) Path() string { return b.path }

// SetPath associates the buffer with a file path.
func (b *Buffer) SetPath(path string) { b.path = path }

// Name returns the display name.
func (b *Buffer) Name() string { return b.name }

// SetName changes the display name.
func (b *Buffer) SetName(name string) { b.name = name }

// Flags returns the current flag set.
func (b *Buffer) Flags() Flags { return b.flags }

// SetFlags sets the given flag bits.
func (b *Buffer) SetFlags(f Flags) { b.flags |= f }

// ClearFlags clears the given flag bits.
func (b *Buffer) ClearFlags(f Flags) { b.flags &^= f }

// HasFlags reports whether all given flag bits are set.
func (b *Buffer) HasFlags(f Flags) bool { return b.flags.Has(f) }

// IsDirty reports whether the buffer has unsaved changes.
func (b *Buffer) IsDirty() bool { return b.HasFlags(FlagDirty) }

// IsScratch reports whether the buffer has no backing file.
func (b *Buffer) IsScratch() bool { return b.path == "" }

// Version returns the mutation counter.
func (b *Buffer) Version() int64 { return b.version.Load() }

// SyntaxID returns the explicit syntax identifier, if one was assigned.
func (b *Buffer) SyntaxID() string { return b.syntaxID }

// SetSyntaxID pins the buffer to a syntax identifier, overriding
// extension-based resolution.
func (b *Buffer) SetSyntaxID(id string) { b.syntaxID = id }

// Len returns the text length in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Text returns the full buffer content.
func (b *Buffer) Text() string { return string(b.text) }

// SetText replaces the whole content. The dirty flag is left untouched so
// loaders can install initial content without marking the buffer modified.
func (b *Buffer) SetText(s string) {
	b.text = []rune(s)
	b.version.Add(1)
}

// Insert inserts s at the given rune offset, clamped to the valid range.
// Read-only buffers ignore the request.
func (b *Buffer) Insert(at int, s string) {
	if b.HasFlags(FlagReadOnly) || s == "" {
		return
	}
	at = clamp(at, 0, len(b.text))
	ins := []rune(s)
	b.text = append(b.text[:at], append(ins, b.text[at:]...)...)
	b.flags |= FlagDirty
	b.version.Add(1)
}

// Delete removes the rune range [from, to), clamped to the valid range.
// Read-only buffers ignore the request.
func (b *Buffer) Delete(from, to int) {
	if b.HasFlags(FlagReadOnly) {
		return
	}
	from = clamp(from, 0, len(b.text))
	to = clamp(to, from, len(b.text))
	if from == to {
		return
	}
	b.text = append(b.text[:from], b.text[to:]...)
	b.flags |= FlagDirty
	b.version.Add(1)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	count := 1
	for _, r := range b.text {
		if r == '\n' {
			count++
		}
	}
	return count
}

// LineStart returns the rune offset of the first character of line (0-based).
// Out-of-range lines clamp to the nearest valid line start.
func (b *Buffer) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	seen := 0
	for i, r := range b.text {
		if r == '\n' {
			seen++
			if seen == line {
				return i + 1
			}
		}
	}
	return len(b.text)
}

// LineEnd returns the rune offset one past the last character of line,
// excluding the trailing newline.
func (b *Buffer) LineEnd(line int) int {
	start := b.LineStart(line)
	for i := start; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			return i
		}
	}
	return len(b.text)
}

// Line returns the text of the given line without its trailing newline.
func (b *Buffer) Line(line int) string {
	return string(b.text[b.LineStart(line):b.LineEnd(line)])
}

// Position converts a rune offset into a (line, column) pair.
func (b *Buffer) Position(offset int) (line, col int) {
	offset = clamp(offset, 0, len(b.text))
	for i := 0; i < offset; i++ {
		if b.text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// Offset converts a (line, column) pair into a rune offset, clamping the
// column to the line's extent.
func (b *Buffer) Offset(line, col int) int {
	start := b.LineStart(line)
	end := b.LineEnd(line)
	return clamp(start+col, start, end)
}

// String implements fmt.Stringer for debugging.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString(b.name)
	if b.IsDirty() {
		sb.WriteString(" [+]")
	}
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
