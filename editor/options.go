package editor

import (
	"io"

	"github.com/atotto/clipboard"

	"github.com/dshills/quill/display"
	"github.com/dshills/quill/filesystem"
)

// Flags is the startup flag bit-field.
type Flags uint32

const (
	// FlagDisableThreads makes every background submission execute
	// synchronously in the caller. Useful for deterministic tests.
	FlagDisableThreads Flags = 1 << iota

	// FlagFastUpdate hints the host toward reduced-fidelity, low-latency
	// rendering. The engine only stores and reports it.
	FlagFastUpdate
)

// Has reports whether all bits in value are set.
func (f Flags) Has(value Flags) bool {
	return f&value == value
}

// Clipboard bridges register content to the host system clipboard.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// SystemClipboard is the default Clipboard backed by the OS clipboard.
type SystemClipboard struct{}

// Read returns the system clipboard content.
func (SystemClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

// Write replaces the system clipboard content.
func (SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

// memClipboard is an in-process clipboard used when the system clipboard is
// unavailable or undesired (headless tests).
type memClipboard struct {
	text string
}

func (m *memClipboard) Read() (string, error) { return m.text, nil }

func (m *memClipboard) Write(text string) error { m.text = text; return nil }

// NewMemoryClipboard creates an in-process Clipboard.
func NewMemoryClipboard() Clipboard {
	return &memClipboard{}
}

// Options configures a new editor session.
type Options struct {
	// Display is the host rendering backend. Defaults to display.Null.
	Display display.Display

	// FileSystem is the file access collaborator. Defaults to the local
	// disk.
	FileSystem filesystem.FileSystem

	// Clipboard bridges registers to the host clipboard. Defaults to the
	// system clipboard.
	Clipboard Clipboard

	// ConfigRoot is the directory searched for a quill.toml or
	// quill.yaml configuration file. Empty skips config loading.
	ConfigRoot string

	// Flags is the startup flag bit-field.
	Flags Flags

	// Workers sets the background pool size. Zero uses the default.
	Workers int

	// WatchFiles enables fsnotify-based external change notification for
	// file-backed buffers.
	WatchFiles bool

	// LogWriter receives engine diagnostics. Nil discards them.
	LogWriter io.Writer

	// LogLevel sets the logging verbosity.
	LogLevel LogLevel
}
