// Package filesystem defines the file access collaborator the editor loads
// and saves buffers through, plus an fsnotify-based watcher that surfaces
// external file changes to the editor.
package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound reports a path with no file behind it.
var ErrNotFound = errors.New("filesystem: file not found")

// FileSystem is the editor's file access boundary. Implementations are
// expected to be fast and local; the editor calls Read synchronously from
// the editor thread.
type FileSystem interface {
	// Read returns the file content, or an error wrapping ErrNotFound.
	Read(path string) ([]byte, error)

	// Write replaces the file content, creating the file if needed.
	Write(path string, data []byte) error

	// Resolve normalizes a path into the canonical form used as the
	// buffer deduplication key.
	Resolve(path string) (string, error)

	// Exists reports whether the path resolves to a file.
	Exists(path string) bool
}

// OS is the local-disk FileSystem.
type OS struct{}

// NewOS creates the local-disk filesystem collaborator.
func NewOS() *OS { return &OS{} }

// Read returns the file content.
func (o *OS) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the file content.
func (o *OS) Write(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// Resolve cleans the path and makes it absolute.
func (o *OS) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// Exists reports whether the path resolves to a regular file.
func (o *OS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
