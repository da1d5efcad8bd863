package mode

import (
	"fmt"
	"sort"
	"strings"
)

// Manager is the two-level mode registry: global modes keyed by name with a
// single current mode, and buffer modes keyed by file extension. Resolution
// for a buffer prefers its extension's buffer mode and falls back to the
// current global mode.
//
// Registering under an existing key is upsert. Selecting an unknown global
// mode fails and leaves the prior mode current.
//
// Manager is owned by the editor and used only on the editor thread.
type Manager struct {
	global     map[string]Mode
	byExt      map[string]Mode
	current    Mode
	globalKeys []string
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		global: make(map[string]Mode),
		byExt:  make(map[string]Mode),
	}
}

// RegisterGlobal adds or replaces a global mode. The first registered mode
// becomes current.
func (m *Manager) RegisterGlobal(mode Mode) {
	name := mode.Name()
	if _, ok := m.global[name]; !ok {
		m.globalKeys = append(m.globalKeys, name)
	}
	m.global[name] = mode
	if m.current == nil {
		m.current = mode
	}
}

// RegisterBuffer adds or replaces the mode for a file extension.
// Extensions are normalized: lowercase, no leading dot.
func (m *Manager) RegisterBuffer(ext string, mode Mode) {
	m.byExt[normalizeExt(ext)] = mode
}

// SetCurrent selects the current global mode by name.
func (m *Manager) SetCurrent(name string) error {
	mode, ok := m.global[name]
	if !ok {
		return fmt.Errorf("unknown mode: %s", name)
	}
	m.current = mode
	return nil
}

// Current returns the current global mode, or nil if none is registered.
func (m *Manager) Current() Mode { return m.current }

// Global returns a global mode by name, or nil if not found.
func (m *Manager) Global(name string) Mode { return m.global[name] }

// BufferMode returns the mode registered for an extension, or nil.
func (m *Manager) BufferMode(ext string) Mode { return m.byExt[normalizeExt(ext)] }

// Resolve returns the mode that should receive input for a buffer with the
// given extension: its buffer mode if registered, else the current global
// mode. May return nil if no modes are registered at all.
func (m *Manager) Resolve(ext string) Mode {
	if mode, ok := m.byExt[normalizeExt(ext)]; ok {
		return mode
	}
	return m.current
}

// GlobalNames returns the registered global mode names, sorted.
func (m *Manager) GlobalNames() []string {
	names := make([]string, len(m.globalKeys))
	copy(names, m.globalKeys)
	sort.Strings(names)
	return names
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
