// Package plugin hosts Lua extension scripts. Scripts run inside an embedded
// gopher-lua state and reach the editor through a small `quill` table:
// registering ex-commands, reading and mutating the active buffer, setting
// command text and posting messages.
//
// The host lives on the editor thread; scripts execute synchronously during
// load and during command dispatch.
package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quill/editor"
	"github.com/dshills/quill/event"
)

var (
	// ErrNotLoaded is returned when addressing a script that never loaded.
	ErrNotLoaded = errors.New("plugin: script not loaded")
)

// Host owns one Lua state shared by every loaded script.
type Host struct {
	ed     *editor.Editor
	state  *lua.LState
	loaded map[string]string // script name -> path
}

// NewHost creates a plugin host bound to an editor session.
func NewHost(ed *editor.Editor) *Host {
	h := &Host{
		ed:     ed,
		state:  lua.NewState(),
		loaded: make(map[string]string),
	}
	h.installAPI()
	return h
}

// Close releases the Lua state. The host must not be used afterwards.
func (h *Host) Close() {
	h.state.Close()
}

// LoadDir loads every *.lua file under dir, in name order. Scripts that fail
// to load are skipped and logged; the rest still load.
func (h *Host) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("plugin dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := h.LoadFile(path); err != nil {
			h.ed.Log().Warnf("plugin %s: %v", name, err)
		}
	}
	return nil
}

// LoadFile loads and executes a single Lua script.
func (h *Host) LoadFile(path string) error {
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ".lua")
	h.loaded[name] = path
	h.ed.Log().Infof("plugin loaded: %s", name)
	return nil
}

// Reload re-executes a previously loaded script by name. Scripts that
// register ex-commands will fail here with a duplicate-registration error;
// reload is meant for configuration-style scripts.
func (h *Host) Reload(name string) error {
	path, ok := h.loaded[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotLoaded, name)
	}
	return h.LoadFile(path)
}

// DoString executes a Lua chunk against the shared state. Used by tests and
// by hosts offering a scripting console.
func (h *Host) DoString(src string) error {
	return h.state.DoString(src)
}

// Loaded returns the loaded script names, sorted.
func (h *Host) Loaded() []string {
	names := make([]string, 0, len(h.loaded))
	for name := range h.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// installAPI publishes the `quill` table into the Lua state.
func (h *Host) installAPI() {
	mod := h.state.NewTable()

	h.state.SetField(mod, "register_command", h.state.NewFunction(h.luaRegisterCommand))
	h.state.SetField(mod, "set_command_text", h.state.NewFunction(h.luaSetCommandText))
	h.state.SetField(mod, "buffer_text", h.state.NewFunction(h.luaBufferText))
	h.state.SetField(mod, "insert_text", h.state.NewFunction(h.luaInsertText))
	h.state.SetField(mod, "post", h.state.NewFunction(h.luaPost))
	h.state.SetField(mod, "request_quit", h.state.NewFunction(h.luaRequestQuit))

	h.state.SetGlobal("quill", mod)
}

// luaRegisterCommand implements quill.register_command(name, fn). The Lua
// function receives the argument list as a table and may return an error
// string.
func (h *Host) luaRegisterCommand(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	cmd := editor.ExCommandFunc{
		CommandName: name,
		Fn: func(e *editor.Editor, args []string) error {
			tbl := L.NewTable()
			for _, arg := range args {
				tbl.Append(lua.LString(arg))
			}
			if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, tbl); err != nil {
				return fmt.Errorf("lua command %s: %w", name, err)
			}
			ret := L.Get(-1)
			L.Pop(1)
			if s, ok := ret.(lua.LString); ok && string(s) != "" {
				return errors.New(string(s))
			}
			return nil
		},
	}
	if err := h.ed.RegisterExCommand(cmd); err != nil {
		L.RaiseError("register_command %s: %v", name, err)
	}
	return 0
}

// luaSetCommandText implements quill.set_command_text(text).
func (h *Host) luaSetCommandText(L *lua.LState) int {
	h.ed.SetCommandText(L.CheckString(1))
	return 0
}

// luaBufferText implements quill.buffer_text(), returning the active
// buffer's content or nil when no buffer is active.
func (h *Host) luaBufferText(L *lua.LState) int {
	b := h.ed.ActiveBuffer()
	if b == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(b.Text()))
	return 1
}

// luaInsertText implements quill.insert_text(offset, text) against the
// active buffer.
func (h *Host) luaInsertText(L *lua.LState) int {
	offset := L.CheckInt(1)
	text := L.CheckString(2)
	b := h.ed.ActiveBuffer()
	if b == nil {
		L.Push(lua.LBool(false))
		return 1
	}
	b.Insert(offset, text)
	L.Push(lua.LBool(true))
	return 1
}

// luaPost implements quill.post(kind, str): kind is the numeric message
// kind, str the payload.
func (h *Host) luaPost(L *lua.LState) int {
	kind := event.Kind(L.CheckInt(1))
	str := L.OptString(2, "")
	h.ed.Notify(event.NewMessage(kind, str))
	return 0
}

// luaRequestQuit implements quill.request_quit().
func (h *Host) luaRequestQuit(L *lua.LState) int {
	h.ed.RequestQuit()
	return 0
}
