// Package editor implements the session orchestrator: the single object a
// host embeds to own buffers, window/tab topology, editing modes, the
// notification bus and background work.
//
// The public surface is single-threaded-cooperative: every method must be
// called from one logical editor thread (typically the host UI thread).
// Background workers never touch editor state; they compute values from
// immutable snapshots and post results through an apply queue drained on
// the editor thread.
package editor

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/config"
	"github.com/dshills/quill/display"
	"github.com/dshills/quill/event"
	"github.com/dshills/quill/filesystem"
	"github.com/dshills/quill/mode"
	"github.com/dshills/quill/mode/standard"
	"github.com/dshills/quill/mode/vim"
	"github.com/dshills/quill/register"
	"github.com/dshills/quill/syntax"
	"github.com/dshills/quill/window"
	"github.com/dshills/quill/work"
)

const cursorBlinkInterval = 500 * time.Millisecond

// Editor is the session orchestrator. Create one with New and drive it from
// the host's input/frame loop.
type Editor struct {
	display display.Display
	fs      filesystem.FileSystem
	clip    Clipboard
	log     *Logger

	cfg   config.EditorConfig
	flags Flags

	bus       *event.Bus
	modes     *mode.Manager
	registers *register.Store
	syntaxes  *syntax.Registry
	pool      *work.Pool

	// apply carries results from background workers onto the editor
	// thread; drained at the top of every public entry point.
	apply chan func()

	// buffers is ordered by activation recency, most recent first.
	buffers    []*buffer.Buffer
	byPath     map[string]*buffer.Buffer
	byHandle   map[buffer.Handle]*buffer.Buffer
	nextHandle buffer.Handle

	bufSyntax map[buffer.Handle]syntax.Syntax

	tabs      []*window.TabWindow
	activeTab *window.TabWindow
	layout    *window.Layout

	exCommands map[string]ExCommand

	capture  event.Component
	mousePos display.Vec2

	commandLines []string
	hasFocus     bool
	quit         bool

	pendingRefresh atomic.Bool
	cursorEpoch    time.Time
	lastEdit       time.Time

	watcher *filesystem.Watcher
}

// New creates an editor session. The returned editor has no buffers or
// tabs; call InitWithText or InitWithFile to reach the initial valid state.
func New(opts Options) (*Editor, error) {
	e := &Editor{
		display:    opts.Display,
		fs:         opts.FileSystem,
		clip:       opts.Clipboard,
		flags:      opts.Flags,
		cfg:        config.DefaultConfig(),
		registers:  register.NewStore(),
		syntaxes:   syntax.NewRegistry(),
		modes:      mode.NewManager(),
		byPath:     make(map[string]*buffer.Buffer),
		byHandle:   make(map[buffer.Handle]*buffer.Buffer),
		bufSyntax:  make(map[buffer.Handle]syntax.Syntax),
		exCommands: make(map[string]ExCommand),
		layout:     window.NewLayout(),
		apply:      make(chan func(), 256),
		hasFocus:   true,
	}

	if e.display == nil {
		e.display = &display.Null{}
	}
	if e.fs == nil {
		e.fs = filesystem.NewOS()
	}
	if e.clip == nil {
		e.clip = SystemClipboard{}
	}
	e.log = NewLogger(opts.LogWriter, opts.LogLevel)

	e.bus = event.NewBus(event.WithPanicHandler(func(msg *event.Message, recovered any) {
		e.log.Errorf("listener panic on %s: %v", msg.Kind, recovered)
	}))

	e.modes.RegisterGlobal(vim.New())
	e.modes.RegisterGlobal(standard.New())

	syntax.RegisterDefaults(e.syntaxes)

	poolOpts := []work.Option{
		work.WithPanicHandler(func(recovered any, _ []byte) {
			e.log.Errorf("background job panic: %v", recovered)
		}),
	}
	if opts.Workers > 0 {
		poolOpts = append(poolOpts, work.WithWorkers(opts.Workers))
	}
	if opts.Flags.Has(FlagDisableThreads) {
		poolOpts = append(poolOpts, work.WithInline(true))
	}
	e.pool = work.NewPool(poolOpts...)
	if err := e.pool.Start(); err != nil {
		return nil, &InitError{Component: "work pool", Err: err}
	}

	if opts.WatchFiles {
		watcher, err := filesystem.NewWatcher(e.onWatcherChange)
		if err != nil {
			e.log.Warnf("file watcher unavailable: %v", err)
		} else {
			e.watcher = watcher
		}
	}

	if opts.ConfigRoot != "" {
		e.loadConfigRoot(opts.ConfigRoot)
	}

	e.ResetCursorTimer()
	e.ResetLastEditTimer()
	return e, nil
}

// Close shuts the session down: stops the background pool and the file
// watcher. The editor must not be used afterwards.
func (e *Editor) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if e.watcher != nil {
		e.watcher.Close()
	}
	if err := e.pool.Stop(ctx); err != nil && err != work.ErrNotRunning {
		e.log.Warnf("pool shutdown: %v", err)
	}
	e.drain()
}

// loadConfigRoot looks for quill.toml or quill.yaml under root. Load errors
// are non-fatal; the defaults stay in effect.
func (e *Editor) loadConfigRoot(root string) {
	for _, name := range []string{"quill.toml", "quill.yaml", "quill.yml"} {
		path := filepath.Join(root, name)
		if !e.fs.Exists(path) {
			continue
		}
		if err := e.LoadConfig(path); err != nil {
			e.log.Warnf("config %s: %v", path, err)
		}
		return
	}
}

// LoadConfig loads a configuration file and applies it.
func (e *Editor) LoadConfig(path string) error {
	table, err := config.LoadTable(path)
	if err != nil {
		return err
	}
	e.ApplyConfig(table)
	return nil
}

// SaveConfig writes the current configuration to path.
func (e *Editor) SaveConfig(path string) error {
	return config.Save(path, e.cfg)
}

// ApplyConfig applies a parsed configuration table. Unrecognized keys are
// ignored; missing keys retain their current values.
func (e *Editor) ApplyConfig(table map[string]any) {
	e.cfg.Apply(table)
	e.layout.Invalidate()
	e.Notify(event.NewMessage(event.KindConfigChanged, ""))
}

// Config returns the active configuration for reading and mutation.
func (e *Editor) Config() *config.EditorConfig {
	return &e.cfg
}

// Flags returns the startup flag bit-field.
func (e *Editor) Flags() Flags { return e.flags }

// SetFlags replaces the flag bit-field. The threads flag is fixed at
// construction and ignored here.
func (e *Editor) SetFlags(f Flags) {
	f = f&^FlagDisableThreads | e.flags&FlagDisableThreads
	e.flags = f
}

// Notify broadcasts a message to every registered listener and then applies
// the editor's own built-in handling for commands, quit and clipboard
// traffic. It reports whether any receiver marked the message handled.
func (e *Editor) Notify(msg *event.Message) bool {
	e.bus.Broadcast(msg)

	switch msg.Kind {
	case event.KindRequestQuit:
		e.quit = true
		msg.Handled = true

	case event.KindHandleCommand:
		if !msg.Handled {
			msg.Handled = e.runCommandLine(msg.Str)
		}

	case event.KindGetClipboard:
		if !msg.Handled {
			e.ReadClipboard()
			msg.Handled = true
		}

	case event.KindSetClipboard:
		if !msg.Handled {
			if msg.Str != "" {
				e.registers.Set(`"`, register.Register{Text: msg.Str})
			}
			e.WriteClipboard()
			msg.Handled = true
		}
	}

	return msg.Handled
}

// Broadcast delivers a message to every registered listener without the
// editor's built-in handling. Listeners are always all notified; the return
// value reports whether any marked the message handled.
func (e *Editor) Broadcast(msg *event.Message) bool {
	return e.bus.Broadcast(msg)
}

// RegisterCallback adds a notification listener and returns its token.
func (e *Editor) RegisterCallback(c event.Component) event.Token {
	return e.bus.Register(c)
}

// UnRegisterCallback removes a notification listener.
func (e *Editor) UnRegisterCallback(c event.Component) {
	e.bus.UnregisterComponent(c)
}

// RequestQuit asks the host to shut down by broadcasting a quit request.
func (e *Editor) RequestQuit() {
	e.Notify(event.NewMessage(event.KindRequestQuit, ""))
}

// QuitRequested reports whether a quit request was seen.
func (e *Editor) QuitRequested() bool { return e.quit }

// Tick is the per-frame heartbeat: drains background results and broadcasts
// a tick message.
func (e *Editor) Tick() {
	e.drain()
	e.bus.Broadcast(event.NewMessage(event.KindTick, ""))
}

// drain applies queued background results on the editor thread.
func (e *Editor) drain() {
	for {
		select {
		case fn := <-e.apply:
			fn()
		default:
			return
		}
	}
}

// enqueueApply posts a closure from a background goroutine onto the editor
// thread. A full queue drops the result; droppable results are recomputable
// (the next edit reschedules).
func (e *Editor) enqueueApply(fn func()) {
	select {
	case e.apply <- fn:
	default:
		e.log.Warnf("apply queue full; background result dropped")
	}
}

// SetCommandText sets the command strip content shown under the buffer.
func (e *Editor) SetCommandText(text string) {
	if text == "" {
		e.commandLines = nil
	} else {
		e.commandLines = strings.Split(text, "\n")
	}
	e.layout.Invalidate()
	e.RequestRefresh()
}

// GetCommandText returns the command strip content.
func (e *Editor) GetCommandText() string {
	return strings.Join(e.commandLines, "\n")
}

// GetCommandLines returns the command strip content as lines.
func (e *Editor) GetCommandLines() []string { return e.commandLines }

// HasCommandText reports whether the command strip has content.
func (e *Editor) HasCommandText() bool { return len(e.commandLines) > 0 }

// IsInFocus reports whether the editor has input focus.
func (e *Editor) IsInFocus() bool { return e.hasFocus }

// SetHasFocus records input focus, as reported by the host.
func (e *Editor) SetHasFocus(focus bool) { e.hasFocus = focus }

// RequestRefresh marks that the host should render on its next frame.
func (e *Editor) RequestRefresh() { e.pendingRefresh.Store(true) }

// RefreshRequired reports and clears the pending-refresh flag.
func (e *Editor) RefreshRequired() bool { return e.pendingRefresh.Swap(false) }

// ResetCursorTimer restarts the cursor blink phase.
func (e *Editor) ResetCursorTimer() { e.cursorEpoch = time.Now() }

// GetCursorBlinkState reports the current blink phase.
func (e *Editor) GetCursorBlinkState() bool {
	phase := time.Since(e.cursorEpoch) / cursorBlinkInterval
	return phase%2 == 0
}

// ResetLastEditTimer records the time of the latest edit.
func (e *Editor) ResetLastEditTimer() { e.lastEdit = time.Now() }

// GetLastEditElapsedTime returns seconds since the latest edit.
func (e *Editor) GetLastEditElapsedTime() float64 {
	return time.Since(e.lastEdit).Seconds()
}

// Registers returns a copy of the register map.
func (e *Editor) Registers() map[string]register.Register {
	return e.registers.All()
}

// SetRegister stores a register under the given name.
func (e *Editor) SetRegister(name string, r register.Register) {
	e.registers.Set(name, r)
}

// SetRegisterText stores character-wise text under the given name.
func (e *Editor) SetRegisterText(name, text string) {
	e.registers.SetText(name, text)
}

// GetRegister returns the register for name. A missing register yields a
// zero register and false.
func (e *Editor) GetRegister(name string) (register.Register, bool) {
	return e.registers.Get(name)
}

// ReadClipboard pulls the host clipboard into the unnamed and '+' registers.
func (e *Editor) ReadClipboard() {
	text, err := e.clip.Read()
	if err != nil {
		e.log.Warnf("clipboard read: %v", err)
		return
	}
	r := register.Register{Text: text}
	e.registers.Set(`"`, r)
	e.registers.Set("+", r)
}

// WriteClipboard pushes the unnamed register to the host clipboard.
func (e *Editor) WriteClipboard() {
	r, ok := e.registers.Get(`"`)
	if !ok {
		return
	}
	if err := e.clip.Write(r.Text); err != nil {
		e.log.Warnf("clipboard write: %v", err)
	}
}

// EventBus returns the notification bus.
func (e *Editor) EventBus() *event.Bus { return e.bus }

// Display returns the host display collaborator.
func (e *Editor) Display() display.Display { return e.display }

// FileSystem returns the file access collaborator.
func (e *Editor) FileSystem() filesystem.FileSystem { return e.fs }

// Log returns the engine logger.
func (e *Editor) Log() *Logger { return e.log }

// onWatcherChange arrives on the watcher goroutine and marshals the
// notification onto the editor thread.
func (e *Editor) onWatcherChange(path string) {
	e.enqueueApply(func() {
		e.OnFileChanged(path)
	})
}

// OnFileChanged reloads a clean file-backed buffer whose backing file
// changed externally. Dirty buffers are left alone.
func (e *Editor) OnFileChanged(path string) {
	resolved, err := e.fs.Resolve(path)
	if err != nil {
		return
	}
	b, ok := e.byPath[resolved]
	if !ok {
		return
	}
	if b.IsDirty() {
		e.log.Infof("external change to %s ignored: buffer has unsaved edits", resolved)
		return
	}
	data, err := e.fs.Read(resolved)
	if err != nil {
		e.log.Warnf("reload %s: %v", resolved, err)
		return
	}
	b.SetText(string(data))
	e.Notify(event.NewMessage(event.KindBuffer, b.Name()))
	e.scheduleSyntaxRebuild(b)
	e.RequestRefresh()
}

// Reset tears the session back to its initial empty state: no buffers, no
// tabs, cleared registers and command text.
func (e *Editor) Reset() {
	e.drain()
	e.buffers = nil
	e.byPath = make(map[string]*buffer.Buffer)
	e.byHandle = make(map[buffer.Handle]*buffer.Buffer)
	e.bufSyntax = make(map[buffer.Handle]syntax.Syntax)
	e.tabs = nil
	e.activeTab = nil
	e.registers = register.NewStore()
	e.commandLines = nil
	e.capture = nil
	e.quit = false
	e.layout.Invalidate()
}
