// Package main is the terminal host for the quill editing engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/editor"
	"github.com/dshills/quill/plugin"
	"github.com/dshills/quill/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configRoot  string
		pluginDir   string
		logPath     string
		logLevel    string
		readOnly    bool
		noThreads   bool
		showVersion bool
	)

	flag.StringVar(&configRoot, "config", defaultConfigRoot(), "Directory searched for quill.toml/quill.yaml")
	flag.StringVar(&pluginDir, "plugins", "", "Directory of Lua plugin scripts")
	flag.StringVar(&logPath, "log", "", "Write engine diagnostics to this file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&readOnly, "readonly", false, "Open files read-only")
	flag.BoolVar(&readOnly, "R", false, "Open files read-only (shorthand)")
	flag.BoolVar(&noThreads, "no-threads", false, "Run background work inline")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("quill %s (%s)\n", version, commit)
		return 0
	}

	opts := editor.Options{
		ConfigRoot: configRoot,
		WatchFiles: true,
		LogLevel:   editor.ParseLogLevel(logLevel),
	}
	if noThreads {
		opts.Flags |= editor.FlagDisableThreads
	}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log %s: %v\n", logPath, err)
			return 1
		}
		defer f.Close()
		opts.LogWriter = f
	}

	ed, err := editor.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer ed.Close()

	registerCommands(ed)

	if pluginDir != "" {
		host := plugin.NewHost(ed)
		defer host.Close()
		if err := host.LoadDir(pluginDir); err != nil {
			ed.Log().Warnf("plugins: %v", err)
		}
	}

	var flags buffer.Flags
	if readOnly {
		flags |= buffer.FlagReadOnly
	}
	if path := flag.Arg(0); path != "" {
		if _, err := ed.GetFileBuffer(path, flags, true); err != nil {
			fmt.Fprintf(os.Stderr, "Error: open %s: %v\n", path, err)
			return 1
		}
		if b := ed.FindFileBuffer(path); b != nil {
			ed.EnsureWindow(b)
		}
	} else {
		ed.InitWithText("scratch", "")
	}

	t, err := term.New(ed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer t.Close()

	if err := t.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// registerCommands installs the built-in colon commands.
func registerCommands(ed *editor.Editor) {
	cmds := []editor.ExCommandFunc{
		{
			CommandName: "q",
			Fn: func(e *editor.Editor, _ []string) error {
				e.RequestQuit()
				return nil
			},
		},
		{
			CommandName: "w",
			Fn: func(e *editor.Editor, args []string) error {
				b := e.ActiveBuffer()
				if b == nil {
					return editor.ErrNoFilePath
				}
				if len(args) > 0 {
					path, err := e.FileSystem().Resolve(args[0])
					if err != nil {
						return err
					}
					b.SetPath(path)
				}
				return e.SaveBuffer(b)
			},
		},
		{
			CommandName: "e",
			Fn: func(e *editor.Editor, args []string) error {
				if len(args) == 0 {
					return fmt.Errorf("e: missing file name")
				}
				b, err := e.GetFileBuffer(args[0], 0, true)
				if err != nil {
					return err
				}
				e.EnsureWindow(b)
				return nil
			},
		},
		{
			CommandName: "bd",
			Fn: func(e *editor.Editor, _ []string) error {
				e.RemoveBuffer(e.ActiveBuffer())
				return nil
			},
		},
		{
			CommandName: "tabnew",
			Fn: func(e *editor.Editor, _ []string) error {
				e.AddTabWindow()
				b := e.GetEmptyBuffer("scratch", 0)
				e.EnsureWindow(b)
				return nil
			},
		},
		{
			CommandName: "tabnext",
			Fn: func(e *editor.Editor, _ []string) error {
				e.NextTabWindow()
				return nil
			},
		},
		{
			CommandName: "tabprev",
			Fn: func(e *editor.Editor, _ []string) error {
				e.PreviousTabWindow()
				return nil
			},
		},
		{
			CommandName: "mode",
			Fn: func(e *editor.Editor, args []string) error {
				if len(args) == 0 {
					e.SetCommandText("mode: " + e.GetGlobalMode().Name())
					return nil
				}
				return e.SetGlobalMode(args[0])
			},
		},
	}
	for _, cmd := range cmds {
		if err := ed.RegisterExCommand(cmd); err != nil {
			ed.Log().Warnf("register %s: %v", cmd.CommandName, err)
		}
	}
}

func defaultConfigRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill")
}
