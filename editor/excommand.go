package editor

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ExCommand is a named colon-command. Run receives the editor and the
// whitespace-split arguments after the command name.
type ExCommand interface {
	// Name returns the unique command name, without the leading colon.
	Name() string

	// Run executes the command.
	Run(e *Editor, args []string) error
}

// ExCommandFunc adapts a function to the ExCommand interface.
type ExCommandFunc struct {
	CommandName string
	Fn          func(e *Editor, args []string) error
}

func (c ExCommandFunc) Name() string { return c.CommandName }

func (c ExCommandFunc) Run(e *Editor, args []string) error {
	return c.Fn(e, args)
}

// RegisterExCommand adds a command under its unique name. A second
// registration under an existing name fails and the original stays bound.
func (e *Editor) RegisterExCommand(cmd ExCommand) error {
	name := cmd.Name()
	if _, ok := e.exCommands[name]; ok {
		return ErrDuplicateExCommand
	}
	e.exCommands[name] = cmd
	return nil
}

// FindExCommand returns the command registered under name, or nil.
func (e *Editor) FindExCommand(name string) ExCommand {
	return e.exCommands[name]
}

// ExCommandNames returns all registered command names, sorted.
func (e *Editor) ExCommandNames() []string {
	names := make([]string, 0, len(e.exCommands))
	for name := range e.exCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompleteExCommand returns registered command names fuzzy-matching the
// partial input, best matches first.
func (e *Editor) CompleteExCommand(partial string) []string {
	names := e.ExCommandNames()
	if partial == "" {
		return names
	}
	ranks := fuzzy.RankFindNormalizedFold(partial, names)
	sort.Sort(ranks)
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

// runExCommand executes a registered command by name, reporting whether the
// name was bound. Command errors surface on the command strip and in the
// log.
func (e *Editor) runExCommand(name string, args []string) bool {
	cmd, ok := e.exCommands[name]
	if !ok {
		return false
	}
	if err := cmd.Run(e, args); err != nil {
		e.log.Warnf("command %s: %v", name, err)
		e.SetCommandText("error: " + err.Error())
	}
	return true
}

// runCommandLine parses and executes a colon-command line such as
// ":w file.txt". It reports whether a registered command consumed it.
func (e *Editor) runCommandLine(line string) bool {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if line == "" {
		return false
	}
	fields := strings.Fields(line)
	return e.runExCommand(fields[0], fields[1:])
}
