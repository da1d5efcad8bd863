package editor

import "errors"

var (
	// ErrDuplicateExCommand reports a second registration under an
	// existing ex-command name. The existing registration is kept.
	ErrDuplicateExCommand = errors.New("editor: duplicate ex-command")

	// ErrUnknownMode reports an attempt to select a global mode that was
	// never registered. The prior mode stays current.
	ErrUnknownMode = errors.New("editor: unknown mode")

	// ErrNoFilePath reports a save attempt on a scratch buffer.
	ErrNoFilePath = errors.New("editor: buffer has no file path")

	// ErrQuit signals a clean, user-requested shutdown to the host loop.
	ErrQuit = errors.New("editor: quit requested")
)

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
