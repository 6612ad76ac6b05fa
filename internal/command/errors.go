package command

import "errors"

var (
	// ErrUnknownCommand is returned for an empty line or an unknown verb.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNilEngine is returned by NewDispatcher without an engine.
	ErrNilEngine = errors.New("command dispatcher: engine is nil")
)
