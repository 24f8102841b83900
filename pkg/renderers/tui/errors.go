package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSelection is returned when a selection prompt resolves to an
	// option that no longer exists.
	ErrNoSelection = errors.New("tui: no selection")
)
