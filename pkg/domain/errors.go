package domain

import (
	"errors"
	"fmt"
)

// ErrCursorNotFound is returned by a cursor store when nothing was persisted yet.
var ErrCursorNotFound = errors.New("cursor not found")

// ErrControlChannel wraps failures of the terminal control interface.
var ErrControlChannel = errors.New("terminal control channel failed")

// ErrProtocol is returned when the exit-code token never shows up in the capture.
var ErrProtocol = errors.New("couldn't retrieve exit code")

// ErrCommandFailed is matched by a CommandError for a nonzero exit code.
var ErrCommandFailed = errors.New("command failed")

// ErrCommandTimedOut is matched by a CommandError for a command that never completed.
var ErrCommandTimedOut = errors.New("command timed out")

// ErrRunLocked is returned when another run holds the cursor.
var ErrRunLocked = errors.New("another run holds the cursor")

// CommandError aborts a non-interactive run. It names the offending command.
type CommandError struct {
	Index    int
	Command  string
	Code     int
	TimedOut bool
}

func (e *CommandError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("command timed out: %s", e.Command)
	}
	return fmt.Sprintf("command failed (exit code): %s (%d)", e.Command, e.Code)
}

// Is makes CommandError match ErrCommandFailed or ErrCommandTimedOut.
func (e *CommandError) Is(target error) bool {
	if e.TimedOut {
		return target == ErrCommandTimedOut
	}
	return target == ErrCommandFailed
}
