package voice

import "errors"

// Domain errors for the voice package. Check with errors.Is().
var (
	// ErrAlreadyRunning is returned by Start when a session is active.
	ErrAlreadyRunning = errors.New("voice: assistant is already running")

	// ErrNotRunning is returned by Stop and ProcessText when no session
	// is active.
	ErrNotRunning = errors.New("voice: assistant is not running")

	// ErrInvalidModel is returned by Start for a model name outside the
	// known set.
	ErrInvalidModel = errors.New("voice: invalid model")

	// ErrRecorderClosed is returned by Listen after Close.
	ErrRecorderClosed = errors.New("voice: recorder closed")

	// ErrPatternNotFound is returned when removing a pattern that is
	// not registered.
	ErrPatternNotFound = errors.New("voice: pattern not found")
)
