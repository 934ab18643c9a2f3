package game

import "errors"

// Kinds of expected domain failures. Every failure returned by the engine
// wraps one of these, so callers can branch with errors.Is.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrOutOfRange           = errors.New("out of range")
	ErrAlreadyInitialized   = errors.New("board already initialized")
	ErrNotInitialized       = errors.New("board not initialized")
	ErrInvalidPosition      = errors.New("invalid position")
	ErrInsufficientSpace    = errors.New("insufficient space for mines")
	ErrCellRevealed         = errors.New("cell already revealed")
	ErrInvalidGameState     = errors.New("invalid game state")
	ErrCorruptState         = errors.New("corrupt game state")
)

// Error is a domain failure with a message that is safe to show to a player.
type Error struct {
	kind    error
	Message string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, Message: msg}
}

// Error returns the human readable reason.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the failure kind.
func (e *Error) Unwrap() error {
	return e.kind
}
