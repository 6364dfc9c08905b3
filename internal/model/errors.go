package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomExists       = errors.New("room already exists")
	ErrCapacityExceeded = errors.New("room capacity exceeded")
	ErrNotCreator       = errors.New("player is not the room creator")
	ErrNotInRoom        = errors.New("player is not in room")

	// Seed errors
	ErrSeedUnavailable = errors.New("seed generation unavailable")
)

// ValidationError reports caller-supplied data that breaks a domain rule.
// Message is meant to be shown to the user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
