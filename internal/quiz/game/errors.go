package game

import "fmt"

var (
	// ErrValidation marks a malformed payload. No state was changed.
	ErrValidation = fmt.Errorf("validation errors")
	// ErrCapacity is returned when the session already holds MaxPlayers.
	ErrCapacity = fmt.Errorf("too many players")
	// ErrState is returned when an operation is invalid for the current phase.
	ErrState = fmt.Errorf("invalid state")
	// ErrAuth is returned for an unknown player token.
	ErrAuth = fmt.Errorf("token was rejected")
	// ErrNotFound is returned for an unknown option, session or player.
	ErrNotFound = fmt.Errorf("not found")
)
