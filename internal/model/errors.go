package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidPlayer  = errors.New("invalid player")

	// Enum errors
	ErrUnknownRace       = errors.New("unknown race")
	ErrUnknownProfession = errors.New("unknown profession")
)

// ValidationError describes which field of a player failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid player: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidPlayer
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPlayer
}
