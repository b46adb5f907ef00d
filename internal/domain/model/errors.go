package model

import (
	"errors"
)

// Shared error taxonomy for the engine. Adapter packages wrap these so
// callers can classify failures with errors.Is regardless of which
// component produced them.
var (
	// ErrInsufficientPlayers signals a selection or partition call with
	// fewer candidates than the operation requires.
	ErrInsufficientPlayers = errors.New("insufficient players")

	// ErrInvalidOutcome signals a malformed or tied match result. A tie is
	// never resolved by guessing a winner.
	ErrInvalidOutcome = errors.New("invalid match outcome")

	// ErrPlayerNotFound signals a referenced player id missing from the
	// store. The surrounding match update must abort without committing.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrDuplicateMatch signals a match id that has already been applied.
	ErrDuplicateMatch = errors.New("duplicate match")
)
