package session

import "errors"

var (
	// ErrUnknownTile indicates that a tile id is not part of the puzzle's bag.
	ErrUnknownTile = errors.New("tile not found in letter bag")

	// ErrNoHintsLeft indicates that all hints for the session were used.
	ErrNoHintsLeft = errors.New("no hints left")

	// ErrNothingToHint indicates that every available word was already found.
	ErrNothingToHint = errors.New("no undiscovered words left to hint")
)
