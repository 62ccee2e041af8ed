package repository

import "errors"

var (
	// ErrNotFound is returned by mutations that matched no row for the profile.
	ErrNotFound = errors.New("record not found")
	// ErrStaleState is returned when a flashcard's schedule changed between
	// read and write, so the caller's review was computed from old state.
	ErrStaleState = errors.New("flashcard review state changed concurrently")
	// ErrMissingTime is returned when a write carries a zero timestamp.
	ErrMissingTime = errors.New("timestamp not set")
)
