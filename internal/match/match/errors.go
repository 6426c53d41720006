package match

import "errors"

var (
	// ErrNotFound indicates the requested match does not exist.
	ErrNotFound = errors.New("match not found")

	// ErrInvalidTransition indicates the requested transition has no edge
	// from the match's current phase.
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrConflict indicates another writer changed the match's phase between
	// read and write. The caller lost the race and should re-read.
	ErrConflict = errors.New("match was modified concurrently")

	// ErrLineupLocked indicates lineups can no longer be changed because the
	// match has left the scheduled phase.
	ErrLineupLocked = errors.New("lineup is locked after kickoff")
)
