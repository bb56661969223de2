package engine

import "errors"

var (
	// ErrInvalidArgument indicates a caller bug: malformed thresholds, an
	// unknown strength id, or operating on an activity that is not pending.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates an operation referenced an activity id that is
	// not present in the current daily state.
	ErrNotFound = errors.New("not found")
)
