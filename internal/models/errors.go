package models

import "errors"

// Errors shared by the store, the read-model and the RPC layer.
// Callers match them with errors.Is; producers wrap them with context.
var (
	// ErrNotFound means a name-based lookup of a student or competition missed.
	ErrNotFound = errors.New("not found")

	// ErrValidation means caller input was malformed: a name that does not split
	// into first and last name, a non-numeric or out-of-range score, or a team
	// with the wrong shape.
	ErrValidation = errors.New("validation failed")

	// ErrIntegrity means a store operation failed part way and was rolled back,
	// or stored rows reference ids that do not exist.
	ErrIntegrity = errors.New("integrity violation")

	// ErrConnection means the store could not be opened or initialised.
	ErrConnection = errors.New("store unavailable")

	// ErrEmpty means the store holds no students yet, so there is nothing to
	// remove or wipe.
	ErrEmpty = errors.New("no data loaded")

	// ErrUnresolvedID means an insert succeeded but the database did not report
	// the generated id.
	ErrUnresolvedID = errors.New("inserted row id unavailable")
)
