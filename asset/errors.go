package asset

import "errors"

// The error kinds every asset operation resolves to. Handlers map these to
// transport responses with errors.Is; the coordinator and services wrap them
// with operation context via fmt.Errorf and %w.
var (
	// ErrValidation indicates a missing required file or field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a missing owner or asset.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate slug on create or rename.
	ErrConflict = errors.New("conflict")

	// ErrStorage indicates a file write or delete raised an I/O error.
	ErrStorage = errors.New("storage failed")

	// ErrPersistence indicates the record store failed after a file
	// operation already completed; the coordinator compensates by deleting
	// the file before reporting it.
	ErrPersistence = errors.New("persistence failed")

	// ErrUnauthorized indicates a missing, invalid, or insufficient
	// credential on a protected operation.
	ErrUnauthorized = errors.New("unauthorized")
)
