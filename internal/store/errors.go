package store

import "errors"

var (
	// ErrNotInitialized is returned when an operation is attempted on a
	// store whose database has not been opened.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrDuplicateKey is returned by inserts when the id already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned by updates of absent records. Deletes of
	// absent records are a no-op and do not return it.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidRecord is returned for referential or range violations
	// caught before the record reaches the database.
	ErrInvalidRecord = errors.New("invalid record")
)
