package storage

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrNotFound is returned when a book with the given ID does not exist.
	ErrNotFound = errors.New("book not found")

	// ErrConflict is returned when a book with the given ID already exists.
	ErrConflict = errors.New("book already exists")
)
