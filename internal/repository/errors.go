package repository

import "errors"

// Errors returned by the repositories, checked with errors.Is.
var (
	// ErrNotFound is returned when an operation requires a row that does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrNotUnique is returned when a single-result query matches more than one row.
	ErrNotUnique = errors.New("query returned more than one entity")
)
