package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCategory indicates a category outside the defined set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidPriority indicates a priority outside [1,10].
	ErrInvalidPriority = errors.New("priority must be between 1 and 10")

	// ErrStoreUnavailable indicates the document store is not configured.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrSearchFailed indicates the storage layer failed during matching.
	// The error is scoped to the one search; the process keeps serving.
	ErrSearchFailed = errors.New("search failed")

	// ErrNoText indicates a source file yielded no extractable text.
	ErrNoText = errors.New("no extractable text")
)
