package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested item no longer exists server-side
	ErrNotFound = errors.New("item not found")

	// ErrServerOffline indicates the list server is unreachable
	ErrServerOffline = errors.New("list server is unreachable")

	// ErrInvalidInput indicates the server rejected the submitted fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrMutationPending indicates a mutation for the item is already in flight
	ErrMutationPending = errors.New("mutation already pending for item")

	// ErrNotEnoughItems indicates a random pick was requested from a pool
	// too small to make randomization meaningful
	ErrNotEnoughItems = errors.New("need at least two items to pick at random")
)
