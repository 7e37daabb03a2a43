package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates an order status move the state machine forbids.
	ErrInvalidTransition = errors.New("invalid status transition")
)
