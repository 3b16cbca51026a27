package service

import "errors"

// Domain errors surfaced to the transport layer. Handlers map them to
// HTTP status codes with errors.Is; everything else is a 500.
var (
	// ErrValidation marks malformed input. No state was changed.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound covers an absent alert and an alert that is not in the
	// expected state for the action. Losing the acceptance race yields
	// the same error, so racers learn nothing from the outcome.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an actor lacking the required role or not being
	// the assigned gomero.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a conditional transition that affected zero rows
	// because another actor changed the alert first. Expected under
	// concurrency; the client should refresh and retry.
	ErrConflict = errors.New("conflict")
)
