package service

import "errors"

// Error taxonomy used by controllers to pick status codes. Anything not
// wrapping one of these collapses into a generic 500 at the handler boundary.
var (
	// ErrNotFound covers a referenced session, question or subject with no data.
	ErrNotFound = errors.New("not found")

	// ErrSessionCompleted signals an answer submitted against a finalized session.
	ErrSessionCompleted = errors.New("quiz session already completed")

	// ErrGeneration covers an oracle call that failed outright or returned
	// output that does not match the expected schema.
	ErrGeneration = errors.New("ai generation failed")
)
