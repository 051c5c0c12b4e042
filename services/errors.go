package services

import (
	"errors"
	"fmt"
)

// Failure classes surfaced by the store-facing services. Handlers translate
// these into HTTP statuses with errors.Is; anything unclassified is treated
// as a store failure.
var (
	ErrMissingField = errors.New("missing required field")
	ErrTaskNotFound = errors.New("task not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
)

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// isBusinessOutcome reports whether an error is an expected domain result
// rather than a sign of store trouble.
func isBusinessOutcome(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrEmailTaken)
}
