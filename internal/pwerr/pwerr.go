// Package pwerr holds the error taxonomy shared by the analysis and generation packages.
//
// Callers branch with errors.Is; implementations attach context with %w.
package pwerr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument: empty/blank input, negative counts, non-positive rates,
	// MinLength >= MaxLength, disallowed phrase characters. Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnconfigured: a requested hash algorithm has no attempts-per-second entry.
	ErrUnconfigured = errors.New("unconfigured")

	// ErrBreachLookup: the breach corpus could not be queried.
	ErrBreachLookup = errors.New("breach lookup failed")
)

// Invalid wraps ErrInvalidArgument with the offending parameter name.
func Invalid(param, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, param, reason)
}
