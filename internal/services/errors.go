package services

import (
	"errors"
	"fmt"
)

// ErrZipCodeRequired is returned when a scan request has no ZIP code.
var ErrZipCodeRequired = errors.New("ZIP code is required")

// CollaboratorError wraps a failure from the external scraping/analytics
// provider. The whole request fails at this boundary; there is no
// partial-result path and no retry.
type CollaboratorError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("analytics provider %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying provider error.
func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// collaborator wraps err as a CollaboratorError, or returns nil.
func collaborator(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Op: op, Err: err}
}
