package extensions

import (
	"errors"
	"fmt"
)

// NoMatchingVersionError indicates that an extension has published versions
// but none of them satisfies the requested version selector.
type NoMatchingVersionError struct {
	// Extension is the canonical "publisher/extensionID" reference.
	Extension string

	// Selector is the version selector that could not be satisfied.
	Selector string
}

// Error implements the error interface for NoMatchingVersionError.
func (e *NoMatchingVersionError) Error() string {
	return fmt.Sprintf("no published version of %s satisfies %q", e.Extension, e.Selector)
}

// IsNoMatchingVersion checks if an error is a NoMatchingVersionError.
func IsNoMatchingVersion(err error) bool {
	var noMatchErr *NoMatchingVersionError
	return errors.As(err, &noMatchErr)
}

// MissingReferenceError indicates that an instance spec carries no upstream
// extension reference, so no extension metadata can be fetched for it. This
// happens for instances installed from an unpublished source.
type MissingReferenceError struct {
	// InstanceID identifies the instance spec that lacks a reference.
	InstanceID string
}

// Error implements the error interface for MissingReferenceError.
func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("instance %s has no extension reference, cannot fetch extension metadata", e.InstanceID)
}

// IsMissingReference checks if an error is a MissingReferenceError.
func IsMissingReference(err error) bool {
	var missingErr *MissingReferenceError
	return errors.As(err, &missingErr)
}
