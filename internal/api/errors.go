package api

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError represents a resource not found error with contextual information.
// This standardized error type provides consistent error handling across all
// collaborator-facing operations for cases where requested resources don't exist.
//
// The error includes resource type and name for precise error reporting and
// supports custom error messages for specific use cases.
type NotFoundError struct {
	// ResourceType categorizes the type of resource that was not found
	// (e.g., "extension", "secret", "secret version", "instance")
	ResourceType string

	// ResourceName is the specific identifier of the resource that was not found
	ResourceName string

	// Message provides a custom error message if the default format is insufficient
	Message string
}

// Error implements the error interface for NotFoundError.
// Returns either the custom message if provided, or a formatted default message
// using the resource type and name.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
// This function provides a type-safe way to check for not found conditions
// in error handling code, supporting wrapped errors.
//
// Example:
//
//	secret, err := store.GetSecret(ctx, projectID, name)
//	if api.IsNotFound(err) {
//	    // Secret does not exist yet, create it
//	}
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// NewNotFoundError creates a new NotFoundError with the specified resource type and name.
// This is the standard way to create not found errors throughout the codebase.
func NewNotFoundError(resourceType, resourceName string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceName: resourceName,
	}
}

// NewNotFoundErrorWithMessage creates a new NotFoundError with a custom message.
// This is used when the default error format doesn't provide sufficient context.
func NewNotFoundErrorWithMessage(resourceType, resourceName, message string) *NotFoundError {
	return &NotFoundError{
		ResourceType: resourceType,
		ResourceName: resourceName,
		Message:      message,
	}
}

// Specific NotFoundError constructors for each resource type.
// These provide convenient, type-specific error creation with consistent naming.
var (
	// NewExtensionNotFoundError creates an extension not found error.
	NewExtensionNotFoundError = func(ref string) *NotFoundError {
		return NewNotFoundError("extension", ref)
	}

	// NewSecretNotFoundError creates a secret not found error.
	NewSecretNotFoundError = func(name string) *NotFoundError {
		return NewNotFoundError("secret", name)
	}

	// NewSecretVersionNotFoundError creates a secret version not found error.
	NewSecretVersionNotFoundError = func(name string) *NotFoundError {
		return NewNotFoundError("secret version", name)
	}

	// NewInstanceNotFoundError creates an extension instance not found error.
	NewInstanceNotFoundError = func(instanceID string) *NotFoundError {
		return NewNotFoundError("extension instance", instanceID)
	}
)

// AggregateConfigurationError reports every broken entry of a declarative
// configuration section in a single error.
//
// It is produced by operations that process independent entries and must not
// stop at the first failure: every entry is attempted, failures are collected,
// and the caller receives the complete picture in one report. The message
// contains one line per collected error, in the order the entries were
// declared, prefixed by the section that produced them.
type AggregateConfigurationError struct {
	// Section names the declarative section the entries came from
	// (e.g., "extensions" in the project manifest).
	Section string

	// Errors holds the per-entry failures in declaration order.
	Errors []error
}

// Error implements the error interface for AggregateConfigurationError.
func (e *AggregateConfigurationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "errors while reading %q configuration:", e.Section)
	for _, err := range e.Errors {
		sb.WriteString("\n")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateConfigurationError) Unwrap() []error {
	return e.Errors
}

// IsAggregateConfiguration checks if an error is an AggregateConfigurationError.
func IsAggregateConfiguration(err error) bool {
	var aggErr *AggregateConfigurationError
	return errors.As(err, &aggErr)
}
