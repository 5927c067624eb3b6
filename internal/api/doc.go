// Package api provides the shared error types used across attune's domain
// packages.
//
// Collaborator interfaces (extension registry, secret store, parameter source)
// signal missing resources with NotFoundError so callers can distinguish
// "does not exist" from transport failures with api.IsNotFound. Operations
// that process independent declarative entries report all of their failures
// at once through AggregateConfigurationError.
package api
