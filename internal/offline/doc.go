// Package offline serves the extension registry and secret store interfaces
// from a YAML snapshot of an environment.
//
// It exists so plan and pruning computations can run against captured state:
// the CLI points --snapshot at a file describing the live instances,
// published extension versions, secrets and deployed endpoints of a project.
// Nothing is ever written back to the snapshot.
package offline
