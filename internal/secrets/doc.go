// Package secrets manages the secret versions referenced by deployed
// functions.
//
// The Pruner computes which versions of a project's secrets no deployed
// endpoint resolves to, including through symbolic "latest" bindings; these
// are safe for deletion. The Manager covers the creation side: ensuring a
// referenced secret exists (with the attune managed label) and that runtime
// service accounts can read it.
//
// The secret storage service sits behind the Store interface; this package
// never talks to the network itself and never deletes anything.
package secrets
