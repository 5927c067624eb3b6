// Package config loads attune's declarative project manifest.
//
// The manifest (attune.yaml) declares the extension instances a project
// wants, keyed by instance id, plus per-instance parameter bindings that may
// carry per-environment overrides. Declaration order is preserved through
// loading so planning output and error reports follow the author's order.
//
// ManifestParamSource adapts the manifest (plus optional attune.local.yaml
// overrides) to the planner's parameter source interface, and Watcher emits
// debounced change events when the manifest file is edited.
package config
