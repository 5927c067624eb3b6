package extensions

import "context"

// Instance is a live extension instance record as returned by the registry.
// It mirrors the registry's wire shape; Planner.Have maps it to an
// InstanceSpec for diffing against the declarative manifest.
type Instance struct {
	// Name is the full resource name, e.g. "projects/p/instances/my-logger".
	Name string

	// ExtensionRef is the "publisher/extensionID" reference of the extension
	// this instance was created from. Empty for instances installed from an
	// unpublished source.
	ExtensionRef string

	// ExtensionVersion is the exact version the instance is pinned to.
	ExtensionVersion string

	// Params holds the instance's configured parameter values.
	Params map[string]string
}

// ExtensionVersion is the registry's metadata record for one published
// version of an extension.
type ExtensionVersion struct {
	// Ref is the canonical "publisher/extensionID@version" reference.
	Ref string

	// Version is the published semantic version string.
	Version string

	// Spec carries the version's declared parameters and resources, opaque
	// to the planner.
	Spec map[string]interface{}
}

// Extension is the registry's metadata record for a published extension.
type Extension struct {
	// Ref is the canonical "publisher/extensionID" reference.
	Ref string

	// Publisher is the publisher identifier.
	Publisher string

	// LatestVersion is the highest published version, as reported by the
	// registry.
	LatestVersion string
}

// Registry provides access to the extension registry.
//
// Implementations are thin wrappers over the registry API; they signal a
// missing resource with api.NotFoundError and surface transport failures
// unchanged.
type Registry interface {
	// ListInstances lists the live extension instances of a project, in the
	// registry's listing order.
	ListInstances(ctx context.Context, projectID string) ([]Instance, error)

	// ListExtensionVersions lists every published version of the extension
	// named by "publisher/extensionID".
	ListExtensionVersions(ctx context.Context, extensionName string) ([]ExtensionVersion, error)

	// GetExtensionVersion fetches the metadata of one published version,
	// keyed by its canonical "publisher/extensionID@version" reference.
	GetExtensionVersion(ctx context.Context, ref string) (*ExtensionVersion, error)

	// GetExtension fetches the metadata of a published extension, keyed by
	// its canonical "publisher/extensionID" reference.
	GetExtension(ctx context.Context, name string) (*Extension, error)
}
