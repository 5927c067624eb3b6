package extensions

import (
	"fmt"
	"strings"
)

// LatestVersion is the symbolic version selector that resolves to the highest
// published version of an extension.
const LatestVersion = "latest"

// Ref is a structured identifier pointing at a published extension or a
// specific version of it.
//
// The canonical string form is "publisher/extensionID" for an extension and
// "publisher/extensionID@version" for an extension version. Version may be an
// exact semver version, a semver range, the symbolic "latest", or empty
// (treated as "latest" during resolution). Once a ref has passed through
// version resolution it always carries an exact version.
type Ref struct {
	Publisher   string
	ExtensionID string
	Version     string
}

// ParseRef parses a "publisher/extensionID[@version]" reference string into
// its structured form.
func ParseRef(s string) (Ref, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("invalid extension ref %q: expected publisher/extensionID[@version]", s)
	}

	ref := Ref{Publisher: parts[0]}
	id, version, found := strings.Cut(parts[1], "@")
	if id == "" || (found && version == "") {
		return Ref{}, fmt.Errorf("invalid extension ref %q: expected publisher/extensionID[@version]", s)
	}
	ref.ExtensionID = id
	ref.Version = version
	return ref, nil
}

// Name returns the canonical extension identifier without a version,
// "publisher/extensionID".
func (r Ref) Name() string {
	return r.Publisher + "/" + r.ExtensionID
}

// String renders the ref back to its canonical string form. The version
// segment is omitted when the ref carries no version.
func (r Ref) String() string {
	if r.Version == "" {
		return r.Name()
	}
	return r.Name() + "@" + r.Version
}
