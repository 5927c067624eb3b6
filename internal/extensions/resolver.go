package extensions

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"attune/internal/api"
	"attune/pkg/logging"
)

// ResolveVersion resolves a ref's version selector against the extension's
// published versions to one concrete version string.
//
// An absent selector or the symbolic "latest" selects the highest published
// version by semver precedence. Any other selector is treated as a semver
// range (a single exact version is a range of one) and the highest published
// version satisfying it is selected.
//
// Each call lists the published versions from the registry anew; nothing is
// cached across calls. Fails with api.NotFoundError when the extension has no
// published versions at all, and with NoMatchingVersionError when a selector
// is given but nothing satisfies it.
func ResolveVersion(ctx context.Context, registry Registry, ref Ref) (string, error) {
	published, err := registry.ListExtensionVersions(ctx, ref.Name())
	if err != nil {
		return "", fmt.Errorf("listing versions of %s: %w", ref.Name(), err)
	}
	if len(published) == 0 {
		return "", api.NewExtensionNotFoundError(ref.Name())
	}

	versions := make([]*semver.Version, 0, len(published))
	for _, pv := range published {
		v, err := semver.NewVersion(pv.Version)
		if err != nil {
			// The registry should only publish valid semver; skip anything
			// else rather than failing the whole resolution.
			logging.Debug("Resolver", "Skipping unparseable version %q of %s", pv.Version, ref.Name())
			continue
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return "", api.NewExtensionNotFoundError(ref.Name())
	}

	selector := ref.Version
	if selector == "" || selector == LatestVersion {
		return maxVersion(versions).Original(), nil
	}

	constraint, err := semver.NewConstraint(selector)
	if err != nil {
		return "", fmt.Errorf("invalid version selector %q for %s: %w", selector, ref.Name(), err)
	}

	var best *semver.Version
	for _, v := range versions {
		if !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return "", &NoMatchingVersionError{Extension: ref.Name(), Selector: selector}
	}
	return best.Original(), nil
}

func maxVersion(versions []*semver.Version) *semver.Version {
	best := versions[0]
	for _, v := range versions[1:] {
		if v.GreaterThan(best) {
			best = v
		}
	}
	return best
}
