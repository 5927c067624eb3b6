package extensions

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"

	"attune/internal/api"
	"attune/pkg/logging"
)

// InstanceSpec describes one extension instance, either declared in the
// manifest ("want") or currently installed ("have"). Both sides are
// normalized to this shape so they can be diffed.
//
// Specs are constructed fresh on every planning pass and never mutated
// afterwards; extension metadata is memoized on the Planner session, not on
// the spec.
type InstanceSpec struct {
	// InstanceID is the instance identifier, unique within a project.
	InstanceID string

	// Ref points at the upstream extension version. Nil for instances
	// installed from an unpublished source. After planning, Ref.Version is
	// always an exact version.
	Ref *Ref

	// Params holds the instance's parameter values, fully substituted.
	Params map[string]string
}

// ManifestEntry is one declared instance of the manifest's extensions
// section: an instance identifier bound to an extension reference string.
type ManifestEntry struct {
	InstanceID string
	Ref        string
}

// WantArgs carries everything Planner.Want needs to compute the desired
// instance list for a project.
type WantArgs struct {
	// ProjectID and ProjectNumber identify the target project.
	ProjectID     string
	ProjectNumber string

	// Aliases are alternate names for the target project.
	Aliases []string

	// ProjectDir is the root of the declarative configuration source.
	ProjectDir string

	// Instances are the declared entries, in manifest declaration order.
	Instances []ManifestEntry

	// EmulatorMode enables environment-local parameter overrides.
	EmulatorMode bool
}

// Planner computes the desired ("want") and installed ("have") extension
// instance lists for a project.
//
// A Planner is scoped to one planning session: extension metadata fetched
// through ExtensionVersion and Extension is cached on the planner, keyed by
// canonical ref string, so repeated lookups for the same ref hit the registry
// once. A Planner is not safe for concurrent use.
type Planner struct {
	registry Registry
	params   ParamSource

	// sessionID tags this planning pass in log output.
	sessionID string

	versionCache   map[string]*ExtensionVersion
	extensionCache map[string]*Extension
}

// NewPlanner creates a Planner over the given registry and parameter source.
func NewPlanner(registry Registry, params ParamSource) *Planner {
	return &Planner{
		registry:       registry,
		params:         params,
		sessionID:      uuid.NewString(),
		versionCache:   make(map[string]*ExtensionVersion),
		extensionCache: make(map[string]*Extension),
	}
}

// Have lists the extension instances currently installed on a project and
// maps each to an InstanceSpec.
//
// The instance identifier is the trailing segment of the registry resource
// name, params are copied verbatim, and a live extension reference string is
// parsed into a structured Ref whose version is overwritten with the
// instance's pinned exact version. No version resolution happens here; the
// live data is already exact. Ordering matches the registry's listing order.
func (p *Planner) Have(ctx context.Context, projectID string) ([]InstanceSpec, error) {
	instances, err := p.registry.ListInstances(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing instances of project %s: %w", projectID, err)
	}

	specs := make([]InstanceSpec, 0, len(instances))
	for _, instance := range instances {
		spec := InstanceSpec{
			InstanceID: instanceID(instance.Name),
			Params:     maps.Clone(instance.Params),
		}
		if instance.ExtensionRef != "" {
			ref, err := ParseRef(instance.ExtensionRef)
			if err != nil {
				return nil, fmt.Errorf("instance %s: %w", spec.InstanceID, err)
			}
			// The live record pins the exact installed version.
			ref.Version = instance.ExtensionVersion
			spec.Ref = &ref
		}
		specs = append(specs, spec)
	}

	logging.Debug("Planner", "Session %s: have %d instances on project %s", p.sessionID, len(specs), projectID)
	return specs, nil
}

// entryResult is the outcome of processing one declared manifest entry:
// either a fully built spec or the failure that broke it.
type entryResult struct {
	spec InstanceSpec
	err  error
}

// Want computes the desired instance list from the declared manifest entries.
//
// For each entry the reference string is parsed, its version selector is
// resolved to an exact version, the instance's declared parameters are read
// and placeholder values are substituted with auto-populated project
// parameters.
//
// Entries are independent: a failing entry does not stop the others from
// being processed. If any entry failed, Want fails as a whole with an
// api.AggregateConfigurationError collecting every failure in declaration
// order; a partial list is never returned. On success the specs come back in
// declaration order.
func (p *Planner) Want(ctx context.Context, args WantArgs) ([]InstanceSpec, error) {
	results := make([]entryResult, 0, len(args.Instances))
	for _, entry := range args.Instances {
		spec, err := p.wantOne(ctx, args, entry)
		if err != nil {
			err = fmt.Errorf("instance %s: %w", entry.InstanceID, err)
		}
		results = append(results, entryResult{spec: spec, err: err})
	}

	var errs []error
	for _, result := range results {
		if result.err != nil {
			errs = append(errs, result.err)
		}
	}
	if len(errs) > 0 {
		return nil, &api.AggregateConfigurationError{Section: "extensions", Errors: errs}
	}

	specs := make([]InstanceSpec, 0, len(results))
	for _, result := range results {
		specs = append(specs, result.spec)
	}
	logging.Debug("Planner", "Session %s: want %d instances for project %s", p.sessionID, len(specs), args.ProjectID)
	return specs, nil
}

// wantOne builds the desired spec for a single declared entry.
func (p *Planner) wantOne(ctx context.Context, args WantArgs, entry ManifestEntry) (InstanceSpec, error) {
	ref, err := ParseRef(entry.Ref)
	if err != nil {
		return InstanceSpec{}, err
	}

	version, err := ResolveVersion(ctx, p.registry, ref)
	if err != nil {
		return InstanceSpec{}, err
	}
	ref.Version = version

	params, err := p.params.ReadInstanceParams(ctx, ReadParamsArgs{
		ProjectDir:    args.ProjectDir,
		InstanceID:    entry.InstanceID,
		ProjectID:     args.ProjectID,
		ProjectNumber: args.ProjectNumber,
		Aliases:       args.Aliases,
		CheckLocal:    args.EmulatorMode,
	})
	if err != nil {
		return InstanceSpec{}, fmt.Errorf("reading params: %w", err)
	}

	autoParams, err := p.params.AutoPopulatedParams(ctx, args.ProjectID, args.EmulatorMode)
	if err != nil {
		return InstanceSpec{}, fmt.Errorf("reading project params: %w", err)
	}

	return InstanceSpec{
		InstanceID: entry.InstanceID,
		Ref:        &ref,
		Params:     SubstituteParams(params, autoParams),
	}, nil
}

// ExtensionVersion returns the registry metadata of the extension version a
// spec points at, fetching it at most once per planning session.
func (p *Planner) ExtensionVersion(ctx context.Context, spec InstanceSpec) (*ExtensionVersion, error) {
	if spec.Ref == nil {
		return nil, &MissingReferenceError{InstanceID: spec.InstanceID}
	}

	key := spec.Ref.String()
	if cached, ok := p.versionCache[key]; ok {
		return cached, nil
	}

	version, err := p.registry.GetExtensionVersion(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetching extension version %s: %w", key, err)
	}
	p.versionCache[key] = version
	return version, nil
}

// Extension returns the registry metadata of the extension a spec points at,
// fetching it at most once per planning session.
func (p *Planner) Extension(ctx context.Context, spec InstanceSpec) (*Extension, error) {
	if spec.Ref == nil {
		return nil, &MissingReferenceError{InstanceID: spec.InstanceID}
	}

	key := spec.Ref.Name()
	if cached, ok := p.extensionCache[key]; ok {
		return cached, nil
	}

	extension, err := p.registry.GetExtension(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetching extension %s: %w", key, err)
	}
	p.extensionCache[key] = extension
	return extension, nil
}

// instanceID extracts the instance identifier from a registry resource name
// like "projects/p/instances/my-logger".
func instanceID(resourceName string) string {
	if idx := strings.LastIndex(resourceName, "/"); idx >= 0 {
		return resourceName[idx+1:]
	}
	return resourceName
}
