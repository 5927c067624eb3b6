package extensions

import (
	"context"
	"strings"
)

// ReadParamsArgs identifies the parameter bindings of one declared instance.
type ReadParamsArgs struct {
	// ProjectDir is the root of the declarative configuration source.
	ProjectDir string

	// InstanceID is the declared instance identifier.
	InstanceID string

	// ProjectID and ProjectNumber identify the target project.
	ProjectID     string
	ProjectNumber string

	// Aliases are alternate names for the target project that may key
	// environment-specific parameter files.
	Aliases []string

	// CheckLocal enables environment-local overrides, used when planning
	// against an emulated environment.
	CheckLocal bool
}

// ParamSource provides the declared parameter values of extension instances.
//
// Implementations read per-instance parameter files from the project
// directory; they are thin wrappers and surface read failures unchanged.
type ParamSource interface {
	// ReadInstanceParams returns the parameter bindings declared for one
	// instance, already collapsed to single string values.
	ReadInstanceParams(ctx context.Context, args ReadParamsArgs) (map[string]string, error)

	// AutoPopulatedParams returns the computed project parameters (project
	// id, number, storage bucket and the like) that may be referenced as
	// placeholders inside declared parameter values.
	AutoPopulatedParams(ctx context.Context, projectID string, emulatorMode bool) (map[string]string, error)
}

// SubstituteParams replaces placeholder references to auto-populated project
// parameters inside declared parameter values.
//
// Both "${KEY}" and "${param:KEY}" placeholder forms are recognized for every
// key of autoParams. Values without placeholders pass through verbatim. The
// input map is not modified.
func SubstituteParams(params map[string]string, autoParams map[string]string) map[string]string {
	substituted := make(map[string]string, len(params))
	for key, value := range params {
		for autoKey, autoValue := range autoParams {
			value = strings.ReplaceAll(value, "${"+autoKey+"}", autoValue)
			value = strings.ReplaceAll(value, "${param:"+autoKey+"}", autoValue)
		}
		substituted[key] = value
	}
	return substituted
}
