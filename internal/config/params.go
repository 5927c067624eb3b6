package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"attune/internal/api"
	"attune/internal/extensions"
	"attune/pkg/logging"
)

// LocalFileName is the name of the optional environment-local override file.
// Its params section shadows the manifest's when local overrides are enabled
// (emulator mode). The file is meant to stay out of version control.
const LocalFileName = "attune.local.yaml"

// ManifestParamSource provides instance parameters from the project's
// declarative manifest, implementing extensions.ParamSource.
//
// Per-environment bindings are resolved against the target project id first,
// then its aliases. When local checks are enabled, params declared in
// attune.local.yaml shadow the manifest's values.
type ManifestParamSource struct {
	manifest Manifest

	// ProjectNumber is surfaced as the PROJECT_NUMBER auto-populated param
	// when known.
	ProjectNumber string

	local map[string]map[string]string
}

// NewManifestParamSource creates a parameter source over a loaded manifest,
// reading local overrides from the project directory if present.
func NewManifestParamSource(projectDir string, manifest Manifest) (*ManifestParamSource, error) {
	source := &ManifestParamSource{manifest: manifest}

	data, err := os.ReadFile(filepath.Join(projectDir, LocalFileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", LocalFileName, err)
		}
		return source, nil
	}

	var doc struct {
		Params map[string]map[string]string `yaml:"params"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", LocalFileName, err)
	}
	source.local = doc.Params
	logging.Debug("Config", "Loaded local param overrides for %d instances", len(doc.Params))
	return source, nil
}

// ReadInstanceParams returns the collapsed parameter values declared for one
// instance.
func (s *ManifestParamSource) ReadInstanceParams(ctx context.Context, args extensions.ReadParamsArgs) (map[string]string, error) {
	var instance *ManifestInstanceSpec
	for i := range s.manifest.Instances {
		if s.manifest.Instances[i].InstanceID == args.InstanceID {
			instance = &s.manifest.Instances[i]
			break
		}
	}
	if instance == nil {
		return nil, api.NewInstanceNotFoundError(args.InstanceID)
	}

	params := make(map[string]string, len(instance.Params))
	for key, binding := range instance.Params {
		params[key] = resolveBinding(binding, args.ProjectID, args.Aliases)
	}

	if args.CheckLocal {
		for key, value := range s.local[args.InstanceID] {
			params[key] = value
		}
	}
	return params, nil
}

// resolveBinding picks the binding value for the target environment: the
// project id wins over aliases, aliases win over the default.
func resolveBinding(binding ParamBinding, projectID string, aliases []string) string {
	if v, ok := binding.Env[projectID]; ok {
		return v
	}
	for _, alias := range aliases {
		if v, ok := binding.Env[alias]; ok {
			return v
		}
	}
	return binding.Value
}

// AutoPopulatedParams returns the computed project parameters available as
// placeholders inside declared parameter values.
func (s *ManifestParamSource) AutoPopulatedParams(ctx context.Context, projectID string, emulatorMode bool) (map[string]string, error) {
	params := map[string]string{
		"PROJECT_ID":     projectID,
		"STORAGE_BUCKET": projectID + ".storage",
	}
	if s.ProjectNumber != "" {
		params["PROJECT_NUMBER"] = s.ProjectNumber
	}
	if emulatorMode {
		// Emulated projects have no real storage bucket.
		params["STORAGE_BUCKET"] = projectID + ".storage.local"
	}
	return params, nil
}

var _ extensions.ParamSource = (*ManifestParamSource)(nil)
