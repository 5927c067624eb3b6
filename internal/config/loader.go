package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"attune/pkg/logging"
)

// LoadManifest loads the declarative manifest from a project directory.
//
// A missing manifest file is not an error: an empty manifest is returned so
// planning against a project with no declared extensions yields an empty
// want list.
func LoadManifest(projectDir string) (Manifest, error) {
	manifestPath := filepath.Join(projectDir, ManifestFileName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("Config", "No %s found at %s, using empty manifest", ManifestFileName, projectDir)
			return Manifest{}, nil
		}
		return Manifest{}, fmt.Errorf("reading manifest %s: %w", manifestPath, err)
	}

	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}

	instances, err := instancesFromNode(doc.Extensions, doc.Params)
	if err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", manifestPath, err)
	}

	logging.Info("Config", "Loaded manifest from %s (%d declared instances)", manifestPath, len(instances))
	return Manifest{Project: doc.Project, Instances: instances}, nil
}
