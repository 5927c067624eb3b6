package offline

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"attune/internal/api"
	"attune/internal/extensions"
	"attune/internal/secrets"
)

// snapshotDoc is the YAML shape of an environment snapshot file.
type snapshotDoc struct {
	Project  string `yaml:"project"`
	Registry struct {
		Instances  []instanceDoc           `yaml:"instances"`
		Extensions map[string]extensionDoc `yaml:"extensions"`
	} `yaml:"registry"`
	Secrets   []secretDoc   `yaml:"secrets"`
	Endpoints []endpointDoc `yaml:"endpoints"`
}

type instanceDoc struct {
	Name             string            `yaml:"name"`
	ExtensionRef     string            `yaml:"extensionRef,omitempty"`
	ExtensionVersion string            `yaml:"extensionVersion,omitempty"`
	Params           map[string]string `yaml:"params,omitempty"`
}

type extensionDoc struct {
	Publisher string   `yaml:"publisher"`
	Versions  []string `yaml:"versions"`
}

type secretDoc struct {
	Name     string            `yaml:"name"`
	Labels   map[string]string `yaml:"labels,omitempty"`
	Versions []string          `yaml:"versions"`
}

type endpointDoc struct {
	ID            string `yaml:"id"`
	SecretEnvVars []struct {
		Key     string `yaml:"key"`
		Secret  string `yaml:"secret"`
		Version string `yaml:"version"`
	} `yaml:"secretEnvVars,omitempty"`
}

// Backend serves the planner's registry and the pruner's secret store from a
// YAML snapshot of an environment, so plans and pruning reports can be
// computed without talking to any live service.
//
// Mutating operations (secret creation, access grants) are recorded in
// memory only; the snapshot file is never written back.
type Backend struct {
	mu sync.Mutex

	project   string
	instances []extensions.Instance
	versions  map[string][]extensions.ExtensionVersion
	exts      map[string]*extensions.Extension

	secretList []secrets.Secret
	secretVers map[string][]secrets.SecretVersion
	latest     map[string]string
	grants     map[string][]string

	endpoints []secrets.Endpoint
}

// Load reads an environment snapshot file into a Backend.
func Load(path string) (*Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	var doc snapshotDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	backend := &Backend{
		project:    doc.Project,
		versions:   make(map[string][]extensions.ExtensionVersion),
		exts:       make(map[string]*extensions.Extension),
		secretVers: make(map[string][]secrets.SecretVersion),
		latest:     make(map[string]string),
		grants:     make(map[string][]string),
	}

	for _, inst := range doc.Registry.Instances {
		backend.instances = append(backend.instances, extensions.Instance{
			Name:             inst.Name,
			ExtensionRef:     inst.ExtensionRef,
			ExtensionVersion: inst.ExtensionVersion,
			Params:           inst.Params,
		})
	}

	for name, ext := range doc.Registry.Extensions {
		backend.exts[name] = &extensions.Extension{
			Ref:       name,
			Publisher: ext.Publisher,
		}
		for _, version := range ext.Versions {
			backend.versions[name] = append(backend.versions[name], extensions.ExtensionVersion{
				Ref:     name + "@" + version,
				Version: version,
			})
		}
		if n := len(ext.Versions); n > 0 {
			backend.exts[name].LatestVersion = ext.Versions[n-1]
		}
	}

	for _, sec := range doc.Secrets {
		secret := secrets.Secret{ProjectID: doc.Project, Name: sec.Name, Labels: sec.Labels}
		backend.secretList = append(backend.secretList, secret)
		for _, version := range sec.Versions {
			backend.secretVers[sec.Name] = append(backend.secretVers[sec.Name], secrets.SecretVersion{
				Secret:    secret,
				VersionID: version,
			})
		}
		if n := len(sec.Versions); n > 0 {
			// The snapshot lists versions oldest first.
			backend.latest[sec.Name] = sec.Versions[n-1]
		}
	}

	for _, ep := range doc.Endpoints {
		endpoint := secrets.Endpoint{ID: ep.ID}
		for _, envVar := range ep.SecretEnvVars {
			endpoint.SecretEnvVars = append(endpoint.SecretEnvVars, secrets.SecretEnvVar{
				ProjectID: doc.Project,
				Key:       envVar.Key,
				Secret:    envVar.Secret,
				Version:   envVar.Version,
			})
		}
		backend.endpoints = append(backend.endpoints, endpoint)
	}

	return backend, nil
}

// Project returns the snapshot's project id.
func (b *Backend) Project() string {
	return b.project
}

// Endpoints returns the snapshot's deployed endpoints.
func (b *Backend) Endpoints() []secrets.Endpoint {
	return b.endpoints
}

// ListInstances implements extensions.Registry.
func (b *Backend) ListInstances(ctx context.Context, projectID string) ([]extensions.Instance, error) {
	if projectID != b.project {
		return nil, nil
	}
	return b.instances, nil
}

// ListExtensionVersions implements extensions.Registry.
func (b *Backend) ListExtensionVersions(ctx context.Context, extensionName string) ([]extensions.ExtensionVersion, error) {
	return b.versions[extensionName], nil
}

// GetExtensionVersion implements extensions.Registry.
func (b *Backend) GetExtensionVersion(ctx context.Context, ref string) (*extensions.ExtensionVersion, error) {
	for _, versions := range b.versions {
		for _, version := range versions {
			if version.Ref == ref {
				out := version
				return &out, nil
			}
		}
	}
	return nil, api.NewNotFoundError("extension version", ref)
}

// GetExtension implements extensions.Registry.
func (b *Backend) GetExtension(ctx context.Context, name string) (*extensions.Extension, error) {
	ext, ok := b.exts[name]
	if !ok {
		return nil, api.NewExtensionNotFoundError(name)
	}
	return ext, nil
}

// GetSecret implements secrets.Store.
func (b *Backend) GetSecret(ctx context.Context, projectID, name string) (*secrets.Secret, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, secret := range b.secretList {
		if secret.ProjectID == projectID && secret.Name == name {
			out := secret
			return &out, nil
		}
	}
	return nil, api.NewSecretNotFoundError(name)
}

// CreateSecret implements secrets.Store. The secret exists in memory only.
func (b *Backend) CreateSecret(ctx context.Context, projectID, name string, labels map[string]string) (*secrets.Secret, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	secret := secrets.Secret{ProjectID: projectID, Name: name, Labels: labels}
	b.secretList = append(b.secretList, secret)
	return &secret, nil
}

// ListSecrets implements secrets.Store.
func (b *Backend) ListSecrets(ctx context.Context, projectID string) ([]secrets.Secret, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []secrets.Secret
	for _, secret := range b.secretList {
		if secret.ProjectID == projectID {
			out = append(out, secret)
		}
	}
	return out, nil
}

// ListSecretVersions implements secrets.Store.
func (b *Backend) ListSecretVersions(ctx context.Context, secret secrets.Secret) ([]secrets.SecretVersion, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.secretVers[secret.Name], nil
}

// GetSecretVersion implements secrets.Store.
func (b *Backend) GetSecretVersion(ctx context.Context, projectID, secretName, versionID string) (*secrets.SecretVersion, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if versionID == secrets.Latest {
		concrete, ok := b.latest[secretName]
		if !ok {
			return nil, api.NewSecretVersionNotFoundError(secretName + "@" + secrets.Latest)
		}
		versionID = concrete
	}
	for _, version := range b.secretVers[secretName] {
		if version.VersionID == versionID {
			out := version
			return &out, nil
		}
	}
	return nil, api.NewSecretVersionNotFoundError(secretName + "@" + versionID)
}

// GrantAccess implements secrets.Store, recording the grant in memory.
func (b *Backend) GrantAccess(ctx context.Context, secret secrets.Secret, role string, members []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.grants[secret.Name] = append(b.grants[secret.Name], members...)
	return nil
}

var (
	_ extensions.Registry = (*Backend)(nil)
	_ secrets.Store       = (*Backend)(nil)
)
