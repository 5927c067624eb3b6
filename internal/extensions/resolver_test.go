package extensions

import (
	"context"
	"errors"
	"testing"

	"attune/internal/api"
)

// mockRegistry implements Registry for testing.
type mockRegistry struct {
	instances  map[string][]Instance
	versions   map[string][]ExtensionVersion
	extensions map[string]*Extension

	listVersionsErr error
	listVersionsN   int
	getVersionN     int
	getExtensionN   int
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		instances:  make(map[string][]Instance),
		versions:   make(map[string][]ExtensionVersion),
		extensions: make(map[string]*Extension),
	}
}

func (m *mockRegistry) ListInstances(ctx context.Context, projectID string) ([]Instance, error) {
	return m.instances[projectID], nil
}

func (m *mockRegistry) ListExtensionVersions(ctx context.Context, extensionName string) ([]ExtensionVersion, error) {
	m.listVersionsN++
	if m.listVersionsErr != nil {
		return nil, m.listVersionsErr
	}
	return m.versions[extensionName], nil
}

func (m *mockRegistry) GetExtensionVersion(ctx context.Context, ref string) (*ExtensionVersion, error) {
	m.getVersionN++
	for _, versions := range m.versions {
		for _, v := range versions {
			if v.Ref == ref {
				out := v
				return &out, nil
			}
		}
	}
	return nil, api.NewNotFoundError("extension version", ref)
}

func (m *mockRegistry) GetExtension(ctx context.Context, name string) (*Extension, error) {
	m.getExtensionN++
	ext, ok := m.extensions[name]
	if !ok {
		return nil, api.NewExtensionNotFoundError(name)
	}
	return ext, nil
}

func (m *mockRegistry) addVersions(extensionName string, versions ...string) {
	for _, v := range versions {
		m.versions[extensionName] = append(m.versions[extensionName], ExtensionVersion{
			Ref:     extensionName + "@" + v,
			Version: v,
		})
	}
}

func TestResolveVersion(t *testing.T) {
	tests := []struct {
		name      string
		published []string
		selector  string
		expected  string
	}{
		{
			name:      "no selector picks maximum",
			published: []string{"1.0.0", "1.2.0", "1.1.0"},
			selector:  "",
			expected:  "1.2.0",
		},
		{
			name:      "latest picks maximum",
			published: []string{"0.9.0", "2.0.0", "1.5.3"},
			selector:  "latest",
			expected:  "2.0.0",
		},
		{
			name:      "prerelease sorts below release",
			published: []string{"1.2.0-rc.1", "1.1.0", "1.2.0-beta.2"},
			selector:  "latest",
			expected:  "1.2.0-rc.1",
		},
		{
			name:      "exact version present",
			published: []string{"1.0.0", "1.1.0", "1.2.0"},
			selector:  "1.1.0",
			expected:  "1.1.0",
		},
		{
			name:      "caret range picks maximum satisfying",
			published: []string{"1.0.0", "1.4.2", "2.0.0"},
			selector:  "^1.0.0",
			expected:  "1.4.2",
		},
		{
			name:      "bounded range",
			published: []string{"1.0.0", "1.1.0", "1.2.0"},
			selector:  ">=1.0.0 <1.2.0",
			expected:  "1.1.0",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := newMockRegistry()
			registry.addVersions("pubs/logger", test.published...)

			got, err := ResolveVersion(context.Background(), registry, Ref{
				Publisher:   "pubs",
				ExtensionID: "logger",
				Version:     test.selector,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.expected {
				t.Errorf("ResolveVersion() = %q, expected %q", got, test.expected)
			}
		})
	}
}

func TestResolveVersion_NoPublishedVersions(t *testing.T) {
	registry := newMockRegistry()

	_, err := ResolveVersion(context.Background(), registry, Ref{Publisher: "pubs", ExtensionID: "ghost"})
	if !api.IsNotFound(err) {
		t.Errorf("expected NotFoundError for extension with no versions, got %v", err)
	}
}

func TestResolveVersion_NoMatchingVersion(t *testing.T) {
	registry := newMockRegistry()
	registry.addVersions("pubs/logger", "1.0.0", "1.1.0")

	_, err := ResolveVersion(context.Background(), registry, Ref{
		Publisher:   "pubs",
		ExtensionID: "logger",
		Version:     "^2.0.0",
	})
	if !IsNoMatchingVersion(err) {
		t.Errorf("expected NoMatchingVersionError, got %v", err)
	}
	if api.IsNotFound(err) {
		t.Error("NoMatchingVersionError must not read as NotFound")
	}
}

func TestResolveVersion_InvalidSelector(t *testing.T) {
	registry := newMockRegistry()
	registry.addVersions("pubs/logger", "1.0.0")

	_, err := ResolveVersion(context.Background(), registry, Ref{
		Publisher:   "pubs",
		ExtensionID: "logger",
		Version:     "not-a-range!!!",
	})
	if err == nil {
		t.Fatal("expected error for invalid selector")
	}
}

func TestResolveVersion_ListingFailurePropagates(t *testing.T) {
	registry := newMockRegistry()
	registry.listVersionsErr = errors.New("registry unavailable")

	_, err := ResolveVersion(context.Background(), registry, Ref{Publisher: "pubs", ExtensionID: "logger"})
	if err == nil || !errors.Is(err, registry.listVersionsErr) {
		t.Errorf("expected underlying listing error to propagate, got %v", err)
	}
}

func TestResolveVersion_NoCachingAcrossCalls(t *testing.T) {
	registry := newMockRegistry()
	registry.addVersions("pubs/logger", "1.0.0")

	ref := Ref{Publisher: "pubs", ExtensionID: "logger", Version: "latest"}
	for i := 0; i < 3; i++ {
		if _, err := ResolveVersion(context.Background(), registry, ref); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if registry.listVersionsN != 3 {
		t.Errorf("expected one listing call per resolution, got %d for 3 calls", registry.listVersionsN)
	}
}

func TestResolveVersion_SkipsUnparseableVersions(t *testing.T) {
	registry := newMockRegistry()
	registry.addVersions("pubs/logger", "not-semver", "1.0.0")

	got, err := ResolveVersion(context.Background(), registry, Ref{Publisher: "pubs", ExtensionID: "logger"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.0.0" {
		t.Errorf("ResolveVersion() = %q, expected %q", got, "1.0.0")
	}
}

// Compile-time check that the mock satisfies the interface.
var _ Registry = (*mockRegistry)(nil)
