package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0644))
}

func TestLoadManifest_PreservesDeclarationOrder(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
project: proj
extensions:
  zeta: pubs/zeta@1.0.0
  alpha: pubs/alpha
  mid: pubs/mid@^2.0.0
`)

	manifest, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "proj", manifest.Project)

	require.Len(t, manifest.Instances, 3)
	assert.Equal(t, "zeta", manifest.Instances[0].InstanceID)
	assert.Equal(t, "alpha", manifest.Instances[1].InstanceID)
	assert.Equal(t, "mid", manifest.Instances[2].InstanceID)

	entries := manifest.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "pubs/zeta@1.0.0", entries[0].Ref)
}

func TestLoadManifest_ParamBindings(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
project: proj
extensions:
  logger: pubs/logger
params:
  logger:
    LOG_LEVEL: debug
    BUCKET:
      value: default-bucket
      env:
        staging: staging-bucket
`)

	manifest, err := LoadManifest(dir)
	require.NoError(t, err)
	require.Len(t, manifest.Instances, 1)

	params := manifest.Instances[0].Params
	assert.Equal(t, ParamBinding{Value: "debug"}, params["LOG_LEVEL"])
	assert.Equal(t, "default-bucket", params["BUCKET"].Value)
	assert.Equal(t, "staging-bucket", params["BUCKET"].Env["staging"])

	collapsed := manifest.Instances[0].CollapseParams("staging")
	assert.Equal(t, map[string]string{"LOG_LEVEL": "debug", "BUCKET": "staging-bucket"}, collapsed)

	collapsed = manifest.Instances[0].CollapseParams("production")
	assert.Equal(t, map[string]string{"LOG_LEVEL": "debug", "BUCKET": "default-bucket"}, collapsed)
}

func TestLoadManifest_MissingFileIsEmptyManifest(t *testing.T) {
	manifest, err := LoadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, manifest.Instances)
}

func TestLoadManifest_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "extensions: [not: valid: yaml")

	_, err := LoadManifest(dir)
	require.Error(t, err)
}

func TestLoadManifest_NonMappingExtensions(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
extensions:
  - pubs/logger
`)

	_, err := LoadManifest(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping")
}

func TestLoadManifest_EmptyExtensionsSection(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "project: proj\n")

	manifest, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Empty(t, manifest.Instances)
}
