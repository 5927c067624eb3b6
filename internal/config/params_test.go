package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attune/internal/api"
	"attune/internal/extensions"
)

func testManifest() Manifest {
	return Manifest{
		Project: "proj",
		Instances: []ManifestInstanceSpec{
			{
				InstanceID: "logger",
				Ref:        "pubs/logger",
				Params: map[string]ParamBinding{
					"LOG_LEVEL": {Value: "info", Env: map[string]string{
						"proj":    "warn",
						"staging": "debug",
					}},
					"BUCKET": {Value: "${PROJECT_ID}-artifacts"},
				},
			},
		},
	}
}

func TestManifestParamSource_ReadInstanceParams(t *testing.T) {
	source, err := NewManifestParamSource(t.TempDir(), testManifest())
	require.NoError(t, err)

	params, err := source.ReadInstanceParams(context.Background(), extensions.ReadParamsArgs{
		InstanceID: "logger",
		ProjectID:  "proj",
		Aliases:    []string{"staging"},
	})
	require.NoError(t, err)

	// Project id override beats the staging alias.
	assert.Equal(t, "warn", params["LOG_LEVEL"])
	assert.Equal(t, "${PROJECT_ID}-artifacts", params["BUCKET"])
}

func TestManifestParamSource_AliasFallback(t *testing.T) {
	source, err := NewManifestParamSource(t.TempDir(), testManifest())
	require.NoError(t, err)

	params, err := source.ReadInstanceParams(context.Background(), extensions.ReadParamsArgs{
		InstanceID: "logger",
		ProjectID:  "other-proj",
		Aliases:    []string{"staging"},
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", params["LOG_LEVEL"])
}

func TestManifestParamSource_UnknownInstance(t *testing.T) {
	source, err := NewManifestParamSource(t.TempDir(), testManifest())
	require.NoError(t, err)

	_, err = source.ReadInstanceParams(context.Background(), extensions.ReadParamsArgs{InstanceID: "ghost"})
	assert.True(t, api.IsNotFound(err))
}

func TestManifestParamSource_LocalOverrides(t *testing.T) {
	dir := t.TempDir()
	localContent := `
params:
  logger:
    LOG_LEVEL: trace
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, LocalFileName), []byte(localContent), 0644))

	source, err := NewManifestParamSource(dir, testManifest())
	require.NoError(t, err)

	// Local overrides apply only when CheckLocal is set.
	params, err := source.ReadInstanceParams(context.Background(), extensions.ReadParamsArgs{
		InstanceID: "logger",
		ProjectID:  "proj",
		CheckLocal: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "trace", params["LOG_LEVEL"])

	params, err = source.ReadInstanceParams(context.Background(), extensions.ReadParamsArgs{
		InstanceID: "logger",
		ProjectID:  "proj",
	})
	require.NoError(t, err)
	assert.Equal(t, "warn", params["LOG_LEVEL"])
}

func TestManifestParamSource_AutoPopulatedParams(t *testing.T) {
	source, err := NewManifestParamSource(t.TempDir(), testManifest())
	require.NoError(t, err)
	source.ProjectNumber = "123456"

	params, err := source.AutoPopulatedParams(context.Background(), "proj", false)
	require.NoError(t, err)
	assert.Equal(t, "proj", params["PROJECT_ID"])
	assert.Equal(t, "123456", params["PROJECT_NUMBER"])
	assert.Equal(t, "proj.storage", params["STORAGE_BUCKET"])

	params, err = source.AutoPopulatedParams(context.Background(), "proj", true)
	require.NoError(t, err)
	assert.Equal(t, "proj.storage.local", params["STORAGE_BUCKET"])
}
