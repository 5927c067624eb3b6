package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pruneTestSnapshot = `
project: proj
registry:
  instances: []
  extensions: {}
secrets:
  - name: s1
    versions: ["1", "2"]
  - name: s2
    versions: ["1"]
endpoints:
  - id: fn-a
    secretEnvVars:
      - key: API_KEY
        secret: s1
        version: latest
`

func TestPruneSecretsCommand_JSONOutput(t *testing.T) {
	snapshotPath := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(snapshotPath, []byte(pruneTestSnapshot), 0644))

	cmd := newPruneSecretsCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--snapshot", snapshotPath, "--output", "json"})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	// fn-a holds s1@latest which resolves to s1@2; s1@1 and s2@1 are unused.
	assert.Contains(t, out, `"prunable"`)
	assert.Contains(t, out, `"secret": "s1"`)
	assert.Contains(t, out, `"version": "1"`)
	assert.Contains(t, out, `"secret": "s2"`)
	assert.NotContains(t, out, `"version": "2"`)
}

func TestPruneSecretsCommand_RequiresSnapshot(t *testing.T) {
	cmd := newPruneSecretsCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}
