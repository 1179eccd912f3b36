package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/harvest/pkg/errors"
	"github.com/agentstation/harvest/pkg/logging"
)

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithLogger(logging.NewNopLogger()),
		WithOutput(&out, &errOut),
	)
	require.NoError(t, err)
	return app, &out, &errOut
}

func writeWorkspace(t *testing.T) (metadataDir, catalog string) {
	t.Helper()
	dir := t.TempDir()
	metadataDir = filepath.Join(dir, "metadata")
	require.NoError(t, os.Mkdir(metadataDir, 0o755))
	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(metadataDir, name+"-metadata.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"filename":"`+strings.ToUpper(name)+`","collection":"x"}`), 0o644))
	}
	catalog = filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalog, []byte(`[{"filename":"A"}]`), 0o644))
	return metadataDir, catalog
}

func TestExecuteMerge(t *testing.T) {
	metadataDir, catalog := writeWorkspace(t)
	app, out, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"merge", "--metadata-dir", metadataDir, "--input", catalog, "--output", catalog, "-o", "json",
	})
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, float64(1), report["existing"])
	assert.Equal(t, float64(2), report["added"])
	assert.Equal(t, float64(1), report["duplicates"])
	assert.Equal(t, float64(3), report["total"])
	assert.FileExists(t, catalog+".backup")
}

func TestExecuteMergeAbortsOnMalformedCatalog(t *testing.T) {
	metadataDir, catalog := writeWorkspace(t)
	require.NoError(t, os.WriteFile(catalog, []byte(`not json`), 0o644))
	app, _, _ := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"merge", "--metadata-dir", metadataDir, "--input", catalog, "--output", catalog,
	})
	require.Error(t, err)
	assert.True(t, errors.IsMalformedCatalog(err))
	assert.NoFileExists(t, catalog+".backup")
}

func TestExecuteConfigFile(t *testing.T) {
	metadataDir, catalog := writeWorkspace(t)
	output := filepath.Join(filepath.Dir(catalog), "from-config.json")
	configPath := filepath.Join(t.TempDir(), "harvest.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"metadata_dir: "+metadataDir+"\n"+
			"input: "+catalog+"\n"+
			"output: "+output+"\n"+
			"format: json\n"), 0o644))

	app, out, _ := newTestApp(t)
	require.NoError(t, app.Execute(context.Background(), []string{"merge", "--config", configPath}))

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, output, report["output"])
	assert.FileExists(t, output)
}

func TestExecuteMissingConfigFile(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.Execute(context.Background(), []string{"merge", "--config", filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestExecuteInvalidFormat(t *testing.T) {
	app, _, _ := newTestApp(t)
	err := app.Execute(context.Background(), []string{"version", "-o", "xml"})
	assert.Error(t, err)
}

func TestExecuteVersion(t *testing.T) {
	app, out, _ := newTestApp(t)
	require.NoError(t, app.Execute(context.Background(), []string{"version"}))
	assert.Contains(t, out.String(), "harvest version 1.0.0")
	assert.Contains(t, out.String(), "commit: abc123")
}

func TestExecuteCollections(t *testing.T) {
	_, catalog := writeWorkspace(t)
	output := filepath.Join(filepath.Dir(catalog), "names.json")
	app, _, _ := newTestApp(t)

	require.NoError(t, app.Execute(context.Background(), []string{
		"collections", "--input", catalog, "--output", output, "-o", "yaml",
	}))
	assert.FileExists(t, output)
}
