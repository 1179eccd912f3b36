package merge

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/harvest/cmd/application"
	"github.com/agentstation/harvest/pkg/errors"
)

func setup(t *testing.T) (application.Settings, string) {
	t.Helper()
	dir := t.TempDir()
	metadataDir := filepath.Join(dir, "metadata")
	require.NoError(t, os.Mkdir(metadataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(metadataDir, "b-metadata.json"), []byte(`{"filename":"B"}`), 0o644))

	catalog := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalog, []byte(`[{"filename":"A"}]`), 0o644))

	return application.Settings{
		MetadataDir: metadataDir,
		Input:       catalog,
		Output:      catalog,
		Backup:      true,
		Lock:        true,
	}, dir
}

func run(t *testing.T, settings application.Settings, args ...string) (map[string]any, error) {
	t.Helper()
	mock := &application.Mock{
		SettingsFunc: func() application.Settings { return settings },
	}
	cmd := NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{}, args...))

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return nil, err
	}
	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	return got, nil
}

func TestMergeCommand(t *testing.T) {
	settings, _ := setup(t)

	got, err := run(t, settings)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["existing"])
	assert.Equal(t, float64(1), got["added"])
	assert.Equal(t, float64(2), got["total"])
	assert.Equal(t, settings.Output+".backup", got["backup"])
}

func TestMergeCommandFlagsOverrideSettings(t *testing.T) {
	settings, dir := setup(t)
	output := filepath.Join(dir, "merged.json")

	got, err := run(t, settings, "--output", output, "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, output, got["output"])
	assert.Equal(t, true, got["dry_run"])
	assert.NoFileExists(t, output)
}

func TestMergeCommandMalformedCatalog(t *testing.T) {
	settings, _ := setup(t)
	require.NoError(t, os.WriteFile(settings.Input, []byte(`{"not":"a list"}`), 0o644))

	_, err := run(t, settings)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedCatalog(err))
}

func TestFlagsApply(t *testing.T) {
	cmd := &cobra.Command{Use: "merge"}
	flags := AddFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--no-backup", "--lenient", "--metadata-dir", "items"}))

	base := application.Settings{MetadataDir: "metadata", Input: "in.json", Backup: true, Lock: true}
	got := flags.Apply(cmd, base)

	assert.Equal(t, "items", got.MetadataDir)
	assert.Equal(t, "in.json", got.Input, "unset flags keep the configured value")
	assert.False(t, got.Backup)
	assert.True(t, got.Lock)
	assert.True(t, got.LenientMetadata)
}
