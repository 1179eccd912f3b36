package catalogs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/harvest/pkg/errors"
	"github.com/agentstation/harvest/pkg/save"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	t.Run("missing file is an empty catalog", func(t *testing.T) {
		c, err := store.Load(ctx, filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		assert.NotNil(t, c)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("valid catalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		writeFile(t, path, `[{"filename":"A","collection":"x"},{"filename":"B"}]`)

		c, err := store.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, c.Filenames())
		assert.True(t, c[0].Loaded())
	})

	t.Run("empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		writeFile(t, path, " [ ]\n")

		c, err := store.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})

	malformed := []struct {
		name    string
		content string
		index   int
	}{
		{"invalid json", `[{"filename":"A"},`, -1},
		{"empty file", "", -1},
		{"object at top level", `{"filename":"A"}`, -1},
		{"null at top level", `null`, -1},
		{"non-object element", `[{"filename":"A"}, 7]`, 1},
		{"non-string filename", `[{"filename":"A"},{"filename":"B"},{"filename":["C"]}]`, 2},
	}
	for _, tc := range malformed {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.json")
			writeFile(t, path, tc.content)

			c, err := store.Load(ctx, path)
			require.Error(t, err)
			assert.Nil(t, c, "no partial catalog")
			assert.True(t, errors.IsMalformedCatalog(err))

			var mce *errors.MalformedCatalogError
			require.ErrorAs(t, err, &mce)
			assert.Equal(t, tc.index, mce.Index)
			assert.Equal(t, path, mce.Path)
		})
	}
}

func TestStoreSave(t *testing.T) {
	ctx := context.Background()

	t.Run("backup holds previous bytes", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.json")
		previous := "previous content, not even JSON\n"
		writeFile(t, path, previous)

		records := TestCatalog(t, "A", "B")
		result, err := NewStore().Save(ctx, path, records)
		require.NoError(t, err)

		assert.Equal(t, path+".backup", result.BackupPath)
		assert.Equal(t, previous, readFile(t, result.BackupPath))

		want, err := Marshal(records, "  ")
		require.NoError(t, err)
		assert.Equal(t, string(want), readFile(t, path))
		assert.Equal(t, len(want), result.BytesWritten)
	})

	t.Run("no backup for a new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "catalog.json")

		result, err := NewStore().Save(ctx, path, TestCatalog(t, "A"))
		require.NoError(t, err)
		assert.Empty(t, result.BackupPath)
		assert.NoFileExists(t, path+".backup")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("backup has output permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		writeFile(t, path, "[]")

		result, err := NewStore().Save(ctx, path, TestCatalog(t, "A"))
		require.NoError(t, err)

		info, err := os.Stat(result.BackupPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("backup disabled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		writeFile(t, path, "[]")

		result, err := NewStore(save.WithBackup(false)).Save(ctx, path, TestCatalog(t, "A"))
		require.NoError(t, err)
		assert.Empty(t, result.BackupPath)
		assert.NoFileExists(t, path+".backup")
	})

	t.Run("backup replaced each run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		writeFile(t, path, "first")
		store := NewStore()

		_, err := store.Save(ctx, path, TestCatalog(t, "A"))
		require.NoError(t, err)
		second := readFile(t, path)

		_, err = store.Save(ctx, path, TestCatalog(t, "A", "B"))
		require.NoError(t, err)
		assert.Equal(t, second, readFile(t, path+".backup"))
	})

	t.Run("nil catalog writes an empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		_, err := NewStore().Save(ctx, path, nil)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", readFile(t, path))
	})

	t.Run("write failure", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file.txt")
		writeFile(t, blocker, "x")

		_, err := NewStore().Save(ctx, filepath.Join(blocker, "catalog.json"), TestCatalog(t, "A"))
		require.Error(t, err)
		assert.True(t, errors.IsWriteFailure(err))
	})
}

func TestStoreRoundTripPreservesExistingRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	writeFile(t, in, `[{"filename":"A","extra":"x","category":"c"}]`)

	store := NewStore()
	c, err := store.Load(ctx, in)
	require.NoError(t, err)

	_, err = store.Save(ctx, out, c)
	require.NoError(t, err)

	assert.Equal(t, "[\n  {\n    \"filename\": \"A\",\n    \"extra\": \"x\",\n    \"category\": \"c\"\n  }\n]\n", readFile(t, out))
	assert.Equal(t, `[{"filename":"A","extra":"x","category":"c"}]`, readFile(t, in), "input untouched")
}

func TestMarshal(t *testing.T) {
	rec := TestRecord(t, "SA_001")
	rec.TextName = "བོད་ཀྱི་ཡི་གེ & <notes>"

	data, err := Marshal(Catalog{rec}, "  ")
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "བོད་ཀྱི་ཡི་གེ & <notes>", "non-ASCII and HTML characters are not escaped")
	assert.NotContains(t, s, `\u`)
	assert.Contains(t, s, "\n    \"category\": \"test-collection\",\n")

	var back []map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "SA_001", back[0]["filename"])
}
