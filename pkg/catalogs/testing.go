package catalogs

import (
	"encoding/json"
	"testing"
)

// TestRecord creates a new (not loaded) record with sensible defaults for
// the given filename.
// The t.Helper() call ensures stack traces point to the test, not this function.
func TestRecord(t testing.TB, filename string) Record {
	t.Helper()
	return Record{
		Category:    "test-collection",
		TextName:    "Text " + filename,
		Filename:    filename,
		Link:        "https://archive.example.org/items/" + filename,
		DisplayName: "Text " + filename,
		Collection:  "test-collection",
		NewFilename: filename,
	}
}

// TestCatalog creates a catalog of test records, one per filename.
func TestCatalog(t testing.TB, filenames ...string) Catalog {
	t.Helper()
	c := make(Catalog, len(filenames))
	for i, name := range filenames {
		c[i] = TestRecord(t, name)
	}
	return c
}

// TestLoadedCatalog parses a JSON catalog document, failing the test on error.
func TestLoadedCatalog(t testing.TB, doc string) Catalog {
	t.Helper()
	c, err := Parse("test.json", []byte(doc))
	if err != nil {
		t.Fatalf("parse test catalog: %v", err)
	}
	return c
}

// RawJSON is shorthand for building optional pass-through values in tests.
func RawJSON(s string) Optional[json.RawMessage] {
	return Some(json.RawMessage(s))
}
