package catalogs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalCanonicalOrder(t *testing.T) {
	rec := Record{
		Category:    "cat",
		TextName:    "T",
		Filename:    "F",
		Link:        "L",
		DisplayName: "D",
		Collection:  "cat",
		NewFilename: "F",
		Author:      RawJSON(`"Someone"`),
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t,
		`{"category":"cat","textname":"T","filename":"F","link":"L","alt_filename":"","displayName":"D",`+
			`"filenr":0,"collection":"cat","new_filename":"F","author":"Someone"}`,
		string(data))
}

func TestRecordMarshalDoesNotEscapeHTML(t *testing.T) {
	rec := TestRecord(t, "A&B")
	rec.TextName = "Tibetan & <Sanskrit>"
	rec.Source = RawJSON(`"<archive> & co"`)

	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"textname":"Tibetan & <Sanskrit>"`)
	assert.Contains(t, string(data), `"filename":"A&B"`)
	assert.Contains(t, string(data), `"source":"<archive> & co"`)
	assert.NotContains(t, string(data), `\u00`)
	assert.True(t, json.Valid(data))
}

func TestRecordVerbatim(t *testing.T) {
	rec := TestRecord(t, "A")
	rec.SetVerbatim("displayName", json.RawMessage(`12345`))
	rec.SetVerbatim("textname", json.RawMessage(`null`))

	v, ok := rec.Verbatim("displayName")
	assert.True(t, ok)
	assert.Equal(t, json.RawMessage(`12345`), v)
	_, ok = rec.Verbatim("link")
	assert.False(t, ok)

	data, err := rec.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"category":"test-collection","textname":null,"filename":"A",`+
			`"link":"https://archive.example.org/items/A","alt_filename":"",`+
			`"displayName":12345,"filenr":0,"collection":"test-collection","new_filename":"A"}`,
		string(data))
}

func TestRecordOptionalFields(t *testing.T) {
	t.Run("absent fields emit no key", func(t *testing.T) {
		data, err := json.Marshal(TestRecord(t, "A"))
		require.NoError(t, err)
		for _, key := range []string{"author", "tags", "source", "sourceID", "publicationDate", "catalogID"} {
			assert.NotContains(t, string(data), `"`+key+`"`)
		}
	})

	t.Run("present null is kept", func(t *testing.T) {
		rec := TestRecord(t, "A")
		rec.Tags = RawJSON("null")
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"tags":null`)
	})

	t.Run("structured values pass through", func(t *testing.T) {
		rec := TestRecord(t, "A")
		rec.Tags = RawJSON(`["sutra","commentary"]`)
		rec.PublicationDate = RawJSON(`{"year":1902}`)
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"tags":["sutra","commentary"]`)
		assert.Contains(t, string(data), `"publicationDate":{"year":1902}`)
	})
}

func TestRecordUnmarshal(t *testing.T) {
	t.Run("keeps original object", func(t *testing.T) {
		doc := `{"filename":"A","zeta":1,"category":"c","filenr":"12"}`
		var rec Record
		require.NoError(t, json.Unmarshal([]byte(doc), &rec))

		assert.True(t, rec.Loaded())
		assert.Equal(t, "A", rec.Filename)
		assert.Equal(t, "c", rec.Category)
		assert.Equal(t, 0, rec.FileNr, "mistyped filenr is left to the raw copy")

		out, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.JSONEq(t, doc, string(out))
		assert.Equal(t, doc, string(out), "key order is preserved")
	})

	t.Run("missing and null filename are empty", func(t *testing.T) {
		var a, b Record
		require.NoError(t, json.Unmarshal([]byte(`{"category":"c"}`), &a))
		require.NoError(t, json.Unmarshal([]byte(`{"filename":null}`), &b))
		assert.Equal(t, "", a.Filename)
		assert.Equal(t, "", b.Filename)
	})

	t.Run("optional fields are detected", func(t *testing.T) {
		var rec Record
		require.NoError(t, json.Unmarshal([]byte(`{"filename":"A","author":null}`), &rec))
		assert.True(t, rec.Author.IsPresent())
		assert.False(t, rec.Tags.IsPresent())
	})

	t.Run("rejects non-string filename", func(t *testing.T) {
		var rec Record
		err := json.Unmarshal([]byte(`{"filename":42}`), &rec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "filename is not a string")
	})

	t.Run("rejects non-objects", func(t *testing.T) {
		for _, doc := range []string{`42`, `"A"`, `null`, `[1]`} {
			var rec Record
			assert.Error(t, json.Unmarshal([]byte(doc), &rec), doc)
		}
	})
}

func TestOptional(t *testing.T) {
	none := None[string]()
	assert.False(t, none.IsPresent())
	assert.True(t, none.IsZero())

	some := Some("x")
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.False(t, some.IsZero())

	var decoded struct {
		A Optional[string] `json:"a,omitzero"`
		B Optional[string] `json:"b,omitzero"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"hello"}`), &decoded))
	assert.True(t, decoded.A.IsPresent())
	assert.False(t, decoded.B.IsPresent())

	out, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"hello"}`, string(out))
}
