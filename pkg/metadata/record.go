package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agentstation/harvest/pkg/catalogs"
)

// Record is a per-item metadata record as authored upstream. TextName,
// Filename, and the catalog ID track presence because the canonical mapping
// falls back on them only when the key is absent.
type Record struct {
	Collection  string                     `json:"collection"`
	TextName    catalogs.Optional[string]  `json:"textname"`
	Filename    catalogs.Optional[string]  `json:"filename"`
	ItemURL     string                     `json:"itemURL"`
	DisplayName string                     `json:"displayName"`

	CatalogID       catalogs.Optional[json.RawMessage] `json:"catalogID"`
	LegacyCatalogID catalogs.Optional[json.RawMessage] `json:"tsadraCatalogID"`

	Author          catalogs.Optional[json.RawMessage] `json:"author"`
	Tags            catalogs.Optional[json.RawMessage] `json:"tags"`
	Source          catalogs.Optional[json.RawMessage] `json:"source"`
	SourceID        catalogs.Optional[json.RawMessage] `json:"sourceID"`
	PublicationDate catalogs.Optional[json.RawMessage] `json:"publicationDate"`

	// nonString keeps the JSON of text fields (other than filename) whose
	// value was not a string, keyed by metadata key.
	nonString map[string]json.RawMessage
}

// NonString returns the raw JSON of a text field whose value was not a
// string, including an explicit null.
func (r Record) NonString(key string) (json.RawMessage, bool) {
	v, ok := r.nonString[key]
	return v, ok
}

// UnmarshalJSON decodes a metadata object. Only filename must be a string
// (or null); other text fields of another JSON type are kept raw so they can
// be carried into the catalog unchanged.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("not an object: null")
	}

	var rec Record
	if v, ok := fields["filename"]; ok {
		var name string
		if !isNull(v) {
			if err := json.Unmarshal(v, &name); err != nil {
				return fmt.Errorf("filename is not a string: %s", v)
			}
		}
		rec.Filename = catalogs.Some(name)
	}

	text := map[string]func(string){
		"collection":  func(s string) { rec.Collection = s },
		"textname":    func(s string) { rec.TextName = catalogs.Some(s) },
		"itemURL":     func(s string) { rec.ItemURL = s },
		"displayName": func(s string) { rec.DisplayName = s },
	}
	for key, set := range text {
		v, ok := fields[key]
		if !ok {
			continue
		}
		var str string
		if isNull(v) || json.Unmarshal(v, &str) != nil {
			if rec.nonString == nil {
				rec.nonString = make(map[string]json.RawMessage)
			}
			rec.nonString[key] = v
			str = ""
		}
		set(str)
	}

	raw := map[string]*catalogs.Optional[json.RawMessage]{
		"catalogID":       &rec.CatalogID,
		"tsadraCatalogID": &rec.LegacyCatalogID,
		"author":          &rec.Author,
		"tags":            &rec.Tags,
		"source":          &rec.Source,
		"sourceID":        &rec.SourceID,
		"publicationDate": &rec.PublicationDate,
	}
	for key, dst := range raw {
		if v, ok := fields[key]; ok {
			*dst = catalogs.Some(v)
		}
	}

	*r = rec
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// CatalogIDValue returns the record's catalog ID. Older upstream exports use
// the tsadraCatalogID key; it is consulted only when catalogID is absent.
func (r Record) CatalogIDValue() catalogs.Optional[json.RawMessage] {
	if r.CatalogID.IsPresent() {
		return r.CatalogID
	}
	return r.LegacyCatalogID
}

// CatalogIDString returns the catalog ID when it is a JSON string.
func (r Record) CatalogIDString() (string, bool) {
	raw, ok := r.CatalogIDValue().Get()
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
