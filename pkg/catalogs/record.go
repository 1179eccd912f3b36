package catalogs

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one canonical catalog entry. Filename is the identity key.
//
// Field order here is the serialization order. The optional provenance
// fields are carried through verbatim from metadata and are omitted entirely
// when the source record did not have them.
type Record struct {
	Category    string `json:"category"`
	TextName    string `json:"textname"`
	Filename    string `json:"filename"`
	Link        string `json:"link"`
	AltFilename string `json:"alt_filename"`
	DisplayName string `json:"displayName"`
	FileNr      int    `json:"filenr"`
	Collection  string `json:"collection"`
	NewFilename string `json:"new_filename"`

	Author          Optional[json.RawMessage] `json:"author,omitzero"`
	Tags            Optional[json.RawMessage] `json:"tags,omitzero"`
	Source          Optional[json.RawMessage] `json:"source,omitzero"`
	SourceID        Optional[json.RawMessage] `json:"sourceID,omitzero"`
	PublicationDate Optional[json.RawMessage] `json:"publicationDate,omitzero"`
	CatalogID       Optional[json.RawMessage] `json:"catalogID,omitzero"`

	// raw is the original object for records read from an existing catalog.
	// Those are written back exactly as read so keys this type does not know
	// about survive a merge.
	raw json.RawMessage

	// verbatim holds JSON values for canonical keys whose source value was
	// not a string. They replace the typed field on output.
	verbatim map[string]json.RawMessage
}

// canonicalRecord is the output shape of a new record.
type canonicalRecord struct {
	Category    json.RawMessage `json:"category"`
	TextName    json.RawMessage `json:"textname"`
	Filename    json.RawMessage `json:"filename"`
	Link        json.RawMessage `json:"link"`
	AltFilename json.RawMessage `json:"alt_filename"`
	DisplayName json.RawMessage `json:"displayName"`
	FileNr      json.RawMessage `json:"filenr"`
	Collection  json.RawMessage `json:"collection"`
	NewFilename json.RawMessage `json:"new_filename"`

	Author          Optional[json.RawMessage] `json:"author,omitzero"`
	Tags            Optional[json.RawMessage] `json:"tags,omitzero"`
	Source          Optional[json.RawMessage] `json:"source,omitzero"`
	SourceID        Optional[json.RawMessage] `json:"sourceID,omitzero"`
	PublicationDate Optional[json.RawMessage] `json:"publicationDate,omitzero"`
	CatalogID       Optional[json.RawMessage] `json:"catalogID,omitzero"`
}

// SetVerbatim makes key serialize as value instead of the typed field. It
// is for canonical keys whose source value is not a string; unknown keys
// are ignored.
func (r *Record) SetVerbatim(key string, value json.RawMessage) {
	if r.verbatim == nil {
		r.verbatim = make(map[string]json.RawMessage)
	}
	r.verbatim[key] = append(json.RawMessage(nil), value...)
}

// Verbatim returns the value set for key by SetVerbatim.
func (r Record) Verbatim(key string) (json.RawMessage, bool) {
	v, ok := r.verbatim[key]
	return v, ok
}

// Loaded reports whether the record was read from an existing catalog.
func (r Record) Loaded() bool {
	return r.raw != nil
}

// Raw returns the original JSON object of a loaded record, or nil.
func (r Record) Raw() json.RawMessage {
	return r.raw
}

// MarshalJSON writes loaded records verbatim and new records in canonical order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}

	out := canonicalRecord{
		Author:          r.Author,
		Tags:            r.Tags,
		Source:          r.Source,
		SourceID:        r.SourceID,
		PublicationDate: r.PublicationDate,
		CatalogID:       r.CatalogID,
	}
	fields := []struct {
		key string
		dst *json.RawMessage
		val any
	}{
		{"category", &out.Category, r.Category},
		{"textname", &out.TextName, r.TextName},
		{"filename", &out.Filename, r.Filename},
		{"link", &out.Link, r.Link},
		{"alt_filename", &out.AltFilename, r.AltFilename},
		{"displayName", &out.DisplayName, r.DisplayName},
		{"filenr", &out.FileNr, r.FileNr},
		{"collection", &out.Collection, r.Collection},
		{"new_filename", &out.NewFilename, r.NewFilename},
	}
	for _, f := range fields {
		if v, ok := r.verbatim[f.key]; ok {
			*f.dst = v
			continue
		}
		data, err := encodeJSON(f.val)
		if err != nil {
			return nil, err
		}
		*f.dst = data
	}
	return encodeJSON(out)
}

// encodeJSON is json.Marshal without HTML escaping. An enclosing encoder's
// SetEscapeHTML does not reach into a Marshaler's output, so every
// MarshalJSON in this package goes through here.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON reads a catalog element. Only the identity key is strict: a
// non-string filename cannot be compared and is rejected. Other known fields
// are picked up when they have the expected JSON type and otherwise left to
// the raw copy.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("not an object: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("not an object: null")
	}

	var rec Record
	if v, ok := fields["filename"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &rec.Filename); err != nil {
			return fmt.Errorf("filename is not a string: %s", v)
		}
	}

	strs := map[string]*string{
		"category":     &rec.Category,
		"textname":     &rec.TextName,
		"link":         &rec.Link,
		"alt_filename": &rec.AltFilename,
		"displayName":  &rec.DisplayName,
		"collection":   &rec.Collection,
		"new_filename": &rec.NewFilename,
	}
	for key, dst := range strs {
		if v, ok := fields[key]; ok {
			_ = json.Unmarshal(v, dst)
		}
	}
	if v, ok := fields["filenr"]; ok {
		_ = json.Unmarshal(v, &rec.FileNr)
	}

	opts := map[string]*Optional[json.RawMessage]{
		"author":          &rec.Author,
		"tags":            &rec.Tags,
		"source":          &rec.Source,
		"sourceID":        &rec.SourceID,
		"publicationDate": &rec.PublicationDate,
		"catalogID":       &rec.CatalogID,
	}
	for key, dst := range opts {
		if v, ok := fields[key]; ok {
			*dst = Some(v)
		}
	}

	rec.raw = append(json.RawMessage(nil), data...)
	*r = rec
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
