package convert

import (
	"github.com/agentstation/harvest/pkg/catalogs"
	"github.com/agentstation/harvest/pkg/metadata"
)

// ToCatalogRecord converts a metadata record to a canonical catalog record.
//
// filename falls back to a string catalog ID when the metadata has no
// filename key, and textname falls back to the resulting filename when the
// metadata has no textname key. A key that is present always wins, even when
// its value is empty. Text fields holding another JSON type, null included,
// are written to the catalog unchanged. alt_filename and filenr are
// placeholders that are filled in by later tooling.
func ToCatalogRecord(m metadata.Record) catalogs.Record {
	filename := m.Filename.Value()
	if !m.Filename.IsPresent() {
		filename, _ = m.CatalogIDString()
	}

	textname := m.TextName.Value()
	if !m.TextName.IsPresent() {
		textname = filename
	}

	rec := catalogs.Record{
		Category:    m.Collection,
		TextName:    textname,
		Filename:    filename,
		Link:        m.ItemURL,
		AltFilename: "",
		DisplayName: m.DisplayName,
		FileNr:      0,
		Collection:  m.Collection,
		NewFilename: filename,

		Author:          m.Author,
		Tags:            m.Tags,
		Source:          m.Source,
		SourceID:        m.SourceID,
		PublicationDate: m.PublicationDate,
		CatalogID:       m.CatalogIDValue(),
	}

	// Non-string source values are copied through as they are.
	for key, targets := range verbatimTargets {
		if v, ok := m.NonString(key); ok {
			for _, target := range targets {
				rec.SetVerbatim(target, v)
			}
		}
	}
	return rec
}

// verbatimTargets maps metadata text keys to the canonical keys they fill.
var verbatimTargets = map[string][]string{
	"collection":  {"category", "collection"},
	"textname":    {"textname"},
	"itemURL":     {"link"},
	"displayName": {"displayName"},
}

// ToCatalogRecords converts records in order.
func ToCatalogRecords(records []metadata.Record) catalogs.Catalog {
	out := make(catalogs.Catalog, len(records))
	for i, m := range records {
		out[i] = ToCatalogRecord(m)
	}
	return out
}
