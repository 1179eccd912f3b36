package merge

import "github.com/agentstation/harvest/pkg/catalogs"

// Result is the outcome of a merge.
type Result struct {
	// Records is the merged catalog: existing records first, then additions.
	Records catalogs.Catalog

	// Added lists the filenames of appended records in order.
	Added []string

	// Duplicates lists candidates that were dropped.
	Duplicates []Duplicate

	// ExistingCount is the number of records in the catalog before merging.
	ExistingCount int
}

// Duplicate is a candidate whose filename was already taken.
type Duplicate struct {
	Filename string `json:"filename" yaml:"filename"`
	Index    int    `json:"index" yaml:"index"`       // position in the candidate batch
	InBatch  bool   `json:"in_batch" yaml:"in_batch"` // taken by an earlier candidate rather than an existing record
}

// AddedCount returns the number of appended records.
func (r *Result) AddedCount() int {
	return len(r.Added)
}

// DuplicateCount returns the number of dropped candidates.
func (r *Result) DuplicateCount() int {
	return len(r.Duplicates)
}

// TotalCount returns the number of merged records.
func (r *Result) TotalCount() int {
	return len(r.Records)
}

// HasChanges reports whether any record was added.
func (r *Result) HasChanges() bool {
	return len(r.Added) > 0
}
