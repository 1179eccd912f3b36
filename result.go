package harvest

import (
	"fmt"
	"time"

	"github.com/agentstation/harvest/pkg/merge"
)

// Result reports what a merge run did.
type Result struct {
	RunID string `json:"run_id" yaml:"run_id"`

	MetadataDir string `json:"metadata_dir" yaml:"metadata_dir"`
	InputPath   string `json:"input" yaml:"input"`
	OutputPath  string `json:"output" yaml:"output"`
	BackupPath  string `json:"backup,omitempty" yaml:"backup,omitempty"`

	ExistingCount  int `json:"existing" yaml:"existing"`
	AddedCount     int `json:"added" yaml:"added"`
	DuplicateCount int `json:"duplicates" yaml:"duplicates"`
	MalformedCount int `json:"malformed" yaml:"malformed"`
	TotalCount     int `json:"total" yaml:"total"`

	Added      []string          `json:"added_filenames,omitempty" yaml:"added_filenames,omitempty"`
	Duplicates []merge.Duplicate `json:"duplicate_records,omitempty" yaml:"duplicate_records,omitempty"`
	Malformed  []string          `json:"malformed_files,omitempty" yaml:"malformed_files,omitempty"`

	DryRun   bool          `json:"dry_run" yaml:"dry_run"`
	Written  bool          `json:"written" yaml:"written"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summary returns the one-line report printed at the end of a run.
func (r *Result) Summary() string {
	s := fmt.Sprintf("Existing: %d, New: %d, Duplicates skipped: %d, Malformed skipped: %d, Total: %d",
		r.ExistingCount, r.AddedCount, r.DuplicateCount, r.MalformedCount, r.TotalCount)
	if r.DryRun {
		s += " (dry run, nothing written)"
	}
	return s
}

// HasChanges reports whether any record was added.
func (r *Result) HasChanges() bool {
	return r.AddedCount > 0
}
