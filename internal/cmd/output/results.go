package output

import (
	"io"
	"strconv"

	"github.com/agentstation/harvest"
)

// ResultToTableData renders a merge run summary as a property table.
func ResultToTableData(r *harvest.Result) Data {
	rows := [][]string{
		{"Run ID", r.RunID},
		{"Metadata", r.MetadataDir},
		{"Input", r.InputPath},
		{"Output", r.OutputPath},
	}
	if r.BackupPath != "" {
		rows = append(rows, []string{"Backup", r.BackupPath})
	}
	rows = append(rows,
		[]string{"Existing", strconv.Itoa(r.ExistingCount)},
		[]string{"New", strconv.Itoa(r.AddedCount)},
		[]string{"Duplicates skipped", strconv.Itoa(r.DuplicateCount)},
		[]string{"Malformed skipped", strconv.Itoa(r.MalformedCount)},
		[]string{"Total", strconv.Itoa(r.TotalCount)},
		[]string{"Dry run", strconv.FormatBool(r.DryRun)},
	)

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// CollectionsToTableData renders derived collections with their record counts.
func CollectionsToTableData(r *harvest.CollectionsResult) Data {
	rows := make([][]string, 0, len(r.Collections))
	for _, c := range r.Collections {
		rows = append(rows, []string{c.Collection, strconv.Itoa(c.Count)})
	}
	return Data{
		Headers:         []string{"Collection", "Records"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// FormatResult writes a merge run summary in the requested format.
func FormatResult(w io.Writer, r *harvest.Result, format Format) error {
	var data any = r
	if format == FormatTable || format == "" {
		data = ResultToTableData(r)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatCollections writes derived collections in the requested format.
func FormatCollections(w io.Writer, r *harvest.CollectionsResult, format Format) error {
	var data any = r
	if format == FormatTable || format == "" {
		data = CollectionsToTableData(r)
	}
	return NewFormatter(format).Format(w, data)
}
