package merge

import (
	"context"

	"github.com/agentstation/harvest/pkg/catalogs"
	"github.com/agentstation/harvest/pkg/logging"
)

// Func is the signature of a merge implementation.
type Func func(ctx context.Context, existing, candidates catalogs.Catalog) (*Result, error)

var _ Func = Merge

// Merge appends each candidate whose filename is not yet in the catalog.
// The result is checked against the data-loss invariants before it is
// returned.
func Merge(ctx context.Context, existing, candidates catalogs.Catalog) (*Result, error) {
	logger := logging.FromContext(ctx)

	records := make(catalogs.Catalog, 0, len(existing)+len(candidates))
	records = append(records, existing...)
	seen := existing.IdentitySet()
	added := make(map[string]struct{})

	result := &Result{ExistingCount: len(existing)}

	for i, rec := range candidates {
		if _, dup := seen[rec.Filename]; dup {
			_, inBatch := added[rec.Filename]
			result.Duplicates = append(result.Duplicates, Duplicate{
				Filename: rec.Filename,
				Index:    i,
				InBatch:  inBatch,
			})
			logger.Info().
				Str("filename", rec.Filename).
				Bool("in_batch", inBatch).
				Msg("Skipping duplicate")
			continue
		}

		seen[rec.Filename] = struct{}{}
		added[rec.Filename] = struct{}{}
		records = append(records, rec)
		result.Added = append(result.Added, rec.Filename)
	}

	result.Records = records

	logger.Debug().
		Int("existing", result.ExistingCount).
		Int("added", len(result.Added)).
		Int("duplicates", len(result.Duplicates)).
		Msg("Merged records")

	if err := CheckInvariants(result.ExistingCount, len(result.Records)); err != nil {
		return nil, err
	}
	return result, nil
}
