package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/harvest/pkg/catalogs"
	"github.com/agentstation/harvest/pkg/convert"
	"github.com/agentstation/harvest/pkg/errors"
	"github.com/agentstation/harvest/pkg/logging"
	"github.com/agentstation/harvest/pkg/merge"
	"github.com/agentstation/harvest/pkg/metadata"
	"github.com/agentstation/harvest/pkg/save"
)

// Run performs one merge run.
//
// Nothing is written unless every stage succeeds: a malformed catalog, a
// data-loss invariant violation, or cancellation all return before the
// output is touched. Malformed metadata files are skipped and counted.
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	// Step 1: Parse options
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	var cancel context.CancelFunc
	if cfg.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	if cfg.logger != nil {
		ctx = logging.WithLogger(ctx, cfg.logger)
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.FromContext(ctx)

	result := &Result{
		RunID:       runID,
		MetadataDir: cfg.metadataDir,
		InputPath:   cfg.inputPath,
		OutputPath:  cfg.outputPath,
		DryRun:      cfg.dryRun,
	}

	logger.Info().
		Str("metadata_dir", cfg.metadataDir).
		Str("input", cfg.inputPath).
		Str("output", cfg.outputPath).
		Bool("dry_run", cfg.dryRun).
		Msg("Starting merge run")

	// Step 2: Hold the output lock
	if cfg.lock && !cfg.dryRun {
		unlock, err := catalogs.Lock(cfg.outputPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn().Err(err).Msg("Could not release output lock")
			}
		}()
	}

	// Step 3: Load the existing catalog
	store := catalogs.NewStore(save.WithBackup(cfg.backup))
	existing, err := store.Load(ctx, cfg.inputPath)
	if err != nil {
		logger.Error().Err(err).Msg("Aborting before any write")
		return nil, err
	}
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	// Step 4: Scan and normalize metadata records
	loader := metadata.NewLoader(
		metadata.WithSuffix(cfg.metadataSuffix),
		metadata.WithLenient(cfg.lenient),
	)
	scan, err := loader.Scan(ctx, cfg.metadataDir)
	if err != nil {
		return nil, err
	}

	candidates := make(catalogs.Catalog, 0, len(scan.Files()))
	for entry := range scan.Records() {
		if ctx.Err() != nil {
			break
		}
		candidates = append(candidates, convert.ToCatalogRecord(entry.Record))
	}
	if err := canceled(ctx); err != nil {
		return nil, err
	}
	for _, skipped := range scan.Skipped() {
		result.Malformed = append(result.Malformed, skipped.Path)
	}

	logger.Info().
		Int("records", len(candidates)).
		Int("malformed", len(result.Malformed)).
		Msg("Loaded metadata records")

	// Step 5: Merge
	merged, err := cfg.mergeFunc(ctx, existing, candidates)
	if err != nil {
		logger.Error().Err(err).Msg("Aborting before any write")
		return nil, err
	}
	if merged == nil {
		return nil, fmt.Errorf("merge returned no result")
	}

	// Step 6: Check the data-loss invariants regardless of merge implementation
	if err := merge.CheckInvariants(len(existing), len(merged.Records)); err != nil {
		logger.Error().Err(err).Msg("Aborting before any write")
		return nil, err
	}

	result.ExistingCount = len(existing)
	result.AddedCount = merged.AddedCount()
	result.DuplicateCount = merged.DuplicateCount()
	result.MalformedCount = len(result.Malformed)
	result.TotalCount = merged.TotalCount()
	result.Added = merged.Added
	result.Duplicates = merged.Duplicates

	// Step 7: Last chance to stop before writing
	if err := canceled(ctx); err != nil {
		return nil, err
	}

	// Step 8: Write unless dry run
	if cfg.dryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed, nothing written")
	} else {
		saved, err := store.Save(ctx, cfg.outputPath, merged.Records)
		if err != nil {
			logger.Error().Err(err).Msg("Writing merged catalog failed")
			return nil, err
		}
		result.BackupPath = saved.BackupPath
		result.Written = true
	}

	result.Duration = time.Since(start)

	logger.Info().
		Int("existing", result.ExistingCount).
		Int("added", result.AddedCount).
		Int("duplicates", result.DuplicateCount).
		Int("malformed", result.MalformedCount).
		Int("total", result.TotalCount).
		Msg("Merge run completed")

	return result, nil
}

// canceled converts a done context into an ErrCanceled error.
func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return nil
}
