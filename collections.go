package harvest

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/harvest/pkg/catalogs"
	"github.com/agentstation/harvest/pkg/constants"
	"github.com/agentstation/harvest/pkg/errors"
	"github.com/agentstation/harvest/pkg/logging"
	"github.com/agentstation/harvest/pkg/save"
)

// CollectionsOption configures BuildCollections.
type CollectionsOption func(*collectionsConfig) error

type collectionsConfig struct {
	catalogPath string
	outputPath  string
	backup      bool
	lock        bool
	dryRun      bool
	logger      *zerolog.Logger
}

// WithCatalogPath sets the catalog the collections are derived from.
func WithCatalogPath(path string) CollectionsOption {
	return func(c *collectionsConfig) error {
		if path == "" {
			return errors.NewValidationError("input", path, "must not be empty")
		}
		c.catalogPath = path
		return nil
	}
}

// WithCollectionsPath sets where the collection-names file is written.
func WithCollectionsPath(path string) CollectionsOption {
	return func(c *collectionsConfig) error {
		if path == "" {
			return errors.NewValidationError("collections_output", path, "must not be empty")
		}
		c.outputPath = path
		return nil
	}
}

// WithCollectionsBackup configures whether an existing collection-names file
// is copied aside before it is overwritten.
func WithCollectionsBackup(enabled bool) CollectionsOption {
	return func(c *collectionsConfig) error {
		c.backup = enabled
		return nil
	}
}

// WithCollectionsLock configures whether the output lock is held while writing.
func WithCollectionsLock(enabled bool) CollectionsOption {
	return func(c *collectionsConfig) error {
		c.lock = enabled
		return nil
	}
}

// WithCollectionsDryRun derives the collections without writing them.
func WithCollectionsDryRun(enabled bool) CollectionsOption {
	return func(c *collectionsConfig) error {
		c.dryRun = enabled
		return nil
	}
}

// WithCollectionsLogger sets the logger used while building collections.
func WithCollectionsLogger(logger *zerolog.Logger) CollectionsOption {
	return func(c *collectionsConfig) error {
		c.logger = logger
		return nil
	}
}

// CollectionsResult reports the derived collections.
type CollectionsResult struct {
	InputPath   string                     `json:"input" yaml:"input"`
	OutputPath  string                     `json:"output" yaml:"output"`
	BackupPath  string                     `json:"backup,omitempty" yaml:"backup,omitempty"`
	Collections []catalogs.CollectionCount `json:"collections" yaml:"collections"`
	DryRun      bool                       `json:"dry_run" yaml:"dry_run"`
	Written     bool                       `json:"written" yaml:"written"`
}

// BuildCollections derives the distinct collections of a catalog and writes
// them as a collection-names file, one {collection, displayName} entry per
// collection. A malformed catalog aborts before anything is written.
func BuildCollections(ctx context.Context, opts ...CollectionsOption) (*CollectionsResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := &collectionsConfig{
		catalogPath: constants.DefaultCatalogPath,
		outputPath:  constants.DefaultCollectionsPath,
		backup:      true,
		lock:        true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.logger != nil {
		ctx = logging.WithLogger(ctx, cfg.logger)
	}
	ctx = logging.WithOperation(ctx, "collections")
	logger := logging.FromContext(ctx)

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

	store := catalogs.NewStore(save.WithBackup(cfg.backup))
	catalog, err := store.Load(ctx, cfg.catalogPath)
	if err != nil {
		return nil, err
	}

	result := &CollectionsResult{
		InputPath:   cfg.catalogPath,
		OutputPath:  cfg.outputPath,
		Collections: catalog.Collections(),
		DryRun:      cfg.dryRun,
	}
	logger.Info().Int("collections", len(result.Collections)).Msg("Derived collections")

	if err := canceled(ctx); err != nil {
		return nil, err
	}
	if cfg.dryRun {
		return result, nil
	}

	saved, err := store.WriteJSON(ctx, cfg.outputPath, catalogs.CollectionNames(result.Collections))
	if err != nil {
		return nil, err
	}
	result.BackupPath = saved.BackupPath
	result.Written = true
	return result, nil
}
