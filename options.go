package harvest

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/harvest/pkg/constants"
	"github.com/agentstation/harvest/pkg/errors"
	"github.com/agentstation/harvest/pkg/merge"
)

// Option configures a merge run.
type Option func(*config) error

type config struct {
	metadataDir    string
	inputPath      string
	outputPath     string
	metadataSuffix string
	backup         bool
	lock           bool
	dryRun         bool
	lenient        bool
	timeout        time.Duration
	mergeFunc      merge.Func
	logger         *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		metadataDir:    constants.DefaultMetadataDir,
		inputPath:      constants.DefaultCatalogPath,
		outputPath:     constants.DefaultCatalogPath,
		metadataSuffix: constants.MetadataSuffix,
		backup:         true,
		lock:           true,
		mergeFunc:      merge.Merge,
	}
}

func newConfig(opts ...Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithMetadataDir sets the directory scanned for metadata files.
func WithMetadataDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("metadata_dir", dir, "must not be empty")
		}
		c.metadataDir = dir
		return nil
	}
}

// WithInputPath sets the existing catalog to merge into.
func WithInputPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("input", path, "must not be empty")
		}
		c.inputPath = path
		return nil
	}
}

// WithOutputPath sets where the merged catalog is written. It may equal the
// input path.
func WithOutputPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("output", path, "must not be empty")
		}
		c.outputPath = path
		return nil
	}
}

// WithMetadataSuffix sets the file name suffix that selects metadata files.
func WithMetadataSuffix(suffix string) Option {
	return func(c *config) error {
		if suffix == "" {
			return errors.NewValidationError("metadata_suffix", suffix, "must not be empty")
		}
		c.metadataSuffix = suffix
		return nil
	}
}

// WithBackup configures whether an existing output is copied to
// <output>.backup before it is overwritten.
func WithBackup(enabled bool) Option {
	return func(c *config) error {
		c.backup = enabled
		return nil
	}
}

// WithLock configures whether the run holds <output>.lock while it works.
func WithLock(enabled bool) Option {
	return func(c *config) error {
		c.lock = enabled
		return nil
	}
}

// WithDryRun computes the merge without writing anything.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithLenientMetadata accepts comments and trailing commas in metadata files.
func WithLenientMetadata(enabled bool) Option {
	return func(c *config) error {
		c.lenient = enabled
		return nil
	}
}

// WithTimeout bounds the whole run. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout < 0 {
			return errors.NewValidationError("timeout", timeout, "must be non-negative")
		}
		c.timeout = timeout
		return nil
	}
}

// WithMergeFunc replaces the merge implementation. The data-loss invariants
// are still enforced on its result before anything is written.
func WithMergeFunc(fn merge.Func) Option {
	return func(c *config) error {
		if fn == nil {
			return errors.NewValidationError("merge_func", nil, "must not be nil")
		}
		c.mergeFunc = fn
		return nil
	}
}

// WithLogger sets the logger used for the run.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
