package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/agentstation/harvest/pkg/constants"
	"github.com/agentstation/harvest/pkg/errors"
	"github.com/agentstation/harvest/pkg/logging"
)

// Loader finds metadata files in a directory and parses them.
type Loader struct {
	suffix  string
	lenient bool
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSuffix sets the file name suffix that selects metadata files.
func WithSuffix(suffix string) LoaderOption {
	return func(l *Loader) {
		if suffix != "" {
			l.suffix = suffix
		}
	}
}

// WithLenient accepts comments and trailing commas in metadata files.
func WithLenient(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.lenient = enabled
	}
}

// NewLoader creates a loader selecting files by constants.MetadataSuffix.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{suffix: constants.MetadataSuffix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Entry is one successfully parsed metadata file.
type Entry struct {
	Path   string
	Record Record
}

// Skipped is a metadata file that could not be read or parsed.
type Skipped struct {
	Path string
	Err  error
}

// Scan is the set of metadata files found in one directory. Files are parsed
// lazily while Records is iterated.
type Scan struct {
	ctx     context.Context
	loader  *Loader
	dir     string
	files   []string
	skipped []Skipped
}

// Scan lists the metadata files in dir. A missing directory, or one without
// matching files, yields an empty scan.
func (l *Loader) Scan(ctx context.Context, dir string) (*Scan, error) {
	s := &Scan{ctx: ctx, loader: l, dir: dir}
	logger := logging.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("dir", dir).Msg("Metadata directory not found, nothing to ingest")
			return s, nil
		}
		return nil, errors.WrapIO("list", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, l.suffix) {
			continue
		}
		s.files = append(s.files, filepath.Join(dir, name))
	}

	logger.Info().
		Str("dir", dir).
		Int("files", len(s.files)).
		Msg("Found metadata files")
	return s, nil
}

// Dir returns the scanned directory.
func (s *Scan) Dir() string {
	return s.dir
}

// Files returns the matched metadata file paths in discovery order.
func (s *Scan) Files() []string {
	return s.files
}

// Skipped returns the files that failed during the last iteration of Records.
func (s *Scan) Skipped() []Skipped {
	return s.skipped
}

// Records yields each parseable metadata file in discovery order. Files that
// fail are logged, recorded in Skipped, and passed over.
func (s *Scan) Records() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		s.skipped = s.skipped[:0]
		logger := logging.FromContext(s.ctx)

		for _, path := range s.files {
			rec, err := s.loader.ParseFile(path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("Skipping malformed metadata file")
				s.skipped = append(s.skipped, Skipped{Path: path, Err: err})
				continue
			}
			logger.Debug().Str("path", path).Msg("Loaded metadata file")
			if !yield(Entry{Path: path, Record: rec}) {
				return
			}
		}
	}
}

// ParseFile reads and parses a single metadata file. Every failure is a
// MalformedMetadataError.
func (l *Loader) ParseFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, errors.NewMalformedMetadataError(path, err)
	}

	rec, err := l.Parse(data)
	if err != nil {
		return Record{}, errors.NewMalformedMetadataError(path, err)
	}
	return rec, nil
}

// Parse decodes one metadata object.
func (l *Loader) Parse(data []byte) (Record, error) {
	if l.lenient {
		std, err := hujson.Standardize(data)
		if err != nil {
			return Record{}, err
		}
		data = std
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, fmt.Errorf("top-level value is not an object")
	}

	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}
