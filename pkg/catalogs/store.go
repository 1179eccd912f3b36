package catalogs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/agentstation/harvest/pkg/constants"
	"github.com/agentstation/harvest/pkg/errors"
	"github.com/agentstation/harvest/pkg/logging"
	"github.com/agentstation/harvest/pkg/save"
)

// Store loads and persists catalog files.
type Store struct {
	options save.Options
}

// SaveResult describes a completed write.
type SaveResult struct {
	Path         string
	BackupPath   string // empty when no previous output existed or backups are off
	BytesWritten int
}

// NewStore creates a store with the given save options.
func NewStore(opts ...save.Option) *Store {
	return &Store{options: save.Defaults().Apply(opts...)}
}

// Options returns the store's save options.
func (s *Store) Options() save.Options {
	return s.options
}

// Load reads the catalog at path. A missing file is an empty catalog. Any
// parse problem is a MalformedCatalogError and no records are returned.
func (s *Store) Load(ctx context.Context, path string) (Catalog, error) {
	logger := logging.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("Catalog not found, starting from an empty catalog")
			return Catalog{}, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	records, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", path).
		Int("records", len(records)).
		Msg("Loaded existing catalog")
	return records, nil
}

// Parse decodes catalog bytes. path is only used in error messages.
func Parse(path string, data []byte) (Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewMalformedCatalogError(path, "empty document", nil)
	}
	if trimmed[0] != '[' {
		return nil, errors.NewMalformedCatalogError(path, "top-level value is not an array", nil)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, errors.NewMalformedCatalogError(path, err.Error(), err)
	}

	records := make(Catalog, len(elements))
	for i, elem := range elements {
		if err := json.Unmarshal(elem, &records[i]); err != nil {
			return nil, &errors.MalformedCatalogError{
				Path:    path,
				Index:   i,
				Message: err.Error(),
				Err:     err,
			}
		}
	}
	return records, nil
}

// Save writes records to path as a JSON array. When backups are enabled and
// a file already exists at path, its bytes are first copied verbatim to the
// backup path. The write itself is atomic, so a failure leaves both the
// previous output and the backup in place.
func (s *Store) Save(ctx context.Context, path string, records Catalog) (*SaveResult, error) {
	if records == nil {
		records = Catalog{}
	}
	return s.WriteJSON(ctx, path, records)
}

// WriteJSON writes any value with the store's backup and atomic write rules.
func (s *Store) WriteJSON(ctx context.Context, path string, v any) (*SaveResult, error) {
	logger := logging.FromContext(ctx)

	data, err := Marshal(v, s.options.Indent())
	if err != nil {
		return nil, errors.NewWriteError(path, "", err)
	}

	result := &SaveResult{Path: path}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	if existed && s.options.Backup() {
		backupPath, err := s.backup(path)
		if err != nil {
			return nil, errors.NewWriteError(path, "", err)
		}
		result.BackupPath = backupPath
		logger.Info().Str("backup", backupPath).Msg("Backed up previous output")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.NewWriteError(path, result.BackupPath, err)
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return nil, errors.NewWriteError(path, result.BackupPath, err)
	}
	if !existed {
		// atomic.WriteFile creates new files through os.CreateTemp (0600)
		if err := os.Chmod(path, constants.FilePermissions); err != nil {
			return nil, errors.NewWriteError(path, result.BackupPath, err)
		}
	}

	result.BytesWritten = len(data)
	logger.Info().
		Str("path", path).
		Int("bytes", result.BytesWritten).
		Msg("Wrote catalog file")
	return result, nil
}

// backup copies the current bytes at path to its backup path.
func (s *Store) backup(path string) (string, error) {
	current, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}

	backupPath := s.options.BackupPath(path)
	_, statErr := os.Stat(backupPath)
	if err := atomic.WriteFile(backupPath, bytes.NewReader(current)); err != nil {
		return "", errors.WrapIO("write", backupPath, err)
	}
	if os.IsNotExist(statErr) {
		if err := os.Chmod(backupPath, constants.FilePermissions); err != nil {
			return "", errors.WrapIO("write", backupPath, err)
		}
	}
	return backupPath, nil
}

// Marshal encodes v as indented JSON without HTML escaping, followed by a
// newline. Non-ASCII text is written as UTF-8.
func Marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
