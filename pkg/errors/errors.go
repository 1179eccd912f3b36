// Package errors provides custom error types for the harvest system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the harvest system
var (
	// ErrMalformedCatalog indicates that an existing catalog could not be parsed
	ErrMalformedCatalog = errors.New("malformed catalog")

	// ErrMalformedMetadata indicates that a metadata record file could not be parsed
	ErrMalformedMetadata = errors.New("malformed metadata record")

	// ErrDataLoss indicates that a merge result would lose existing records
	ErrDataLoss = errors.New("data loss invariant violation")

	// ErrWriteFailure indicates that the final catalog write failed
	ErrWriteFailure = errors.New("write failure")

	// ErrLocked indicates that another run holds the output lock
	ErrLocked = errors.New("locked")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// MalformedCatalogError is returned when an existing catalog file is present
// but is not a JSON array of record objects. A run that hits it must not write.
type MalformedCatalogError struct {
	Path    string
	Index   int // element index, -1 when the document itself is at fault
	Message string
	Err     error
}

// Error implements the error interface
func (e *MalformedCatalogError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("malformed catalog %s: element %d: %s", e.Path, e.Index, e.Message)
	}
	return fmt.Sprintf("malformed catalog %s: %s", e.Path, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MalformedCatalogError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedCatalogError) Is(target error) bool {
	return target == ErrMalformedCatalog
}

// NewMalformedCatalogError creates a new MalformedCatalogError for the whole document.
func NewMalformedCatalogError(path, message string, err error) *MalformedCatalogError {
	return &MalformedCatalogError{
		Path:    path,
		Index:   -1,
		Message: message,
		Err:     err,
	}
}

// MalformedMetadataError is returned for a single metadata file that could
// not be read or parsed. It never aborts a run.
type MalformedMetadataError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *MalformedMetadataError) Error() string {
	return fmt.Sprintf("malformed metadata record %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MalformedMetadataError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedMetadataError) Is(target error) bool {
	return target == ErrMalformedMetadata
}

// NewMalformedMetadataError creates a new MalformedMetadataError
func NewMalformedMetadataError(path string, err error) *MalformedMetadataError {
	return &MalformedMetadataError{Path: path, Err: err}
}

// Invariant names reported by DataLossError.
const (
	InvariantMonotonicGrowth = "monotonic growth"
	InvariantNonEmpty        = "non-empty result"
)

// DataLossError represents a merge result that would drop existing records.
type DataLossError struct {
	Invariant     string
	ExistingCount int
	ResultCount   int
}

// Error implements the error interface
func (e *DataLossError) Error() string {
	return fmt.Sprintf("%s: %s violated (existing %d, result %d)",
		ErrDataLoss, e.Invariant, e.ExistingCount, e.ResultCount)
}

// Is implements errors.Is support
func (e *DataLossError) Is(target error) bool {
	return target == ErrDataLoss
}

// NewDataLossError creates a new DataLossError
func NewDataLossError(invariant string, existing, result int) *DataLossError {
	return &DataLossError{
		Invariant:     invariant,
		ExistingCount: existing,
		ResultCount:   result,
	}
}

// WriteError represents a failure to serialize or write the output catalog.
// BackupPath is set when a backup of the previous output was made first.
type WriteError struct {
	Path       string
	BackupPath string
	Err        error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	if e.BackupPath != "" {
		return fmt.Sprintf("failed to write %s (backup available at %s): %v", e.Path, e.BackupPath, e.Err)
	}
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailure
}

// NewWriteError creates a new WriteError
func NewWriteError(path, backupPath string, err error) *WriteError {
	return &WriteError{
		Path:       path,
		BackupPath: backupPath,
		Err:        err,
	}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "lock", "list"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsMalformedCatalog checks if an error is a malformed catalog error
func IsMalformedCatalog(err error) bool {
	return errors.Is(err, ErrMalformedCatalog)
}

// IsMalformedMetadata checks if an error is a malformed metadata record error
func IsMalformedMetadata(err error) bool {
	return errors.Is(err, ErrMalformedMetadata)
}

// IsDataLoss checks if an error is a data loss invariant violation
func IsDataLoss(err error) bool {
	return errors.Is(err, ErrDataLoss)
}

// IsWriteFailure checks if an error is a write failure
func IsWriteFailure(err error) bool {
	return errors.Is(err, ErrWriteFailure)
}

// IsLocked checks if an error reports a held output lock
func IsLocked(err error) bool {
	return errors.Is(err, ErrLocked)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}
