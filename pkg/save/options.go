// Package save holds the options that control how catalog files are written.
package save

import "github.com/agentstation/harvest/pkg/constants"

// Options is the configuration for save.
type Options struct {
	backup       bool
	backupSuffix string
	indent       string
}

// Backup reports whether the previous output is copied aside before overwrite.
func (s *Options) Backup() bool {
	return s.backup
}

// BackupSuffix returns the suffix appended to the output path for the backup.
func (s *Options) BackupSuffix() string {
	return s.backupSuffix
}

// Indent returns the indentation used for JSON output.
func (s *Options) Indent() string {
	return s.indent
}

// BackupPath derives the backup path for an output path.
func (s *Options) BackupPath(path string) string {
	return path + s.backupSuffix
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		backup:       true,
		backupSuffix: constants.BackupSuffix,
		indent:       constants.JSONIndent,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithBackup enables or disables the pre-overwrite backup.
func WithBackup(enabled bool) Option {
	return func(s *Options) {
		s.backup = enabled
	}
}

// WithBackupSuffix overrides the backup suffix.
func WithBackupSuffix(suffix string) Option {
	return func(s *Options) {
		if suffix != "" {
			s.backupSuffix = suffix
		}
	}
}

// WithIndent overrides the JSON indentation.
func WithIndent(indent string) Option {
	return func(s *Options) {
		s.indent = indent
	}
}
