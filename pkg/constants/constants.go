// Package constants provides shared constants used throughout the harvest codebase.
// This includes file naming conventions, default paths, file permissions, and
// other values that should be consistent across the application.
package constants

// File naming conventions
const (
	// MetadataSuffix selects per-item metadata files within the metadata directory
	MetadataSuffix = "-metadata.json"

	// BackupSuffix is appended to an output path to name its single-generation backup
	BackupSuffix = ".backup"

	// LockSuffix is appended to an output path to name its advisory lock file
	LockSuffix = ".lock"
)

// Default paths used when nothing is configured
const (
	// DefaultMetadataDir is the directory scanned for metadata records
	DefaultMetadataDir = "metadata"

	// DefaultCatalogPath is the catalog read from and written to
	DefaultCatalogPath = "catalog.json"

	// DefaultCollectionsPath is where the derived collection-names file is written
	DefaultCollectionsPath = "collection-names.json"

	// ConfigFileName is the base name of the optional config file ($HOME or .)
	ConfigFileName = ".harvest"

	// EnvPrefix prefixes environment variables read by the CLI
	EnvPrefix = "HARVEST"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Serialization constants
const (
	// JSONIndent is the indentation used for catalog files
	JSONIndent = "  "
)
