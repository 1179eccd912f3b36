// Package application provides the application interface for harvest commands.
//
// Commands accept Application rather than the concrete app type so they can
// be tested with Mock.
//
//	mock := &application.Mock{
//	    SettingsFunc: func() application.Settings {
//	        return application.Settings{Input: "catalog.json", Output: "catalog.json"}
//	    },
//	}
//	cmd := merge.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"
)

// Application provides what commands need from the running application.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Settings returns the merge settings resolved from config file,
	// environment, and defaults. Command flags are applied on top.
	Settings() Settings

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// Settings are the configurable inputs of a merge or collections run.
type Settings struct {
	MetadataDir       string
	Input             string
	Output            string
	MetadataSuffix    string
	CollectionsOutput string
	Backup            bool
	Lock              bool
	DryRun            bool
	LenientMetadata   bool
}
