package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/harvest/cmd/application"
	"github.com/agentstation/harvest/pkg/constants"
)

// Flags holds merge-specific flags.
type Flags struct {
	MetadataDir string
	Input       string
	Output      string
	NoBackup    bool
	NoLock      bool
	DryRun      bool
	Lenient     bool
}

// AddFlags adds merge-specific flags to a command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVar(&flags.MetadataDir, "metadata-dir", constants.DefaultMetadataDir,
		"Directory containing *-metadata.json files")
	cmd.Flags().StringVarP(&flags.Input, "input", "i", constants.DefaultCatalogPath,
		"Existing catalog to merge into")
	cmd.Flags().StringVar(&flags.Output, "output", constants.DefaultCatalogPath,
		"Where to write the merged catalog")
	cmd.Flags().BoolVar(&flags.NoBackup, "no-backup", false,
		"Do not copy the previous output to <output>.backup")
	cmd.Flags().BoolVar(&flags.NoLock, "no-lock", false,
		"Do not hold <output>.lock during the run")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Compute the merge without writing anything")
	cmd.Flags().BoolVar(&flags.Lenient, "lenient", false,
		"Accept comments and trailing commas in metadata files")

	return flags
}

// Apply overrides settings with the flags that were set on the command line.
func (f *Flags) Apply(cmd *cobra.Command, s application.Settings) application.Settings {
	changed := cmd.Flags().Changed
	if changed("metadata-dir") {
		s.MetadataDir = f.MetadataDir
	}
	if changed("input") {
		s.Input = f.Input
	}
	if changed("output") {
		s.Output = f.Output
	}
	if changed("no-backup") {
		s.Backup = !f.NoBackup
	}
	if changed("no-lock") {
		s.Lock = !f.NoLock
	}
	if changed("dry-run") {
		s.DryRun = f.DryRun
	}
	if changed("lenient") {
		s.LenientMetadata = f.Lenient
	}
	return s
}
