// Package collections provides the collections command implementation.
package collections

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/harvest"
	"github.com/agentstation/harvest/cmd/application"
	"github.com/agentstation/harvest/internal/cmd/output"
	"github.com/agentstation/harvest/pkg/constants"
)

// Flags holds collections-specific flags.
type Flags struct {
	Input    string
	Output   string
	NoBackup bool
	DryRun   bool
}

// NewCommand creates the collections command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "collections",
		GroupID: "core",
		Short:   "Write the collection-names file derived from the catalog",
		Args:    cobra.NoArgs,
		Long: `Collections reads the catalog and writes one entry per distinct
collection, sorted by name, with the display name initialised to the
collection value:

  [{"collection": "...", "displayName": "..."}]

The previous file is copied to <output>.backup before it is overwritten.`,
		Example: `  harvest collections
  harvest collections --input catalog.json --output collection-names.json
  harvest collections --dry-run -o table`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := app.Settings()
			input, out, backup, dryRun := s.Input, s.CollectionsOutput, s.Backup, s.DryRun
			if cmd.Flags().Changed("input") {
				input = flags.Input
			}
			if cmd.Flags().Changed("output") {
				out = flags.Output
			}
			if cmd.Flags().Changed("no-backup") {
				backup = !flags.NoBackup
			}
			if cmd.Flags().Changed("dry-run") {
				dryRun = flags.DryRun
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			result, err := harvest.BuildCollections(cmd.Context(),
				harvest.WithCatalogPath(input),
				harvest.WithCollectionsPath(out),
				harvest.WithCollectionsBackup(backup),
				harvest.WithCollectionsLock(s.Lock),
				harvest.WithCollectionsDryRun(dryRun),
				harvest.WithCollectionsLogger(app.Logger()),
			)
			if err != nil {
				return err
			}

			return output.FormatCollections(cmd.OutOrStdout(), result, output.DetectFormat(string(format)))
		},
	}

	cmd.Flags().StringVarP(&flags.Input, "input", "i", constants.DefaultCatalogPath,
		"Catalog to derive collections from")
	cmd.Flags().StringVar(&flags.Output, "output", constants.DefaultCollectionsPath,
		"Where to write the collection-names file")
	cmd.Flags().BoolVar(&flags.NoBackup, "no-backup", false,
		"Do not copy the previous output to <output>.backup")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Derive collections without writing anything")

	return cmd
}
