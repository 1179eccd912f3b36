// Package merge provides the merge command implementation.
package merge

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/harvest"
	"github.com/agentstation/harvest/cmd/application"
	"github.com/agentstation/harvest/internal/cmd/output"
)

// NewCommand creates the merge command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "merge",
		GroupID: "core",
		Short:   "Merge metadata records into the catalog",
		Args:    cobra.NoArgs,
		Long: `Merge ingests every *-metadata.json file in the metadata directory,
converts each record to the catalog schema, and appends the ones whose
filename is not already in the catalog.

Existing records are never modified or removed. The first record seen for a
filename wins. Malformed metadata files are skipped and counted. Before the
output is overwritten, its previous contents are copied to <output>.backup.

The run aborts without writing if the existing catalog is malformed or if
the merged catalog would be smaller than the existing one.`,
		Example: `  harvest merge                                   # metadata/ into catalog.json
  harvest merge --metadata-dir ./items --output merged.json
  harvest merge --dry-run -o json                 # preview counts only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := flags.Apply(cmd, app.Settings())
			return Execute(cmd.Context(), app, cmd, settings)
		},
	}

	flags = AddFlags(cmd)

	return cmd
}

// Execute runs a merge with the resolved settings and prints the summary.
func Execute(ctx context.Context, app application.Application, cmd *cobra.Command, settings application.Settings) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	result, err := harvest.Run(ctx, Options(app, settings)...)
	if err != nil {
		return err
	}

	return output.FormatResult(cmd.OutOrStdout(), result, output.DetectFormat(string(format)))
}

// Options maps settings onto run options.
func Options(app application.Application, s application.Settings) []harvest.Option {
	opts := []harvest.Option{
		harvest.WithMetadataDir(s.MetadataDir),
		harvest.WithInputPath(s.Input),
		harvest.WithOutputPath(s.Output),
		harvest.WithBackup(s.Backup),
		harvest.WithLock(s.Lock),
		harvest.WithDryRun(s.DryRun),
		harvest.WithLenientMetadata(s.LenientMetadata),
		harvest.WithLogger(app.Logger()),
	}
	if s.MetadataSuffix != "" {
		opts = append(opts, harvest.WithMetadataSuffix(s.MetadataSuffix))
	}
	return opts
}
