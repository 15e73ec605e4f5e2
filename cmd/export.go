package cmd

import (
	"fmt"

	"notesapp/internal/export"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all notes to a JSON, YAML or PDF file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := newAPIClient().ListNotes(cmd.Context())
		if err != nil {
			return err
		}

		format := exportFormat
		if format == "" {
			format = export.FormatFromPath(exportOut)
		}
		if err := export.NewExporter(afero.NewOsFs()).Export(notes, format, exportOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes -> %s\n", len(notes), exportOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json, yaml or pdf (default: from --out extension)")
	exportCmd.Flags().StringVar(&exportOut, "out", "notes.json", "output path")
}
