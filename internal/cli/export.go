package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the directory as JSON",
		Long:  "Download every artisan with its comments, for offline use. Always writes JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, output string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	artisans, err := svc.ExportJSON(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting artisans: %w", err)
	}

	if output == "" {
		return printJSON(cmd.OutOrStdout(), artisans)
	}

	var buf bytes.Buffer
	if err := printJSON(&buf, artisans); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	if !isJSON() {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d artisans to %s\n", len(artisans), output)
	}
	return nil
}
