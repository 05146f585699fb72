package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the API",
		Long:  "Shows the configured API URL and timeout, and tests the connection.",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := newAPIClient()
	if err != nil {
		return err
	}
	cfg := c.Config()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Server:  %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "Timeout: %s\n", cfg.Timeout)

	resp := c.Get(cmd.Context(), cfg.Endpoints.Artisans)
	if !resp.OK() {
		fmt.Fprintf(out, "Status:  ✗ %s\n", resp.Error)
		return nil
	}

	artisans, _, err := client.Decode[[]*artisan.Artisan](resp)
	if err != nil {
		fmt.Fprintf(out, "Status:  ✗ unexpected response (%v)\n", err)
		return nil
	}
	fmt.Fprintf(out, "Status:  ✓ connected (%d artisans)\n", len(artisans))
	return nil
}
