package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
)

func newTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the best rated artisans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			artisans, err := svc.TopRated(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("listing top rated artisans: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), artisans)
			}
			return printArtisanTable(cmd.OutOrStdout(), artisans)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", artisan.DefaultTopRatedLimit, "maximum number of artisans")

	return cmd
}
