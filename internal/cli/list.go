package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
)

func newListCmd() *cobra.Command {
	var (
		f      artisan.Filters
		sortBy string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List artisans",
		Long:  "List artisans, optionally filtered by trade, city and district (exact match) and sorted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, f, sortBy)
		},
	}

	cmd.Flags().StringVar(&f.Metier, "metier", "", "trade to filter by (see 'sos metiers')")
	cmd.Flags().StringVar(&f.Ville, "ville", "", "city to filter by")
	cmd.Flags().StringVar(&f.Quartier, "quartier", "", "district to filter by")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort order (rating|name)")

	return cmd
}

func runList(cmd *cobra.Command, f artisan.Filters, sortBy string) error {
	if f.Metier != "" && !artisan.KnownMetier(f.Metier) {
		return fmt.Errorf("unknown metier %q (see 'sos metiers')", f.Metier)
	}
	sorter, err := sortFunc(sortBy)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	artisans, err := svc.Filter(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("listing artisans: %w", err)
	}
	if sorter != nil {
		artisans = sorter(artisans)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), artisans)
	}
	return printArtisanTable(cmd.OutOrStdout(), artisans)
}

// sortFunc returns the sorter named by the --sort flag, or nil for server order.
func sortFunc(name string) (func([]*artisan.Artisan) []*artisan.Artisan, error) {
	switch name {
	case "":
		return nil, nil
	case "rating":
		return artisan.SortByRating, nil
	case "name":
		return artisan.SortByName, nil
	default:
		return nil, fmt.Errorf("invalid sort %q (rating|name)", name)
	}
}
