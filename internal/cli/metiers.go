package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/config"
)

func newMetiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metiers",
		Short: "List the known trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type metier struct {
				Value string `json:"value"`
				Label string `json:"label"`
				Icon  string `json:"icon"`
			}
			metiers := make([]metier, 0, len(config.Metiers))
			for _, m := range config.Metiers {
				metiers = append(metiers, metier{Value: m, Label: artisan.MetierLabel(m), Icon: artisan.MetierIcon(m)})
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), metiers)
			}
			for _, m := range metiers {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-12s %s\n", m.Icon, m.Value, m.Label)
			}
			return nil
		},
	}
}
