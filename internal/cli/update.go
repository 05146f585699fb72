package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
)

func newUpdateCmd() *cobra.Command {
	var af artisanFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an artisan",
		Long:  "Change some fields of an artisan. Only the flags given are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runUpdate(cmd, id, af.updateData(cmd.Flags()))
		},
	}

	af.register(cmd.Flags())

	return cmd
}

func runUpdate(cmd *cobra.Command, id int64, data artisan.UpdateData) error {
	if data.IsZero() {
		return fmt.Errorf("nothing to update (set at least one field flag)")
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	current, err := svc.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if err := artisan.CheckArtisanData(data.Merge(current)); err != nil {
		return err
	}

	a, err := svc.Update(cmd.Context(), id, data)
	if err != nil {
		return fmt.Errorf("updating artisan: %w", err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, a)
	}

	fmt.Fprintf(out, "Artisan #%d updated.\n", a.ID)
	printArtisanSummary(out, a)
	return nil
}
