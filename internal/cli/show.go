package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show artisan details",
		Long:  "Show full details for an artisan, including all comments.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	a, err := svc.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, a)
	}

	printArtisanSummary(out, a)
	fmt.Fprintln(out)
	if len(a.Commentaires) > 0 {
		fmt.Fprintf(out, "Comments (%d):\n", len(a.Commentaires))
	}
	printCommentList(out, a.Commentaires)
	return nil
}
