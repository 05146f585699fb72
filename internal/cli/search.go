package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search artisans",
		Long:  "Search artisans by name, trade, city or district (case-insensitive substring).",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := strings.Join(args, " ")
	if strings.TrimSpace(term) == "" {
		return fmt.Errorf("search term is required")
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	artisans, err := svc.Search(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("searching artisans: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), artisans)
	}
	return printArtisanTable(cmd.OutOrStdout(), artisans)
}
