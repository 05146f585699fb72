package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/comment"
)

func newCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `comment <id> "text"`,
		Short: "Add a comment to an artisan",
		Long:  "Add a text comment (10 to 500 characters) to an artisan.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runComment,
	}
}

func runComment(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := artisan.CheckCommentaireData(text); err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	c, err := svc.AddComment(cmd.Context(), comment.CreateData{Artisan: id, Contenu: text})
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}

	printCommentSingle(cmd.OutOrStdout(), c)
	return nil
}
