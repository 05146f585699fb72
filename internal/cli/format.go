package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/comment"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printArtisanSummary prints a single artisan in text format.
func printArtisanSummary(w io.Writer, a *artisan.Artisan) {
	fmt.Fprintf(w, "%s %s (#%d)\n", artisan.MetierIcon(a.Metier), a.Nom, a.ID)
	fmt.Fprintf(w, "  Métier:   %s\n", artisan.MetierLabel(a.Metier))
	fmt.Fprintf(w, "  Lieu:     %s, %s\n", a.Quartier, a.Ville)
	fmt.Fprintf(w, "  Contact:  %s\n", artisan.FormatPhoneNumber(a.Contact))
	if artisan.HasWhatsApp(a) {
		fmt.Fprintf(w, "  WhatsApp: %s\n", artisan.WhatsAppLink(a.Contact, ""))
	}
	fmt.Fprintf(w, "  Note:     %s\n", formatRating(artisan.AverageRating(a)))
}

// printArtisanTable prints a list of artisans as a formatted table.
func printArtisanTable(w io.Writer, artisans []*artisan.Artisan) error {
	if len(artisans) == 0 {
		fmt.Fprintln(w, "No artisans found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNOM\tMÉTIER\tVILLE\tQUARTIER\tCONTACT\tNOTE\tWA"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t---\t------\t-----\t--------\t-------\t----\t--"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, a := range artisans {
		wa := "-"
		if artisan.HasWhatsApp(a) {
			wa = "✓"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n",
			a.ID, truncate(a.Nom, 30), artisan.MetierLabel(a.Metier), a.Ville,
			truncate(a.Quartier, 20), artisan.FormatPhoneNumber(a.Contact), a.Note, wa); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d artisans\n", len(artisans))
	return nil
}

// printCommentList prints comments in text format.
func printCommentList(w io.Writer, comments []comment.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments.")
		return
	}

	for _, c := range comments {
		fmt.Fprintf(w, "[%s] #%d\n  %s\n\n", artisan.FormatCommentDate(c.Date), c.ID, c.Contenu)
	}
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(w io.Writer, c *comment.Comment) {
	fmt.Fprintf(w, "Comment #%d added.\n  %s\n", c.ID, c.Contenu)
}

// formatRating returns a five-star representation of a note followed by its value.
func formatRating(note float64) string {
	n := int(math.Round(note))
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n) + fmt.Sprintf(" %.1f", note)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
