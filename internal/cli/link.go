package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/artisan"
)

func newLinkCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "link <id>",
		Short: "Print contact links for an artisan",
		Long:  "Print the tel: link of an artisan and, when reachable on WhatsApp, a wa.me link with an optional pre-filled message.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runLink(cmd, id, message)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "pre-filled WhatsApp message")

	return cmd
}

func runLink(cmd *cobra.Command, id int64, message string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	a, err := svc.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	links := map[string]string{"call": artisan.CallLink(a.Contact)}
	if artisan.HasWhatsApp(a) {
		links["whatsapp"] = artisan.WhatsAppLink(a.Contact, message)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, links)
	}

	fmt.Fprintf(out, "Call:     %s\n", links["call"])
	if wa, ok := links["whatsapp"]; ok {
		fmt.Fprintf(out, "WhatsApp: %s\n", wa)
	} else {
		fmt.Fprintln(out, "WhatsApp: not available")
	}
	return nil
}
