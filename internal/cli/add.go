package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/evcraddock/sos-artisans/internal/artisan"
)

// artisanFlags holds the field flags shared by add and update.
type artisanFlags struct {
	nom, metier, ville, quartier, contact string
	whatsapp                              bool
	note                                  float64
}

func (af *artisanFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&af.nom, "nom", "", "name")
	fs.StringVar(&af.metier, "metier", "", "trade (see 'sos metiers')")
	fs.StringVar(&af.ville, "ville", "", "city")
	fs.StringVar(&af.quartier, "quartier", "", "district")
	fs.StringVar(&af.contact, "contact", "", "phone number")
	fs.BoolVar(&af.whatsapp, "whatsapp", false, "reachable on WhatsApp")
	fs.Float64Var(&af.note, "note", 0, "rating from 0 to 5")
}

// createData builds a create payload. Whatsapp and note are only sent when set.
func (af *artisanFlags) createData(fs *pflag.FlagSet) artisan.CreateData {
	d := artisan.CreateData{
		Nom:      af.nom,
		Metier:   af.metier,
		Ville:    af.ville,
		Quartier: af.quartier,
		Contact:  af.contact,
	}
	if fs.Changed("whatsapp") {
		d.Whatsapp = &af.whatsapp
	}
	if fs.Changed("note") {
		d.Note = &af.note
	}
	return d
}

// updateData builds a partial update from the flags that were set.
func (af *artisanFlags) updateData(fs *pflag.FlagSet) artisan.UpdateData {
	var u artisan.UpdateData
	if fs.Changed("nom") {
		u.Nom = &af.nom
	}
	if fs.Changed("metier") {
		u.Metier = &af.metier
	}
	if fs.Changed("ville") {
		u.Ville = &af.ville
	}
	if fs.Changed("quartier") {
		u.Quartier = &af.quartier
	}
	if fs.Changed("contact") {
		u.Contact = &af.contact
	}
	if fs.Changed("whatsapp") {
		u.Whatsapp = &af.whatsapp
	}
	if fs.Changed("note") {
		u.Note = &af.note
	}
	return u
}

func newAddCmd() *cobra.Command {
	var af artisanFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an artisan",
		Long:  "Validate and add a new artisan to the directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, af.createData(cmd.Flags()))
		},
	}

	af.register(cmd.Flags())

	return cmd
}

func runAdd(cmd *cobra.Command, data artisan.CreateData) error {
	if err := artisan.CheckArtisanData(data); err != nil {
		return err
	}
	if !artisan.KnownMetier(data.Metier) {
		return fmt.Errorf("unknown metier %q (see 'sos metiers')", data.Metier)
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	a, err := svc.Create(cmd.Context(), data)
	if err != nil {
		return fmt.Errorf("adding artisan: %w", err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, a)
	}

	fmt.Fprintln(out, "Artisan added successfully!")
	printArtisanSummary(out, a)
	return nil
}
