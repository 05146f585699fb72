// Package artisan provides the artisan domain model, the API-backed service,
// the backend repository and the pure helpers used by front ends.
package artisan

import (
	"github.com/evcraddock/sos-artisans/internal/comment"
	"github.com/evcraddock/sos-artisans/internal/config"
)

// Artisan is a listed service provider.
type Artisan struct {
	ID           int64             `json:"id"`
	Nom          string            `json:"nom"`
	Metier       string            `json:"metier"`
	Ville        string            `json:"ville"`
	Quartier     string            `json:"quartier"`
	Contact      string            `json:"contact"`
	Whatsapp     bool              `json:"whatsapp"`
	Note         float64           `json:"note"`
	Commentaires []comment.Comment `json:"commentaires"`
}

// Filters narrows a list query. Empty fields are unconstrained.
type Filters struct {
	Metier   string `json:"metier,omitempty"`
	Ville    string `json:"ville,omitempty"`
	Quartier string `json:"quartier,omitempty"`
}

// Params returns the filters as query parameters.
func (f Filters) Params() map[string]any {
	return map[string]any{
		"metier":   f.Metier,
		"ville":    f.Ville,
		"quartier": f.Quartier,
	}
}

// Query renders the filters as a query string ("" when empty).
func (f Filters) Query() string {
	return config.BuildQueryParams(f.Params())
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// CreateData is the body of POST /artisans/.
type CreateData struct {
	Nom      string   `json:"nom" validate:"trimmin=2"`
	Metier   string   `json:"metier" validate:"required"`
	Ville    string   `json:"ville" validate:"trimmin=2"`
	Quartier string   `json:"quartier" validate:"trimmin=2"`
	Contact  string   `json:"contact" validate:"trimmin=8"`
	Whatsapp *bool    `json:"whatsapp,omitempty"`
	Note     *float64 `json:"note,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// UpdateData is the body of PATCH /artisans/{id}/. Nil fields are left unchanged.
type UpdateData struct {
	Nom      *string  `json:"nom,omitempty"`
	Metier   *string  `json:"metier,omitempty"`
	Ville    *string  `json:"ville,omitempty"`
	Quartier *string  `json:"quartier,omitempty"`
	Contact  *string  `json:"contact,omitempty"`
	Whatsapp *bool    `json:"whatsapp,omitempty"`
	Note     *float64 `json:"note,omitempty"`
}

// IsZero reports whether the update changes nothing.
func (u UpdateData) IsZero() bool {
	return u.Nom == nil && u.Metier == nil && u.Ville == nil && u.Quartier == nil &&
		u.Contact == nil && u.Whatsapp == nil && u.Note == nil
}

// Merge returns the create payload obtained by applying u on top of a.
// Used to validate a partial update against the full record.
func (u UpdateData) Merge(a *Artisan) CreateData {
	whatsapp, note := a.Whatsapp, a.Note
	d := CreateData{
		Nom:      a.Nom,
		Metier:   a.Metier,
		Ville:    a.Ville,
		Quartier: a.Quartier,
		Contact:  a.Contact,
		Whatsapp: &whatsapp,
		Note:     &note,
	}
	if u.Nom != nil {
		d.Nom = *u.Nom
	}
	if u.Metier != nil {
		d.Metier = *u.Metier
	}
	if u.Ville != nil {
		d.Ville = *u.Ville
	}
	if u.Quartier != nil {
		d.Quartier = *u.Quartier
	}
	if u.Contact != nil {
		d.Contact = *u.Contact
	}
	if u.Whatsapp != nil {
		d.Whatsapp = u.Whatsapp
	}
	if u.Note != nil {
		d.Note = u.Note
	}
	return d
}

// AsUpdate returns an update that overwrites every field with d.
// Whatsapp and Note are only set when d carries them.
func (d CreateData) AsUpdate() UpdateData {
	nom, metier, ville, quartier, contact := d.Nom, d.Metier, d.Ville, d.Quartier, d.Contact
	return UpdateData{
		Nom:      &nom,
		Metier:   &metier,
		Ville:    &ville,
		Quartier: &quartier,
		Contact:  &contact,
		Whatsapp: d.Whatsapp,
		Note:     d.Note,
	}
}
