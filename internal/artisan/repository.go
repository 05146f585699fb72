package artisan

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/evcraddock/sos-artisans/internal/apperr"
	"github.com/evcraddock/sos-artisans/internal/comment"
)

// Repository stores artisans for the reference backend.
type Repository struct {
	db       *sql.DB
	qb       goqu.DialectWrapper
	comments *comment.Repository
}

// NewRepository creates an artisan repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:       db,
		qb:       goqu.Dialect("sqlite3"),
		comments: comment.NewRepository(db),
	}
}

var selectColumns = []interface{}{"id", "nom", "metier", "ville", "quartier", "contact", "whatsapp", "note"}

func notFound(id int64) error {
	return apperr.NotFound(fmt.Sprintf("artisan %d not found", id))
}

// Insert adds a new artisan and returns it with its generated ID.
func (r *Repository) Insert(data CreateData) (*Artisan, error) {
	rec := goqu.Record{
		"nom":      data.Nom,
		"metier":   data.Metier,
		"ville":    data.Ville,
		"quartier": data.Quartier,
		"contact":  data.Contact,
	}
	if data.Whatsapp != nil {
		rec["whatsapp"] = *data.Whatsapp
	}
	if data.Note != nil {
		rec["note"] = *data.Note
	}

	query, args, err := r.qb.Insert("artisans").Prepared(true).Rows(rec).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building insert: %w", err)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("inserting artisan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns an artisan with its comments.
func (r *Repository) GetByID(id int64) (*Artisan, error) {
	query, args, err := r.qb.From("artisans").Prepared(true).
		Select(selectColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	a, err := scanArtisan(r.db.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying artisan %d: %w", id, err)
	}

	comments, err := r.comments.ListByArtisanID(id)
	if err != nil {
		return nil, err
	}
	a.Commentaires = flatten(comments)

	return a, nil
}

// List returns the artisans matching f (exact match per set field), oldest first.
func (r *Repository) List(f Filters) (artisans []*Artisan, err error) {
	ds := r.qb.From("artisans").Prepared(true).Select(selectColumns...).Order(goqu.C("id").Asc())
	if f.Metier != "" {
		ds = ds.Where(goqu.C("metier").Eq(f.Metier))
	}
	if f.Ville != "" {
		ds = ds.Where(goqu.C("ville").Eq(f.Ville))
	}
	if f.Quartier != "" {
		ds = ds.Where(goqu.C("quartier").Eq(f.Quartier))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing artisans: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	artisans = []*Artisan{}
	for rows.Next() {
		a, err := scanArtisan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning artisan: %w", err)
		}
		artisans = append(artisans, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artisans: %w", err)
	}

	grouped, err := r.comments.ListGrouped()
	if err != nil {
		return nil, err
	}
	for _, a := range artisans {
		a.Commentaires = flatten(grouped[a.ID])
	}

	return artisans, nil
}

// Update applies the non-nil fields of data.
func (r *Repository) Update(id int64, data UpdateData) (*Artisan, error) {
	if data.IsZero() {
		return r.GetByID(id)
	}

	rec := goqu.Record{"updated_at": goqu.L("CURRENT_TIMESTAMP")}
	if data.Nom != nil {
		rec["nom"] = *data.Nom
	}
	if data.Metier != nil {
		rec["metier"] = *data.Metier
	}
	if data.Ville != nil {
		rec["ville"] = *data.Ville
	}
	if data.Quartier != nil {
		rec["quartier"] = *data.Quartier
	}
	if data.Contact != nil {
		rec["contact"] = *data.Contact
	}
	if data.Whatsapp != nil {
		rec["whatsapp"] = *data.Whatsapp
	}
	if data.Note != nil {
		rec["note"] = *data.Note
	}

	query, args, err := r.qb.Update("artisans").Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building update: %w", err)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating artisan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, notFound(id)
	}

	return r.GetByID(id)
}

// Delete removes an artisan by ID. Comments cascade.
func (r *Repository) Delete(id int64) error {
	query, args, err := r.qb.Delete("artisans").Prepared(true).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("deleting artisan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return notFound(id)
	}

	return nil
}

// scanArtisan scans the selectColumns of one row.
func scanArtisan(row interface{ Scan(...interface{}) error }) (*Artisan, error) {
	var a Artisan
	err := row.Scan(&a.ID, &a.Nom, &a.Metier, &a.Ville, &a.Quartier, &a.Contact, &a.Whatsapp, &a.Note)
	if err != nil {
		return nil, err
	}
	a.Commentaires = []comment.Comment{}
	return &a, nil
}

// flatten copies comments into the value slice used on the wire, without the
// parent id which is implied by nesting.
func flatten(comments []*comment.Comment) []comment.Comment {
	out := make([]comment.Comment, 0, len(comments))
	for _, c := range comments {
		cc := *c
		cc.ArtisanID = 0
		out = append(out, cc)
	}
	return out
}
