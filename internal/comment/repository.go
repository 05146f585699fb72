package comment

import (
	"database/sql"
	"fmt"
)

// Repository provides storage for comments.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a new comment on an artisan.
func (r *Repository) Add(artisanID int64, contenu string) (*Comment, error) {
	if contenu == "" {
		return nil, fmt.Errorf("comment content is required")
	}

	result, err := r.db.Exec(
		"INSERT INTO commentaires (artisan_id, contenu) VALUES (?, ?)",
		artisanID, contenu,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	var c Comment
	err = r.db.QueryRow(
		"SELECT id, artisan_id, contenu, date FROM commentaires WHERE id = ?", id,
	).Scan(&c.ID, &c.ArtisanID, &c.Contenu, &c.Date)
	if err != nil {
		return nil, fmt.Errorf("reading back comment: %w", err)
	}

	return &c, nil
}

// List returns every comment, oldest first.
func (r *Repository) List() ([]*Comment, error) {
	return r.query("SELECT id, artisan_id, contenu, date FROM commentaires ORDER BY id ASC")
}

// ListByArtisanID returns the comments of one artisan in insertion order.
func (r *Repository) ListByArtisanID(artisanID int64) ([]*Comment, error) {
	return r.query(
		"SELECT id, artisan_id, contenu, date FROM commentaires WHERE artisan_id = ? ORDER BY id ASC",
		artisanID,
	)
}

// ListGrouped returns comments grouped by artisan, in insertion order.
func (r *Repository) ListGrouped() (map[int64][]*Comment, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]*Comment)
	for _, c := range all {
		grouped[c.ArtisanID] = append(grouped[c.ArtisanID], c)
	}
	return grouped, nil
}

func (r *Repository) query(query string, args ...interface{}) (comments []*Comment, err error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ArtisanID, &c.Contenu, &c.Date); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}
