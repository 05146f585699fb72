// Package comment provides the comment domain model and data access.
package comment

import "time"

// Comment is a free-text note left on an artisan.
type Comment struct {
	ID        int64     `json:"id"`
	ArtisanID int64     `json:"artisan,omitempty"`
	Contenu   string    `json:"contenu"`
	Date      time.Time `json:"date"`
}

// CreateData is the body of POST /commentaires/.
type CreateData struct {
	Artisan int64  `json:"artisan"`
	Contenu string `json:"contenu"`
}
