package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS artisans (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		nom        TEXT    NOT NULL,
		metier     TEXT    NOT NULL,
		ville      TEXT    NOT NULL,
		quartier   TEXT    NOT NULL,
		contact    TEXT    NOT NULL,
		whatsapp   INTEGER NOT NULL DEFAULT 0,
		note       REAL    NOT NULL DEFAULT 0 CHECK (note >= 0 AND note <= 5),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS commentaires (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		artisan_id INTEGER NOT NULL REFERENCES artisans(id) ON DELETE CASCADE,
		contenu    TEXT    NOT NULL,
		date       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_artisans_metier ON artisans(metier)`,
	`CREATE INDEX IF NOT EXISTS idx_commentaires_artisan ON commentaires(artisan_id)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
