// Package db opens the SQLite store backing the artisan directory.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// busyTimeoutMS is how long a connection waits on a locked database.
const busyTimeoutMS = 5000

// DefaultPath returns ~/.sos-artisans/artisans.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".sos-artisans", "artisans.db"), nil
}

// DSN builds the go-sqlite3 connection string for path. Connection settings
// live in the DSN so every pooled connection gets them.
func DSN(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", fmt.Sprint(busyTimeoutMS))
	return path + "?" + params.Encode()
}

// Open opens (or creates) the database at path and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := checkForeignKeys(conn); err != nil {
		return nil, closeAfter(conn, err)
	}
	if err := migrate(conn); err != nil {
		return nil, closeAfter(conn, fmt.Errorf("running migrations: %w", err))
	}
	return conn, nil
}

// Counts reports how many artisans and comments are stored.
func Counts(conn *sql.DB) (artisans, comments int, err error) {
	row := conn.QueryRow(`SELECT
		(SELECT COUNT(*) FROM artisans),
		(SELECT COUNT(*) FROM commentaires)`)
	if err := row.Scan(&artisans, &comments); err != nil {
		return 0, 0, fmt.Errorf("counting rows: %w", err)
	}
	return artisans, comments, nil
}

// checkForeignKeys fails when the driver ignored the DSN setting, since
// deleting an artisan relies on the cascade to drop its comments.
func checkForeignKeys(conn *sql.DB) error {
	var on int
	if err := conn.QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		return fmt.Errorf("reading foreign_keys: %w", err)
	}
	if on != 1 {
		return errors.New("foreign keys are not enabled")
	}
	return nil
}

func closeAfter(conn *sql.DB, err error) error {
	if closeErr := conn.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}
