package cli

import (
	"database/sql"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sos-artisans/internal/db"
	"github.com/evcraddock/sos-artisans/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port   int
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST backend",
		Long:  "Start an HTTP server exposing the artisan API under /api, backed by SQLite.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, dbPath)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: ~/.sos-artisans/artisans.db)")

	return cmd
}

func runServe(port int, dbPath string) error {
	database, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer closeDB(database)

	return web.NewServer(database).ListenAndServe(port)
}

// openDB opens the SQLite database at path, or at the default path when empty.
func openDB(path string) (*sql.DB, error) {
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// closeDB closes the database, logging any error.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}
