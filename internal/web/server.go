// Package web provides the reference REST backend for the artisan directory.
package web

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/comment"
	"github.com/evcraddock/sos-artisans/internal/db"
	"github.com/evcraddock/sos-artisans/internal/logging"
)

// maxBodyBytes caps the size of a JSON request body.
const maxBodyBytes = 1 << 20

// Server is the REST backend HTTP server.
type Server struct {
	database    *sql.DB
	artisanRepo *artisan.Repository
	commentRepo *comment.Repository
	mux         *http.ServeMux
	handler     http.Handler
}

// NewServer creates a backend server over the given database.
func NewServer(database *sql.DB) *Server {
	s := &Server{
		database:    database,
		artisanRepo: artisan.NewRepository(database),
		commentRepo: comment.NewRepository(database),
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/artisans/", s.handleAPIArtisans)
	s.mux.HandleFunc("/api/commentaires/", s.handleAPICommentaires)
	s.mux.HandleFunc("/api/export-json/", s.handleAPIExport)
	s.handler = logging.RequestLogger(s.mux)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("starting backend", "url", fmt.Sprintf("http://localhost:%d/api", port))
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	artisans, comments, err := db.Counts(s.database)
	if err != nil {
		slog.Error("health check failed", "error", err)
		apiError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	apiJSON(w, map[string]interface{}{
		"status":       "ok",
		"artisans":     artisans,
		"commentaires": comments,
	}, http.StatusOK)
}
