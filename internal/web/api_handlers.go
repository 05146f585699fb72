package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/sos-artisans/internal/apperr"
	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/comment"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiValidationError writes a 400 listing every broken rule.
func apiValidationError(w http.ResponseWriter, violations []string) {
	apiJSON(w, map[string]interface{}{
		"error":   strings.Join(violations, "; "),
		"details": violations,
	}, http.StatusBadRequest)
}

// apiFailure maps a repository error to a response. Typed errors keep their
// status; anything else is logged and reported as a 500.
func apiFailure(w http.ResponseWriter, action string, err error) {
	if status := apperr.StatusOf(err); status != 0 {
		apiError(w, err.Error(), status)
		return
	}
	slog.Error(action, "error", err)
	apiError(w, fmt.Sprintf("%s: %v", action, err), http.StatusInternalServerError)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// decodeBody reads a JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// checkArtisan returns the rules data breaks, including an unknown trade.
func checkArtisan(data artisan.CreateData) []string {
	errs := artisan.ValidateArtisanData(data)
	if data.Metier != "" && !artisan.KnownMetier(data.Metier) {
		errs = append(errs, fmt.Sprintf("Métier inconnu: %s", data.Metier))
	}
	return errs
}

// handleAPIArtisans routes /api/artisans/ requests.
func (s *Server) handleAPIArtisans(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/artisans/")
	path = strings.TrimSuffix(path, "/")

	// /api/artisans/ — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			s.apiListArtisans(w, r)
		case http.MethodPost:
			s.apiCreateArtisan(w, r)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/artisans/{id}/
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid artisan ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.apiGetArtisan(w, id)
	case http.MethodPatch:
		s.apiPatchArtisan(w, r, id)
	case http.MethodPut:
		s.apiPutArtisan(w, r, id)
	case http.MethodDelete:
		s.apiDeleteArtisan(w, id)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiListArtisans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := artisan.Filters{
		Metier:   q.Get("metier"),
		Ville:    q.Get("ville"),
		Quartier: q.Get("quartier"),
	}

	artisans, err := s.artisanRepo.List(f)
	if err != nil {
		apiFailure(w, "listing artisans", err)
		return
	}
	apiJSON(w, artisans, http.StatusOK)
}

func (s *Server) apiCreateArtisan(w http.ResponseWriter, r *http.Request) {
	var data artisan.CreateData
	if !decodeBody(w, r, &data) {
		return
	}
	if errs := checkArtisan(data); len(errs) > 0 {
		apiValidationError(w, errs)
		return
	}

	a, err := s.artisanRepo.Insert(data)
	if err != nil {
		apiFailure(w, "creating artisan", err)
		return
	}
	apiJSON(w, a, http.StatusCreated)
}

func (s *Server) apiGetArtisan(w http.ResponseWriter, id int64) {
	a, err := s.artisanRepo.GetByID(id)
	if err != nil {
		apiFailure(w, "loading artisan", err)
		return
	}
	apiJSON(w, a, http.StatusOK)
}

// apiPatchArtisan applies a partial update, validated against the merged record.
func (s *Server) apiPatchArtisan(w http.ResponseWriter, r *http.Request, id int64) {
	var data artisan.UpdateData
	if !decodeBody(w, r, &data) {
		return
	}
	s.applyUpdate(w, id, data)
}

// apiPutArtisan replaces every field of an artisan.
func (s *Server) apiPutArtisan(w http.ResponseWriter, r *http.Request, id int64) {
	var data artisan.CreateData
	if !decodeBody(w, r, &data) {
		return
	}
	s.applyUpdate(w, id, data.AsUpdate())
}

func (s *Server) applyUpdate(w http.ResponseWriter, id int64, data artisan.UpdateData) {
	current, err := s.artisanRepo.GetByID(id)
	if err != nil {
		apiFailure(w, "loading artisan", err)
		return
	}
	if errs := checkArtisan(data.Merge(current)); len(errs) > 0 {
		apiValidationError(w, errs)
		return
	}

	a, err := s.artisanRepo.Update(id, data)
	if err != nil {
		apiFailure(w, "updating artisan", err)
		return
	}
	apiJSON(w, a, http.StatusOK)
}

func (s *Server) apiDeleteArtisan(w http.ResponseWriter, id int64) {
	if err := s.artisanRepo.Delete(id); err != nil {
		apiFailure(w, "deleting artisan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAPICommentaires routes /api/commentaires/ requests.
func (s *Server) handleAPICommentaires(w http.ResponseWriter, r *http.Request) {
	if strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/commentaires/"), "/") != "" {
		apiError(w, "not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		comments, err := s.commentRepo.List()
		if err != nil {
			apiFailure(w, "listing comments", err)
			return
		}
		apiJSON(w, comments, http.StatusOK)
	case http.MethodPost:
		s.apiAddComment(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	var data comment.CreateData
	if !decodeBody(w, r, &data) {
		return
	}
	if errs := artisan.ValidateCommentaireData(data.Contenu); len(errs) > 0 {
		apiValidationError(w, errs)
		return
	}
	if _, err := s.artisanRepo.GetByID(data.Artisan); err != nil {
		apiFailure(w, "loading artisan", err)
		return
	}

	c, err := s.commentRepo.Add(data.Artisan, strings.TrimSpace(data.Contenu))
	if err != nil {
		apiFailure(w, "adding comment", err)
		return
	}
	apiJSON(w, c, http.StatusCreated)
}

// handleAPIExport returns every artisan with its comments.
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	artisans, err := s.artisanRepo.List(artisan.Filters{})
	if err != nil {
		apiFailure(w, "exporting artisans", err)
		return
	}
	apiJSON(w, artisans, http.StatusOK)
}
