package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evcraddock/sos-artisans/internal/artisan"
	"github.com/evcraddock/sos-artisans/internal/comment"
	"github.com/evcraddock/sos-artisans/internal/db"
)

// testAPIServerWithDB creates a test server over a fresh database.
func testAPIServerWithDB(t *testing.T) (*Server, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})
	return NewServer(d), d
}

func apiRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	reqBody := &bytes.Buffer{}
	if body != nil {
		if raw, ok := body.(string); ok {
			reqBody.WriteString(raw)
		} else if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}

	r := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func validArtisan() artisan.CreateData {
	return artisan.CreateData{
		Nom:      "Kouamé Yao",
		Metier:   "plombier",
		Ville:    "Abidjan",
		Quartier: "Cocody",
		Contact:  "0707070707",
	}
}

func insertAPITestArtisan(t *testing.T, d *sql.DB, data artisan.CreateData) int64 {
	t.Helper()
	a, err := artisan.NewRepository(d).Insert(data)
	if err != nil {
		t.Fatalf("insert test artisan: %v", err)
	}
	return a.ID
}

func TestHealth(t *testing.T) {
	srv, _ := testAPIServerWithDB(t)

	w := apiRequest(t, srv, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body struct {
		Status       string `json:"status"`
		Artisans     int    `json:"artisans"`
		Commentaires int    `json:"commentaires"`
	}
	decodeJSON(t, w, &body)
	if body.Status != "ok" || body.Artisans != 0 || body.Commentaires != 0 {
		t.Errorf("body = %+v", body)
	}
}

func TestHealthCounts(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	insertAPITestArtisan(t, d, validArtisan())

	w := apiRequest(t, srv, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"artisans":1`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHealthDatabaseClosed(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	if err := d.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	w := apiRequest(t, srv, "GET", "/health", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestAPIListArtisansEmpty(t *testing.T) {
	srv, _ := testAPIServerWithDB(t)

	w := apiRequest(t, srv, "GET", "/api/artisans/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %s, want []", w.Body.String())
	}
}

func TestAPIListArtisansFilters(t *testing.T) {
	srv, d := testAPIServerWithDB(t)

	insertAPITestArtisan(t, d, validArtisan())
	other := validArtisan()
	other.Nom = "Aya Traoré"
	other.Metier = "couturier"
	other.Ville = "Bouaké"
	insertAPITestArtisan(t, d, other)

	tests := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?metier=couturier", 1},
		{"?ville=Bouak%C3%A9", 1},
		{"?metier=plombier&ville=Bouak%C3%A9", 0},
		{"?quartier=Cocody", 2},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := apiRequest(t, srv, "GET", "/api/artisans/"+tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			var got []*artisan.Artisan
			decodeJSON(t, w, &got)
			if len(got) != tt.want {
				t.Errorf("got %d artisans, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAPICreateArtisan(t *testing.T) {
	srv, _ := testAPIServerWithDB(t)

	w := apiRequest(t, srv, "POST", "/api/artisans/", validArtisan())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var a artisan.Artisan
	decodeJSON(t, w, &a)
	if a.ID == 0 {
		t.Error("expected server-assigned ID")
	}
	if a.Nom != "Kouamé Yao" {
		t.Errorf("nom = %q", a.Nom)
	}
	if a.Commentaires == nil {
		t.Error("expected empty comment list")
	}
}

func TestAPICreateArtisanInvalid(t *testing.T) {
	srv, _ := testAPIServerWithDB(t)

	tests := []struct {
		name string
		body interface{}
		want string
	}{
		{"bad json", "{nope", "invalid JSON body"},
		{"short nom", artisan.CreateData{Nom: "A", Metier: "plombier", Ville: "Abidjan", Quartier: "Cocody", Contact: "0707070707"}, artisan.MsgNomTooShort},
		{"unknown metier", artisan.CreateData{Nom: "Ali", Metier: "jardinier", Ville: "Abidjan", Quartier: "Cocody", Contact: "0707070707"}, "Métier inconnu"},
		{"missing metier", artisan.CreateData{Nom: "Ali", Ville: "Abidjan", Quartier: "Cocody", Contact: "0707070707"}, artisan.MsgMetierRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, srv, "POST", "/api/artisans/", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("body = %s, want it to mention %q", w.Body.String(), tt.want)
			}
		})
	}
}

func TestAPIGetArtisan(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	id := insertAPITestArtisan(t, d, validArtisan())
	if _, err := comment.NewRepository(d).Add(id, "Très bon plombier, ponctuel"); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	w := apiRequest(t, srv, "GET", "/api/artisans/1/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var a artisan.Artisan
	decodeJSON(t, w, &a)
	if len(a.Commentaires) != 1 {
		t.Fatalf("got %d comments, want 1", len(a.Commentaires))
	}
	if a.Commentaires[0].Contenu != "Très bon plombier, ponctuel" {
		t.Errorf("contenu = %q", a.Commentaires[0].Contenu)
	}
}

func TestAPIGetArtisanErrors(t *testing.T) {
	srv, _ := testAPIServerWithDB(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/artisans/99/", http.StatusNotFound},
		{"/api/artisans/abc/", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := apiRequest(t, srv, "GET", tt.path, nil)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Errorf("expected JSON error body, got %s", w.Body.String())
			}
		})
	}
}

func TestAPIPatchArtisan(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	insertAPITestArtisan(t, d, validArtisan())

	w := apiRequest(t, srv, "PATCH", "/api/artisans/1/", map[string]interface{}{"note": 4.5, "whatsapp": true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var a artisan.Artisan
	decodeJSON(t, w, &a)
	if a.Note != 4.5 || !a.Whatsapp {
		t.Errorf("got note=%v whatsapp=%v", a.Note, a.Whatsapp)
	}
	if a.Ville != "Abidjan" {
		t.Errorf("ville = %q, want unchanged", a.Ville)
	}
}

func TestAPIPatchArtisanInvalid(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	insertAPITestArtisan(t, d, validArtisan())

	w := apiRequest(t, srv, "PATCH", "/api/artisans/1/", map[string]interface{}{"note": 6})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), artisan.MsgNoteOutOfRange) {
		t.Errorf("body = %s", w.Body.String())
	}

	w = apiRequest(t, srv, "PATCH", "/api/artisans/42/", map[string]interface{}{"note": 3})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPIPutArtisan(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	insertAPITestArtisan(t, d, validArtisan())

	replacement := validArtisan()
	replacement.Nom = "Yao Kouassi"
	replacement.Metier = "menuisier"

	w := apiRequest(t, srv, "PUT", "/api/artisans/1/", replacement)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var a artisan.Artisan
	decodeJSON(t, w, &a)
	if a.Nom != "Yao Kouassi" || a.Metier != "menuisier" {
		t.Errorf("got %+v", a)
	}
}

func TestAPIDeleteArtisan(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	insertAPITestArtisan(t, d, validArtisan())

	w := apiRequest(t, srv, "DELETE", "/api/artisans/1/", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}

	w = apiRequest(t, srv, "DELETE", "/api/artisans/1/", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAPIArtisansMethodNotAllowed(t *testing.T) {
	srv, _ := testAPIServerWithDB(t)

	for _, tt := range []struct{ method, path string }{
		{"DELETE", "/api/artisans/"},
		{"POST", "/api/artisans/1/"},
		{"DELETE", "/api/commentaires/"},
		{"POST", "/api/export-json/"},
	} {
		w := apiRequest(t, srv, tt.method, tt.path, nil)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Code, http.StatusMethodNotAllowed)
		}
	}
}

func TestAPIAddComment(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	id := insertAPITestArtisan(t, d, validArtisan())

	w := apiRequest(t, srv, "POST", "/api/commentaires/", comment.CreateData{Artisan: id, Contenu: "  Excellent travail, je recommande  "})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var c comment.Comment
	decodeJSON(t, w, &c)
	if c.ArtisanID != id {
		t.Errorf("artisan = %d, want %d", c.ArtisanID, id)
	}
	if c.Contenu != "Excellent travail, je recommande" {
		t.Errorf("contenu = %q, want trimmed", c.Contenu)
	}

	w = apiRequest(t, srv, "GET", "/api/commentaires/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var all []comment.Comment
	decodeJSON(t, w, &all)
	if len(all) != 1 {
		t.Errorf("got %d comments, want 1", len(all))
	}
}

func TestAPIAddCommentInvalid(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	id := insertAPITestArtisan(t, d, validArtisan())

	tests := []struct {
		name string
		body comment.CreateData
		code int
	}{
		{"too short", comment.CreateData{Artisan: id, Contenu: "court"}, http.StatusBadRequest},
		{"too long", comment.CreateData{Artisan: id, Contenu: strings.Repeat("x", 501)}, http.StatusBadRequest},
		{"unknown artisan", comment.CreateData{Artisan: 404, Contenu: "Un commentaire valide"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, srv, "POST", "/api/commentaires/", tt.body)
			if w.Code != tt.code {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.code, w.Body.String())
			}
		})
	}
}

func TestAPIExport(t *testing.T) {
	srv, d := testAPIServerWithDB(t)
	id := insertAPITestArtisan(t, d, validArtisan())
	if _, err := comment.NewRepository(d).Add(id, "Travail propre et soigné"); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	w := apiRequest(t, srv, "GET", "/api/export-json/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var got []*artisan.Artisan
	decodeJSON(t, w, &got)
	if len(got) != 1 || len(got[0].Commentaires) != 1 {
		t.Errorf("got %+v", got)
	}
}
