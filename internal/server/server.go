// Package server exposes the lesson plan API over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lessonforge/lessonforge/internal/ai"
	"github.com/lessonforge/lessonforge/internal/catalog"
	"github.com/lessonforge/lessonforge/internal/lesson"
)

// Server handles the lesson plan API.
type Server struct {
	ai        ai.Completer
	aiReady   bool
	images    *ai.ImageGenerator
	store     lesson.Store // nil disables persistence
	catalog   catalog.Catalog
	jwtSecret []byte
	ready     func() error
}

// New creates a Server from its dependencies.
func New(completer ai.Completer, images *ai.ImageGenerator, store lesson.Store, cat catalog.Catalog, jwtSecret string, aiReady bool) *Server {
	return &Server{
		ai:        completer,
		aiReady:   aiReady,
		images:    images,
		store:     store,
		catalog:   cat,
		jwtSecret: []byte(jwtSecret),
	}
}

// SetReadyCheck installs an extra readiness probe (database, cache).
func (s *Server) SetReadyCheck(fn func() error) {
	s.ready = fn
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/lessons/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/lessons/images", s.handleImages)
	mux.HandleFunc("GET /api/lessons", s.handleList)
	mux.HandleFunc("GET /api/lessons/{id}", s.handleGet)
	mux.HandleFunc("DELETE /api/lessons/{id}", s.handleDelete)
	mux.HandleFunc("POST /api/lessons/export", s.handleExport)
	mux.HandleFunc("POST /api/lessons/export/worksheet", s.handleWorksheet)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	return withCORS(mux)
}

// withCORS mirrors the headers the browser clients were built against and
// short-circuits preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type, x-request-token")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
