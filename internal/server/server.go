// Package server wires the HTTP surface: the public submission endpoint, the
// cookie-gated admin reads, health and metrics.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trifecta/internal/config"
	"trifecta/internal/services"
)

// Server holds the request handlers and their dependencies
type Server struct {
	cfg         *config.Config
	submissions *services.SubmissionService
	admin       *services.AdminService
	health      *services.HealthService
	uploadsDir  string
}

// New creates a new server. uploadsDir is the directory served under
// /uploads/ for the file photo strategy; pass "" to disable static serving.
func New(cfg *config.Config, submissions *services.SubmissionService, admin *services.AdminService, health *services.HealthService, uploadsDir string) *Server {
	return &Server{
		cfg:         cfg,
		submissions: submissions,
		admin:       admin,
		health:      health,
		uploadsDir:  uploadsDir,
	}
}

// Router builds the route table
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Post("/submit-form", s.handleSubmitForm)
		api.Get("/get-submissions", s.handleGetSubmissions)
		api.Get("/admin/auth", s.handleAuthCheck)
		api.Post("/admin/auth", s.handleAuthLogin)
		api.Delete("/admin/auth", s.handleAuthLogout)
	})

	// Stored photo paths resolve only under the file strategy.
	if s.uploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))
	}

	return r
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}
