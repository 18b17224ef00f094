package api

import (
	"log/slog"
	"net/http"

	"github.com/docrelay/docrelay/internal/backend"
	"github.com/docrelay/docrelay/internal/config"
	"github.com/docrelay/docrelay/internal/retrieve"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docrelay.
type Server struct {
	router chi.Router
	svc    *retrieve.Service
	stats  *backend.RequestStats
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil when
// the backend client does not expose latency tracking.
func NewServer(svc *retrieve.Service, stats *backend.RequestStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		svc:   svc,
		stats: stats,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Get("/api/search", s.handleSearch)
		r.Get("/api/article", s.handleArticle)
		r.Get("/api/toc", s.handleTOC)
		r.Get("/api/stats/backend", s.handleBackendStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
