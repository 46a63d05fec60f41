package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/blogtoc/internal/config"
	"github.com/dgallion1/blogtoc/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API and preview server for blogtoc.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
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
	r.Get("/", s.handleIndex)
	r.Get("/posts/{slug}", s.handlePost)
	r.Get("/{slug}/", s.handlePost) // same path the static build writes
	r.Get("/static/chroma.css", s.handleStylesheet)

	r.Route("/api", func(r chi.Router) {
		r.Post("/toc/transform", s.handleTransform)
		r.Post("/toc/headings", s.handleHeadings)
		r.Get("/posts", s.handleListPosts)
		r.Get("/stats/transform", s.handleTransformStats)
		r.Get("/builds/{jobID}", s.handleBuildStatus)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
			r.Post("/builds", s.handleSubmitBuild)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
