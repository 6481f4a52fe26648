package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/resumatch/internal/config"
	"github.com/dgallion1/resumatch/internal/pipeline"
	"github.com/dgallion1/resumatch/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// MatchStore is the persistence behind the match endpoints.
type MatchStore interface {
	SaveMatch(ctx context.Context, m *store.Match) error
	GetMatch(ctx context.Context, userID, jobID string) (*store.Match, error)
	UserMatches(ctx context.Context, userID string) ([]store.Match, error)
	JobMatches(ctx context.Context, jobID string) ([]store.Match, error)
}

// Server is the HTTP API server for resumatch.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	matches      MatchStore
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, matches MatchStore, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		matches:      matches,
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

	if len(s.cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.ResumatchAPIKey, s.log))

		r.Post("/api/resume/parse", s.handleParse)

		r.Post("/api/resume/ingest", s.handleIngest)
		r.Get("/api/resume/ingest/{jobID}/status", s.handleIngestStatus)
		r.Post("/api/resume/ingest/batch", s.handleBatchIngest)

		r.Post("/api/resume/match", s.handleMatch)
		r.Get("/api/resume/match/{userID}/{jobID}", s.handleGetMatch)
		r.Get("/api/resume/user-matches/{userID}", s.handleUserMatches)
		r.Get("/api/resume/job-matches/{jobID}", s.handleJobMatches)

		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
