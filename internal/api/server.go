package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/summitlabs/summit/internal/config"
	"github.com/summitlabs/summit/internal/pipeline"
	"github.com/summitlabs/summit/internal/summarize"
)

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	processor *pipeline.Processor
	stats     *summarize.Stats
	model     string
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(processor *pipeline.Processor, stats *summarize.Stats, model string, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		processor: processor,
		stats:     stats,
		model:     model,
		log:       log,
		cfg:       cfg,
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

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/annotate", s.handleAnnotate)
		r.Post("/api/summarize", s.handleSummarize)
		r.Post("/api/compress", s.handleCompress)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
