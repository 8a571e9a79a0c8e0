package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"playcast/internal/metrics"
	"playcast/internal/planner"
)

const version = "1.0.0"

// Runner is the planner surface the API exposes
type Runner interface {
	Run(ctx context.Context, sport, trigger string) (*planner.Result, error)
	Preview(ctx context.Context, sport string) (*planner.Result, error)
	LastResult() *planner.Result
}

type Server struct {
	runner  Runner
	sport   string
	started time.Time
	log     zerolog.Logger
}

// NewServer creates the HTTP API around a planner. The sport is used when a
// request does not name one.
func NewServer(runner Runner, sport string, log zerolog.Logger) *Server {
	return &Server{
		runner:  runner,
		sport:   sport,
		started: time.Now(),
		log:     log.With().Str("component", "api").Logger(),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/metrics", metrics.MetricsHandler().ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/recommendation", s.handleRecommendation)
		r.Post("/run", s.handleRun)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	// last_run is null until the first run completes
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"last_run": s.runner.LastResult(),
	})
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Preview(r.Context(), s.requestedSport(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Run(r.Context(), s.requestedSport(r), planner.TriggerManual)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) requestedSport(r *http.Request) string {
	if sport := r.URL.Query().Get("sport"); sport != "" {
		return sport
	}
	return s.sport
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
