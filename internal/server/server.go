package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/user/movie-catalog-go/internal/config"
	"github.com/user/movie-catalog-go/internal/store"
	"github.com/user/movie-catalog-go/internal/tmdb"
)

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Server serves the read API, health and metrics endpoints
type Server struct {
	store     store.Store
	tmdb      *tmdb.Client
	tmdbCfg   *config.TMDBConfig
	router    chi.Router
	server    *http.Server
	startTime time.Time
}

// NewServer creates the HTTP server. The TMDb client may be built with an
// empty credential; the endpoints that need it answer 500 until one is set.
func NewServer(st store.Store, client *tmdb.Client, tmdbCfg *config.TMDBConfig) *Server {
	s := &Server{
		store:     st,
		tmdb:      client,
		tmdbCfg:   tmdbCfg,
		router:    chi.NewRouter(),
		startTime: time.Now(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/movies", s.handleListMovies)
		r.Get("/movies/{id}", s.handleMovieDetail)
		r.Post("/movies/{id}/rate", s.handleRateMovie)
		r.Get("/best", s.handleBestInGenre)
		r.Get("/recommend", s.handleRecommend)
		r.Get("/genres", s.handleListGenres)
		r.Get("/industries", s.handleListIndustries)
		r.Get("/external-search", s.handleExternalSearch)
		r.Get("/trending", s.handleTrending)
		r.Get("/tmdb", s.handleTMDBPopular)
	})

	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Start begins listening on the specified port
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Int("port", port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Info().Msg("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// Router returns the HTTP handler (for testing purposes)
func (s *Server) Router() http.Handler {
	return s.router
}

// handleHealth reports service health and refreshes the catalog size gauge
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		dbStatus = fmt.Sprintf("unhealthy: %v", err)
	}

	if count, err := s.store.CountMovies(ctx); err == nil {
		moviesTotal.Set(float64(count))
	}

	status := "healthy"
	code := http.StatusOK
	if dbStatus != "healthy" {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, HealthResponse{
		Status:   status,
		Database: dbStatus,
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
	})
}
