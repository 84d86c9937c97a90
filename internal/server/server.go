// Package server exposes the diagnosis pipeline over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/francedirectjp-art/astro-medical-system/internal/common/config"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/database"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/observability"
	"github.com/francedirectjp-art/astro-medical-system/internal/diagnosis"
)

// Server holds the HTTP surface and its collaborators.
type Server struct {
	config        *config.Config
	service       *diagnosis.Service
	redis         *database.RedisClient
	observability *observability.Observability
	logger        logger.Logger
	router        chi.Router
}

// New builds the router with all middleware and routes attached. redis may
// be nil when disabled.
func New(cfg *config.Config, service *diagnosis.Service, rdb *database.RedisClient, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		config:        cfg,
		service:       service,
		redis:         rdb,
		observability: obs,
		logger:        log,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(s.Logging)
	r.Use(s.CORS)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	limits := s.config.Server.RateLimits
	r.Route("/api", func(api chi.Router) {
		api.Use(s.BetaAuth)

		api.With(s.RateLimit(NewLimiter(s.redis, "positions", limits.Positions, s.logger))).
			Post("/calculate-planets", s.handleCalculatePlanets)
		api.With(s.RateLimit(NewLimiter(s.redis, "simple", limits.Simple, s.logger))).
			Post("/simple-diagnosis", s.handleSimpleDiagnosis)
		api.With(s.RateLimit(NewLimiter(s.redis, "detailed", limits.Detailed, s.logger))).
			Post("/generate-detailed-report", s.handleDetailedReport)
	})

	return r
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
