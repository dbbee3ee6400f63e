// Package api exposes the registry over HTTP. Handlers fetch collections
// from the store, run the pure report computations, and serialize the result;
// they hold no state of their own.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/agritrace/farmtrace/internal/config"
	"github.com/agritrace/farmtrace/internal/store"
)

// Server wires the store to the HTTP routes. now is injectable so dashboard
// handlers can be tested against a fixed clock.
type Server struct {
	store store.Store
	cfg   config.ServerConfig
	now   func() time.Time
}

// New creates a Server backed by the given store.
func New(st store.Store, cfg config.ServerConfig) *Server {
	return &Server{
		store: st,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Router builds the chi route tree with all middleware applied.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if s.cfg.RateLimitRPS > 0 {
		r.Use(rateLimiter(rate.Limit(s.cfg.RateLimitRPS), s.cfg.RateLimitBurst))
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/farms", s.handleListFarms)
		r.Post("/farms", s.handleCreateFarm)

		r.Get("/animals", s.handleListAnimals)
		r.Post("/animals", s.handleCreateAnimal)

		r.Get("/treatments", s.handleListTreatments)
		r.Post("/treatments", s.handleCreateTreatment)

		r.Get("/reports", s.handleListFarmReports)
		r.Post("/reports", s.handleCreateFarmReport)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", s.handleDashboardStats)
			r.Get("/trends", s.handleDashboardTrends)
			r.Get("/compliance", s.handleDashboardCompliance)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAdmin(s.cfg.AdminToken))
			r.Get("/users", s.handleListUsers)
			r.Patch("/users/{userID}/role", s.handleUpdateUserRole)
			r.Get("/system-stats", s.handleSystemStats)
			r.Get("/metrics", s.handleMetrics)
		})
	})

	return r
}
