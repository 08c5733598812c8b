package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/http/handler"
	"github.com/Alejandrofranco83/sistema-servicios-main-sub003/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	Logger                zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/registers", func(r chi.Router) {
			r.Get("/{id}/discrepancy", cfg.ReconciliationHandler.GetDiscrepancy)
		})

		r.Route("/reconciliation", func(r chi.Router) {
			r.Post("/batch", cfg.ReconciliationHandler.RunBatch)
			r.Get("/runs", cfg.ReconciliationHandler.ListRuns)
			r.Get("/runs/{id}", cfg.ReconciliationHandler.GetRun)
		})
	})

	return r
}
