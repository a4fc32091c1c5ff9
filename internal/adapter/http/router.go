package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/backoffice/internal/adapter/http/handler"
	"github.com/iho/backoffice/internal/adapter/http/middleware"
	"github.com/iho/backoffice/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	FirmHandler      *handler.FirmHandler
	PartyHandler     *handler.PartyHandler
	MovementHandler  *handler.MovementHandler
	ChequeHandler    *handler.ChequeHandler
	OrderHandler     *handler.OrderHandler
	BillHandler      *handler.BillHandler
	StatementHandler *handler.StatementHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/firms", func(r chi.Router) {
			r.Post("/", cfg.FirmHandler.Create)
			r.Get("/", cfg.FirmHandler.List)
			r.Get("/{id}", cfg.FirmHandler.Get)
			r.Put("/{id}", cfg.FirmHandler.Update)
		})

		r.Route("/parties", func(r chi.Router) {
			r.Post("/", cfg.PartyHandler.Create)
			r.Get("/", cfg.PartyHandler.List)
			r.Get("/{id}", cfg.PartyHandler.Get)
			r.Put("/{id}", cfg.PartyHandler.Update)
			r.Delete("/{id}", cfg.PartyHandler.Delete)
			r.Get("/{id}/statement", cfg.StatementHandler.Get)
		})

		r.Route("/movements", func(r chi.Router) {
			r.Post("/", cfg.MovementHandler.Create)
			r.Get("/", cfg.MovementHandler.List)
			r.Get("/{id}", cfg.MovementHandler.Get)
			r.Put("/{id}", cfg.MovementHandler.Update)
			r.Post("/{id}/approve", cfg.MovementHandler.Approve)
			r.Post("/{id}/reject", cfg.MovementHandler.Reject)
		})

		r.Route("/cheques", func(r chi.Router) {
			r.Post("/", cfg.ChequeHandler.Create)
			r.Get("/", cfg.ChequeHandler.List)
			r.Get("/{id}", cfg.ChequeHandler.Get)
			r.Post("/{id}/deposit", cfg.ChequeHandler.Deposit)
			r.Post("/{id}/clear", cfg.ChequeHandler.Clear)
			r.Post("/{id}/bounce", cfg.ChequeHandler.Bounce)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.OrderHandler.Create)
			r.Get("/", cfg.OrderHandler.List)
			r.Get("/{id}", cfg.OrderHandler.Get)
			r.Post("/{id}/confirm", cfg.OrderHandler.Confirm)
			r.Post("/{id}/cancel", cfg.OrderHandler.Cancel)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Post("/", cfg.BillHandler.Create)
			r.Get("/", cfg.BillHandler.List)
			r.Get("/{id}", cfg.BillHandler.Get)
			r.Delete("/{id}", cfg.BillHandler.Delete)
		})
	})

	return r
}
