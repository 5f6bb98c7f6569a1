package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/subcart/backend/internal/config"
	"github.com/subcart/backend/internal/handlers"
	"github.com/subcart/backend/internal/metrics"
	requesttracking "github.com/subcart/backend/internal/middleware"
)

// Server wraps an http.Server with convenience helpers for startup/shutdown.
type Server struct {
	httpServer *http.Server
}

// New constructs the relay HTTP server. The subscriber is the relay service,
// constructed once at startup and shared read-only across requests.
func New(cfg config.Config, subscriber handlers.Subscriber, m *metrics.Metrics) *Server {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	// The payment page and the app are cross-origin from the relay.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	tracker := requesttracking.NewRequestTracker(m)
	router.Use(tracker.Middleware())

	router.Get("/api/health", handlers.Health)
	router.Get("/api/plans", handlers.Plans())
	router.Post("/api/subscribe", handlers.Subscribe(subscriber, m))
	router.Get("/payment.html", handlers.PaymentPage(cfg.RecurlyPublicKey))
	router.Method(http.MethodGet, "/metrics", m.Handler())

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{httpServer: srv}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
