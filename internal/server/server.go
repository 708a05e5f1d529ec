package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/ReferralBot_Go/internal/engine"
	"github.com/osse101/ReferralBot_Go/internal/handler"
	"github.com/osse101/ReferralBot_Go/internal/metrics"
	"github.com/osse101/ReferralBot_Go/internal/notify"
)

// Options carries everything the HTTP server needs
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
	Service        handler.ServiceInfo

	Engine   engine.Service
	Notifier notify.Notifier
	DB       handler.Pinger
	Limiter  RateLimiter // nil disables rate limiting
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router with the full middleware stack
func NewRouter(opts Options) http.Handler {
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	handler.InitValidator()

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	ips := NewClientIPResolver(opts.TrustedProxies)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, ips, NewSuspiciousActivityDetector()))
	if opts.Limiter != nil {
		r.Use(RateLimitMiddleware(opts.Limiter, ips))
	}
	r.Use(RequestSizeLimitMiddleware(maxBody))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.DB))
	r.Get("/version", handler.HandleVersion(opts.Service))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", handler.HandleGetOrCreateUser(opts.Engine))
			r.Get("/{externalID}", handler.HandleGetUserView(opts.Engine))
		})
		r.Post("/referrals", handler.HandleApplyReferral(opts.Engine, opts.Notifier))
		r.Post("/coins", handler.HandleCreditCoins(opts.Engine))
	})

	return r
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
