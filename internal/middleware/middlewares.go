package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/b4ugo/internal/config"
	"github.com/deppfellow/b4ugo/internal/server"
)

// Middlewares is a lightweight container that groups all middleware components
// used by the HTTP server.
//
// It is the single place where shared dependencies (like *server.Server and
// the New Relic application instance) are wired into middleware.
type Middlewares struct {
	// Global holds common middleware used across the whole API:
	// CORS, request logging, recovery, secure headers, body limit, and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip, optional trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware and helpers to attach custom attributes
	// and notice errors on transactions.
	Tracing *TracingMiddleware

	// Metrics counts and times requests and serves them to Prometheus.
	Metrics *Metrics

	// RateLimit enforces the per-client request budget.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
//
// When New Relic is not configured nrApp is nil and the tracing
// middleware degrades into a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	metrics := NewMetrics(config.ServiceName)

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Metrics:         metrics,
		RateLimit:       NewRateLimitMiddleware(s, metrics),
	}
}
