package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/b4ugo/internal/errs"
	"github.com/deppfellow/b4ugo/internal/server"
)

// rateLimitExpiry is how long an idle client's token bucket is kept.
const rateLimitExpiry = 3 * time.Minute

type RateLimitMiddleware struct {
	server  *server.Server
	metrics *Metrics
}

func NewRateLimitMiddleware(s *server.Server, metrics *Metrics) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server:  s,
		metrics: metrics,
	}
}

// Limit returns a per-client-IP token bucket limiter configured from
// Server.RateLimit. A zero rate disables limiting. Health checks are never
// limited so orchestrators can always probe the process.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server.RateLimit
	if cfg.RequestsPerSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RequestsPerSecond),
		Burst:     cfg.Burst,
		ExpiresIn: rateLimitExpiry,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/status"
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests")
		},
	})
}

// RecordRateLimitHit counts a rejected request in Prometheus and, when
// New Relic is enabled, as a RateLimitHit custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.metrics != nil {
		r.metrics.rateLimitHits.WithLabelValues(endpoint).Inc()
	}

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
