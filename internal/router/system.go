package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/b4ugo/internal/handler"
	"github.com/deppfellow/b4ugo/internal/middleware"
)

// registerSystemRoutes registers "system" endpoints that are not part of business logic:
//  1. Health endpoint
//  2. Prometheus metrics
//  3. Docs UI and the OpenAPI document it loads
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/metrics", echo.WrapHandler(m.Metrics.Handler()))

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
