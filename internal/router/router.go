// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/b4ugo/internal/handler"
	"github.com/deppfellow/b4ugo/internal/middleware"
	"github.com/deppfellow/b4ugo/internal/server"
)

// NewRouter builds the Echo instance with the full middleware chain and
// every route registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(middlewareChain(middlewares)...)

	registerSystemRoutes(router, h, middlewares)
	registerServiceRoutes(router, h)

	return router
}

// middlewareChain lists the global middlewares, outermost first.
//
// The request id must exist before anything logs, and Recover sits right
// after it so a panic anywhere further in still reaches the error handler
// with the id attached. The request logger needs the context logger.
func middlewareChain(m *middleware.Middlewares) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Global.Recover(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Metrics.Instrument(),
		m.RateLimit.Limit(),
		m.Global.BodyLimit(),
	}
}

// registerServiceRoutes maps the catalog resource. The {country} segment
// is matched case-insensitively by the service layer.
func registerServiceRoutes(r *echo.Echo, h *handler.Handlers) {
	services := r.Group("/services")

	services.GET("", handler.Handle(h.Service.Handler, h.Service.ListServices, http.StatusOK))
	services.POST("", handler.Handle(h.Service.Handler, h.Service.CreateService, http.StatusCreated))

	services.GET("/:country", handler.Handle(h.Service.Handler, h.Service.GetService, http.StatusOK))
	services.PUT("/:country", handler.Handle(h.Service.Handler, h.Service.UpdateService, http.StatusOK))
	services.DELETE("/:country", handler.Handle(h.Service.Handler, h.Service.DeleteService, http.StatusOK))
}
