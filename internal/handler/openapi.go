package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/b4ugo/internal/server"
)

//go:embed static/openapi.html static/openapi.json
var docs embed.FS

// OpenAPIHandler serves the API documentation: a static HTML page that
// loads an API reference UI from a CDN, and the OpenAPI document it reads.
//
// Both files are compiled into the binary. Cache-Control is "no-cache" so
// a redeploy shows updated docs immediately.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs UI page.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	return h.serve(c, "static/openapi.html", echo.MIMETextHTMLCharsetUTF8)
}

// ServeOpenAPISpec serves the OpenAPI JSON document.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	return h.serve(c, "static/openapi.json", echo.MIMEApplicationJSONCharsetUTF8)
}

func (h *OpenAPIHandler) serve(c echo.Context, name, contentType string) error {
	body, err := docs.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.Blob(http.StatusOK, contentType, body); err != nil {
		return fmt.Errorf("failed to write docs response: %w", err)
	}
	return nil
}
