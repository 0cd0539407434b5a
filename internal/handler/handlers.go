package handler

import (
	"errors"

	"github.com/deppfellow/b4ugo/internal/server"
	"github.com/deppfellow/b4ugo/internal/service"
)

var errDatabaseNotConfigured = errors.New("database not configured")

// Handlers is a container that groups all HTTP handlers, so router setup
// takes one object instead of many.
type Handlers struct {
	Service *ServiceHandler // Service serves the /services resource.
	Health  *HealthHandler  // Health serves the /status endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Service: NewServiceHandler(s, services.Service),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
