package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/b4ugo/internal/model"
	"github.com/deppfellow/b4ugo/internal/server"
	"github.com/deppfellow/b4ugo/internal/service"
)

// ServiceHandler serves the /services resource.
type ServiceHandler struct {
	Handler

	services *service.ServiceService
}

func NewServiceHandler(s *server.Server, services *service.ServiceService) *ServiceHandler {
	return &ServiceHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

func (h *ServiceHandler) ListServices(c echo.Context, _ *model.ListServicesRequest) ([]model.Service, error) {
	return h.services.List(c.Request().Context())
}

func (h *ServiceHandler) GetService(c echo.Context, req *model.CountryRequest) (*model.Service, error) {
	return h.services.GetByCountry(c.Request().Context(), req.Country)
}

func (h *ServiceHandler) CreateService(c echo.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	return h.services.Create(c.Request().Context(), &req.CreateServicePayload)
}

func (h *ServiceHandler) UpdateService(c echo.Context, req *model.UpdateServiceRequest) (*model.Service, error) {
	return h.services.Update(c.Request().Context(), req.Target, &req.UpdateServicePayload)
}

func (h *ServiceHandler) DeleteService(c echo.Context, req *model.CountryRequest) (*model.MessageResponse, error) {
	return h.services.Delete(c.Request().Context(), req.Country)
}
