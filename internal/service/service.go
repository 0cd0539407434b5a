package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/deppfellow/b4ugo/internal/errs"
	"github.com/deppfellow/b4ugo/internal/model"
	"github.com/deppfellow/b4ugo/internal/repository"
	"github.com/deppfellow/b4ugo/internal/sqlerr"
)

// Store is the persistence contract the service layer depends on.
// *repository.ServiceRepository implements it against PostgreSQL.
type Store interface {
	ListServices(ctx context.Context) ([]model.Service, error)
	GetServiceByCountry(ctx context.Context, country string) (*model.Service, error)
	CreateService(ctx context.Context, service *model.Service) (*model.Service, error)
	UpdateServiceByCountry(ctx context.Context, country string, payload *model.UpdateServicePayload) (*model.Service, error)
	DeleteServiceByCountry(ctx context.Context, country string) error
}

// ServiceService implements the five catalog operations.
//
// Every error it returns is an *errs.HTTPError:
//   - no matching record: 404 "Country not found"
//   - create/update rejected by the store: 400 with the store error
//   - any other store fault: 500 with the store error
type ServiceService struct {
	logger *zerolog.Logger
	store  Store
}

func NewServiceService(logger *zerolog.Logger, store Store) *ServiceService {
	return &ServiceService{logger: logger, store: store}
}

// log prefers the request-scoped logger carried by ctx.
func (s *ServiceService) log(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() != zerolog.Disabled || s.logger == nil {
		return l
	}
	return s.logger
}

// List returns every stored record. An empty store yields an empty,
// non-nil slice.
func (s *ServiceService) List(ctx context.Context) ([]model.Service, error) {
	services, err := s.store.ListServices(ctx)
	if err != nil {
		s.log(ctx).Error().Err(err).Msg("failed to list services")
		return nil, sqlerr.StoreFailure(model.MsgListFailed, err)
	}

	if services == nil {
		services = []model.Service{}
	}
	return services, nil
}

// GetByCountry returns the first record whose country matches,
// case-insensitively and over the whole string.
func (s *ServiceService) GetByCountry(ctx context.Context, country string) (*model.Service, error) {
	service, err := s.store.GetServiceByCountry(ctx, country)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, errs.NewNotFoundError(model.MsgNotFound)
		}

		s.log(ctx).Error().Err(err).Str("country", country).Msg("failed to get service")
		return nil, sqlerr.StoreFailure(model.MsgGetFailed, err)
	}

	return service, nil
}

// Create stores a new record. Duplicate country names are accepted.
func (s *ServiceService) Create(ctx context.Context, payload *model.CreateServicePayload) (*model.Service, error) {
	service, err := s.store.CreateService(ctx, model.NewService(payload))
	if err != nil {
		s.log(ctx).WithLevel(rejectionLevel(err)).Err(err).Str("country", payload.Country).Msg("store rejected new service")
		return nil, sqlerr.ValidationFailure(model.MsgCreateFailed, err)
	}

	s.log(ctx).Info().
		Str("service_id", service.ID.String()).
		Str("country", service.Country).
		Msg("service created")

	return service, nil
}

// Update replaces the fields present in payload on the first record
// matching country and returns the record as stored afterwards.
//
// An empty payload is a plain lookup: nothing is written and an unknown
// country still answers 404.
func (s *ServiceService) Update(ctx context.Context, country string, payload *model.UpdateServicePayload) (*model.Service, error) {
	var (
		service *model.Service
		err     error
	)
	if payload.IsEmpty() {
		service, err = s.store.GetServiceByCountry(ctx, country)
	} else {
		service, err = s.store.UpdateServiceByCountry(ctx, country, payload)
	}
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, errs.NewNotFoundError(model.MsgNotFound)
		}

		s.log(ctx).WithLevel(rejectionLevel(err)).Err(err).Str("country", country).Msg("store rejected service update")
		return nil, sqlerr.ValidationFailure(model.MsgUpdateFailed, err)
	}

	return service, nil
}

// Delete removes the first record matching country.
func (s *ServiceService) Delete(ctx context.Context, country string) (*model.MessageResponse, error) {
	if err := s.store.DeleteServiceByCountry(ctx, country); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, errs.NewNotFoundError(model.MsgNotFound)
		}

		s.log(ctx).Error().Err(err).Str("country", country).Msg("failed to delete service")
		return nil, sqlerr.StoreFailure(model.MsgDeleteFailed, err)
	}

	s.log(ctx).Info().Str("country", country).Msg("service deleted")

	return &model.MessageResponse{Message: model.MsgDeleted}, nil
}

// rejectionLevel logs bad input at warn and anything that points at a
// broken store at error.
func rejectionLevel(err error) zerolog.Level {
	if sqlerr.ErrCode(err).IsClientFault() {
		return zerolog.WarnLevel
	}
	return zerolog.ErrorLevel
}
