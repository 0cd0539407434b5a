// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// It is also where store errors are classified: handlers receive
// ready-made *errs.HTTPError values and never look at driver errors.
package service

import (
	"github.com/deppfellow/b4ugo/internal/repository"
	"github.com/deppfellow/b4ugo/internal/server"
)

type Services struct {
	Service *ServiceService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Service: NewServiceService(s.Logger, repos.Service),
	}, nil
}
