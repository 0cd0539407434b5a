// Package servicetest provides an in-memory service.Store for tests that
// need the catalog without a PostgreSQL server.
package servicetest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/b4ugo/internal/model"
	"github.com/deppfellow/b4ugo/internal/repository"
)

// Store keeps records in insertion order and resolves a country to the
// first matching record, like the PostgreSQL repository does.
//
// Setting Err makes every call fail with it.
type Store struct {
	mu       sync.Mutex
	services []model.Service
	updates  int

	Err error
}

func NewStore() *Store {
	return &Store{}
}

// Seed inserts records as-is and returns them with ids assigned.
func (s *Store) Seed(services ...model.Service) []model.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Service, 0, len(services))
	for _, svc := range services {
		out = append(out, s.insert(svc))
	}
	return out
}

// Len reports how many records are stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.services)
}

// Updates reports how many update calls reached the store.
func (s *Store) Updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updates
}

func (s *Store) ListServices(_ context.Context) ([]model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]model.Service, len(s.services))
	copy(out, s.services)
	return out, nil
}

func (s *Store) GetServiceByCountry(_ context.Context, country string) (*model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	i := s.find(country)
	if i < 0 {
		return nil, repository.ErrServiceNotFound
	}

	found := s.services[i]
	return &found, nil
}

func (s *Store) CreateService(_ context.Context, service *model.Service) (*model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	created := s.insert(*service)
	return &created, nil
}

func (s *Store) UpdateServiceByCountry(_ context.Context, country string, payload *model.UpdateServicePayload) (*model.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updates++
	if s.Err != nil {
		return nil, s.Err
	}

	i := s.find(country)
	if i < 0 {
		return nil, repository.ErrServiceNotFound
	}

	payload.ApplyTo(&s.services[i])
	s.services[i].UpdatedAt = time.Now().UTC()

	updated := s.services[i]
	return &updated, nil
}

func (s *Store) DeleteServiceByCountry(_ context.Context, country string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	i := s.find(country)
	if i < 0 {
		return repository.ErrServiceNotFound
	}

	s.services = append(s.services[:i], s.services[i+1:]...)
	return nil
}

func (s *Store) insert(svc model.Service) model.Service {
	svc.ID = uuid.New()
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	svc.Normalize()

	s.services = append(s.services, svc)
	return svc
}

func (s *Store) find(country string) int {
	match := model.MatchCountry(country)
	for i := range s.services {
		if match(s.services[i].Country) {
			return i
		}
	}
	return -1
}
