// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"github.com/deppfellow/b4ugo/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Service *ServiceRepository
}

// NewRepositories constructs the repository container on top of the
// server's database pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Service: NewServiceRepository(s.DB.Pool),
	}
}
