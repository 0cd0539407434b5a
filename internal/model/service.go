// Package model defines the records the API serves and the payloads it
// accepts.
//
// A Service is the per-country aggregate: one country name plus four
// ordered lists of embedded entries. Entries have no identity of their
// own; they live and die with the list that holds them.
package model

import (
	"time"

	"github.com/google/uuid"
)

// DressEntry describes one item of traditional dress.
type DressEntry struct {
	Name        string `json:"name,omitempty"`
	Region      string `json:"region,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// PlaceEntry describes a famous place.
type PlaceEntry struct {
	Name        string `json:"name,omitempty"`
	Region      string `json:"region,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// FoodEntry describes a famous dish.
type FoodEntry struct {
	Name        string `json:"name,omitempty"`
	Region      string `json:"region,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// LanguageEntry describes a spoken language.
type LanguageEntry struct {
	Name        string `json:"name,omitempty"`
	Region      string `json:"region,omitempty"`
	Description string `json:"description,omitempty"`
}

// Service is the stored record for one country.
//
// The db tags match the columns of the services table; the four lists are
// JSONB columns that pgx decodes straight into the slices.
type Service struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Country          string          `json:"country" db:"country"`
	TraditionalDress []DressEntry    `json:"traditionalDress" db:"traditional_dress"`
	FamousPlaces     []PlaceEntry    `json:"famousPlaces" db:"famous_places"`
	FamousFood       []FoodEntry     `json:"famousFood" db:"famous_food"`
	Language         []LanguageEntry `json:"language" db:"language"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}

// Normalize replaces nil lists with empty ones so a Service never
// serializes a list as null.
func (s *Service) Normalize() {
	if s.TraditionalDress == nil {
		s.TraditionalDress = []DressEntry{}
	}
	if s.FamousPlaces == nil {
		s.FamousPlaces = []PlaceEntry{}
	}
	if s.FamousFood == nil {
		s.FamousFood = []FoodEntry{}
	}
	if s.Language == nil {
		s.Language = []LanguageEntry{}
	}
}

// CreateServicePayload is the body of a create request. Every field is
// optional; absent lists become empty lists.
type CreateServicePayload struct {
	Country          string          `json:"country"`
	TraditionalDress []DressEntry    `json:"traditionalDress"`
	FamousPlaces     []PlaceEntry    `json:"famousPlaces"`
	FamousFood       []FoodEntry     `json:"famousFood"`
	Language         []LanguageEntry `json:"language"`
}

// NewService builds the record to insert from a create payload.
// ID and timestamps are left for the store to assign.
func NewService(p *CreateServicePayload) *Service {
	s := &Service{
		Country:          p.Country,
		TraditionalDress: p.TraditionalDress,
		FamousPlaces:     p.FamousPlaces,
		FamousFood:       p.FamousFood,
		Language:         p.Language,
	}
	s.Normalize()
	return s
}

// UpdateServicePayload is the body of a partial update.
//
// A nil field was absent from the request and leaves the stored value
// alone. A non-nil field replaces the stored value entirely; lists are
// never merged entry by entry. JSON null counts as absent.
type UpdateServicePayload struct {
	Country          *string          `json:"country"`
	TraditionalDress *[]DressEntry    `json:"traditionalDress"`
	FamousPlaces     *[]PlaceEntry    `json:"famousPlaces"`
	FamousFood       *[]FoodEntry     `json:"famousFood"`
	Language         *[]LanguageEntry `json:"language"`
}

// IsEmpty reports whether the payload names no field at all.
func (p *UpdateServicePayload) IsEmpty() bool {
	return p.Country == nil &&
		p.TraditionalDress == nil &&
		p.FamousPlaces == nil &&
		p.FamousFood == nil &&
		p.Language == nil
}

// ApplyTo performs field-level replacement on s.
//
// The repository implements the same rule in SQL; this is the in-memory
// form of it.
func (p *UpdateServicePayload) ApplyTo(s *Service) {
	if p.Country != nil {
		s.Country = *p.Country
	}
	if p.TraditionalDress != nil {
		s.TraditionalDress = cloneList(*p.TraditionalDress)
	}
	if p.FamousPlaces != nil {
		s.FamousPlaces = cloneList(*p.FamousPlaces)
	}
	if p.FamousFood != nil {
		s.FamousFood = cloneList(*p.FamousFood)
	}
	if p.Language != nil {
		s.Language = cloneList(*p.Language)
	}
	s.Normalize()
}

func cloneList[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// MessageResponse is the body of acknowledgements such as a delete.
type MessageResponse struct {
	Message string `json:"message"`
}
