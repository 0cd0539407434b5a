package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/b4ugo/internal/model"
)

// ErrServiceNotFound is returned when no record matches a country.
// It is a normal outcome, not a store failure.
var ErrServiceNotFound = errors.New("service not found")

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ServiceRepository stores Service records in the services table.
//
// Every method is a single statement, so each operation is atomic at the
// store boundary without explicit transactions. When several rows share a
// country key the oldest one (created_at, then id) is the one addressed.
type ServiceRepository struct {
	db Querier
}

func NewServiceRepository(db Querier) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `id, country, traditional_dress, famous_places, famous_food, language, created_at, updated_at`

// firstMatch selects the id of the record a single-record operation targets.
const firstMatch = `SELECT id FROM services WHERE country_key = @country_key ORDER BY created_at, id LIMIT 1`

func (r *ServiceRepository) ListServices(ctx context.Context) ([]model.Service, error) {
	stmt := `SELECT ` + serviceColumns + ` FROM services ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list services query: %w", err)
	}

	services, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Service])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:services: %w", err)
	}

	for i := range services {
		services[i].Normalize()
	}
	return services, nil
}

func (r *ServiceRepository) GetServiceByCountry(ctx context.Context, country string) (*model.Service, error) {
	stmt := `SELECT ` + serviceColumns + ` FROM services WHERE id = (` + firstMatch + `)`

	return r.collectOne(ctx, stmt, pgx.NamedArgs{
		"country_key": model.CountryKey(country),
	})
}

func (r *ServiceRepository) CreateService(ctx context.Context, service *model.Service) (*model.Service, error) {
	args, err := listArgs(service.TraditionalDress, service.FamousPlaces, service.FamousFood, service.Language)
	if err != nil {
		return nil, err
	}
	args["country"] = service.Country
	args["country_key"] = model.CountryKey(service.Country)

	stmt := `
		INSERT INTO services (country, country_key, traditional_dress, famous_places, famous_food, language)
		VALUES (@country, @country_key, @traditional_dress, @famous_places, @famous_food, @language)
		RETURNING ` + serviceColumns

	created, err := r.collectOne(ctx, stmt, args)
	if err != nil {
		return nil, fmt.Errorf("failed to insert service for country=%q: %w", service.Country, err)
	}
	return created, nil
}

// UpdateServiceByCountry applies field-level replacement to the first
// record matching country. Absent payload fields bind as NULL and
// COALESCE keeps the stored value; present ones overwrite it whole.
func (r *ServiceRepository) UpdateServiceByCountry(ctx context.Context, country string, payload *model.UpdateServicePayload) (*model.Service, error) {
	args, err := listArgs(
		nilIfAbsent(payload.TraditionalDress),
		nilIfAbsent(payload.FamousPlaces),
		nilIfAbsent(payload.FamousFood),
		nilIfAbsent(payload.Language),
	)
	if err != nil {
		return nil, err
	}

	args["country_key"] = model.CountryKey(country)
	args["new_country"] = nil
	args["new_country_key"] = nil
	if payload.Country != nil {
		args["new_country"] = *payload.Country
		args["new_country_key"] = model.CountryKey(*payload.Country)
	}

	stmt := `
		UPDATE services SET
			country = COALESCE(@new_country::text, country),
			country_key = COALESCE(@new_country_key::text, country_key),
			traditional_dress = COALESCE(@traditional_dress::jsonb, traditional_dress),
			famous_places = COALESCE(@famous_places::jsonb, famous_places),
			famous_food = COALESCE(@famous_food::jsonb, famous_food),
			language = COALESCE(@language::jsonb, language),
			updated_at = now()
		WHERE id = (` + firstMatch + `)
		RETURNING ` + serviceColumns

	updated, err := r.collectOne(ctx, stmt, args)
	if err != nil {
		return nil, fmt.Errorf("failed to update service for country=%q: %w", country, err)
	}
	return updated, nil
}

func (r *ServiceRepository) DeleteServiceByCountry(ctx context.Context, country string) error {
	stmt := `DELETE FROM services WHERE id = (` + firstMatch + `)`

	tag, err := r.db.Exec(ctx, stmt, pgx.NamedArgs{
		"country_key": model.CountryKey(country),
	})
	if err != nil {
		return fmt.Errorf("failed to delete service for country=%q: %w", country, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) collectOne(ctx context.Context, stmt string, args pgx.NamedArgs) (*model.Service, error) {
	rows, err := r.db.Query(ctx, stmt, args)
	if err != nil {
		return nil, err
	}

	service, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Service])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	service.Normalize()
	return &service, nil
}

// listArgs encodes the four list columns as JSON. A nil value stays nil
// and binds as SQL NULL.
func listArgs(dress, places, food, language any) (pgx.NamedArgs, error) {
	args := pgx.NamedArgs{}

	for name, value := range map[string]any{
		"traditional_dress": dress,
		"famous_places":     places,
		"famous_food":       food,
		"language":          language,
	} {
		if value == nil {
			args[name] = nil
			continue
		}

		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		args[name] = string(encoded)
	}

	return args, nil
}

// nilIfAbsent unwraps a present list pointer and turns an absent one into
// an untyped nil, so listArgs can tell them apart.
func nilIfAbsent[T any](list *[]T) any {
	if list == nil {
		return nil
	}
	if *list == nil {
		return []T{}
	}
	return *list
}
