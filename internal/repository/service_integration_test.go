//go:build integration

// Run with: go test -tags integration ./internal/repository/...
//
// The database is taken from the usual B4UGO_DATABASE.* variables. The
// services table is truncated before and after, so point it at a
// throwaway database.
package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/b4ugo/internal/config"
	"github.com/deppfellow/b4ugo/internal/database"
	"github.com/deppfellow/b4ugo/internal/model"
	"github.com/deppfellow/b4ugo/internal/repository"
)

func newPostgresRepository(t *testing.T) *repository.ServiceRepository {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	require.NoError(t, err)

	truncate := func() {
		_, err := pool.Exec(context.Background(), `TRUNCATE services`)
		require.NoError(t, err)
	}
	truncate()
	t.Cleanup(func() {
		truncate()
		pool.Close()
	})

	return repository.NewServiceRepository(pool)
}

func TestServiceRepository_Postgres(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	first, err := repo.CreateService(ctx, model.NewService(&model.CreateServicePayload{
		Country:      "Japan",
		FamousFood:   []model.FoodEntry{{Name: "Sushi", Region: "Tokyo"}},
		FamousPlaces: []model.PlaceEntry{{Name: "Kyoto", Description: "old capital"}},
	}))
	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", first.ID.String())
	assert.Equal(t, []model.FoodEntry{{Name: "Sushi", Region: "Tokyo"}}, first.FamousFood)
	assert.NotNil(t, first.Language)
	assert.Empty(t, first.Language)

	second, err := repo.CreateService(ctx, model.NewService(&model.CreateServicePayload{Country: "JAPAN"}))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	t.Run("update replaces one list on the first match only", func(t *testing.T) {
		food := []model.FoodEntry{{Name: "Ramen"}}
		updated, err := repo.UpdateServiceByCountry(ctx, "japan", &model.UpdateServicePayload{FamousFood: &food})
		require.NoError(t, err)

		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "Japan", updated.Country)
		assert.Equal(t, food, updated.FamousFood)
		assert.Equal(t, first.FamousPlaces, updated.FamousPlaces)
		assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

		got, err := repo.GetServiceByCountry(ctx, "JaPaN")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, food, got.FamousFood)
	})

	t.Run("empty list clears the field", func(t *testing.T) {
		empty := []model.PlaceEntry{}
		updated, err := repo.UpdateServiceByCountry(ctx, "Japan", &model.UpdateServicePayload{FamousPlaces: &empty})
		require.NoError(t, err)
		assert.NotNil(t, updated.FamousPlaces)
		assert.Empty(t, updated.FamousPlaces)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		services, err := repo.ListServices(ctx)
		require.NoError(t, err)
		require.Len(t, services, 2)
		assert.Equal(t, first.ID, services[0].ID)
		assert.Equal(t, second.ID, services[1].ID)
	})

	t.Run("unknown and partial names do not match", func(t *testing.T) {
		for _, country := range []string{"Jap", "J.pan", ".*", "Japan "} {
			_, err := repo.GetServiceByCountry(ctx, country)
			assert.ErrorIs(t, err, repository.ErrServiceNotFound, country)
		}
	})

	t.Run("delete removes the first match then the next", func(t *testing.T) {
		require.NoError(t, repo.DeleteServiceByCountry(ctx, "japan"))

		got, err := repo.GetServiceByCountry(ctx, "Japan")
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)

		require.NoError(t, repo.DeleteServiceByCountry(ctx, "japan"))
		assert.ErrorIs(t, repo.DeleteServiceByCountry(ctx, "japan"), repository.ErrServiceNotFound)
	})

	t.Run("rename recomputes the match key", func(t *testing.T) {
		_, err := repo.CreateService(ctx, model.NewService(&model.CreateServicePayload{Country: "Peru"}))
		require.NoError(t, err)

		renamed := "República del Perú"
		_, err = repo.UpdateServiceByCountry(ctx, "peru", &model.UpdateServicePayload{Country: &renamed})
		require.NoError(t, err)

		got, err := repo.GetServiceByCountry(ctx, "REPÚBLICA DEL PERÚ")
		require.NoError(t, err)
		assert.Equal(t, renamed, got.Country)

		_, err = repo.GetServiceByCountry(ctx, "Peru")
		assert.ErrorIs(t, err, repository.ErrServiceNotFound)
	})
}
