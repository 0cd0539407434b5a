package database

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/b4ugo/internal/config"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "001_create_services.sql", entries[0].Name())

	body, err := fs.ReadFile(migrations, "migrations/"+entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(body), "---- create above / drop below ----")
	assert.Contains(t, string(body), "country_key")
	assert.NotContains(t, strings.ToUpper(string(body)), "CREATE UNIQUE INDEX")
}

func TestBuildTracer(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("nothing configured", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Primary.Env = "production"
		cfg.Observability.Logging.SlowQueryThreshold = 0

		assert.Nil(t, buildTracer(cfg, &logger, nil))
	})

	t.Run("slow query only", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Primary.Env = "production"

		assert.IsType(t, &slowQueryTracer{}, buildTracer(cfg, &logger, nil))
	})

	t.Run("local chains tracers", func(t *testing.T) {
		cfg := config.DefaultConfig()

		tracer, ok := buildTracer(cfg, &logger, nil).(*multiTracer)
		require.True(t, ok)
		require.Len(t, tracer.tracers, 2)
		assert.IsType(t, &tracelog.TraceLog{}, tracer.tracers[1])
	})
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	tracer := &slowQueryTracer{threshold: time.Nanosecond, log: &logger}

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	time.Sleep(time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})

	assert.Contains(t, buf.String(), "slow query")
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestSlowQueryTracer_FastQueryIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	tracer := &slowQueryTracer{threshold: time.Hour, log: &logger}

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

type recordingTracer struct {
	starts, ends int
}

func (r *recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	r.starts++
	return ctx
}

func (r *recordingTracer) TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData) {
	r.ends++
}

func TestMultiTracer_CallsEveryTracer(t *testing.T) {
	a, b := &recordingTracer{}, &recordingTracer{}
	mt := &multiTracer{tracers: []pgx.QueryTracer{a, b}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 1, a.starts)
	assert.Equal(t, 1, b.ends)
}
