package sqlerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/b4ugo/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23505": UniqueViolation,
		"23502": NotNullViolation,
		"22P02": InvalidText,
		"57P01": ConnectionFailure,
		"42P01": UndefinedTable,
		"XX000": Other,
	}

	for state, want := range tests {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("something else"))
}

func TestDetail(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, Detail(nil))
	})

	t.Run("postgres error becomes structured", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Severity:  "ERROR",
			Code:      "22P02",
			Message:   "invalid input syntax for type json",
			TableName: "services",
		}

		detail := Detail(fmt.Errorf("insert service: %w", pgErr))

		sqlErr, ok := detail.(*Error)
		require.True(t, ok)
		assert.Equal(t, InvalidText, sqlErr.Code)
		assert.Equal(t, "services", sqlErr.TableName)
		assert.ErrorIs(t, sqlErr, pgErr)

		body, err := json.Marshal(detail)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"databaseCode":"22P02"`)
	})

	t.Run("plain error becomes its message", func(t *testing.T) {
		assert.Equal(t, "dial tcp: refused", Detail(errors.New("dial tcp: refused")))
	})
}

func TestStoreAndValidationFailure(t *testing.T) {
	pgErr := &pgconn.PgError{Severity: "FATAL", Code: "57P01", Message: "terminating connection"}

	storeErr := StoreFailure("Error fetching services", pgErr)
	assert.Equal(t, http.StatusInternalServerError, storeErr.Status)
	assert.IsType(t, &Error{}, storeErr.Detail)

	validationErr := ValidationFailure("Error creating service", errors.New("boom"))
	assert.Equal(t, http.StatusBadRequest, validationErr.Status)
	assert.Equal(t, "boom", validationErr.Detail)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "http error passes through",
			err:        errs.NewNotFoundError("Country not found"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "check violation is a client fault",
			err:        &pgconn.PgError{Code: "23514", TableName: "services"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "connection failure is a server fault",
			err:        &pgconn.PgError{Code: "08006"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "no rows",
			err:        fmt.Errorf("get: %w", pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown",
			err:        errors.New("mystery"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.True(t, errors.As(HandleError(tt.err), &httpErr))
			assert.Equal(t, tt.wantStatus, httpErr.Status)
		})
	}
}

func TestHumanizeAndEntityName(t *testing.T) {
	assert.Equal(t, "Famous Food", humanizeText("famous_food"))
	assert.Equal(t, "Service", getEntityName("services"))
	assert.Equal(t, "record", getEntityName(""))
}
