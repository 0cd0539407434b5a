package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/b4ugo/internal/config"
	"github.com/deppfellow/b4ugo/internal/handler"
	"github.com/deppfellow/b4ugo/internal/model"
	"github.com/deppfellow/b4ugo/internal/router"
	"github.com/deppfellow/b4ugo/internal/server"
	"github.com/deppfellow/b4ugo/internal/service"
	"github.com/deppfellow/b4ugo/internal/service/servicetest"
)

type testAPI struct {
	t     *testing.T
	e     *echo.Echo
	store *servicetest.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Server.RateLimit.RequestsPerSecond = 0
	cfg.Observability.HealthChecks.Enabled = false

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	store := servicetest.NewStore()
	services := &service.Services{Service: service.NewServiceService(&logger, store)}

	return &testAPI{
		t:     t,
		e:     router.NewRouter(s, handler.NewHandlers(s, services)),
		store: store,
	}
}

func (a *testAPI) do(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestServiceLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/services", `{"country":"Japan","famousFood":[{"name":"Sushi"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[map[string]any](t, rec)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Japan", created["country"])
	assert.Equal(t, []any{map[string]any{"name": "Sushi"}}, created["famousFood"])
	assert.Equal(t, []any{}, created["traditionalDress"])
	assert.Equal(t, []any{}, created["famousPlaces"])
	assert.Equal(t, []any{}, created["language"])

	rec = api.do(http.MethodPut, "/services/japan", `{"famousFood":[{"name":"Ramen"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[map[string]any](t, rec)
	assert.Equal(t, created["id"], updated["id"])
	assert.Equal(t, []any{map[string]any{"name": "Ramen"}}, updated["famousFood"])
	assert.Equal(t, []any{}, updated["traditionalDress"])

	rec = api.do(http.MethodDelete, "/services/JAPAN", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Service deleted successfully"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/services/Japan", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Country not found"}`, rec.Body.String())
}

func TestListServices(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/services", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	api.store.Seed(model.Service{Country: "Japan"}, model.Service{Country: "Peru"})

	rec = api.do(http.MethodGet, "/services", "")
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[[]model.Service](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "Japan", list[0].Country)
	assert.Equal(t, "Peru", list[1].Country)
}

func TestGetService_CaseInsensitive(t *testing.T) {
	api := newTestAPI(t)
	seeded := api.store.Seed(model.Service{Country: "Japan", Language: []model.LanguageEntry{{Name: "Japanese"}}})

	for _, country := range []string{"japan", "JAPAN", "JaPaN"} {
		t.Run(country, func(t *testing.T) {
			rec := api.do(http.MethodGet, "/services/"+country, "")
			require.Equal(t, http.StatusOK, rec.Code)

			got := decode[model.Service](t, rec)
			assert.Equal(t, seeded[0].ID, got.ID)
			assert.Equal(t, "Japanese", got.Language[0].Name)
		})
	}

	rec := api.do(http.MethodGet, "/services/Jap", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPercentEncodedCountry(t *testing.T) {
	tests := []struct {
		country string
		escaped string
	}{
		{"Trinidad & Tobago", "Trinidad%20%26%20Tobago"},
		{"Korea, Republic of", "Korea%2C%20Republic%20of"},
		{"Guinea/Bissau", "Guinea%2FBissau"},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			api := newTestAPI(t)
			api.store.Seed(model.Service{Country: tt.country})

			rec := api.do(http.MethodGet, "/services/"+tt.escaped, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.country, decode[model.Service](t, rec).Country)

			rec = api.do(http.MethodPut, "/services/"+strings.ToLower(tt.escaped), `{"language":[{"name":"English"}]}`)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, []model.LanguageEntry{{Name: "English"}}, decode[model.Service](t, rec).Language)

			rec = api.do(http.MethodDelete, "/services/"+tt.escaped, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Zero(t, api.store.Len())
		})
	}
}

func TestNotFoundHasNoSideEffects(t *testing.T) {
	api := newTestAPI(t)
	api.store.Seed(model.Service{Country: "Peru"})

	rec := api.do(http.MethodPut, "/services/Atlantis", `{"country":"Peru"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Country not found"}`, rec.Body.String())

	rec = api.do(http.MethodDelete, "/services/Atlantis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1, api.store.Len())
}

func TestCreateService_DuplicatesGetDistinctIDs(t *testing.T) {
	api := newTestAPI(t)

	first := decode[model.Service](t, api.do(http.MethodPost, "/services", `{"country":"Japan"}`))
	second := decode[model.Service](t, api.do(http.MethodPost, "/services", `{"country":"Japan"}`))

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, api.store.Len())
}

func TestCreateService_MalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/services", `{"country":"Japan","famousFood":"Sushi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Error creating service", body["message"])
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, 0, api.store.Len())
}

func TestUpdateService_StoreFailure(t *testing.T) {
	api := newTestAPI(t)
	api.store.Err = assert.AnError

	rec := api.do(http.MethodPut, "/services/Japan", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Error updating the service", body["message"])
	assert.Equal(t, assert.AnError.Error(), body["error"])
}

func TestListServices_StoreFailure(t *testing.T) {
	api := newTestAPI(t)
	api.store.Err = assert.AnError

	rec := api.do(http.MethodGet, "/services", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error fetching services", decode[map[string]any](t, rec)["message"])
}

func TestDeleteService_Finality(t *testing.T) {
	api := newTestAPI(t)
	api.store.Seed(model.Service{Country: "Peru"})

	assert.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/services/peru", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/services/peru", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/services/Peru", "").Code)
}

func TestSystemRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])

	rec = api.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "b4ugo_http_requests_total")

	rec = api.do(http.MethodGet, "/docs/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/services/{country}"`)

	rec = api.do(http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/services", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
