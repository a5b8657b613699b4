package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/fern/pkg/catalog"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/personalization"
	"github.com/Ramsey-B/fern/pkg/pipeline"
	"github.com/Ramsey-B/fern/pkg/routes/building"
	"github.com/Ramsey-B/fern/pkg/routes/compare"
	"github.com/Ramsey-B/fern/pkg/routes/render"
	"github.com/Ramsey-B/fern/pkg/template"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})

	tmpl, err := template.Parse("listing", "# {{name}}\n{{overview.tagline}}")
	require.NoError(t, err)
	store := template.NewStore(tmpl)

	table, err := personalization.ParseRules([]byte(`
rules:
  - location_type: waterfront
    audience: "*"
    variant:
      tagline: "Life at the water's edge"
`))
	require.NoError(t, err)
	selector := personalization.NewSelector(table)

	cat := catalog.New()
	p := pipeline.New(logger, selector, store, cat, pipeline.Options{})

	containerConfig := ectoinject.DefaultContainerConfig
	containerConfig.ID = uuid.NewString()
	container, err := ectoinject.NewDIContainer(containerConfig)
	require.NoError(t, err)
	require.NoError(t, ectoinject.RegisterInstance[*pipeline.Pipeline](container, p))
	require.NoError(t, ectoinject.RegisterInstance[*catalog.Catalog](container, cat))
	require.NoError(t, ectoinject.RegisterInstance[*template.Store](container, store))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(middleware.Context())
	e.Use(middleware.Inject(container))

	api := e.Group("/api/v1")
	building.Register(api)
	render.Register(api)
	compare.Register(api)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			parsed = nil
		}
	}
	return rec, parsed
}

func legacyBody(name string, quiet int) string {
	payload := map[string]any{
		"property_name": name,
		"tagline":       "Waterfront living",
		"ratings": map[string]any{
			"value":      4,
			"quiet":      quiet,
			"management": 3,
			"amenities":  4,
			"location":   5,
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func TestIngestAndFetch(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/buildings", legacyBody("Marina Towers", 4))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "marina-towers", body["id"])

	rec, body = doJSON(t, e, http.MethodGet, "/api/v1/buildings/marina-towers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Marina Towers", body["name"])
}

func TestIngestRejection(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/v1/buildings", `{"tagline": "no name"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, "rejected", body["status"])
	assert.NotEmpty(t, body["reasons"])
}

func TestRenderPersonalized(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/buildings", legacyBody("Marina Towers", 4))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/buildings/marina-towers/render/listing?location_type=waterfront", nil)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code, out.Body.String())
	assert.Contains(t, out.Body.String(), "Life at the water's edge")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/buildings/marina-towers/render/listing", nil)
	out = httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)
	assert.Contains(t, out.Body.String(), "Waterfront living")
}

func TestRenderUnknownBuilding(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/buildings/nope/render/listing", nil)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNotFound, out.Code)
}

func TestCompareRanking(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/buildings", legacyBody("Marina Towers", 2))
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doJSON(t, e, http.MethodPost, "/api/v1/buildings", legacyBody("Cedar Court", 5))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compare?priority=quiet", nil)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code, out.Body.String())

	var result struct {
		Priority string           `json:"priority"`
		Rankings []models.Ranking `json:"rankings"`
	}
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &result))
	require.Len(t, result.Rankings, 2)
	assert.Equal(t, "cedar-court", result.Rankings[0].ID)
	assert.Equal(t, "marina-towers", result.Rankings[1].ID)
}

func TestCompareUnknownPriority(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/compare?priority=vibes", nil)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusBadRequest, out.Code)
}

func TestDeleteBuilding(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/buildings", legacyBody("Marina Towers", 4))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/buildings/marina-towers", nil)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)

	rec, _ = doJSON(t, e, http.MethodGet, "/api/v1/buildings/marina-towers", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
