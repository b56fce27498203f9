package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratepulse/internal/config"
	"ratepulse/internal/dates"
	apierrors "ratepulse/internal/errors"
	"ratepulse/internal/exporter"
	"ratepulse/internal/services"
	apiv1 "ratepulse/pkg/contracts/api/v1"
)

var fixedNow = time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	cfg    *config.Config
	router chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = base
	cfg.Paths.SnapshotsDir = filepath.Join(base, "snapshots")
	cfg.Paths.UserRatesFile = filepath.Join(base, "user_rates.json")
	cfg.Paths.ReportsDir = filepath.Join(base, "reports")
	cfg.Market.BusinessTimezone = "UTC"
	cfg.Market.City = ""
	require.NoError(t, os.MkdirAll(cfg.Paths.SnapshotsDir, 0755))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := apierrors.NewErrorHandler(logger, false)

	resolver, err := dates.NewResolver(cfg.Market.BusinessTimezone, func() time.Time { return fixedNow })
	require.NoError(t, err)

	store := services.NewSnapshotStore(cfg.Paths.SnapshotsDir, cfg.Paths.UserRatesFile, logger)
	comparisonSvc := services.NewComparisonService(cfg, store, resolver, nil, logger)
	insightSvc := services.NewInsightService(cfg, store, logger)
	exp := exporter.NewComparisonExporter(&cfg.Paths)

	router := chi.NewRouter()
	router.Mount("/api/comparison", NewComparisonHandler(comparisonSvc, logger, errorHandler).Routes())
	router.Mount("/api/insights", NewInsightsHandler(insightSvc, logger, errorHandler).Routes())
	router.Mount("/api/export", NewExportHandler(comparisonSvc, exp, nil, logger, errorHandler).Routes())

	return &testEnv{cfg: cfg, router: router}
}

func (e *testEnv) writeSnapshot(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.cfg.Paths.SnapshotsDir, name), []byte(content), 0644))
}

func (e *testEnv) writeUserRates(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.cfg.Paths.UserRatesFile, []byte(content), 0644))
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestBuildComparisonEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.writeSnapshot(t, "lucerna.json", `{
		"name": "Hotel Lucerna", "stars": 4,
		"rooms": {"2024-05-02": [{"room_type": "Standard", "price": "1,400"}]}
	}`)
	env.writeUserRates(t, `[
		{"hotel": "Our Hotel", "room_type": "Standard", "price": 1500, "checkin_date": "2024-05-02"}
	]`)

	rec := env.do(http.MethodPost, "/api/comparison", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiv1.ComparisonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-05-02", resp.Date)
	assert.Equal(t, 1, resp.CompetitorCount)
	require.Len(t, resp.Rows, 1)
	require.NotNil(t, resp.Rows[0].MyPrice)
	assert.InDelta(t, 1500, *resp.Rows[0].MyPrice, 0.001)
	require.NotNil(t, resp.Rows[0].CompetitorAvgPrice)
	assert.InDelta(t, 1400, *resp.Rows[0].CompetitorAvgPrice, 0.001)
}

func TestBuildComparisonEndpoint_NoCompetitors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/comparison", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	assert.Contains(t, rec.Body.String(), "NO_COMPETITOR_DATA")
}

func TestBuildComparisonEndpoint_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/comparison", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevenueEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.writeSnapshot(t, "lucerna.json", `{
		"name": "Hotel Lucerna",
		"rooms": {"2024-05-02": [{"room_type": "Standard", "price": 200}]}
	}`)
	env.writeUserRates(t, `[
		{"hotel": "Our Hotel", "room_type": "Standard", "price": 100, "checkin_date": "2024-05-02"}
	]`)

	rec := env.do(http.MethodGet, "/api/comparison/revenue", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiv1.RevenueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Standing.TotalHotels)
	assert.Equal(t, 2, resp.Standing.Position)
}

func TestInsightsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.writeSnapshot(t, "lucerna.json", `{
		"name": "Hotel Lucerna",
		"rooms": {
			"2024-05-01": [{"room_type": "Standard", "price": 100}],
			"2024-05-02": [{"room_type": "Standard", "price": 120}]
		}
	}`)

	rec := env.do(http.MethodGet, "/api/insights", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiv1.InsightsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Trends.MostExpensive)
	assert.Equal(t, "Hotel Lucerna", resp.Trends.MostExpensive.Name)
	assert.Equal(t, 1, resp.Trends.MostVolatile.Changes)
}

func TestExportEndpoint_CSV(t *testing.T) {
	env := newTestEnv(t)
	env.writeSnapshot(t, "lucerna.json", `{
		"name": "Hotel Lucerna",
		"rooms": {"2024-05-02": [{"room_type": "Standard", "price": 1400}]}
	}`)

	rec := env.do(http.MethodPost, "/api/export/comparison", `{"format": "csv"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp apiv1.ExportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "csv", resp.Format)
	assert.FileExists(t, resp.Path)
}

func TestExportEndpoint_InvalidFormat(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/export/comparison", `{"format": "pdf"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "format")
}
