package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"widget-backend/src/helpers"
	"widget-backend/src/logger"
	"widget-backend/src/models"
	"widget-backend/src/service"
	"widget-backend/src/widgets"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *models.MConfig {
	return &models.MConfig{
		Host:         "127.0.0.1",
		Port:         7779,
		AllowOrigins: []string{"https://pro.openbb.co"},
		Defaults: models.MDefaultsConfig{
			Tickers:      []string{"MDB", "ESTC"},
			Repositories: []string{"openbb-finance/OpenBB"},
			StarHistory:  []string{"openbb-finance/OpenBB"},
		},
		Live: models.MLiveConfig{Enabled: true},
	}
}

func newTestServer(cfg *models.MConfig, svc *MockWidgetService) *Server {
	return NewServer(cfg, svc, widgets.NewRegistry(cfg, "FMP"), logger.NewLogger(nil, "test"))
}

func do(s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	s := newTestServer(testConfig(), &MockWidgetService{})
	w := do(s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"Info":"Full example for OpenBB Custom Backend"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(testConfig(), &MockWidgetService{})
	w := do(s, http.MethodGet, "/", http.Header{"X-Request-Id": {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestWidgetsJSON(t *testing.T) {
	s := newTestServer(testConfig(), &MockWidgetService{})
	w := do(s, http.MethodGet, "/widgets.json", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 4)
	assert.Equal(t, "oss-company-stats", got[widgets.OSSCompanyStats]["endpoint"])
	assert.Equal(t, "markdown", got[widgets.GitHubStarHistory]["type"])
}

func TestTemplatesJSON(t *testing.T) {
	cfg := testConfig()
	cfg.TemplatesPath = filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(cfg.TemplatesPath, []byte(`[{"name":"t"}]`), 0644))

	s := newTestServer(cfg, &MockWidgetService{})
	w := do(s, http.MethodGet, "/templates.json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `[{"name":"t"}]`, w.Body.String())

	cfg.TemplatesPath = filepath.Join(t.TempDir(), "missing.json")
	w = do(s, http.MethodGet, "/templates.json", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestHealth(t *testing.T) {
	s := newTestServer(testConfig(), &MockWidgetService{})
	s.Broadcast(&models.MLiveUpdate{Widget: widgets.GitHubStats, Timestamp: 42})

	w := do(s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","connections":0,"latest_update":42}`, w.Body.String())
}

func TestOSSCompanyStatsHandler(t *testing.T) {
	var got []string
	svc := &MockWidgetService{OSSCompanyStatsFunc: func(_ context.Context, tickers []string) ([]models.MRow, error) {
		got = tickers
		return []models.MRow{{{Column: "Ticker", Value: tickers[0]}, {Column: "Name", Value: "x"}}}, nil
	}}
	s := newTestServer(testConfig(), svc)

	w := do(s, http.MethodGet, "/oss-company-stats?tickers=GTLB,%20CFLT,,", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"GTLB", "CFLT"}, got)
	assert.Equal(t, `[{"Ticker":"GTLB","Name":"x"}]`, strings.TrimSpace(w.Body.String()))

	do(s, http.MethodGet, "/oss-company-stats", nil)
	assert.Equal(t, []string{"MDB", "ESTC"}, got)
}

func TestTableHandlerFailure(t *testing.T) {
	svc := &MockWidgetService{GitHubStatsFunc: func(context.Context, []string) ([]models.MRow, error) {
		return nil, helpers.NewDataSourceError("all 1 identifiers failed", errMockUpstream)
	}}
	s := newTestServer(testConfig(), svc)

	w := do(s, http.MethodGet, "/github-stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"all 1 identifiers failed: upstream down"}`, w.Body.String())
}

func TestEmptyTableIsArray(t *testing.T) {
	s := newTestServer(testConfig(), &MockWidgetService{})
	w := do(s, http.MethodGet, "/github-stats?repos=", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestTrendingHandler(t *testing.T) {
	var gotDays int
	var gotLang string
	svc := &MockWidgetService{TrendingFunc: func(_ context.Context, days int, language string) ([]models.MRow, error) {
		gotDays, gotLang = days, language
		return []models.MRow{}, nil
	}}
	s := newTestServer(testConfig(), svc)

	w := do(s, http.MethodGet, "/github-trending?time_period=30&language=Go", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, gotDays)
	assert.Equal(t, "Go", gotLang)

	w = do(s, http.MethodGet, "/github-trending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, gotDays)
}

func TestTrendingHandlerBadPeriod(t *testing.T) {
	called := false
	svc := &MockWidgetService{TrendingFunc: func(context.Context, int, string) ([]models.MRow, error) {
		called = true
		return nil, nil
	}}
	s := newTestServer(testConfig(), svc)

	for _, q := range []string{"abc", "0", "-1", "2.5"} {
		w := do(s, http.MethodGet, "/github-trending?time_period="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
	assert.False(t, called)
}

func TestStarHistoryHandler(t *testing.T) {
	svc := &MockWidgetService{StarHistoryFunc: func(_ context.Context, repos []string, chartType, theme string) (string, error) {
		assert.Equal(t, []string{"openbb-finance/OpenBB"}, repos)
		assert.Equal(t, "Timeline", chartType)
		assert.Equal(t, "dark", theme)
		return "## Chart\n", nil
	}}
	s := newTestServer(testConfig(), svc)

	w := do(s, http.MethodGet, "/github-star-history?chart_type=Timeline&theme=dark", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"## Chart\n"`, w.Body.String())
}

func TestStarHistoryRepoLimitEndToEnd(t *testing.T) {
	cfg := testConfig()
	charts := &countingCharts{}
	svc := service.NewWidgetService(cfg, nil, nil, charts, logger.NewLogger(nil, "test"))
	s := NewServer(cfg, svc, widgets.NewRegistry(cfg, "FMP"), logger.NewLogger(nil, "test"))

	w := do(s, http.MethodGet, "/github-star-history?repos=a/a,b/b,c/c,d/d,e/e,f/f", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, charts.calls)

	w = do(s, http.MethodGet, "/github-star-history?repos=a/a,b/b,c/c,d/d,e/e", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, charts.calls)

	w = do(s, http.MethodGet, "/github-star-history?chart_type=Bar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, charts.calls)
}

func TestCORS(t *testing.T) {
	s := newTestServer(testConfig(), &MockWidgetService{})

	w := do(s, http.MethodGet, "/", http.Header{"Origin": {"https://pro.openbb.co"}})
	assert.Equal(t, "https://pro.openbb.co", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = do(s, http.MethodGet, "/", http.Header{"Origin": {"https://evil.example"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(testConfig(), &MockWidgetService{})

	w := do(s, http.MethodOptions, "/github-stats", http.Header{
		"Origin":                         {"https://pro.openbb.co"},
		"Access-Control-Request-Method":  {"GET"},
		"Access-Control-Request-Headers": {"X-Custom"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "X-Custom", w.Header().Get("Access-Control-Allow-Headers"))
}
