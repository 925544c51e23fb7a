package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestProvider() *TelemetryProvider {
	return NewTelemetryProvider(TelemetryConfig{ServiceName: "test", ServiceVersion: "1.0.0"})
}

func TestConfig_Defaults(t *testing.T) {
	cfg := TelemetryConfig{}
	cfg.applyDefaults()
	if cfg.ServiceName != "medical-coding-api" {
		t.Errorf("expected default service name, got %q", cfg.ServiceName)
	}
	if !cfg.metricsOn() {
		t.Error("expected metrics on by default")
	}
	cfg.MetricsEnabled = BoolPtr(false)
	if cfg.metricsOn() {
		t.Error("expected metrics off when disabled")
	}
}

func TestRecordAnalysis(t *testing.T) {
	tp := newTestProvider()
	tp.RecordAnalysis("appendicitis")
	tp.RecordAnalysis("appendicitis")
	tp.RecordAnalysis("general")

	if got := testutil.ToFloat64(tp.analyses.WithLabelValues("appendicitis")); got != 2 {
		t.Errorf("expected 2 appendicitis analyses, got %v", got)
	}
	if got := testutil.ToFloat64(tp.analyses.WithLabelValues("general")); got != 1 {
		t.Errorf("expected 1 general analysis, got %v", got)
	}
}

func TestRecordAnalysis_Disabled(t *testing.T) {
	tp := NewTelemetryProvider(TelemetryConfig{MetricsEnabled: BoolPtr(false)})
	tp.RecordAnalysis("diabetes")

	if got := testutil.ToFloat64(tp.analyses.WithLabelValues("diabetes")); got != 0 {
		t.Errorf("expected no analyses recorded, got %v", got)
	}
}

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	tp := newTestProvider()
	e := echo.New()
	e.Use(tp.MetricsMiddleware())
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.POST("/analyze", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Description too short")
	})

	for i := 0; i < 3; i++ {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/analyze", nil))

	if got := testutil.ToFloat64(tp.requests.WithLabelValues("GET", "/health", "200")); got != 3 {
		t.Errorf("expected 3 health requests, got %v", got)
	}
	if got := testutil.ToFloat64(tp.requests.WithLabelValues("POST", "/analyze", "400")); got != 1 {
		t.Errorf("expected 1 rejected analyze request, got %v", got)
	}
	if got := testutil.ToFloat64(tp.inFlight); got != 0 {
		t.Errorf("expected no in-flight requests, got %v", got)
	}
}

func TestMetricsMiddleware_CollapsesUnmatchedRoutes(t *testing.T) {
	tp := newTestProvider()
	e := echo.New()
	e.Use(tp.MetricsMiddleware())

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/1", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/2", nil))

	if got := testutil.ToFloat64(tp.requests.WithLabelValues("GET", "unmatched", "404")); got != 2 {
		t.Errorf("expected 2 unmatched requests, got %v", got)
	}
}

func TestPrometheusHandler_ExposesMetrics(t *testing.T) {
	tp := newTestProvider()
	tp.RecordAnalysis("diabetes")

	e := echo.New()
	e.GET("/metrics", tp.PrometheusHandler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `coding_analyses_total{env="development",profile="diabetes",service="test",version="1.0.0"} 1`) {
		t.Errorf("expected analyses counter in output, got:\n%s", body)
	}
}
