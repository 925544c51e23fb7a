// Package telemetry exposes Prometheus metrics for the coding API: HTTP
// request counts and latencies by route, in-flight requests, and analyses
// by matched coding profile.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TelemetryConfig holds configuration for the telemetry provider.
type TelemetryConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// MetricsEnabled nil means enabled.
	MetricsEnabled *bool
	// RuntimeCollectors registers Go runtime and process collectors.
	RuntimeCollectors bool
}

func (c *TelemetryConfig) metricsOn() bool {
	if c.MetricsEnabled == nil {
		return true
	}
	return *c.MetricsEnabled
}

func (c *TelemetryConfig) applyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "medical-coding-api"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.0.0"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
}

// BoolPtr is a helper to create a *bool for TelemetryConfig fields.
func BoolPtr(b bool) *bool {
	return &b
}

var defaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// TelemetryProvider owns a private Prometheus registry and the collectors
// registered on it.
type TelemetryProvider struct {
	cfg      TelemetryConfig
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	analyses *prometheus.CounterVec
}

// NewTelemetryProvider creates a provider with its collectors registered.
func NewTelemetryProvider(cfg TelemetryConfig) *TelemetryProvider {
	cfg.applyDefaults()

	constLabels := prometheus.Labels{
		"service": cfg.ServiceName,
		"version": cfg.ServiceVersion,
		"env":     cfg.Environment,
	}

	tp := &TelemetryProvider{
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_server_requests_total",
			Help:        "Total HTTP requests by method, route and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_server_request_duration_seconds",
			Help:        "Duration of HTTP requests in seconds.",
			ConstLabels: constLabels,
			Buckets:     defaultDurationBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_server_active_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: constLabels,
		}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "coding_analyses_total",
			Help:        "Completed analyses by matched coding profile.",
			ConstLabels: constLabels,
		}, []string{"profile"}),
	}

	tp.registry.MustRegister(tp.requests, tp.duration, tp.inFlight, tp.analyses)
	if cfg.RuntimeCollectors {
		tp.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return tp
}

// Registry exposes the provider's registry, mainly for tests.
func (tp *TelemetryProvider) Registry() *prometheus.Registry {
	return tp.registry
}

// RecordAnalysis increments the analyses counter for profile.
func (tp *TelemetryProvider) RecordAnalysis(profile string) {
	if !tp.cfg.metricsOn() {
		return
	}
	tp.analyses.WithLabelValues(profile).Inc()
}

// MetricsMiddleware records request count, latency and in-flight requests.
// Unmatched routes share one label so arbitrary paths cannot grow the
// series count.
func (tp *TelemetryProvider) MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !tp.cfg.metricsOn() {
				return next(c)
			}

			tp.inFlight.Inc()
			start := time.Now()

			err := next(c)

			tp.inFlight.Dec()
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}

			route := c.Path()
			if route == "" || status == http.StatusNotFound {
				route = "unmatched"
			}
			method := c.Request().Method

			tp.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			tp.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// PrometheusHandler serves the registry in the Prometheus exposition format.
func (tp *TelemetryProvider) PrometheusHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(tp.registry, promhttp.HandlerOpts{
		Registry: tp.registry,
	}))
}
