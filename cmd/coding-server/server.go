package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/medcoding/medcoding/internal/config"
	"github.com/medcoding/medcoding/internal/domain/coding"
	"github.com/medcoding/medcoding/internal/platform/apierror"
	"github.com/medcoding/medcoding/internal/platform/health"
	"github.com/medcoding/medcoding/internal/platform/middleware"
	"github.com/medcoding/medcoding/internal/platform/openapi"
	"github.com/medcoding/medcoding/internal/platform/telemetry"
)

// newServer builds the Echo instance with middleware and all routes.
func newServer(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = apierror.Handler(logger)

	tp := telemetry.NewTelemetryProvider(telemetry.TelemetryConfig{
		ServiceName:       health.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.Env,
		MetricsEnabled:    telemetry.BoolPtr(cfg.MetricsEnabled),
		RuntimeCollectors: !cfg.IsDev(),
	})

	// Global middleware. Recovery sits inside RequestTimeout because the
	// timeout runs the handler on its own goroutine.
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(tp.MetricsMiddleware())
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(middleware.Recovery(logger))

	// Status endpoints
	health.NewHandler(version).RegisterRoutes(e)

	// Coding analysis
	svc := coding.NewService(coding.WithProfileObserver(func(p coding.Profile) {
		tp.RecordAnalysis(string(p))
		logger.Debug().Str("profile", string(p)).Msg("profile matched")
	}))
	rateLimitCfg := middleware.DefaultRateLimitConfig()
	rateLimitCfg.RequestsPerSecond = cfg.RateLimitRPS
	rateLimitCfg.BurstSize = cfg.RateLimitBurst
	coding.NewHandler(svc, logger).RegisterRoutes(e, middleware.RateLimit(rateLimitCfg))

	// API documentation
	openapi.NewGenerator(health.APIName, version, "").RegisterRoutes(e)

	if cfg.MetricsEnabled {
		e.GET("/metrics", tp.PrometheusHandler())
	}

	return e
}
