package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"ratepulse/internal/config"
	"ratepulse/internal/dates"
	apierrors "ratepulse/internal/errors"
	"ratepulse/internal/exporter"
	"ratepulse/internal/infrastructure"
	custommw "ratepulse/internal/middleware"
	"ratepulse/internal/services"
	transport "ratepulse/internal/transport/http"
)

const (
	AppName = "ratepulse"
	Version = "1.0.0"
)

// Application holds the wired server and its dependencies.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Telemetry *infrastructure.TelemetryProviders
	Router    chi.Router
	Server    *http.Server

	metrics           *infrastructure.ComparisonMetrics
	comparisonService *services.ComparisonService
	insightService    *services.InsightService
	healthService     *services.HealthService
}

// NewApplication loads configuration and wires every layer together.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("city", cfg.Market.City),
		slog.String("business_timezone", cfg.Market.BusinessTimezone))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	telemetry, err := infrastructure.InitializeTelemetry(infrastructure.DefaultTelemetryConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		Telemetry: telemetry,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires the store, resolver, and domain services.
func (a *Application) initializeServices() error {
	resolver, err := dates.NewResolver(a.Config.Market.BusinessTimezone, time.Now)
	if err != nil {
		return fmt.Errorf("failed to create date resolver: %w", err)
	}

	var metrics *infrastructure.ComparisonMetrics
	if a.Telemetry.Meter != nil {
		metrics, err = infrastructure.NewComparisonMetrics(a.Telemetry.Meter)
		if err != nil {
			return fmt.Errorf("failed to create comparison metrics: %w", err)
		}
	}
	a.metrics = metrics

	store := services.NewSnapshotStore(a.Config.Paths.SnapshotsDir, a.Config.Paths.UserRatesFile, a.Logger)
	a.comparisonService = services.NewComparisonService(a.Config, store, resolver, metrics, a.Logger)
	a.insightService = services.NewInsightService(a.Config, store, a.Logger)
	a.healthService = services.NewHealthService(Version, a.Config.Paths, a.Logger)

	return nil
}

// setupRouter builds the middleware chain and mounts all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	r.Group(func(r chi.Router) {
		tracing := custommw.NewTracing(a.Telemetry)
		r.Use(tracing.Handler)
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)
		r.Use(custommw.Compress(5))
		r.Use(custommw.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		if a.Config.Security.EnableCORS {
			r.Use(custommw.CORS(custommw.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	if a.Telemetry.PrometheusHTTP != nil {
		r.Handle("/metrics", a.Telemetry.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes mounts the versioned API handlers.
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	exp := exporter.NewComparisonExporter(&a.Config.Paths)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", transport.NewHealthHandler(a.healthService, a.Logger).Routes())
		r.Mount("/comparison", transport.NewComparisonHandler(a.comparisonService, a.Logger, errorHandler).Routes())
		r.Mount("/insights", transport.NewInsightsHandler(a.insightService, a.Logger, errorHandler).Routes())
		r.Mount("/export", transport.NewExportHandler(a.comparisonService, exp, a.metrics, a.Logger, errorHandler).Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the server and blocks until an interrupt, then shuts down
// gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		a.Logger.InfoContext(ctx, "server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop()
}

// Stop shuts the server and telemetry down within the configured timeout.
func (a *Application) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.Logger.InfoContext(ctx, "shutting down")

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.Telemetry.Shutdown(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "telemetry shutdown error", slog.String("error", err.Error()))
	}

	infrastructure.CloseLogFile()
	return nil
}
