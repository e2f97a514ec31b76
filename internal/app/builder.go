package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cyrel-edt/cyrel/internal/api"
	"github.com/cyrel-edt/cyrel/internal/api/rpc"
	"github.com/cyrel-edt/cyrel/internal/app/storage"
	"github.com/cyrel-edt/cyrel/internal/auth"
	"github.com/cyrel-edt/cyrel/internal/config"
	"github.com/cyrel-edt/cyrel/internal/sync/scheduler"
	"github.com/cyrel-edt/cyrel/internal/telemetry"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 35 * time.Second
	defaultIdleTimeout    = 60 * time.Second

	// tracerName is the instrumentation scope of storage and sync spans
	tracerName = "github.com/cyrel-edt/cyrel"
)

// AppOption configures NewApp and NewWorker
type AppOption func(*appConfig) error

type appConfig struct {
	config *config.Config

	// Overrides, mostly for tests
	storageFactory storage.Factory
	clientFactory  ClientFactory

	autoMigrate bool

	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	metricsHandler http.Handler
}

func baseConfig(opts ...AppOption) (*appConfig, error) {
	cfg := &appConfig{
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.address == "" {
		cfg.address = cfg.config.Server.GetAddress()
	}
	if cfg.clientFactory == nil {
		cfg.clientFactory = NewCelcatClientFactory(cfg.config.Celcat)
	}
	return cfg, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) AppOption {
	return func(cfg *appConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress overrides the configured listen address
func WithAddress(addr string) AppOption {
	return func(cfg *appConfig) error {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", addr, err)
		}
		switch host {
		case "":
			host = "0.0.0.0"
		case "localhost":
			host = "127.0.0.1"
		}
		if _, err := netip.ParseAddrPort(net.JoinHostPort(host, port)); err != nil {
			return fmt.Errorf("invalid address %q: %w", addr, err)
		}
		cfg.address = addr
		return nil
	}
}

// WithMiddlewares replaces the default HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) AppOption {
	return func(cfg *appConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithStorageFactory injects a storage factory
func WithStorageFactory(f storage.Factory) AppOption {
	return func(cfg *appConfig) error {
		cfg.storageFactory = f
		return nil
	}
}

// WithClientFactory injects the Celcat client factory
func WithClientFactory(f ClientFactory) AppOption {
	return func(cfg *appConfig) error {
		cfg.clientFactory = f
		return nil
	}
}

// WithAutoMigrate applies pending migrations when the database factory connects
func WithAutoMigrate(enabled bool) AppOption {
	return func(cfg *appConfig) error {
		cfg.autoMigrate = enabled
		return nil
	}
}

// WithMeterProvider enables HTTP and sync metrics
func WithMeterProvider(mp metric.MeterProvider) AppOption {
	return func(cfg *appConfig) error {
		cfg.meterProvider = mp
		return nil
	}
}

// WithTracerProvider enables HTTP, RPC, storage and sync spans
func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(cfg *appConfig) error {
		cfg.tracerProvider = tp
		return nil
	}
}

// WithMetricsHandler serves a Prometheus scrape endpoint on /metrics
func WithMetricsHandler(h http.Handler) AppOption {
	return func(cfg *appConfig) error {
		cfg.metricsHandler = h
		return nil
	}
}

func (cfg *appConfig) tracer() trace.Tracer {
	if cfg.tracerProvider == nil {
		return nil
	}
	return cfg.tracerProvider.Tracer(tracerName)
}

// NewApp builds the API server and, when a sync interval is configured, the
// scheduler running course syncs in the background
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	components, err := buildComponents(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Storage is released by Stop from here on, or right away on error
	cleanupNeeded := true
	defer func() {
		if cleanupNeeded {
			cfg.storageFactory.Cleanup()
		}
	}()

	httpServer, err := buildHTTPServer(cfg, components)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	var sched *scheduler.Scheduler
	if interval := cfg.config.Sync.GetInterval(); interval > 0 {
		sched = scheduler.New(components.Jobs.CourseJob(),
			scheduler.WithInterval(interval),
			scheduler.WithRunOnStart(true),
		)
		slog.Info("Periodic course sync enabled", "interval", interval.String())
	}

	appCtx, cancel := context.WithCancel(ctx)
	cleanupNeeded = false

	return &App{
		config:     cfg.config,
		components: components,
		httpServer: httpServer,
		scheduler:  sched,
		ctx:        appCtx,
		cancelFunc: func() {
			cancel()
			cfg.storageFactory.Cleanup()
		},
	}, nil
}

// NewWorker builds the components of one-shot sync commands
func NewWorker(ctx context.Context, opts ...AppOption) (*Worker, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	components, err := buildComponents(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Worker{
		components: components,
		cleanup:    cfg.storageFactory.Cleanup,
	}, nil
}

// buildComponents creates the storage factory, if none was injected, and every
// component built on it. On error the factory is already cleaned up.
func buildComponents(ctx context.Context, cfg *appConfig) (_ *AppComponents, err error) {
	if cfg.storageFactory == nil {
		cfg.storageFactory, err = storage.NewDatabaseFactory(ctx, cfg.config,
			storage.WithTracer(cfg.tracer()),
			storage.WithAutoMigrate(cfg.autoMigrate),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage factory: %w", err)
		}
	}
	defer func() {
		if err != nil {
			cfg.storageFactory.Cleanup()
		}
	}()

	stateSvc, err := cfg.storageFactory.CreateStateService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create state service: %w", err)
	}
	// Runs left Syncing by a previous process can never finish
	if err := stateSvc.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize sync state: %w", err)
	}

	syncWriter, err := cfg.storageFactory.CreateSyncWriter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync writer: %w", err)
	}

	svc, err := cfg.storageFactory.CreateTimetableService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create timetable service: %w", err)
	}

	var syncMetrics *telemetry.SyncMetrics
	if cfg.meterProvider != nil {
		if syncMetrics, err = telemetry.NewSyncMetrics(cfg.meterProvider); err != nil {
			return nil, fmt.Errorf("failed to create sync metrics: %w", err)
		}
	}

	return &AppComponents{
		TimetableService: svc,
		RunState:         stateSvc,
		Jobs:             NewSyncJobs(cfg.config, svc, syncWriter, stateSvc, cfg.clientFactory, syncMetrics, cfg.tracer()),
	}, nil
}

// buildHTTPServer builds the router with its middleware chain
func buildHTTPServer(cfg *appConfig, components *AppComponents) (*http.Server, error) {
	secret, err := cfg.config.Auth.GetSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to read token secret: %w", err)
	}
	issuer, err := auth.NewTokenIssuer(secret, cfg.config.Auth.GetTokenTTL())
	if err != nil {
		return nil, err
	}

	middlewares := cfg.middlewares
	if middlewares == nil {
		middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(cfg.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	// Telemetry goes first so rejected and timed out requests are observed too
	if cfg.meterProvider != nil {
		metricsMw, err := telemetry.MetricsMiddleware(cfg.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
		}
		middlewares = append([]func(http.Handler) http.Handler{metricsMw}, middlewares...)
	}
	if cfg.tracerProvider != nil {
		middlewares = append([]func(http.Handler) http.Handler{telemetry.TracingMiddleware(cfg.tracerProvider)}, middlewares...)
	}

	router := api.NewServer(components.TimetableService, issuer,
		api.WithMiddlewares(middlewares...),
		api.WithMetricsHandler(cfg.metricsHandler),
		api.WithRPCOptions(
			rpc.WithRunState(components.RunState),
			rpc.WithTracer(cfg.tracer()),
		),
	)

	slog.Info("HTTP server configured", "address", cfg.address)
	return &http.Server{
		Addr:         cfg.address,
		Handler:      router,
		ReadTimeout:  cfg.readTimeout,
		WriteTimeout: cfg.writeTimeout,
		IdleTimeout:  cfg.idleTimeout,
	}, nil
}
