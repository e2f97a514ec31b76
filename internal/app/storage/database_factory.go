package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/cyrel-edt/cyrel/database"
	"github.com/cyrel-edt/cyrel/internal/config"
	"github.com/cyrel-edt/cyrel/internal/db"
	"github.com/cyrel-edt/cyrel/internal/service"
	dbservice "github.com/cyrel-edt/cyrel/internal/service/db"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
	"github.com/cyrel-edt/cyrel/internal/sync/writer"
)

// DatabaseFactory creates Postgres-backed components
type DatabaseFactory struct {
	conn        *db.Connection
	tracer      trace.Tracer
	autoMigrate bool
}

var _ Factory = (*DatabaseFactory)(nil)

// DatabaseFactoryOption configures a DatabaseFactory
type DatabaseFactoryOption func(*DatabaseFactory)

// WithTracer sets the tracer of the timetable service
func WithTracer(tracer trace.Tracer) DatabaseFactoryOption {
	return func(f *DatabaseFactory) {
		f.tracer = tracer
	}
}

// WithAutoMigrate applies pending schema migrations before connecting
func WithAutoMigrate(enabled bool) DatabaseFactoryOption {
	return func(f *DatabaseFactory) {
		f.autoMigrate = enabled
	}
}

// NewDatabaseFactory connects to the configured database
func NewDatabaseFactory(ctx context.Context, cfg *config.Config, opts ...DatabaseFactoryOption) (*DatabaseFactory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("database configuration is required")
	}

	f := &DatabaseFactory{}
	for _, opt := range opts {
		opt(f)
	}

	if f.autoMigrate {
		connStr, err := cfg.Database.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to build connection string: %w", err)
		}
		if err := database.MigrateUp(connStr, 0); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Info("Database schema is up to date")
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	f.conn = conn
	return f, nil
}

// CreateStateService creates the Postgres run history
func (d *DatabaseFactory) CreateStateService(_ context.Context) (state.RunStateService, error) {
	return state.NewDBStateService(d.conn.Pool), nil
}

// CreateSyncWriter creates the Postgres sync writer
func (d *DatabaseFactory) CreateSyncWriter(_ context.Context) (writer.SyncWriter, error) {
	return writer.NewDBWriter(d.conn.Pool)
}

// CreateTimetableService creates the Postgres timetable service
func (d *DatabaseFactory) CreateTimetableService(_ context.Context) (service.TimetableService, error) {
	opts := []dbservice.Option{dbservice.WithConnectionPool(d.conn.Pool)}
	if d.tracer != nil {
		opts = append(opts, dbservice.WithTracer(d.tracer))
	}
	return dbservice.New(opts...)
}

// Cleanup closes the connection pool
func (d *DatabaseFactory) Cleanup() {
	if d.conn != nil {
		d.conn.Close()
	}
}
