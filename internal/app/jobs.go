package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/cyrel-edt/cyrel/internal/celcat"
	"github.com/cyrel-edt/cyrel/internal/config"
	"github.com/cyrel-edt/cyrel/internal/sync/coordinator"
	"github.com/cyrel-edt/cyrel/internal/sync/importer"
	"github.com/cyrel-edt/cyrel/internal/sync/scheduler"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
	"github.com/cyrel-edt/cyrel/internal/sync/writer"
	"github.com/cyrel-edt/cyrel/internal/telemetry"
	"github.com/cyrel-edt/cyrel/internal/versions"
)

// CelcatClient is the part of the Celcat client used by sync runs
type CelcatClient interface {
	importer.CalendarClient
	importer.ResourceLister
}

// ClientFactory returns a logged-in Celcat client
type ClientFactory func(ctx context.Context) (CelcatClient, error)

// NewCelcatClientFactory logs in to the configured Celcat instance on every call,
// so each run starts with a fresh session
func NewCelcatClientFactory(cfg *config.CelcatConfig) ClientFactory {
	return func(ctx context.Context) (CelcatClient, error) {
		if cfg == nil {
			return nil, fmt.Errorf("celcat configuration is required")
		}
		password, err := cfg.GetPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to read celcat password: %w", err)
		}

		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = celcat.DefaultBaseURL
		}
		opts := []celcat.Option{celcat.WithUserAgent("cyrel/" + versions.Version)}
		if timeout := cfg.GetTimeout(); timeout > 0 {
			opts = append(opts, celcat.WithTimeout(timeout))
		}

		client, err := celcat.New(ctx, baseURL, opts...)
		if err != nil {
			return nil, err
		}
		if err := client.Login(ctx, cfg.Username, password); err != nil {
			return nil, err
		}
		return client, nil
	}
}

// SyncJobs runs course and student imports against the configured store
type SyncJobs struct {
	config    *config.Config
	groups    importer.GroupLister
	writer    writer.SyncWriter
	state     state.RunStateService
	newClient ClientFactory
	metrics   *telemetry.SyncMetrics
	tracer    trace.Tracer
}

// NewSyncJobs creates the sync jobs. metrics and tracer may be nil.
func NewSyncJobs(
	cfg *config.Config,
	groups importer.GroupLister,
	w writer.SyncWriter,
	stateSvc state.RunStateService,
	newClient ClientFactory,
	metrics *telemetry.SyncMetrics,
	tracer trace.Tracer,
) *SyncJobs {
	return &SyncJobs{
		config:    cfg,
		groups:    groups,
		writer:    w,
		state:     stateSvc,
		newClient: newClient,
		metrics:   metrics,
		tracer:    tracer,
	}
}

// SyncCourses imports the calendars of every group, or only of the given groups
func (j *SyncJobs) SyncCourses(ctx context.Context, groups ...int32) (*importer.RunSummary, error) {
	client, err := j.newClient(ctx)
	if err != nil {
		return nil, err
	}

	syncCfg := j.config.Sync
	initial, maxInterval, maxElapsed := syncCfg.GetBackoff()
	runner := importer.NewRunner(j.groups, client, j.writer, j.writer,
		importer.WithPeriod(syncCfg.GetPeriod),
		importer.WithGroupFilter(groups...),
		importer.WithStateService(j.state),
		importer.WithSyncMetrics(j.metrics),
		importer.WithTracer(j.tracer),
		importer.WithCoordinatorOptions(
			coordinator.WithBufferSize(syncCfg.GetRequestBuffer()),
			coordinator.WithBackoff(initial, maxInterval),
			coordinator.WithMaxElapsedTime(maxElapsed),
			coordinator.WithSyncMetrics(j.metrics),
			coordinator.WithTracer(j.tracer),
		),
	)

	summary, err := runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Course sync finished", "summary", summary.String())
	return summary, nil
}

// SyncStudents refreshes the student directory
func (j *SyncJobs) SyncStudents(ctx context.Context) (*importer.StudentSummary, error) {
	client, err := j.newClient(ctx)
	if err != nil {
		return nil, err
	}
	return importer.NewStudentImporter(client, j.writer, j.state, j.metrics, j.tracer).Run(ctx)
}

// CourseJob adapts SyncCourses for the scheduler. A run with failed groups is an error.
func (j *SyncJobs) CourseJob() scheduler.Job {
	return scheduler.JobFunc(func(ctx context.Context) error {
		summary, err := j.SyncCourses(ctx)
		if err != nil {
			return err
		}
		return summary.Err()
	})
}
