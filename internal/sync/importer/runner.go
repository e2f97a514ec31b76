package importer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/otel"
	"github.com/cyrel-edt/cyrel/internal/status"
	"github.com/cyrel-edt/cyrel/internal/sync/coordinator"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
	"github.com/cyrel-edt/cyrel/internal/sync/writer"
	"github.com/cyrel-edt/cyrel/internal/telemetry"
)

const (
	defaultCalendarTries   = 5
	defaultCalendarBackoff = 500 * time.Millisecond
)

// PeriodFunc returns the calendar window to import for a run starting at now
type PeriodFunc func(now time.Time) (time.Time, time.Time)

// Runner performs course runs
type Runner struct {
	groups  GroupLister
	client  CalendarClient
	courses writer.CourseWriter
	imports writer.GroupWriter
	state   state.RunStateService

	period          PeriodFunc
	groupLimit      int
	only            map[int32]bool
	calendarTries   uint
	calendarBackoff time.Duration
	coordOpts       []coordinator.Option

	logger  *slog.Logger
	metrics *telemetry.SyncMetrics
	tracer  trace.Tracer
	now     func() time.Time
}

// Option is a function that configures the runner
type Option func(*Runner)

// WithPeriod sets how the calendar window is computed
func WithPeriod(period PeriodFunc) Option {
	return func(r *Runner) {
		if period != nil {
			r.period = period
		}
	}
}

// WithGroupConcurrency caps the number of groups imported at once. Zero means no cap.
func WithGroupConcurrency(n int) Option {
	return func(r *Runner) {
		r.groupLimit = n
	}
}

// WithGroupFilter restricts runs to the given group ids. No ids means every group.
func WithGroupFilter(ids ...int32) Option {
	return func(r *Runner) {
		if len(ids) == 0 {
			r.only = nil
			return
		}
		r.only = make(map[int32]bool, len(ids))
		for _, id := range ids {
			r.only[id] = true
		}
	}
}

// WithCalendarRetry sets the attempt budget and first delay for calendar fetches
func WithCalendarRetry(tries uint, initial time.Duration) Option {
	return func(r *Runner) {
		if tries > 0 {
			r.calendarTries = tries
		}
		if initial > 0 {
			r.calendarBackoff = initial
		}
	}
}

// WithCoordinatorOptions passes options to the coordinator built for each run
func WithCoordinatorOptions(opts ...coordinator.Option) Option {
	return func(r *Runner) {
		r.coordOpts = append(r.coordOpts, opts...)
	}
}

// WithStateService records every run. Without it runs are not persisted.
func WithStateService(svc state.RunStateService) Option {
	return func(r *Runner) {
		r.state = svc
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithSyncMetrics sets the sync metrics
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(r *Runner) {
		r.metrics = metrics
	}
}

// WithTracer sets the tracer for run and group spans
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) {
		r.tracer = tracer
	}
}

// NewRunner creates a course runner
func NewRunner(
	groups GroupLister,
	client CalendarClient,
	courses writer.CourseWriter,
	imports writer.GroupWriter,
	opts ...Option,
) *Runner {
	r := &Runner{
		groups:          groups,
		client:          client,
		courses:         courses,
		imports:         imports,
		period:          defaultPeriod,
		calendarTries:   defaultCalendarTries,
		calendarBackoff: defaultCalendarBackoff,
		logger:          slog.Default(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultPeriod covers the academic year, September to September, containing now
func defaultPeriod(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	if now.Month() < time.September {
		year--
	}
	start := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// Run performs one course run. Group failures are reported in the summary and
// never abort sibling groups; the returned error is reserved for failures that
// prevent the run as a whole.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	began := r.now()

	var run *status.SyncRun
	if r.state != nil {
		var err error
		run, err = r.state.StartRun(ctx, status.SyncKindCourses)
		if err != nil {
			return nil, err
		}
	}

	ctx, span := otel.StartSpan(ctx, r.tracer, "importer.run")
	defer span.End()
	if run != nil {
		span.SetAttributes(otel.AttrRunID.String(run.ID.String()))
	}

	summary, err := r.run(ctx)
	if summary != nil && run != nil {
		summary.RunID = run.ID
	}

	runErr := err
	if runErr == nil {
		runErr = summary.Err()
	}
	if runErr != nil {
		otel.RecordError(span, runErr)
	}

	duration := r.now().Sub(began)
	if summary != nil {
		summary.Duration = duration
	}
	r.metrics.RecordRunDuration(ctx, string(status.SyncKindCourses), duration, runErr == nil)

	if run != nil {
		if summary != nil {
			run.GroupsTotal = summary.Groups
			run.GroupsFailed = len(summary.Failed)
			run.Courses = summary.Courses.Distinct
			run.CoursesFailed = summary.Courses.Failed
		}
		run.Finish(r.now().UTC(), runErr)
		if runErr == nil {
			run.Message = summary.String()
		}
		// The run context may be cancelled already; the record must still land
		if ferr := r.state.FinishRun(context.WithoutCancel(ctx), run); ferr != nil {
			r.logger.Error("Failed to record sync run", "run", run.ID, "error", ferr)
		}
	}

	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *Runner) run(ctx context.Context) (*RunSummary, error) {
	groups, err := r.groups.ListGroupReferents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get group referents: %w", err)
	}
	if r.only != nil {
		groups = slices.DeleteFunc(groups, func(g models.GroupReferent) bool {
			return !r.only[g.GroupID]
		})
	}
	r.logger.Info("Starting course sync", "groups", len(groups))

	opts := append([]coordinator.Option{
		coordinator.WithLogger(r.logger),
		coordinator.WithSyncMetrics(r.metrics),
		coordinator.WithTracer(r.tracer),
	}, r.coordOpts...)
	coord := coordinator.New(r.client, r.courses, opts...)

	coordCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := coord.Start(coordCtx); err != nil {
		return nil, err
	}

	var (
		eg      errgroup.Group
		mu      sync.Mutex
		summary = &RunSummary{Groups: len(groups)}
	)
	if r.groupLimit > 0 {
		eg.SetLimit(r.groupLimit)
	}

	for _, g := range groups {
		eg.Go(func() error {
			n, err := r.importGroup(ctx, coord, g)
			if err != nil {
				r.logger.Error("Failed to update courses", "group", g.GroupID, "referent", g.Referent, "error", err)
				mu.Lock()
				summary.Failed = append(summary.Failed, &GroupError{GroupID: g.GroupID, Err: err})
				mu.Unlock()
				return nil
			}
			r.logger.Debug("Group synchronized", "group", g.GroupID, "courses", n)
			return nil
		})
	}
	_ = eg.Wait()

	coord.Close()
	summary.Courses = coord.Wait()

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("course sync interrupted: %w", err)
	}

	r.logger.Info("Course sync finished",
		"groups", summary.Groups,
		"failed_groups", summary.FailedGroups(),
		"courses", summary.Courses.Distinct,
		"dedup_hits", summary.Courses.DedupHits)
	return summary, nil
}
