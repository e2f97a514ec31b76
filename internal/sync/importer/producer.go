package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/cyrel-edt/cyrel/internal/celcat"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/otel"
	"github.com/cyrel-edt/cyrel/internal/sync/coordinator"
)

// importGroup rewrites the course associations of one group. Either every
// course of the group's calendar is associated, or the previous set is kept.
// Courses are confirmed with the coordinator before the group's transaction
// opens, so no connection is held while waiting on course workers.
func (r *Runner) importGroup(
	ctx context.Context,
	coord *coordinator.Coordinator,
	group models.GroupReferent,
) (n int, err error) {
	ctx, span := otel.StartSpan(ctx, r.tracer, "importer.group",
		trace.WithAttributes(otel.AttrGroupID.Int64(int64(group.GroupID))))
	defer span.End()

	began := time.Now()
	defer func() {
		r.metrics.RecordGroupDuration(ctx, time.Since(began), err == nil)
		if err != nil {
			otel.RecordError(span, err)
		}
	}()

	courses, err := r.fetchCalendar(ctx, group.Referent)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(otel.AttrResultCount.Int(len(courses)))

	eg, egCtx := errgroup.WithContext(ctx)
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ref := coordinator.CourseRefFromCalendar(c)
		ids = append(ids, ref.ID)
		eg.Go(func() error {
			return coord.Ensure(egCtx, ref)
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, fmt.Errorf("failed to import courses: %w", err)
	}

	imp, err := r.imports.BeginGroupImport(ctx, group.GroupID)
	if err != nil {
		return 0, err
	}
	defer func() {
		// A failed import keeps the group's previous associations
		if rbErr := imp.Rollback(ctx); rbErr != nil {
			r.logger.Warn("Failed to roll back group import", "group", group.GroupID, "error", rbErr)
		}
	}()

	if _, err := imp.ClearCourses(ctx); err != nil {
		return 0, err
	}
	for _, id := range ids {
		if err := imp.AddCourse(ctx, id); err != nil {
			return 0, err
		}
	}
	if err := imp.Commit(ctx); err != nil {
		return 0, err
	}

	r.logger.Debug("Imported group", "group", group.GroupID, "courses", len(courses),
		"duration", time.Since(began))
	return len(courses), nil
}

// fetchCalendar fetches a referent's calendar over the run period, retrying transient failures
func (r *Runner) fetchCalendar(ctx context.Context, referent string) ([]celcat.Course, error) {
	start, end := r.period(r.now())
	req := celcat.CalendarRequest{
		Start:         start,
		End:           end,
		ResourceType:  celcat.ResourceStudent,
		View:          celcat.ViewMonth,
		FederationIDs: referent,
	}

	operation := func() ([]celcat.Course, error) {
		courses, err := r.client.FetchCalendar(ctx, req)
		if err == nil {
			return courses, nil
		}
		if ctx.Err() != nil || !celcat.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.calendarBackoff
	courses, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.calendarTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.logger.Debug("Retrying calendar fetch", "referent", referent, "next_in", next, "error", err)
		}),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Err
		}
		return nil, fmt.Errorf("failed to fetch calendar of %s: %w", referent, err)
	}
	return courses, nil
}
