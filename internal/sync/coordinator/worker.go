package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/cyrel-edt/cyrel/internal/celcat"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/otel"
	"github.com/cyrel-edt/cyrel/internal/sync/gate"
	"github.com/cyrel-edt/cyrel/internal/sync/writer"
)

// work performs the authoritative fetch for a course, opens its gate and answers the first requester
func (c *Coordinator) work(ctx context.Context, req request, opener *gate.Opener[Outcome]) {
	ctx, span := otel.StartSpan(ctx, c.tracer, "coordinator.worker",
		trace.WithAttributes(otel.AttrCourseID.String(req.course.ID)))
	defer span.End()

	out, attempts := c.fetchAndPersist(ctx, req.course)

	span.SetAttributes(otel.AttrOutcome.String(out.Status.String()), otel.AttrAttempts.Int(attempts))
	switch out.Status {
	case StatusFailed:
		c.failed.Add(1)
		otel.RecordError(span, out.Err)
		c.logger.Error("Failed to synchronize course",
			"course", req.course.ID, "attempts", attempts, "error", out.Err)
	case StatusSkipped:
		c.skipped.Add(1)
	case StatusSuccess:
	}
	c.metrics.RecordCourseFetch(ctx, out.Status.String())

	opener.Open(out)
	req.reply <- out
}

// fetchAndPersist retries fetch+upsert until it succeeds, the failure is permanent or the budget is spent
func (c *Coordinator) fetchAndPersist(ctx context.Context, course CourseRef) (Outcome, int) {
	attempts := 0

	operation := func() (Outcome, error) {
		attempts++

		record := models.CourseRecord{ID: course.ID, Start: course.Start, End: course.End}
		out := Outcome{CourseID: course.ID, Status: StatusSuccess}

		event, err := c.fetcher.FetchEvent(ctx, course.ID)
		switch {
		case err == nil:
			applyDetails(&record, event.Details())
		case ctx.Err() != nil:
			return out, backoff.Permanent(ctx.Err())
		case celcat.IsRetryable(err):
			return out, err
		default:
			c.logger.Warn("Course details unavailable, keeping stored details",
				"course", course.ID, "error", err)
			out.Status = StatusSkipped
			out.Err = err
		}

		if err := c.persist(ctx, record, out.Status); err != nil {
			switch {
			case ctx.Err() != nil:
				return out, backoff.Permanent(ctx.Err())
			case writer.IsPermanent(err):
				return out, backoff.Permanent(fmt.Errorf("failed to persist course %s: %w", course.ID, err))
			default:
				return out, fmt.Errorf("failed to persist course %s: %w", course.ID, err)
			}
		}
		return out, nil
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxElapsedTime(c.maxElapsedTime),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.metrics.RecordFetchRetry(ctx)
			c.logger.Debug("Retrying course synchronization",
				"course", course.ID, "attempt", attempts, "next_in", next, "error", err)
		}),
	}
	if c.maxTries > 0 {
		opts = append(opts, backoff.WithMaxTries(c.maxTries))
	}

	out, err := backoff.Retry(ctx, operation, opts...)
	if err != nil {
		return Outcome{CourseID: course.ID, Status: StatusFailed, Err: err}, attempts
	}
	return out, attempts
}

// persist writes the record. A skipped course only refreshes its times so details
// stored by an earlier run survive a transient refusal from Celcat.
func (c *Coordinator) persist(ctx context.Context, record models.CourseRecord, status Status) error {
	if status == StatusSkipped {
		return c.sink.UpsertCourseTimes(ctx, record)
	}
	return c.sink.UpsertCourse(ctx, record)
}

func (c *Coordinator) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval
	return b
}

// applyDetails copies the descriptive fields of an event onto a record
func applyDetails(record *models.CourseRecord, d celcat.Details) {
	record.Category = d.Category
	record.Module = d.Module
	record.Room = d.Room
	record.Teacher = d.Teacher
	record.Description = d.Description
}
