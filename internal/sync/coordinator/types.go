package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/cyrel-edt/cyrel/internal/celcat"
	"github.com/cyrel-edt/cyrel/internal/models"
)

//go:generate mockgen -destination=mocks/mock_coordinator.go -package=mocks -source=types.go EventFetcher,CourseSink

var (
	// ErrClosed is returned by Request and Ensure once Close was called
	ErrClosed = errors.New("coordinator: closed")

	// ErrAlreadyStarted is returned by Start when the dispatch loop already runs
	ErrAlreadyStarted = errors.New("coordinator: already started")
)

// EventFetcher fetches the detail record of a course
type EventFetcher interface {
	FetchEvent(ctx context.Context, courseID string) (*celcat.Event, error)
}

// CourseSink persists course records. Both methods must be idempotent.
type CourseSink interface {
	UpsertCourse(ctx context.Context, course models.CourseRecord) error
	// UpsertCourseTimes creates the course if missing, otherwise updates only its times
	UpsertCourseTimes(ctx context.Context, course models.CourseRecord) error
}

// Status is the result class of one authoritative fetch
type Status int

const (
	// StatusSuccess means the details were fetched and persisted
	StatusSuccess Status = iota
	// StatusSkipped means Celcat refused the course permanently; the course exists with its
	// times and keeps any details stored before
	StatusSkipped
	// StatusFailed means retries were abandoned and the record state is unknown
	StatusFailed
)

// String returns the lowercase name used in logs and metrics
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is what every requester of a course observes
type Outcome struct {
	CourseID string
	Status   Status
	// Err is the cause for StatusSkipped and StatusFailed
	Err error
}

// OK reports whether the course record can be relied upon
func (o Outcome) OK() bool {
	return o.Status != StatusFailed
}

// CourseRef identifies a course as listed in a calendar
type CourseRef struct {
	ID    string
	Start time.Time
	End   *time.Time
}

// CourseRefFromCalendar converts a calendar entry
func CourseRefFromCalendar(c celcat.Course) CourseRef {
	return CourseRef{ID: c.ID, Start: c.Start.Time, End: c.EndTime()}
}

// Stats summarizes a finished run
type Stats struct {
	Requests  int
	Distinct  int
	DedupHits int
	Skipped   int
	Failed    int
}

type request struct {
	course CourseRef
	reply  chan<- Outcome
}
