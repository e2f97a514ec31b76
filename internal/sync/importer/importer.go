// Package importer runs synchronization passes from Celcat into the store.
//
// A course run lists every group with a referent student, then starts one
// producer per group. Each producer fetches its group's calendar, rewrites the
// group's course associations inside one transaction, and asks a
// coordinator.Coordinator to guarantee every course record before adding the
// association. The coordinator is built fresh for each run so the dedup table
// never outlives it.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cyrel-edt/cyrel/internal/celcat"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/sync/coordinator"
)

//go:generate mockgen -destination=mocks/mock_importer.go -package=mocks -source=importer.go CalendarClient,GroupLister,ResourceLister

// CalendarClient is the part of the Celcat client a course run needs
type CalendarClient interface {
	coordinator.EventFetcher
	FetchCalendar(ctx context.Context, req celcat.CalendarRequest) ([]celcat.Course, error)
}

// GroupLister lists the groups to synchronize
type GroupLister interface {
	ListGroupReferents(ctx context.Context) ([]models.GroupReferent, error)
}

// ResourceLister is the part of the Celcat client a student run needs
type ResourceLister interface {
	ListResources(ctx context.Context, req celcat.ResourceListRequest) (*celcat.ResourceList, error)
}

// GroupError reports the failure of one group import
type GroupError struct {
	GroupID int32
	Err     error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("group %d: %v", e.GroupID, e.Err)
}

func (e *GroupError) Unwrap() error {
	return e.Err
}

// RunSummary describes a finished course run
type RunSummary struct {
	RunID    uuid.UUID
	Groups   int
	Failed   []*GroupError
	Courses  coordinator.Stats
	Duration time.Duration
}

// Err returns nil when every group was imported, and the joined group errors otherwise
func (s *RunSummary) Err() error {
	if len(s.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(s.Failed))
	for _, f := range s.Failed {
		errs = append(errs, f)
	}
	return fmt.Errorf("%d of %d groups failed: %w", len(s.Failed), s.Groups, errors.Join(errs...))
}

// FailedGroups returns the ids of the groups that failed, in failure order
func (s *RunSummary) FailedGroups() []int32 {
	ids := make([]int32, 0, len(s.Failed))
	for _, f := range s.Failed {
		ids = append(ids, f.GroupID)
	}
	return ids
}

// String renders a one-line summary
func (s *RunSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d groups imported, %d courses (%d deduplicated requests",
		s.Groups-len(s.Failed), s.Groups, s.Courses.Distinct, s.Courses.DedupHits)
	if s.Courses.Skipped > 0 {
		fmt.Fprintf(&b, ", %d without details", s.Courses.Skipped)
	}
	if s.Courses.Failed > 0 {
		fmt.Fprintf(&b, ", %d failed", s.Courses.Failed)
	}
	fmt.Fprintf(&b, ") in %s", s.Duration.Round(time.Millisecond))
	return b.String()
}
