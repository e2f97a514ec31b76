// Package writer contains the persistence side of a sync run: course upserts,
// per-group association imports and the student directory.
package writer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cyrel-edt/cyrel/internal/models"
)

// ErrInvalidCourse is returned for course records the store can never accept
var ErrInvalidCourse = errors.New("invalid course record")

// IsPermanent reports whether retrying a write that failed with err cannot succeed:
// invalid records, and Postgres data exceptions (class 22), integrity violations
// (class 23) and syntax or access errors (class 42). Connection and transaction
// failures are transient.
func IsPermanent(err error) bool {
	if errors.Is(err, ErrInvalidCourse) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || len(pgErr.Code) < 2 {
		return false
	}
	switch pgErr.Code[:2] {
	case "22", "23", "42":
		return true
	default:
		return false
	}
}

//go:generate mockgen -destination=mocks/mock_writer.go -package=mocks -source=writer.go CourseWriter,GroupWriter,GroupImport,StudentWriter

// CourseWriter persists course detail records.
type CourseWriter interface {
	// UpsertCourse creates or overwrites the course keyed by its ID. Calling it
	// twice with the same record leaves the store unchanged.
	UpsertCourse(ctx context.Context, course models.CourseRecord) error
	// UpsertCourseTimes creates the course with only its times, or updates the
	// times of an existing course and leaves its details untouched.
	UpsertCourseTimes(ctx context.Context, course models.CourseRecord) error
}

// GroupWriter opens association imports for groups.
type GroupWriter interface {
	// BeginGroupImport starts a transaction scoped to one group. Nothing done
	// through the returned handle is visible to readers until Commit.
	BeginGroupImport(ctx context.Context, groupID int32) (GroupImport, error)
}

// GroupImport is a transactional rewrite of one group's course associations.
// AddCourse may be called from several goroutines.
type GroupImport interface {
	// ClearCourses removes every association the group currently has.
	ClearCourses(ctx context.Context) (int64, error)
	// AddCourse associates the course with the group. The course must exist.
	AddCourse(ctx context.Context, courseID string) error
	// Commit makes the rewrite visible.
	Commit(ctx context.Context) error
	// Rollback discards the rewrite. It is a no-op after Commit.
	Rollback(ctx context.Context) error
}

// StudentWriter persists the student directory.
type StudentWriter interface {
	// StoreStudents upserts all students in a single transaction.
	StoreStudents(ctx context.Context, students []models.Student) error
}

// SyncWriter is a store accepting every kind of sync output.
type SyncWriter interface {
	CourseWriter
	GroupWriter
	StudentWriter
}
