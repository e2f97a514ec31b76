package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyrel-edt/cyrel/internal/db/sqlc"
	"github.com/cyrel-edt/cyrel/internal/models"
)

// DBWriter implements the writer interfaces on top of a Postgres pool.
type DBWriter struct {
	pool *pgxpool.Pool
}

var (
	_ CourseWriter  = (*DBWriter)(nil)
	_ GroupWriter   = (*DBWriter)(nil)
	_ StudentWriter = (*DBWriter)(nil)
	_ SyncWriter    = (*DBWriter)(nil)
)

// NewDBWriter creates a new DBWriter with the given connection pool.
// The caller is responsible for closing the pool when done.
func NewDBWriter(pool *pgxpool.Pool) (*DBWriter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &DBWriter{pool: pool}, nil
}

// UpsertCourse implements CourseWriter.
func (d *DBWriter) UpsertCourse(ctx context.Context, course models.CourseRecord) error {
	if course.ID == "" {
		return fmt.Errorf("%w: course id is required", ErrInvalidCourse)
	}

	err := sqlc.New(d.pool).UpsertCourse(ctx, sqlc.UpsertCourseParams{
		ID:          course.ID,
		StartTime:   course.Start,
		EndTime:     course.End,
		Category:    course.Category,
		Module:      course.Module,
		Room:        course.Room,
		Teacher:     course.Teacher,
		Description: course.Description,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert course %s: %w", course.ID, err)
	}
	return nil
}

// UpsertCourseTimes implements CourseWriter.
func (d *DBWriter) UpsertCourseTimes(ctx context.Context, course models.CourseRecord) error {
	if course.ID == "" {
		return fmt.Errorf("%w: course id is required", ErrInvalidCourse)
	}

	err := sqlc.New(d.pool).UpsertCourseTimes(ctx, sqlc.UpsertCourseTimesParams{
		ID:        course.ID,
		StartTime: course.Start,
		EndTime:   course.End,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert times of course %s: %w", course.ID, err)
	}
	return nil
}

// BeginGroupImport implements GroupWriter.
func (d *DBWriter) BeginGroupImport(ctx context.Context, groupID int32) (GroupImport, error) {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for group %d: %w", groupID, err)
	}

	return &dbGroupImport{
		tx:      tx,
		queries: sqlc.New(tx),
		groupID: groupID,
	}, nil
}

// dbGroupImport serializes statements on its transaction, since a pgx.Tx
// holds a single connection.
type dbGroupImport struct {
	mu      sync.Mutex
	tx      pgx.Tx
	queries *sqlc.Queries
	groupID int32
}

func (g *dbGroupImport) ClearCourses(ctx context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.queries.DeleteGroupCourses(ctx, g.groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear courses of group %d: %w", g.groupID, err)
	}
	return n, nil
}

func (g *dbGroupImport) AddCourse(ctx context.Context, courseID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.queries.InsertGroupCourse(ctx, sqlc.InsertGroupCourseParams{
		GroupID:  g.groupID,
		CourseID: courseID,
	})
	if err != nil {
		return fmt.Errorf("failed to associate course %s with group %d: %w", courseID, g.groupID, err)
	}
	return nil
}

func (g *dbGroupImport) Commit(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit group %d: %w", g.groupID, err)
	}
	return nil
}

func (g *dbGroupImport) Rollback(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to roll back group %d: %w", g.groupID, err)
	}
	return nil
}

// StoreStudents implements StudentWriter.
func (d *DBWriter) StoreStudents(ctx context.Context, students []models.Student) error {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("Failed to roll back student import", "error", rollbackErr)
		}
	}()

	querier := sqlc.New(tx)
	for _, s := range students {
		err := querier.UpsertCelcatStudent(ctx, sqlc.UpsertCelcatStudentParams{
			ID:         s.ID,
			Firstname:  s.Firstname,
			Lastname:   s.Lastname,
			Department: s.Department,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert student %d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
