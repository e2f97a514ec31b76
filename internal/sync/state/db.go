package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cyrel-edt/cyrel/internal/db/sqlc"
	"github.com/cyrel-edt/cyrel/internal/status"
)

// interruptedMessage is stored on runs that never reached a terminal phase
const interruptedMessage = "interrupted by process shutdown"

type dbStateService struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewDBStateService creates a new database-backed run state service
func NewDBStateService(pool *pgxpool.Pool) RunStateService {
	return &dbStateService{
		pool: pool,
		now:  time.Now,
	}
}

func (d *dbStateService) Initialize(ctx context.Context) error {
	n, err := sqlc.New(d.pool).FailStaleSyncRuns(ctx, interruptedMessage)
	if err != nil {
		return fmt.Errorf("failed to close stale sync runs: %w", err)
	}
	if n > 0 {
		slog.Warn("Marked interrupted sync runs as failed", "count", n)
	}
	return nil
}

func (d *dbStateService) StartRun(ctx context.Context, kind status.SyncKind) (*status.SyncRun, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown sync kind %q", kind)
	}

	run := status.NewSyncRun(kind, d.now().UTC())
	err := sqlc.New(d.pool).InsertSyncRun(ctx, sqlc.InsertSyncRunParams{
		ID:        run.ID,
		Kind:      string(run.Kind),
		Phase:     sqlc.SyncPhase(run.Phase),
		Message:   run.Message,
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record sync run: %w", err)
	}
	return run, nil
}

func (d *dbStateService) FinishRun(ctx context.Context, run *status.SyncRun) error {
	if run == nil {
		return fmt.Errorf("sync run is required")
	}
	if run.FinishedAt == nil {
		now := d.now().UTC()
		run.FinishedAt = &now
	}

	err := sqlc.New(d.pool).UpdateSyncRun(ctx, sqlc.UpdateSyncRunParams{
		ID:            run.ID,
		Phase:         sqlc.SyncPhase(run.Phase),
		Message:       run.Message,
		GroupsTotal:   clampInt32(run.GroupsTotal),
		GroupsFailed:  clampInt32(run.GroupsFailed),
		Courses:       clampInt32(run.Courses),
		CoursesFailed: clampInt32(run.CoursesFailed),
		FinishedAt:    run.FinishedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update sync run %s: %w", run.ID, err)
	}
	return nil
}

func (d *dbStateService) LatestRun(ctx context.Context, kind status.SyncKind) (*status.SyncRun, error) {
	row, err := sqlc.New(d.pool).GetLatestSyncRun(ctx, string(kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoRuns
		}
		return nil, err
	}
	return dbSyncRunToStatus(row), nil
}

func dbSyncRunToStatus(row sqlc.SyncRun) *status.SyncRun {
	return &status.SyncRun{
		ID:            row.ID,
		Kind:          status.SyncKind(row.Kind),
		Phase:         status.SyncPhase(row.Phase),
		Message:       row.Message,
		GroupsTotal:   int(row.GroupsTotal),
		GroupsFailed:  int(row.GroupsFailed),
		Courses:       int(row.Courses),
		CoursesFailed: int(row.CoursesFailed),
		StartedAt:     row.StartedAt,
		FinishedAt:    row.FinishedAt,
	}
}

func clampInt32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v) //nolint:gosec // bounded above
}
