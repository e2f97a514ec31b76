// Package state contains logic for managing the sync run history which the server persists.
package state

import (
	"context"
	"errors"

	"github.com/cyrel-edt/cyrel/internal/status"
)

// ErrNoRuns is returned when no run of the requested kind was ever recorded.
var ErrNoRuns = errors.New("no sync run recorded")

// RunStateService records the lifecycle of sync runs.
//
//go:generate mockgen -destination=mocks/mock_run_state_service.go -package=mocks github.com/cyrel-edt/cyrel/internal/sync/state RunStateService
type RunStateService interface {
	// Initialize marks runs left in the Syncing phase by a previous process as failed.
	// It is intended that this is called at application startup.
	Initialize(ctx context.Context) error
	// StartRun persists a new run in the Syncing phase.
	StartRun(ctx context.Context, kind status.SyncKind) (*status.SyncRun, error)
	// FinishRun persists the terminal phase, counters and finish time of run.
	FinishRun(ctx context.Context, run *status.SyncRun) error
	// LatestRun returns the most recently started run of the given kind.
	LatestRun(ctx context.Context, kind status.SyncKind) (*status.SyncRun, error)
}
