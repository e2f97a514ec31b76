// Package storage creates the storage-dependent components of cyrel as a
// family sharing one Postgres pool: the run history, the sync writer and the
// timetable service.
package storage

import (
	"context"

	"github.com/cyrel-edt/cyrel/internal/service"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
	"github.com/cyrel-edt/cyrel/internal/sync/writer"
)

//go:generate mockgen -destination=mocks/mock_factory.go -package=mocks -source=factory.go Factory

// Factory creates storage-dependent components.
// It also owns the underlying resources until Cleanup is called.
type Factory interface {
	// CreateStateService creates the sync run history
	CreateStateService(ctx context.Context) (state.RunStateService, error)

	// CreateSyncWriter creates the writer used by course and student runs
	CreateSyncWriter(ctx context.Context) (writer.SyncWriter, error)

	// CreateTimetableService creates the service behind the API
	CreateTimetableService(ctx context.Context) (service.TimetableService, error)

	// Cleanup releases the resources held by the factory
	Cleanup()
}
