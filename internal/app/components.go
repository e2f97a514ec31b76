package app

import (
	"github.com/cyrel-edt/cyrel/internal/service"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
)

// AppComponents groups the storage-backed components shared by the server and sync commands
//
//nolint:revive // This name is fine
type AppComponents struct {
	// TimetableService serves the API
	TimetableService service.TimetableService

	// RunState records sync runs
	RunState state.RunStateService

	// Jobs runs course and student imports
	Jobs *SyncJobs
}
