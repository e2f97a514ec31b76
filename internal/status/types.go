// Package status describes the lifecycle of sync runs.
package status

import (
	"time"

	"github.com/google/uuid"
)

// SyncPhase represents the current phase of a synchronization run
type SyncPhase string

const (
	// SyncPhaseSyncing means the run is in progress
	SyncPhaseSyncing SyncPhase = "Syncing"

	// SyncPhaseComplete means every unit of work succeeded
	SyncPhaseComplete SyncPhase = "Complete"

	// SyncPhaseFailed means at least one group failed or the run was aborted
	SyncPhaseFailed SyncPhase = "Failed"
)

// SyncKind identifies what a run imports
type SyncKind string

const (
	// SyncKindCourses imports the calendar of every group with a referent
	SyncKindCourses SyncKind = "courses"

	// SyncKindStudents imports the student directory
	SyncKindStudents SyncKind = "students"
)

// Valid reports whether k is a known kind
func (k SyncKind) Valid() bool {
	return k == SyncKindCourses || k == SyncKindStudents
}

// SyncRun is the persisted record of one run
type SyncRun struct {
	ID    uuid.UUID `json:"id"`
	Kind  SyncKind  `json:"kind"`
	Phase SyncPhase `json:"phase"`

	// Message holds the failure cause, or a short summary on success
	Message string `json:"message,omitempty"`

	GroupsTotal   int `json:"groupsTotal"`
	GroupsFailed  int `json:"groupsFailed"`
	Courses       int `json:"courses"`
	CoursesFailed int `json:"coursesFailed"`

	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// NewSyncRun returns a run in the Syncing phase
func NewSyncRun(kind SyncKind, now time.Time) *SyncRun {
	return &SyncRun{
		ID:        uuid.New(),
		Kind:      kind,
		Phase:     SyncPhaseSyncing,
		StartedAt: now,
	}
}

// Finish moves the run to its terminal phase
func (r *SyncRun) Finish(now time.Time, err error) {
	r.FinishedAt = &now
	if err != nil {
		r.Phase = SyncPhaseFailed
		r.Message = err.Error()
		return
	}
	r.Phase = SyncPhaseComplete
}

// Duration is the wall time of a finished run, or zero while it is running
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
