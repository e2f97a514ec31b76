package status

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncRunLifecycle(t *testing.T) {
	t.Parallel()

	started := time.Date(2024, 9, 2, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		err         error
		wantPhase   SyncPhase
		wantMessage string
	}{
		{name: "success", wantPhase: SyncPhaseComplete},
		{name: "failure", err: errors.New("2 groups failed"), wantPhase: SyncPhaseFailed, wantMessage: "2 groups failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			run := NewSyncRun(SyncKindCourses, started)
			assert.NotEqual(t, uuid.Nil, run.ID)
			assert.Equal(t, SyncPhaseSyncing, run.Phase)
			assert.Zero(t, run.Duration())

			run.Finish(started.Add(90*time.Second), tt.err)
			assert.Equal(t, tt.wantPhase, run.Phase)
			assert.Equal(t, tt.wantMessage, run.Message)
			require.NotNil(t, run.FinishedAt)
			assert.Equal(t, 90*time.Second, run.Duration())
		})
	}
}

func TestSyncKindValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SyncKindCourses.Valid())
	assert.True(t, SyncKindStudents.Valid())
	assert.False(t, SyncKind("teachers").Valid())
	assert.False(t, SyncKind("").Valid())
}
