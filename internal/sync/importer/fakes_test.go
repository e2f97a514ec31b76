package importer

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cyrel-edt/cyrel/internal/celcat"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/status"
	"github.com/cyrel-edt/cyrel/internal/sync/writer"
)

func ptr[T any](v T) *T { return &v }

var monday = time.Date(2024, 10, 7, 8, 0, 0, 0, time.UTC)

func course(id string) celcat.Course {
	end := celcat.DateTime{Time: monday.Add(2 * time.Hour)}
	return celcat.Course{ID: id, Start: celcat.DateTime{Time: monday}, End: &end}
}

// fakeClient serves calendars per referent and counts event fetches per course
type fakeClient struct {
	mu sync.Mutex

	calendars    map[string][]celcat.Course
	calendarErrs map[string][]error
	eventErrs    map[string]error

	calendarCalls map[string]int
	fetches       map[string]int
	lastRequest   celcat.CalendarRequest
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		calendars:     map[string][]celcat.Course{},
		calendarErrs:  map[string][]error{},
		eventErrs:     map[string]error{},
		calendarCalls: map[string]int{},
		fetches:       map[string]int{},
	}
}

func (f *fakeClient) FetchCalendar(_ context.Context, req celcat.CalendarRequest) ([]celcat.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calendarCalls[req.FederationIDs]++
	f.lastRequest = req
	if errs := f.calendarErrs[req.FederationIDs]; len(errs) > 0 {
		f.calendarErrs[req.FederationIDs] = errs[1:]
		return nil, errs[0]
	}
	return f.calendars[req.FederationIDs], nil
}

func (f *fakeClient) FetchEvent(_ context.Context, courseID string) (*celcat.Event, error) {
	f.mu.Lock()
	f.fetches[courseID]++
	err := f.eventErrs[courseID]
	f.mu.Unlock()

	// Let concurrent duplicates pile up behind the gate
	time.Sleep(5 * time.Millisecond)

	if err != nil {
		return nil, err
	}
	return &celcat.Event{Elements: []celcat.Element{
		{Label: celcat.LabelModule, Content: ptr("Module " + courseID)},
	}}, nil
}

func (f *fakeClient) fetchCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[id]
}

// memStore is an in-memory store with transactional group imports
type memStore struct {
	mu      sync.Mutex
	courses map[string]models.CourseRecord
	groups  map[int32]map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		courses: map[string]models.CourseRecord{},
		groups:  map[int32]map[string]bool{},
	}
}

func (m *memStore) UpsertCourse(_ context.Context, c models.CourseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[c.ID] = c
	return nil
}

// UpsertCourseTimes creates the course when missing and otherwise only moves it
func (m *memStore) UpsertCourseTimes(_ context.Context, c models.CourseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.courses[c.ID]
	if !ok {
		m.courses[c.ID] = models.CourseRecord{ID: c.ID, Start: c.Start, End: c.End}
		return nil
	}
	stored.Start, stored.End = c.Start, c.End
	m.courses[c.ID] = stored
	return nil
}

func (m *memStore) BeginGroupImport(_ context.Context, groupID int32) (writer.GroupImport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := maps.Clone(m.groups[groupID])
	if staged == nil {
		staged = map[string]bool{}
	}
	return &memImport{store: m, group: groupID, staged: staged}, nil
}

func (m *memStore) associations(groupID int32) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.groups[groupID]))
}

type memImport struct {
	mu     sync.Mutex
	store  *memStore
	group  int32
	staged map[string]bool
	done   bool
}

func (i *memImport) ClearCourses(context.Context) (int64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	n := int64(len(i.staged))
	i.staged = map[string]bool{}
	return n, nil
}

func (i *memImport) AddCourse(_ context.Context, courseID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.store.mu.Lock()
	_, ok := i.store.courses[courseID]
	i.store.mu.Unlock()
	if !ok {
		return fmt.Errorf("course %s does not exist", courseID)
	}
	i.staged[courseID] = true
	return nil
}

func (i *memImport) Commit(context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.done {
		return fmt.Errorf("transaction closed")
	}
	i.done = true

	i.store.mu.Lock()
	i.store.groups[i.group] = i.staged
	i.store.mu.Unlock()
	return nil
}

func (i *memImport) Rollback(context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.done = true
	return nil
}

// pooledStore bounds memStore by a fixed number of connections. A group import
// holds its connection until Commit or Rollback, like a pgx transaction.
type pooledStore struct {
	*memStore
	conns chan struct{}
}

func newPooledStore(size int) *pooledStore {
	return &pooledStore{memStore: newMemStore(), conns: make(chan struct{}, size)}
}

func (p *pooledStore) acquire(ctx context.Context) (func(), error) {
	select {
	case p.conns <- struct{}{}:
		return sync.OnceFunc(func() { <-p.conns }), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *pooledStore) UpsertCourse(ctx context.Context, c models.CourseRecord) error {
	release, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return p.memStore.UpsertCourse(ctx, c)
}

func (p *pooledStore) UpsertCourseTimes(ctx context.Context, c models.CourseRecord) error {
	release, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return p.memStore.UpsertCourseTimes(ctx, c)
}

func (p *pooledStore) BeginGroupImport(ctx context.Context, groupID int32) (writer.GroupImport, error) {
	release, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	imp, err := p.memStore.BeginGroupImport(ctx, groupID)
	if err != nil {
		release()
		return nil, err
	}
	return &pooledImport{GroupImport: imp, release: release}, nil
}

type pooledImport struct {
	writer.GroupImport
	release func()
}

func (i *pooledImport) Commit(ctx context.Context) error {
	defer i.release()
	return i.GroupImport.Commit(ctx)
}

func (i *pooledImport) Rollback(ctx context.Context) error {
	defer i.release()
	return i.GroupImport.Rollback(ctx)
}

// fakeState records run transitions
type fakeState struct {
	mu       sync.Mutex
	started  []*status.SyncRun
	finished []status.SyncRun
}

func (*fakeState) Initialize(context.Context) error { return nil }

func (f *fakeState) StartRun(_ context.Context, kind status.SyncKind) (*status.SyncRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run := status.NewSyncRun(kind, time.Now())
	f.started = append(f.started, run)
	return run, nil
}

func (f *fakeState) FinishRun(_ context.Context, run *status.SyncRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished = append(f.finished, *run)
	return nil
}

func (f *fakeState) LatestRun(context.Context, status.SyncKind) (*status.SyncRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.finished) == 0 {
		return nil, fmt.Errorf("none")
	}
	run := f.finished[len(f.finished)-1]
	return &run, nil
}

type staticGroups []models.GroupReferent

func (s staticGroups) ListGroupReferents(context.Context) ([]models.GroupReferent, error) {
	return s, nil
}

type failingGroups struct{ err error }

func (f failingGroups) ListGroupReferents(context.Context) ([]models.GroupReferent, error) {
	return nil, f.err
}
