package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/cyrel-edt/cyrel/internal/app/storage/mocks"
	"github.com/cyrel-edt/cyrel/internal/config"
	svcmocks "github.com/cyrel-edt/cyrel/internal/service/mocks"
	statemocks "github.com/cyrel-edt/cyrel/internal/sync/state/mocks"
	writermocks "github.com/cyrel-edt/cyrel/internal/sync/writer/mocks"
)

// syncWriterMock combines the writer mocks into a writer.SyncWriter
type syncWriterMock struct {
	*writermocks.MockCourseWriter
	*writermocks.MockGroupWriter
	*writermocks.MockStudentWriter
}

func newSyncWriterMock(ctrl *gomock.Controller) *syncWriterMock {
	return &syncWriterMock{
		MockCourseWriter:  writermocks.NewMockCourseWriter(ctrl),
		MockGroupWriter:   writermocks.NewMockGroupWriter(ctrl),
		MockStudentWriter: writermocks.NewMockStudentWriter(ctrl),
	}
}

// testFactory is a mocked storage factory with its components
type testFactory struct {
	factory *mocks.MockFactory
	state   *statemocks.MockRunStateService
	svc     *svcmocks.MockTimetableService
	writer  *syncWriterMock
}

// newTestFactory expects one successful creation of every component
func newTestFactory(ctrl *gomock.Controller) *testFactory {
	f := &testFactory{
		factory: mocks.NewMockFactory(ctrl),
		state:   statemocks.NewMockRunStateService(ctrl),
		svc:     svcmocks.NewMockTimetableService(ctrl),
		writer:  newSyncWriterMock(ctrl),
	}
	f.factory.EXPECT().CreateStateService(gomock.Any()).Return(f.state, nil)
	f.state.EXPECT().Initialize(gomock.Any()).Return(nil)
	f.factory.EXPECT().CreateSyncWriter(gomock.Any()).Return(f.writer, nil)
	f.factory.EXPECT().CreateTimetableService(gomock.Any()).Return(f.svc, nil)
	return f
}

// testConfig returns a config whose token secret lives in a temp file
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	secretFile := filepath.Join(t.TempDir(), "jwt")
	require.NoError(t, os.WriteFile(secretFile, []byte("test-secret\n"), 0o600))

	return &config.Config{
		Auth:   &config.AuthConfig{SecretFile: secretFile},
		Celcat: &config.CelcatConfig{BaseURL: "http://celcat.invalid/calendar", Username: "sync"},
	}
}

func TestBaseConfig(t *testing.T) {
	t.Parallel()

	_, err := baseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")

	cfg, err := baseConfig(WithConfig(&config.Config{}))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.address)
	assert.Equal(t, defaultRequestTimeout, cfg.requestTimeout)
	assert.NotNil(t, cfg.clientFactory)

	cfg, err = baseConfig(WithConfig(&config.Config{Server: &config.ServerConfig{Address: "127.0.0.1:9000"}}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.address)

	failing := func(*appConfig) error { return errors.New("boom") }
	_, err = baseConfig(WithConfig(&config.Config{}), failing)
	assert.EqualError(t, err, "boom")
}

func TestWithAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr    string
		wantErr bool
	}{
		{addr: ":8080"},
		{addr: "localhost:8080"},
		{addr: "127.0.0.1:3000"},
		{addr: "[::1]:8080"},
		{addr: "", wantErr: true},
		{addr: "8080", wantErr: true},
		{addr: "localhost:", wantErr: true},
		{addr: "example.com:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			t.Parallel()

			cfg := &appConfig{}
			err := WithAddress(tt.addr)(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.addr, cfg.address)
		})
	}
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newTestFactory(ctrl)
	f.factory.EXPECT().Cleanup().Times(1)

	app, err := NewApp(context.Background(),
		WithConfig(testConfig(t)),
		WithStorageFactory(f.factory),
		WithAddress("127.0.0.1:0"),
	)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:0", app.GetHTTPServer().Addr)
	assert.Nil(t, app.scheduler, "no interval means no periodic sync")
	assert.NotNil(t, app.Jobs())
	assert.NotNil(t, app.GetConfig())

	require.NoError(t, app.Stop(0))
}

func TestNewApp_PeriodicSync(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newTestFactory(ctrl)
	f.factory.EXPECT().Cleanup()

	cfg := testConfig(t)
	cfg.Sync = &config.SyncConfig{Interval: "6h"}

	app, err := NewApp(context.Background(), WithConfig(cfg), WithStorageFactory(f.factory))
	require.NoError(t, err)
	assert.NotNil(t, app.scheduler)

	// Stop before Start must not wait on a scheduler that never ran
	require.NoError(t, app.Stop(0))
}

func TestNewApp_WithTelemetry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newTestFactory(ctrl)
	f.factory.EXPECT().Cleanup()

	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	app, err := NewApp(context.Background(),
		WithConfig(testConfig(t)),
		WithStorageFactory(f.factory),
		WithMeterProvider(mp),
		WithTracerProvider(tracenoop.NewTracerProvider()),
		WithMetricsHandler(metricsHandler),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop(0) })

	assert.NotNil(t, app.Jobs().metrics)
	assert.NotNil(t, app.Jobs().tracer)
}

func TestNewApp_Errors(t *testing.T) {
	t.Parallel()

	t.Run("state service failure cleans up", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)

		factory := mocks.NewMockFactory(ctrl)
		factory.EXPECT().CreateStateService(gomock.Any()).Return(nil, errors.New("db down"))
		factory.EXPECT().Cleanup().Times(1)

		_, err := NewApp(context.Background(), WithConfig(testConfig(t)), WithStorageFactory(factory))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})

	t.Run("initialize failure cleans up", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)

		factory := mocks.NewMockFactory(ctrl)
		stateSvc := statemocks.NewMockRunStateService(ctrl)
		factory.EXPECT().CreateStateService(gomock.Any()).Return(stateSvc, nil)
		stateSvc.EXPECT().Initialize(gomock.Any()).Return(errors.New("locked"))
		factory.EXPECT().Cleanup().Times(1)

		_, err := NewApp(context.Background(), WithConfig(testConfig(t)), WithStorageFactory(factory))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize sync state")
	})

	t.Run("unreadable token secret cleans up", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		f := newTestFactory(ctrl)
		f.factory.EXPECT().Cleanup().Times(1)

		cfg := testConfig(t)
		cfg.Auth.SecretFile = filepath.Join(t.TempDir(), "missing")

		_, err := NewApp(context.Background(), WithConfig(cfg), WithStorageFactory(f.factory))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read token secret")
	})
}

func TestNewWorker(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	f := newTestFactory(ctrl)
	f.factory.EXPECT().Cleanup().Times(1)

	// Workers never serve HTTP, so no token secret is needed
	worker, err := NewWorker(context.Background(),
		WithConfig(&config.Config{}),
		WithStorageFactory(f.factory),
	)
	require.NoError(t, err)
	assert.NotNil(t, worker.Jobs())

	worker.Close()
}
