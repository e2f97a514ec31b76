package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collectSync gathers the metrics of the sync scope keyed by instrument name
func collectSync(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, scope := range rm.ScopeMetrics {
		if scope.Scope.Name != SyncMetricsMeterName {
			continue
		}
		for _, m := range scope.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewSyncMetrics(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when provider is nil", func(t *testing.T) {
		t.Parallel()

		metrics, err := NewSyncMetrics(nil)
		require.NoError(t, err)
		assert.Nil(t, metrics)
	})

	t.Run("creates metrics with SDK provider", func(t *testing.T) {
		t.Parallel()

		mp := sdkmetric.NewMeterProvider()
		defer func() { _ = mp.Shutdown(context.Background()) }()

		metrics, err := NewSyncMetrics(mp)
		require.NoError(t, err)
		require.NotNil(t, metrics)
		assert.NotNil(t, metrics.courseFetches)
		assert.NotNil(t, metrics.fetchRetries)
		assert.NotNil(t, metrics.dedupHits)
		assert.NotNil(t, metrics.groupDuration)
		assert.NotNil(t, metrics.runDuration)
	})
}

func TestSyncMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var metrics *SyncMetrics
	ctx := context.Background()
	// Should not panic
	metrics.RecordCourseFetch(ctx, "success")
	metrics.RecordFetchRetry(ctx)
	metrics.RecordDedupHit(ctx)
	metrics.RecordGroupDuration(ctx, time.Second, true)
	metrics.RecordRunDuration(ctx, "courses", time.Second, false)
}

func TestSyncMetrics_Counters(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewSyncMetrics(mp)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordCourseFetch(ctx, "success")
	metrics.RecordCourseFetch(ctx, "success")
	metrics.RecordCourseFetch(ctx, "skipped")
	metrics.RecordFetchRetry(ctx)
	metrics.RecordDedupHit(ctx)
	metrics.RecordDedupHit(ctx)
	metrics.RecordDedupHit(ctx)

	got := collectSync(t, reader)

	fetches, ok := got["cyrel_sync_course_fetches_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected sum data type")
	byOutcome := map[string]int64{}
	for _, dp := range fetches.DataPoints {
		outcome, _ := dp.Attributes.Value("outcome")
		byOutcome[outcome.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"success": 2, "skipped": 1}, byOutcome)

	dedup, ok := got["cyrel_sync_dedup_hits_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, dedup.DataPoints, 1)
	assert.Equal(t, int64(3), dedup.DataPoints[0].Value)

	retries, ok := got["cyrel_sync_course_fetch_retries_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, retries.DataPoints, 1)
	assert.Equal(t, int64(1), retries.DataPoints[0].Value)
}

func TestSyncMetrics_Durations(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	metrics, err := NewSyncMetrics(mp)
	require.NoError(t, err)

	metrics.RecordGroupDuration(context.Background(), 1500*time.Millisecond, true)
	metrics.RecordRunDuration(context.Background(), "courses", 90*time.Second, true)

	got := collectSync(t, reader)

	group, ok := got["cyrel_sync_group_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected histogram data type")
	require.NotEmpty(t, group.DataPoints)
	assert.InDelta(t, 1.5, group.DataPoints[0].Sum, 0.001)

	run, ok := got["cyrel_sync_run_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.NotEmpty(t, run.DataPoints)
	assert.InDelta(t, 90.0, run.DataPoints[0].Sum, 0.001)
	kind, _ := run.DataPoints[0].Attributes.Value("kind")
	assert.Equal(t, "courses", kind.AsString())
}
