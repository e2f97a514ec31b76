package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// SyncMetricsMeterName is the name used for the sync metrics meter
	SyncMetricsMeterName = "github.com/cyrel-edt/cyrel/sync"
)

// SyncMetrics holds the OpenTelemetry instruments for course synchronization.
// A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	courseFetches metric.Int64Counter
	fetchRetries  metric.Int64Counter
	dedupHits     metric.Int64Counter
	groupDuration metric.Float64Histogram
	runDuration   metric.Float64Histogram
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	courseFetches, err := meter.Int64Counter(
		"cyrel_sync_course_fetches_total",
		metric.WithDescription("Authoritative course detail fetches by outcome"),
		metric.WithUnit("{course}"),
	)
	if err != nil {
		return nil, err
	}

	fetchRetries, err := meter.Int64Counter(
		"cyrel_sync_course_fetch_retries_total",
		metric.WithDescription("Retried course detail fetch attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	dedupHits, err := meter.Int64Counter(
		"cyrel_sync_dedup_hits_total",
		metric.WithDescription("Course requests served by an existing in-flight or finished fetch"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	groupDuration, err := meter.Float64Histogram(
		"cyrel_sync_group_duration_seconds",
		metric.WithDescription("Duration of group imports in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"cyrel_sync_run_duration_seconds",
		metric.WithDescription("Duration of full synchronization runs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		courseFetches: courseFetches,
		fetchRetries:  fetchRetries,
		dedupHits:     dedupHits,
		groupDuration: groupDuration,
		runDuration:   runDuration,
	}, nil
}

// RecordCourseFetch counts one authoritative fetch with its final outcome
func (m *SyncMetrics) RecordCourseFetch(ctx context.Context, outcome string) {
	if m == nil || m.courseFetches == nil {
		return
	}
	m.courseFetches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordFetchRetry counts one retried attempt
func (m *SyncMetrics) RecordFetchRetry(ctx context.Context) {
	if m == nil || m.fetchRetries == nil {
		return
	}
	m.fetchRetries.Add(ctx, 1)
}

// RecordDedupHit counts one request attached to an existing gate
func (m *SyncMetrics) RecordDedupHit(ctx context.Context) {
	if m == nil || m.dedupHits == nil {
		return
	}
	m.dedupHits.Add(ctx, 1)
}

// RecordGroupDuration records the duration of one group import
func (m *SyncMetrics) RecordGroupDuration(ctx context.Context, duration time.Duration, success bool) {
	if m == nil || m.groupDuration == nil {
		return
	}
	m.groupDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.Bool("success", success)))
}

// RecordRunDuration records the duration of one synchronization run
func (m *SyncMetrics) RecordRunDuration(ctx context.Context, kind string, duration time.Duration, success bool) {
	if m == nil || m.runDuration == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("kind", kind),
		attribute.Bool("success", success),
	}
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
