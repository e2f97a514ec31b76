package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/cyrel-edt/cyrel/internal/sync/gate"
	"github.com/cyrel-edt/cyrel/internal/telemetry"
)

const (
	// DefaultBufferSize is the default capacity of the request channel
	DefaultBufferSize = 100

	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxInterval     = 60 * time.Second
)

// Coordinator deduplicates course fetches for the duration of one run
type Coordinator struct {
	fetcher EventFetcher
	sink    CourseSink

	bufferSize      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	maxTries        uint

	logger  *slog.Logger
	metrics *telemetry.SyncMetrics
	tracer  trace.Tracer

	requests chan request

	// mu orders the closed flag against senders registering in senders.
	// Close closes requests only after every registered sender left.
	mu      sync.RWMutex
	closed  bool
	closing chan struct{}
	senders sync.WaitGroup

	started atomic.Bool
	done    chan struct{}

	skipped atomic.Int64
	failed  atomic.Int64
	stats   Stats
}

// Option is a function that configures the coordinator
type Option func(*Coordinator)

// WithBufferSize sets the capacity of the request channel
func WithBufferSize(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// WithBackoff sets the first and the largest delay between fetch attempts
func WithBackoff(initial, maxInterval time.Duration) Option {
	return func(c *Coordinator) {
		if initial > 0 {
			c.initialInterval = initial
		}
		if maxInterval > 0 {
			c.maxInterval = maxInterval
		}
	}
}

// WithMaxElapsedTime gives up on a course after d. Zero, the default, retries until the context ends.
func WithMaxElapsedTime(d time.Duration) Option {
	return func(c *Coordinator) {
		c.maxElapsedTime = d
	}
}

// WithMaxTries caps the number of attempts per course. Zero means no cap.
func WithMaxTries(n uint) Option {
	return func(c *Coordinator) {
		c.maxTries = n
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithSyncMetrics sets the sync metrics for the coordinator
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(c *Coordinator) {
		c.metrics = metrics
	}
}

// WithTracer sets the tracer used for worker spans
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		c.tracer = tracer
	}
}

// New creates a coordinator for one synchronization run
func New(fetcher EventFetcher, sink CourseSink, opts ...Option) *Coordinator {
	c := &Coordinator{
		fetcher:         fetcher,
		sink:            sink,
		bufferSize:      DefaultBufferSize,
		initialInterval: defaultInitialInterval,
		maxInterval:     defaultMaxInterval,
		logger:          slog.Default(),
		done:            make(chan struct{}),
		closing:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.requests = make(chan request, c.bufferSize)
	return c
}

// Start runs the dispatch loop in the background. ctx bounds every worker and waiter.
func (c *Coordinator) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	go c.run(ctx)
	return nil
}

// Close stops accepting requests. Requests already queued are still served;
// senders still blocked on a full channel get ErrClosed. Close never waits for
// the dispatch loop.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.closing)
	c.mu.Unlock()

	c.senders.Wait()
	close(c.requests)
}

// Wait blocks until the loop drained the closed channel and every worker and waiter returned
func (c *Coordinator) Wait() Stats {
	<-c.done
	return c.stats
}

// Done returns a channel closed when Wait would return
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// Request queues a course and returns a single-use channel that yields its outcome.
// It blocks while the request channel is full.
func (c *Coordinator) Request(ctx context.Context, course CourseRef) (<-chan Outcome, error) {
	reply := make(chan Outcome, 1)

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrClosed
	}
	c.senders.Add(1)
	c.mu.RUnlock()
	defer c.senders.Done()

	select {
	case c.requests <- request{course: course, reply: reply}:
		return reply, nil
	case <-c.closing:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Ensure requests a course and waits for its outcome. It returns nil when the course
// record can be relied upon, and an error when the caller must abort.
func (c *Coordinator) Ensure(ctx context.Context, course CourseRef) error {
	reply, err := c.Request(ctx, course)
	if err != nil {
		return err
	}

	select {
	case out := <-reply:
		if !out.OK() {
			return fmt.Errorf("course %s not synchronized: %w", course.ID, out.Err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the single writer of the gate table
func (c *Coordinator) run(ctx context.Context) {
	defer close(c.done)

	gates := make(map[string]*gate.Gate[Outcome])
	var (
		wg        sync.WaitGroup
		requests  int
		dedupHits int
	)

	c.logger.Debug("Course coordinator started", "buffer_size", c.bufferSize)

	for req := range c.requests {
		requests++

		if g, ok := gates[req.course.ID]; ok {
			dedupHits++
			c.metrics.RecordDedupHit(ctx)
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.await(ctx, g, req)
			}()
			continue
		}

		g, opener := gate.New[Outcome]()
		gates[req.course.ID] = g
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.work(ctx, req, opener)
		}()
	}

	wg.Wait()

	c.stats = Stats{
		Requests:  requests,
		Distinct:  len(gates),
		DedupHits: dedupHits,
		Skipped:   int(c.skipped.Load()),
		Failed:    int(c.failed.Load()),
	}
	c.logger.Info("Course coordinator finished",
		"requests", c.stats.Requests,
		"courses", c.stats.Distinct,
		"dedup_hits", c.stats.DedupHits,
		"skipped", c.stats.Skipped,
		"failed", c.stats.Failed)
}

// await forwards the outcome of an existing gate to a duplicate requester
func (*Coordinator) await(ctx context.Context, g *gate.Gate[Outcome], req request) {
	out, err := g.Wait(ctx)
	if err != nil {
		out = Outcome{CourseID: req.course.ID, Status: StatusFailed, Err: err}
	}
	req.reply <- out
}
