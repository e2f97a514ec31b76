package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// DefaultInterval is used when no interval is configured
	DefaultInterval = 6 * time.Hour
	// defaultJitter is the fraction of the interval randomly added or removed
	defaultJitter = 0.1
)

// ErrAlreadyStarted is returned by Start when the loop is already running
var ErrAlreadyStarted = errors.New("scheduler: already started")

// Job is a unit of periodic work
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Run calls f(ctx)
func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Scheduler runs a job on a jittered interval
type Scheduler struct {
	job        Job
	interval   time.Duration
	jitter     float64
	runOnStart bool
	logger     *slog.Logger

	mu         sync.Mutex
	started    bool
	cancelFunc context.CancelFunc
	done       chan struct{}
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithInterval sets the base interval between runs
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithJitter sets the fraction of the interval used as random offset, clamped to [0, 0.5]
func WithJitter(fraction float64) Option {
	return func(s *Scheduler) {
		s.jitter = min(max(fraction, 0), 0.5)
	}
}

// WithRunOnStart controls whether Start runs the job immediately
func WithRunOnStart(run bool) Option {
	return func(s *Scheduler) {
		s.runOnStart = run
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scheduler for job
func New(job Job, opts ...Option) *Scheduler {
	s := &Scheduler{
		job:        job,
		interval:   DefaultInterval,
		jitter:     defaultJitter,
		runOnStart: true,
		logger:     slog.Default(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// nextInterval returns the base interval shifted by a random offset within ±jitter
func (s *Scheduler) nextInterval() time.Duration {
	spread := time.Duration(float64(s.interval) * s.jitter)
	if spread <= 0 {
		return s.interval
	}
	//nolint:gosec // G404: Non-cryptographic randomness is sufficient for scheduling jitter
	offset := time.Duration(rand.Int64N(int64(2*spread))) - spread
	return s.interval + offset
}

// Start runs the loop until ctx is cancelled or Stop is called
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		close(s.done)
		s.logger.Info("Sync scheduler stopped")
	}()

	s.logger.Info("Starting sync scheduler", "interval", s.interval, "jitter", s.jitter)

	if s.runOnStart {
		s.runOnce(loopCtx)
	}

	timer := time.NewTimer(s.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			s.runOnce(loopCtx)
			timer.Reset(s.nextInterval())
		case <-loopCtx.Done():
			return nil
		}
	}
}

// Stop cancels the loop and waits for it to return. It is a no-op before Start.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	cancel := s.cancelFunc
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	s.logger.Info("Stopping sync scheduler")
	cancel()
	<-s.done
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := s.job.Run(ctx); err != nil {
		s.logger.Error("Scheduled sync failed", "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Info("Scheduled sync finished", "duration", time.Since(start))
}
