// Package gate provides a one-shot completion signal shared by many waiters.
//
// A Gate starts pending. The single Opener returned by New moves it to opened
// exactly once and publishes an outcome. Every waiter, including those that
// arrive after the gate opened, observes the same outcome.
package gate

import (
	"context"
	"sync/atomic"
)

// Gate is a pending-or-opened signal carrying an outcome of type T
type Gate[T any] struct {
	done    chan struct{}
	outcome T
}

// Opener is the exclusive right to open one Gate
type Opener[T any] struct {
	gate   *Gate[T]
	opened atomic.Bool
}

// New returns a pending gate and its opener
func New[T any]() (*Gate[T], *Opener[T]) {
	g := &Gate[T]{done: make(chan struct{})}
	return g, &Opener[T]{gate: g}
}

// Open publishes outcome and releases all current and future waiters.
// Opening a gate twice is a programming error and panics.
func (o *Opener[T]) Open(outcome T) {
	if !o.opened.CompareAndSwap(false, true) {
		panic("gate: opened twice")
	}
	o.gate.outcome = outcome
	close(o.gate.done)
}

// Wait blocks until the gate opens or ctx is done. It returns immediately when
// the gate is already open, even if ctx is done.
func (g *Gate[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-g.done:
		return g.outcome, nil
	default:
	}

	select {
	case <-g.done:
		return g.outcome, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the gate opens
func (g *Gate[T]) Done() <-chan struct{} {
	return g.done
}

// IsOpen reports whether the gate has been opened
func (g *Gate[T]) IsOpen() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}
