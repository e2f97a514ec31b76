// Package coordinator deduplicates course detail fetches across concurrent group imports.
//
// During a synchronization run every group import walks its calendar and asks the
// coordinator to make sure each course has an up to date detail record before it
// records the group/course association. Many groups share courses, so the same
// course is requested many times, often concurrently. The coordinator guarantees
// that a course is fetched from Celcat and persisted at most once per run, and that
// every requester observes the outcome of that single fetch.
//
// # Architecture
//
// A Coordinator owns one dispatch goroutine that reads requests from a bounded
// channel, one at a time, in arrival order. It is the only goroutine that touches
// the course -> gate table, so the table needs no lock:
//
//   - first request for a course: create a gate.Gate, start a worker that holds
//     the gate's Opener and the requester's reply channel
//   - later requests: start a waiter that blocks on the gate and forwards its
//     outcome to the requester
//
// The dispatch goroutine never performs I/O. Workers fetch with exponential
// backoff (cenkalti/backoff) and always open their gate, whatever the result.
//
// # Outcomes
//
// Every reply carries an Outcome:
//
//   - StatusSuccess: details fetched and persisted
//   - StatusSkipped: Celcat answered with a permanent error for this course; its
//     times were persisted, details stored by an earlier run were kept, and the
//     course is usable
//   - StatusFailed: retries were abandoned (context done, retry budget spent) or
//     the store rejected the record for good (see writer.IsPermanent); nothing can
//     be assumed about the record and callers must abort
//
// A gate is opened with StatusFailed rather than left pending, so duplicate
// requests for a failed course never block.
//
// # Backpressure
//
// Producers suspend in Request when the channel is full. The channel capacity
// (WithBufferSize, default 100) bounds how far producers run ahead of dispatch.
//
// # Lifecycle
//
// A Coordinator lives for one run:
//
//	c := coordinator.New(celcatClient, courseStore)
//	c.Start(ctx)
//	// producers call c.Ensure(ctx, course) concurrently
//	c.Close()
//	stats := c.Wait()
//
// Close stops accepting requests. Requests already queued are still served,
// while producers blocked on a full channel get ErrClosed. Wait returns after
// the request channel is drained and every worker and waiter finished.
package coordinator
