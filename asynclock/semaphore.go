// File: asynclock/semaphore.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Async counting semaphore adapter over lock.Semaphore. Down suspends
// while the count is zero; Up is synchronous and infallible. Because Down
// hands out no guard, the wake-one-waiter step runs inside Up instead of a
// guard release; the caller is responsible for matching every resolved
// Down with an Up.

package asynclock

import (
	"context"

	"github.com/momentics/hioload-lock/api"
	"github.com/momentics/hioload-lock/internal/waitlist"
	"github.com/momentics/hioload-lock/lock"
)

// Semaphore is a counting semaphore whose decrement suspends instead of
// spinning while the count is zero.
type Semaphore struct {
	waiters *waitlist.Registry
	sema    *lock.Semaphore
}

// NewSemaphore creates a semaphore with the given initial count.
func NewSemaphore(initial int) *Semaphore {
	return &Semaphore{
		waiters: waitlist.New(),
		sema:    lock.NewSemaphore(initial),
	}
}

// TryDown attempts the non-blocking decrement. It succeeds only while the
// count is greater than zero.
func (s *Semaphore) TryDown() bool {
	return s.sema.TryDown()
}

// Down requests a decrement. On fast-path success the returned future is
// already resolved; otherwise it carries a waiter id and suspends its
// poller until a matching Up wakes it.
func (s *Semaphore) Down() *DownFuture {
	f := &DownFuture{acquire[struct{}]{
		waiters: s.waiters,
		try: func() (struct{}, bool) {
			return struct{}{}, s.sema.TryDown()
		},
	}}
	if s.sema.TryDown() {
		f.done = true
		return f
	}
	f.id = s.waiters.NextID()
	return f
}

// Up increments the count, then wakes the pending waiter with the smallest
// id, if any. It never fails and has no upper bound; an Up without a
// matching Down silently grows the capacity.
func (s *Semaphore) Up() {
	s.sema.Up()
	s.waiters.WakeNext()
}

// Count returns a snapshot of the current count.
func (s *Semaphore) Count() int {
	return s.sema.Count()
}

// Pending returns the number of currently suspended decrements.
func (s *Semaphore) Pending() int {
	return s.waiters.Len()
}

// DownFuture is a pending decrement created by Semaphore.Down.
type DownFuture struct {
	acquire[struct{}]
}

// Poll retries the decrement; while the count is zero it records w and
// reports not ready. Terminal once it has reported ready.
func (f *DownFuture) Poll(w api.Waker) bool {
	_, ok := f.poll(w)
	return ok
}

// Await blocks the calling goroutine until the decrement succeeds or ctx
// is done. On ctx expiry the acquisition is cancelled and ctx.Err returned.
func (f *DownFuture) Await(ctx context.Context) error {
	_, err := awaitAcquire(ctx, &f.acquire)
	return err
}

// Cancel abandons the decrement, deregistering its waiter id. Safe to call
// from any goroutine, concurrently with Poll. If a wake had already been
// directed at this waiter it is passed on, so no Up is ever swallowed by a
// cancelled Down.
func (f *DownFuture) Cancel() {
	f.cancel()
}
