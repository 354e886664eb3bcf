// File: asynclock/mutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Async exclusive lock adapter over lock.DataLock.

package asynclock

import (
	"context"

	"github.com/momentics/hioload-lock/api"
	"github.com/momentics/hioload-lock/internal/waitlist"
	"github.com/momentics/hioload-lock/lock"
)

// Mutex guards interior data with an exclusive lock whose acquisition
// suspends instead of spinning. All futures and guards it hands out share
// the underlying primitive and wait registry, so a guard stays valid no
// matter what happens to the future that produced it.
type Mutex[T any] struct {
	waiters *waitlist.Registry
	data    *lock.DataLock[T]
}

// NewMutex creates a Mutex owning value.
func NewMutex[T any](value T) *Mutex[T] {
	return &Mutex[T]{
		waiters: waitlist.New(),
		data:    lock.NewDataLock(value),
	}
}

// TryLock attempts the non-blocking fast path. On success the returned
// guard provides exclusive access until Unlock.
func (m *Mutex[T]) TryLock() (*Guard[T], bool) {
	g, ok := m.data.TryLock()
	if !ok {
		return nil, false
	}
	return &Guard[T]{waiters: m.waiters, inner: g}, true
}

// Lock requests exclusive access. The fast path is tried synchronously; on
// success the returned future is already resolved and never touches the
// wait registry. Otherwise a waiter id is allocated and the future suspends
// its poller until a release wakes it.
func (m *Mutex[T]) Lock() *LockFuture[T] {
	f := &LockFuture[T]{acquire[*Guard[T]]{
		waiters: m.waiters,
		try:     m.TryLock,
	}}
	if g, ok := m.TryLock(); ok {
		f.done = true
		f.result = g
		return f
	}
	f.id = m.waiters.NextID()
	return f
}

// Pending returns the number of currently suspended acquisitions.
func (m *Mutex[T]) Pending() int {
	return m.waiters.Len()
}

// LockFuture is a pending exclusive acquisition created by Mutex.Lock.
type LockFuture[T any] struct {
	acquire[*Guard[T]]
}

// Poll retries the fast path; when the lock is still held it records w and
// reports not ready. Terminal once it has returned a guard.
func (f *LockFuture[T]) Poll(w api.Waker) (*Guard[T], bool) {
	return f.poll(w)
}

// Await blocks the calling goroutine until the lock is acquired or ctx is
// done. On ctx expiry the acquisition is cancelled and ctx.Err returned.
func (f *LockFuture[T]) Await(ctx context.Context) (*Guard[T], error) {
	return awaitAcquire(ctx, &f.acquire)
}

// Cancel abandons the acquisition, deregistering its waiter id. Safe to
// call at any time, from any goroutine, concurrently with Poll; a no-op
// once the future resolved.
func (f *LockFuture[T]) Cancel() {
	f.cancel()
}

// Guard represents held exclusive access to a Mutex's data. At most one
// guard is outstanding per Mutex at any instant.
type Guard[T any] struct {
	waiters  *waitlist.Registry
	inner    *lock.DataGuard[T]
	released bool
}

// Value returns a pointer to the guarded data. The pointer must not be
// retained past Unlock.
func (g *Guard[T]) Value() *T {
	return g.inner.Value()
}

// Unlock releases the lock, then wakes the pending waiter with the
// smallest id, if any. Unlocking twice is a caller bug and panics.
func (g *Guard[T]) Unlock() {
	if g.released {
		panic("asynclock: unlock of released guard")
	}
	g.released = true
	g.inner.Unlock()
	g.waiters.WakeNext()
}
