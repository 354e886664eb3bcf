// File: asynclock/rwlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Async shared/exclusive lock adapter over lock.DataRWLock. Readers and
// writers share one wait registry and draw waiter ids from the same
// sequence, so wake order does not distinguish kind: releases wake the
// numerically smallest pending id, reader or writer alike. A woken reader
// may still lose its retry to a writer that won the race (and vice versa);
// it then re-registers and waits again. Writer starvation under continuous
// overlapping readers is an accepted property of this ordering.

package asynclock

import (
	"context"

	"github.com/momentics/hioload-lock/api"
	"github.com/momentics/hioload-lock/internal/waitlist"
	"github.com/momentics/hioload-lock/lock"
)

// RWLock guards interior data with a shared/exclusive lock whose
// acquisitions suspend instead of spinning: either one writer or any number
// of readers hold it at an instant.
type RWLock[T any] struct {
	waiters *waitlist.Registry
	data    *lock.DataRWLock[T]
}

// NewRWLock creates an RWLock owning value.
func NewRWLock[T any](value T) *RWLock[T] {
	return &RWLock[T]{
		waiters: waitlist.New(),
		data:    lock.NewDataRWLock(value),
	}
}

// TryLock attempts the non-blocking write fast path. It succeeds only while
// there is no writer and no readers.
func (l *RWLock[T]) TryLock() (*RWWriteGuard[T], bool) {
	g, ok := l.data.TryLock()
	if !ok {
		return nil, false
	}
	return &RWWriteGuard[T]{waiters: l.waiters, inner: g}, true
}

// TryRead attempts the non-blocking read fast path. It succeeds while no
// writer holds the lock.
func (l *RWLock[T]) TryRead() (*RWReadGuard[T], bool) {
	g, ok := l.data.TryRead()
	if !ok {
		return nil, false
	}
	return &RWReadGuard[T]{waiters: l.waiters, inner: g}, true
}

// Lock requests exclusive write access. On fast-path success the returned
// future is already resolved; otherwise it carries a fresh waiter id from
// the sequence shared with readers.
func (l *RWLock[T]) Lock() *WriteFuture[T] {
	f := &WriteFuture[T]{acquire[*RWWriteGuard[T]]{
		waiters: l.waiters,
		try:     l.TryLock,
	}}
	if g, ok := l.TryLock(); ok {
		f.done = true
		f.result = g
		return f
	}
	f.id = l.waiters.NextID()
	return f
}

// Read requests shared read access. On fast-path success the returned
// future is already resolved; otherwise it carries a fresh waiter id from
// the sequence shared with writers.
func (l *RWLock[T]) Read() *ReadFuture[T] {
	f := &ReadFuture[T]{acquire[*RWReadGuard[T]]{
		waiters: l.waiters,
		try:     l.TryRead,
	}}
	if g, ok := l.TryRead(); ok {
		f.done = true
		f.result = g
		return f
	}
	f.id = l.waiters.NextID()
	return f
}

// Pending returns the number of currently suspended acquisitions, readers
// and writers combined.
func (l *RWLock[T]) Pending() int {
	return l.waiters.Len()
}

// WriteFuture is a pending exclusive acquisition created by RWLock.Lock.
type WriteFuture[T any] struct {
	acquire[*RWWriteGuard[T]]
}

// Poll retries the write fast path; while readers or a writer are
// outstanding it records w and reports not ready.
func (f *WriteFuture[T]) Poll(w api.Waker) (*RWWriteGuard[T], bool) {
	return f.poll(w)
}

// Await blocks the calling goroutine until write access is acquired or ctx
// is done.
func (f *WriteFuture[T]) Await(ctx context.Context) (*RWWriteGuard[T], error) {
	return awaitAcquire(ctx, &f.acquire)
}

// Cancel abandons the acquisition, deregistering its waiter id. Safe to
// call from any goroutine, concurrently with Poll.
func (f *WriteFuture[T]) Cancel() {
	f.cancel()
}

// ReadFuture is a pending shared acquisition created by RWLock.Read.
type ReadFuture[T any] struct {
	acquire[*RWReadGuard[T]]
}

// Poll retries the read fast path; while a writer is outstanding it records
// w and reports not ready.
func (f *ReadFuture[T]) Poll(w api.Waker) (*RWReadGuard[T], bool) {
	return f.poll(w)
}

// Await blocks the calling goroutine until read access is acquired or ctx
// is done.
func (f *ReadFuture[T]) Await(ctx context.Context) (*RWReadGuard[T], error) {
	return awaitAcquire(ctx, &f.acquire)
}

// Cancel abandons the acquisition, deregistering its waiter id. Safe to
// call from any goroutine, concurrently with Poll.
func (f *ReadFuture[T]) Cancel() {
	f.cancel()
}

// RWWriteGuard represents held exclusive write access. It excludes all
// other guards of the same RWLock.
type RWWriteGuard[T any] struct {
	waiters  *waitlist.Registry
	inner    *lock.WriteGuard[T]
	released bool
}

// Value returns a pointer to the guarded data. The pointer must not be
// retained past Unlock.
func (g *RWWriteGuard[T]) Value() *T {
	return g.inner.Value()
}

// Unlock releases the write lock, then wakes the pending waiter with the
// smallest id, if any. Unlocking twice is a caller bug and panics.
func (g *RWWriteGuard[T]) Unlock() {
	if g.released {
		panic("asynclock: unlock of released guard")
	}
	g.released = true
	g.inner.Unlock()
	g.waiters.WakeNext()
}

// RWReadGuard represents held shared read access. Any number may coexist.
type RWReadGuard[T any] struct {
	waiters  *waitlist.Registry
	inner    *lock.ReadGuard[T]
	released bool
}

// Value returns a pointer to the guarded data, to be treated as read-only.
func (g *RWReadGuard[T]) Value() *T {
	return g.inner.Value()
}

// Unlock releases the read lock, then wakes the pending waiter with the
// smallest id, if any. Unlocking twice is a caller bug and panics.
func (g *RWReadGuard[T]) Unlock() {
	if g.released {
		panic("asynclock: unlock of released guard")
	}
	g.released = true
	g.inner.Unlock()
	g.waiters.WakeNext()
}
