// File: lock/datarwlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared/exclusive data lock. Writer bit and reader count share one atomic
// state word so admission check and transition are a single CAS; a reader
// can never slip in behind a writer's check.

package lock

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-lock/api"
)

// Ensure compile-time interface compliance.
var _ api.TryRWLocker[*WriteGuard[any], *ReadGuard[any]] = (*DataRWLock[any])(nil)

const writerBit uint32 = 1 << 31

// DataRWLock guards interior data with a cross-core shared/exclusive lock:
// either one writer or any number of readers.
type DataRWLock[T any] struct {
	// state holds the writer bit in bit 31 and the reader count below it.
	state atomic.Uint32
	data  T
}

// NewDataRWLock creates a DataRWLock owning value.
func NewDataRWLock[T any](value T) *DataRWLock[T] {
	return &DataRWLock[T]{data: value}
}

// TryLock attempts to take the exclusive write lock without blocking. It
// succeeds only while there is no writer and no readers.
func (l *DataRWLock[T]) TryLock() (*WriteGuard[T], bool) {
	if !l.state.CompareAndSwap(0, writerBit) {
		return nil, false
	}
	return &WriteGuard[T]{lock: l}, true
}

// TryRead attempts to take a shared read lock without blocking. It succeeds
// while no writer holds the lock; concurrent readers are unlimited.
func (l *DataRWLock[T]) TryRead() (*ReadGuard[T], bool) {
	for {
		s := l.state.Load()
		if s&writerBit != 0 {
			return nil, false
		}
		if l.state.CompareAndSwap(s, s+1) {
			return &ReadGuard[T]{lock: l}, true
		}
	}
}

// Lock spins until the write lock is taken.
func (l *DataRWLock[T]) Lock() *WriteGuard[T] {
	for {
		if g, ok := l.TryLock(); ok {
			return g
		}
		runtime.Gosched()
	}
}

// Read spins until a read lock is taken.
func (l *DataRWLock[T]) Read() *ReadGuard[T] {
	for {
		if g, ok := l.TryRead(); ok {
			return g
		}
		runtime.Gosched()
	}
}

// Readers returns the current number of outstanding read guards.
func (l *DataRWLock[T]) Readers() int {
	return int(l.state.Load() &^ writerBit)
}

// WriteGuard represents exclusive write access. At most one exists per lock
// at any instant, and never alongside read guards.
type WriteGuard[T any] struct {
	lock     *DataRWLock[T]
	released bool
}

// Value returns a pointer to the guarded data. The pointer must not be
// retained past Unlock.
func (g *WriteGuard[T]) Value() *T {
	if g.released {
		panic("lock: access through released guard")
	}
	return &g.lock.data
}

// Unlock releases the write lock. Unlocking twice is a caller bug and
// panics.
func (g *WriteGuard[T]) Unlock() {
	if g.released {
		panic("lock: unlock of released guard")
	}
	g.released = true
	g.lock.state.Store(0)
}

// ReadGuard represents shared read access.
type ReadGuard[T any] struct {
	lock     *DataRWLock[T]
	released bool
}

// Value returns a pointer to the guarded data. Callers must treat the data
// as read-only while holding only a read guard.
func (g *ReadGuard[T]) Value() *T {
	if g.released {
		panic("lock: access through released guard")
	}
	return &g.lock.data
}

// Unlock releases the read lock. Unlocking twice is a caller bug and
// panics.
func (g *ReadGuard[T]) Unlock() {
	if g.released {
		panic("lock: unlock of released guard")
	}
	g.released = true
	g.lock.state.Add(^uint32(0))
}
