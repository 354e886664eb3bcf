// File: lock/datalock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Exclusive data lock: interior data reachable only through a guard.

package lock

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-lock/api"
)

// Ensure compile-time interface compliance.
var _ api.TryLocker[*DataGuard[any]] = (*DataLock[any])(nil)

// DataLock guards interior data with a cross-core exclusive lock. The data
// is only reachable through a DataGuard, so access without holding the lock
// is not expressible.
type DataLock[T any] struct {
	locked atomic.Bool
	data   T
}

// NewDataLock creates a DataLock owning value.
func NewDataLock[T any](value T) *DataLock[T] {
	return &DataLock[T]{data: value}
}

// TryLock attempts to take the lock without blocking. On success the
// returned guard provides exclusive access until Unlock.
func (l *DataLock[T]) TryLock() (*DataGuard[T], bool) {
	if !l.locked.CompareAndSwap(false, true) {
		return nil, false
	}
	return &DataGuard[T]{lock: l}, true
}

// Lock spins until the lock is taken, yielding the processor between
// attempts.
func (l *DataLock[T]) Lock() *DataGuard[T] {
	for {
		if g, ok := l.TryLock(); ok {
			return g
		}
		runtime.Gosched()
	}
}

// DataGuard represents a held DataLock. At most one guard exists per lock
// at any instant.
type DataGuard[T any] struct {
	lock     *DataLock[T]
	released bool
}

// Value returns a pointer to the guarded data. The pointer must not be
// retained past Unlock.
func (g *DataGuard[T]) Value() *T {
	if g.released {
		panic("lock: access through released guard")
	}
	return &g.lock.data
}

// Unlock releases the lock. Unlocking twice is a caller bug and panics.
func (g *DataGuard[T]) Unlock() {
	if g.released {
		panic("lock: unlock of released guard")
	}
	g.released = true
	g.lock.locked.Store(false)
}
