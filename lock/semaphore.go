// File: lock/semaphore.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Counting semaphore on a single atomic counter.

package lock

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-lock/api"
)

// Ensure compile-time interface compliance.
var _ api.TrySemaphore = (*Semaphore)(nil)

// Semaphore is a counting lock usable as many times as its current count.
type Semaphore struct {
	count atomic.Int64
}

// NewSemaphore creates a semaphore with the given initial count.
func NewSemaphore(initial int) *Semaphore {
	s := &Semaphore{}
	s.count.Store(int64(initial))
	return s
}

// TryDown attempts to decrement the count without blocking. It succeeds
// only while the count is greater than zero.
func (s *Semaphore) TryDown() bool {
	for {
		c := s.count.Load()
		if c <= 0 {
			return false
		}
		if s.count.CompareAndSwap(c, c-1) {
			return true
		}
	}
}

// Down decrements the count, spinning while it is zero.
func (s *Semaphore) Down() {
	for !s.TryDown() {
		runtime.Gosched()
	}
}

// Up increments the count. It never fails and has no upper bound; an Up
// without a matching Down simply grows the capacity.
func (s *Semaphore) Up() {
	s.count.Add(1)
}

// Count returns the current count. Only a snapshot; concurrent Down/Up may
// change it immediately.
func (s *Semaphore) Count() int {
	return int(s.count.Load())
}
