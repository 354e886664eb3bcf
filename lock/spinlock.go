// File: lock/spinlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-core exclusive spinlock on a single atomic flag.

package lock

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-lock/api"
)

// Ensure compile-time interface compliance.
var _ api.TryLocker[struct{}] = (*Spinlock)(nil)

// Spinlock is a mutual exclusion flag shared between cores. It should be
// held only for short, bounded sections; holders must not suspend.
// The zero value is an unlocked Spinlock.
type Spinlock struct {
	flag atomic.Bool
}

// TryLock attempts to take the lock without blocking. The guard value is
// empty; release via Unlock.
func (s *Spinlock) TryLock() (struct{}, bool) {
	return struct{}{}, s.flag.CompareAndSwap(false, true)
}

// Lock spins until the lock is taken, yielding the processor between
// attempts.
func (s *Spinlock) Lock() {
	for !s.flag.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock.
func (s *Spinlock) Unlock() {
	s.flag.Store(false)
}
