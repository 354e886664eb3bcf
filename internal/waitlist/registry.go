// File: internal/waitlist/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-adapter registry of suspended acquisitions: waiter id -> wake handle,
// plus the monotonic id allocator. Wake order is smallest registered id
// first. All mutation happens under a short spinlock section that is never
// held across a wake invocation or a suspension point.

package waitlist

import (
	"container/heap"

	"github.com/momentics/hioload-lock/api"
	"github.com/momentics/hioload-lock/lock"
)

// Registry tracks pending waiters of one async adapter. Ids are unique and
// strictly increasing for the registry's lifetime and are never reused.
type Registry struct {
	mu      lock.Spinlock
	waiters map[uint64]api.Waker
	order   idHeap
	nextID  uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{waiters: make(map[uint64]api.Waker)}
}

// NextID allocates a fresh waiter id. Ids start at 1 so the zero value is
// free to mean "no id allocated".
func (r *Registry) NextID() uint64 {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.mu.Unlock()
	return id
}

// Register stores w as the wake handle for id, overwriting any handle a
// previous poll registered. The most recent registration always wins.
func (r *Registry) Register(id uint64, w api.Waker) {
	r.mu.Lock()
	if _, ok := r.waiters[id]; !ok {
		heap.Push(&r.order, id)
	}
	r.waiters[id] = w
	r.mu.Unlock()
}

// Deregister removes id from the registry. It reports whether the entry was
// still present; false means a wake already consumed it (or it was never
// registered).
func (r *Registry) Deregister(id uint64) bool {
	r.mu.Lock()
	_, ok := r.waiters[id]
	delete(r.waiters, id)
	r.mu.Unlock()
	return ok
}

// WakeNext removes the smallest registered id and invokes its wake handle.
// It reports whether a waiter was woken. The handle is invoked outside the
// critical section. This is a request to re-poll, not a hand-off: the woken
// waiter still races the fast path against any non-suspended caller.
func (r *Registry) WakeNext() bool {
	var w api.Waker
	r.mu.Lock()
	for r.order.Len() > 0 {
		id := heap.Pop(&r.order).(uint64)
		// deregistered ids linger in the heap; skip them
		if waker, ok := r.waiters[id]; ok {
			delete(r.waiters, id)
			w = waker
			break
		}
	}
	r.mu.Unlock()
	if w == nil {
		return false
	}
	w.Wake()
	return true
}

// Len returns the number of currently registered waiters.
func (r *Registry) Len() int {
	r.mu.Lock()
	n := len(r.waiters)
	r.mu.Unlock()
	return n
}

// idHeap is a min-heap of waiter ids. An id is in the heap while its entry
// is (or recently was) in the waiter map; stale ids are dropped lazily by
// WakeNext.
type idHeap []uint64

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x interface{}) { *h = append(*h, x.(uint64)) }
func (h *idHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
