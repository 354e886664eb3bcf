// File: asynclock/future.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared acquisition state machine behind every future type in this
// package. One implementation, parameterized over the guard type; the
// adapters differ only in their fast-path probe.

package asynclock

import (
	"context"

	"github.com/momentics/hioload-lock/api"
	"github.com/momentics/hioload-lock/internal/waitlist"
	"github.com/momentics/hioload-lock/lock"
)

// acquire drives one pending acquisition request. G is the resolved value
// (a guard pointer, or struct{} for the semaphore).
//
// An acquire is polled by at most one actor at a time and is terminal once
// resolved; re-polling a resolved acquire returns the same result. cancel
// may race the poller from any goroutine, so the mutable state sits under
// a short spinlock section, same discipline as the registry's.
type acquire[G any] struct {
	waiters *waitlist.Registry
	try     func() (G, bool)

	mu         lock.Spinlock
	id         uint64
	registered bool
	cancelled  bool
	done       bool
	result     G
}

// poll retries the fast path, registering w under the waiter id when the
// primitive is still unavailable. The order is fixed: probe, register,
// probe again. The second probe closes the missed-wakeup window where the
// holder releases (and finds no waiter to wake) between the first failed
// probe and the registration.
func (a *acquire[G]) poll(w api.Waker) (G, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var zero G
	if a.done {
		return a.result, true
	}
	if a.cancelled {
		return zero, false
	}
	if g, ok := a.try(); ok {
		if a.registered {
			// spurious poll after a wake already consumed the entry, or a
			// re-poll without a wake; either way drop the stale entry
			a.waiters.Deregister(a.id)
			a.registered = false
		}
		a.done = true
		a.result = g
		return g, true
	}
	a.waiters.Register(a.id, w)
	a.registered = true
	if g, ok := a.try(); ok {
		a.waiters.Deregister(a.id)
		a.registered = false
		a.done = true
		a.result = g
		return g, true
	}
	return zero, false
}

// cancel abandons the acquisition. The waiter id is removed from the
// registry so a stale entry can never swallow a future release's wake. If
// a wake consumed the entry before the cancel, that wake is passed on to
// the next waiter instead of dying with this one. A cancelled acquire is
// inert: poll reports pending forever and never re-registers.
//
// Safe to call from any goroutine, concurrently with the poller. The
// registry calls happen outside the spinlock section; once cancelled is
// set no poll can register again, so the late Deregister cannot miss a
// new entry.
func (a *acquire[G]) cancel() {
	a.mu.Lock()
	if a.done || a.cancelled {
		a.mu.Unlock()
		return
	}
	a.cancelled = true
	registered := a.registered
	a.registered = false
	id := a.id
	a.mu.Unlock()

	if registered && !a.waiters.Deregister(id) {
		a.waiters.WakeNext()
	}
}

// awaitAcquire drives a to completion from a plain goroutine, re-polling on
// every wake. On ctx expiry the acquisition is cancelled.
func awaitAcquire[G any](ctx context.Context, a *acquire[G]) (G, error) {
	var zero G
	wakeCh := make(chan struct{}, 1)
	w := api.WakeFunc(func() {
		select {
		case wakeCh <- struct{}{}:
		default:
		}
	})
	for {
		if g, ok := a.poll(w); ok {
			return g, nil
		}
		select {
		case <-wakeCh:
		case <-ctx.Done():
			a.cancel()
			return zero, ctx.Err()
		}
	}
}
