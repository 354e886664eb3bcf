// File: asynclock/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package asynclock layers suspend/resume acquisition on top of the
// blocking primitives in package lock, for use with a cooperative
// poll-driven executor.
//
// Three adapters are provided: Mutex (exclusive), RWLock (shared/exclusive)
// and Semaphore (counting). Each acquisition entry point tries the
// non-blocking fast path first and, on failure, hands back a future that
// suspends the caller instead of spinning a core. Releasing a guard (or
// calling Semaphore.Up) wakes the pending waiter with the smallest id.
// The wake is a request to re-poll, not a hand-off: a concurrently racing
// non-suspended caller may still win the primitive, in which case the woken
// waiter re-registers and suspends again.
//
// Futures integrate with any executor honoring the api.Pollable contract,
// and additionally offer a goroutine-blocking Await for conventional Go
// callers.
package asynclock
