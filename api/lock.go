// File: api/lock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-blocking acquisition contracts consumed by the async adapters from
// the blocking cross-core primitives. The adapters never hold a primitive
// across a suspension point; they only ever probe these try-variants.

package api

// TryLocker is an exclusive lock with a non-blocking acquisition path.
// G is the guard type handed out on success; releasing the guard restores
// availability and is safe in any cross-core order.
type TryLocker[G any] interface {
	TryLock() (G, bool)
}

// TryRWLocker is a shared/exclusive data lock with non-blocking acquisition
// paths for both access kinds. W and R are the write and read guard types.
type TryRWLocker[W, R any] interface {
	TryLock() (W, bool)
	TryRead() (R, bool)
}

// TrySemaphore is a counting semaphore with a non-blocking decrement.
// TryDown succeeds while the count is greater than zero; Up is infallible
// and unbounded.
type TrySemaphore interface {
	TryDown() bool
	Up()
}
