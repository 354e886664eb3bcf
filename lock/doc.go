// File: lock/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package lock provides blocking cross-core synchronization primitives:
// an exclusive Spinlock, a counting Semaphore, an exclusive DataLock and a
// shared/exclusive DataRWLock around interior data.
//
// All primitives are built on hardware atomics only and are therefore
// correct under true multi-core concurrency, independent of any scheduler.
// Every primitive exposes a non-blocking try-variant; the blocking variants
// spin with a cooperative yield and are meant for short critical sections.
// The async adapters in package asynclock consume exclusively the
// try-variants.
package lock
