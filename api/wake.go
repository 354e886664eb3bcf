// File: api/wake.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wake handle contract between suspended acquisitions and their executor.

package api

// Waker is an opaque handle requesting that one suspended task be polled
// again. Implementations must make Wake safe to invoke any number of times,
// from any goroutine, including after the task it targets has already
// resolved or been dropped; late and duplicate wakes are no-ops.
type Waker interface {
	Wake()
}

// WakeFunc adapts a plain function to the Waker contract.
type WakeFunc func()

// Wake invokes the wrapped function.
func (f WakeFunc) Wake() { f() }
