// File: api/poll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Poll-mode progress contract for cooperative task execution.

package api

// Pollable is a unit of cooperatively scheduled work. Poll attempts to make
// progress immediately and returns true once the work has completed. If the
// work cannot complete yet, the implementation must record w so a later
// Wake leads to another Poll, and return false.
//
// A Pollable is polled by at most one worker at a time. Once Poll has
// returned true it is never polled again.
type Pollable interface {
	Poll(w Waker) bool
}

// PollFunc adapts a plain function to the Pollable contract.
type PollFunc func(w Waker) bool

// Poll invokes the wrapped function.
func (f PollFunc) Poll(w Waker) bool { return f(w) }
