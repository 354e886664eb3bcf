// File: api/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor contract for cooperative poll-driven task dispatch.

package api

// TaskHandle refers to a spawned task. It doubles as the task's Waker: the
// handle handed to Poll re-schedules exactly this task.
type TaskHandle interface {
	Waker

	// Done is closed once the task's Poll has returned true.
	Done() <-chan struct{}
}

// Executor runs Pollables to completion across a pool of workers.
type Executor interface {
	// Spawn schedules p for polling. Returns ErrExecutorClosed after Close.
	Spawn(p Pollable) (TaskHandle, error)

	// NumWorkers returns the current number of active worker routines.
	NumWorkers() int

	// Close stops the workers. Tasks not yet complete are abandoned.
	Close()
}
