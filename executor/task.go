// File: executor/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Task state machine. A task's handle is its own waker; Wake transitions
// coalesce so any number of concurrent wakes lead to at most one queued
// re-poll, and wakes after completion are no-ops.

package executor

import (
	"sync/atomic"

	"github.com/momentics/hioload-lock/api"
)

// Ensure compile-time interface compliance.
var _ api.TaskHandle = (*Task)(nil)

const (
	stateIdle int32 = iota
	stateQueued
	stateRunning
	stateNotified
	stateDone
)

// Task is one spawned Pollable and its scheduling state.
type Task struct {
	exec   *Executor
	poll   api.Pollable
	state  atomic.Int32
	doneCh chan struct{}
}

// Wake schedules one future re-poll of the task. Safe to call repeatedly
// from any goroutine, including after the task completed or the executor
// shut down.
func (t *Task) Wake() {
	if t.exec.closed.Load() {
		// no worker will ever drain the queue again
		return
	}
	for {
		switch t.state.Load() {
		case stateIdle:
			if t.state.CompareAndSwap(stateIdle, stateQueued) {
				t.exec.enqueue(t)
				return
			}
		case stateRunning:
			// remember the wake; the worker re-queues after the poll
			if t.state.CompareAndSwap(stateRunning, stateNotified) {
				return
			}
		default:
			// queued, notified or done: a poll is already due or the task
			// is finished
			return
		}
	}
}

// Done is closed once the task's Poll has returned true.
func (t *Task) Done() <-chan struct{} {
	return t.doneCh
}
