// File: executor/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cooperative poll-driven executor. Workers drain a shared FIFO of ready
// tasks, polling each one; a task that reports not ready leaves the queue
// until some waker re-schedules it. Idle workers back off adaptively
// instead of busy-spinning.

package executor

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-lock/affinity"
	"github.com/momentics/hioload-lock/api"
	"github.com/momentics/hioload-lock/lock"
)

// Ensure compile-time interface compliance.
var _ api.Executor = (*Executor)(nil)

// Executor runs Pollables to completion across a fixed pool of workers.
type Executor struct {
	ready   *queue.Queue // FIFO of *Task
	mu      lock.Spinlock
	closeCh chan struct{}
	closed  atomic.Bool
	workers int
	wg      sync.WaitGroup

	// statistics
	spawnedTasks   atomic.Int64
	completedTasks atomic.Int64
}

// New creates an Executor with the given number of workers. If numWorkers
// <= 0, defaults to runtime.NumCPU(). With pinWorkers set, each worker
// locks its OS thread and pins it to a CPU core on supported platforms.
func New(numWorkers int, pinWorkers bool) *Executor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	e := &Executor{
		ready:   queue.New(),
		closeCh: make(chan struct{}),
		workers: numWorkers,
	}
	for i := 0; i < numWorkers; i++ {
		e.wg.Add(1)
		go e.runWorker(i, pinWorkers)
	}
	return e
}

// Spawn schedules p for polling and returns its handle.
func (e *Executor) Spawn(p api.Pollable) (api.TaskHandle, error) {
	if e.closed.Load() {
		return nil, api.ErrExecutorClosed
	}
	t := &Task{exec: e, poll: p, doneCh: make(chan struct{})}
	t.state.Store(stateQueued)
	e.spawnedTasks.Add(1)
	e.enqueue(t)
	return t, nil
}

// NumWorkers returns the number of worker routines.
func (e *Executor) NumWorkers() int {
	return e.workers
}

// Close stops the workers and waits for them to exit. Tasks not yet
// complete are abandoned; their wakers become no-ops.
func (e *Executor) Close() {
	if e.closed.CompareAndSwap(false, true) {
		close(e.closeCh)
		e.wg.Wait()
	}
}

// Stats returns basic executor metrics.
func (e *Executor) Stats() map[string]int64 {
	spawned := e.spawnedTasks.Load()
	completed := e.completedTasks.Load()
	return map[string]int64{
		"spawned_tasks":   spawned,
		"completed_tasks": completed,
		"pending_tasks":   spawned - completed,
		"num_workers":     int64(e.workers),
	}
}

func (e *Executor) enqueue(t *Task) {
	e.mu.Lock()
	e.ready.Add(t)
	e.mu.Unlock()
}

func (e *Executor) dequeue() *Task {
	e.mu.Lock()
	if e.ready.Length() == 0 {
		e.mu.Unlock()
		return nil
	}
	t := e.ready.Remove().(*Task)
	e.mu.Unlock()
	return t
}

func (e *Executor) runWorker(id int, pin bool) {
	defer e.wg.Done()
	if pin {
		runtime.LockOSThread()
		if err := affinity.Pin(id % runtime.NumCPU()); err != nil {
			log.Printf("executor: worker %d not pinned: %v", id, err)
		}
	}
	backoffNs := int64(1)
	for {
		select {
		case <-e.closeCh:
			return
		default:
		}
		t := e.dequeue()
		if t == nil {
			backoffNs = e.idleBackoff(backoffNs)
			continue
		}
		backoffNs = 1
		t.state.Store(stateRunning)
		if t.poll.Poll(t) {
			t.state.Store(stateDone)
			e.completedTasks.Add(1)
			close(t.doneCh)
			continue
		}
		// a wake that arrived during the poll must not be lost
		if !t.state.CompareAndSwap(stateRunning, stateIdle) {
			t.state.Store(stateQueued)
			e.enqueue(t)
		}
	}
}

// idleBackoff sleeps or yields depending on how long the queue has been
// empty, doubling up to a cap.
func (e *Executor) idleBackoff(backoffNs int64) int64 {
	if backoffNs < 1000 {
		time.Sleep(time.Microsecond)
	} else {
		runtime.Gosched()
	}
	next := backoffNs * 2
	if next > 1_000_000 {
		next = 1_000_000
	}
	return next
}
