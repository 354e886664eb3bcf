package asynclock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRWLock_ReadersCoexist(t *testing.T) {
	l := NewRWLock(42)
	var guards []*RWReadGuard[int]
	for i := 0; i < 4; i++ {
		f := l.Read()
		g, ok := f.Poll(noopWaker())
		if !ok {
			t.Fatalf("read %d did not resolve with only readers outstanding", i)
		}
		if got := *g.Value(); got != 42 {
			t.Errorf("read %d observed %d, want 42", i, got)
		}
		guards = append(guards, g)
	}
	if got := l.Pending(); got != 0 {
		t.Errorf("concurrent reads registered waiters: %d", got)
	}
	for _, g := range guards {
		g.Unlock()
	}
}

func TestRWLock_WriteExcludesAll(t *testing.T) {
	l := NewRWLock(0)
	w, ok := l.TryLock()
	if !ok {
		t.Fatal("write fast path failed on free lock")
	}
	if _, ok := l.Read().Poll(noopWaker()); ok {
		t.Fatal("read resolved while write guard outstanding")
	}
	if _, ok := l.Lock().Poll(noopWaker()); ok {
		t.Fatal("second write resolved while write guard outstanding")
	}
	w.Unlock()
}

func TestRWLock_WriteFastPathFailsWithReaders(t *testing.T) {
	l := NewRWLock(0)
	r, _ := l.TryRead()
	if _, ok := l.TryLock(); ok {
		t.Fatal("write fast path succeeded with a read guard outstanding")
	}
	f := l.Lock()
	if _, ok := f.Poll(noopWaker()); ok {
		t.Fatal("write future resolved with a read guard outstanding")
	}
	r.Unlock()
	g, ok := f.Poll(noopWaker())
	if !ok {
		t.Fatal("write future did not resolve after last reader released")
	}
	g.Unlock()
}

func TestRWLock_SharedIDSequence(t *testing.T) {
	l := NewRWLock(0)
	w, _ := l.TryLock()

	// reader suspends first, then a writer; wake order follows ids and
	// does not distinguish kind
	var rWakes, wWakes atomic.Int64
	rf := l.Read()
	rf.Poll(countingWaker(&rWakes))
	wf := l.Lock()
	wf.Poll(countingWaker(&wWakes))
	if got := l.Pending(); got != 2 {
		t.Fatalf("pending: got %d, want 2", got)
	}

	w.Unlock()
	if rWakes.Load() != 1 || wWakes.Load() != 0 {
		t.Fatalf("release woke (reader=%d, writer=%d), want (1, 0)",
			rWakes.Load(), wWakes.Load())
	}

	rg, ok := rf.Poll(countingWaker(&rWakes))
	if !ok {
		t.Fatal("woken reader failed its retry")
	}
	rg.Unlock()
	if wWakes.Load() != 1 {
		t.Fatal("reader release did not wake the pending writer")
	}
	wg, ok := wf.Poll(countingWaker(&wWakes))
	if !ok {
		t.Fatal("woken writer failed its retry")
	}
	wg.Unlock()
}

func TestRWLock_WokenWriterLosesRaceAndReRegisters(t *testing.T) {
	l := NewRWLock(0)
	r, _ := l.TryRead()

	var wakes atomic.Int64
	wf := l.Lock()
	wf.Poll(countingWaker(&wakes))

	r.Unlock()
	if wakes.Load() != 1 {
		t.Fatal("reader release did not wake the writer")
	}

	// a racing reader slips in before the woken writer polls
	thief, ok := l.TryRead()
	if !ok {
		t.Fatal("racing reader failed on free lock")
	}
	if _, ok := wf.Poll(countingWaker(&wakes)); ok {
		t.Fatal("woken writer resolved although a reader holds the lock")
	}
	if got := l.Pending(); got != 1 {
		t.Fatalf("writer not re-registered: %d pending", got)
	}

	thief.Unlock()
	wg, ok := wf.Poll(countingWaker(&wakes))
	if !ok {
		t.Fatal("writer did not resolve after the racing reader released")
	}
	wg.Unlock()
}

func TestRWLock_ReadCancelDeregisters(t *testing.T) {
	l := NewRWLock(0)
	w, _ := l.TryLock()

	rf := l.Read()
	rf.Poll(noopWaker())
	rf.Cancel()
	if got := l.Pending(); got != 0 {
		t.Errorf("cancelled reader still registered: %d pending", got)
	}
	w.Unlock()
}

func TestRWLock_PendingReadObservesWriterMutation(t *testing.T) {
	l := NewRWLock(10)
	w, _ := l.TryLock()

	got := make(chan int, 1)
	go func() {
		g, err := l.Read().Await(context.Background())
		if err != nil {
			t.Errorf("Await: %v", err)
			got <- -1
			return
		}
		got <- *g.Value()
		g.Unlock()
	}()

	time.Sleep(50 * time.Millisecond)
	select {
	case v := <-got:
		t.Fatalf("read resolved to %d while write guard held", v)
	default:
	}

	*w.Value() = 20
	w.Unlock()

	select {
	case v := <-got:
		if v != 20 {
			t.Errorf("reader observed %d, want 20", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("read did not resolve after write guard dropped")
	}
}
