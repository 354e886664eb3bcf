package lock

import (
	"sync"
	"testing"
)

func TestSpinlock_MutualExclusion(t *testing.T) {
	var s Spinlock
	counter := 0
	goroutines := 8
	iterations := 10000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				s.Lock()
				counter++
				s.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != goroutines*iterations {
		t.Errorf("lost updates: got %d, want %d", counter, goroutines*iterations)
	}
}

func TestSpinlock_TryLock(t *testing.T) {
	var s Spinlock
	if _, ok := s.TryLock(); !ok {
		t.Fatal("TryLock on free lock failed")
	}
	if _, ok := s.TryLock(); ok {
		t.Fatal("TryLock on held lock succeeded")
	}
	s.Unlock()
	if _, ok := s.TryLock(); !ok {
		t.Fatal("TryLock after Unlock failed")
	}
}
