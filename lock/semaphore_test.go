package lock

import (
	"sync"
	"testing"
)

func TestSemaphore_TryDownAtZero(t *testing.T) {
	s := NewSemaphore(0)
	if s.TryDown() {
		t.Fatal("TryDown succeeded on zero count")
	}
	s.Up()
	if !s.TryDown() {
		t.Fatal("TryDown failed after Up")
	}
	if s.TryDown() {
		t.Fatal("TryDown succeeded after count exhausted")
	}
}

func TestSemaphore_RoundTrip(t *testing.T) {
	s := NewSemaphore(5)
	for i := 0; i < 5; i++ {
		if !s.TryDown() {
			t.Fatalf("TryDown %d failed with count available", i)
		}
	}
	for i := 0; i < 5; i++ {
		s.Up()
	}
	if got := s.Count(); got != 5 {
		t.Errorf("count after round trip: got %d, want 5", got)
	}
}

func TestSemaphore_ConcurrentDownUp(t *testing.T) {
	s := NewSemaphore(3)
	goroutines := 8
	iterations := 5000

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				s.Down()
				s.Up()
			}
		}()
	}
	wg.Wait()

	if got := s.Count(); got != 3 {
		t.Errorf("count after concurrent round trips: got %d, want 3", got)
	}
}

func TestSemaphore_UnmatchedUpGrowsCapacity(t *testing.T) {
	s := NewSemaphore(0)
	s.Up()
	s.Up()
	if got := s.Count(); got != 2 {
		t.Errorf("count after two ups: got %d, want 2", got)
	}
}
