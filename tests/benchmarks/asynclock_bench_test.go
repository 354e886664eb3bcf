// Package benchmarks measures fast-path and contended adapter costs.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package benchmarks

import (
	"context"
	"sync"
	"testing"

	"github.com/momentics/hioload-lock/api"
	"github.com/momentics/hioload-lock/asynclock"
	"github.com/momentics/hioload-lock/lock"
)

var noop = api.WakeFunc(func() {})

func BenchmarkDataLockUncontended(b *testing.B) {
	l := lock.NewDataLock(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g, _ := l.TryLock()
		g.Unlock()
	}
}

func BenchmarkMutexFastPath(b *testing.B) {
	m := asynclock.NewMutex(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g, _ := m.TryLock()
		g.Unlock()
	}
}

func BenchmarkSemaphoreDownUp(b *testing.B) {
	s := asynclock.NewSemaphore(1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		f := s.Down()
		f.Poll(noop)
		s.Up()
	}
}

func BenchmarkMutexAwaitContended(b *testing.B) {
	m := asynclock.NewMutex(0)
	workers := 4
	perWorker := b.N/workers + 1
	b.ReportAllocs()
	b.ResetTimer()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				g, err := m.Lock().Await(context.Background())
				if err != nil {
					b.Error(err)
					return
				}
				*g.Value()++
				g.Unlock()
			}
		}()
	}
	wg.Wait()
}
