package background

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scope - groups background goroutines which must be awaited together.
// The zero value is ready to use.
type Scope struct {
	wg      sync.WaitGroup
	running atomic.Int64
}

// Go - runs f in a new goroutine registered in the scope.
func (s *Scope) Go(f func()) {
	s.wg.Add(1)
	s.running.Add(1)
	go func() {
		defer func() {
			s.running.Add(-1)
			s.wg.Done()
		}()
		f()
	}()
}

// Running - returns number of goroutines which have not returned yet.
func (s *Scope) Running() int {
	return int(s.running.Load())
}

// Wait - blocks until all goroutines of the scope return or timeout expires.
// Returns false on timeout. Non-positive timeout means wait without limit.
func (s *Scope) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	if timeout <= 0 {
		<-done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
