package kernel

import (
	"sync"
	"testing"
	"time"
)

func TestSpinlock(t *testing.T) {
	var (
		lk         Spinlock
		wg         sync.WaitGroup
		numWorkers = 10
		counter    int
	)

	lk.Acquire()

	if lk.TryToAcquire() != false {
		t.Error("expected TryToAcquire to return false when lock is held")
	}

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			lk.Acquire()
			counter++
			lk.Release()
			wg.Done()
		}()
	}

	<-time.After(50 * time.Millisecond)
	lk.Release()
	wg.Wait()

	if counter != numWorkers {
		t.Errorf("expected %d increments under the lock, got %d", numWorkers, counter)
	}
}

func TestSpinlockRelease(t *testing.T) {
	var lk Spinlock
	lk.Acquire()
	lk.Release()

	if !lk.TryToAcquire() {
		t.Error("expected a released lock to be acquirable")
	}
}
