package kernel

import (
	"runtime"
	"sync/atomic"
)

// failed acquisition attempts before yielding the OS thread
const spinAttempts = 64

// Spinlock is a busy-wait mutual exclusion lock. Critical sections in
// this layer are short; holders must not re-acquire a lock they hold.
type Spinlock struct {
	locked uint32
}

// Acquire spins until the lock is held by the caller.
func (lk *Spinlock) Acquire() {
	for i := 1; !lk.TryToAcquire(); i++ {
		if i%spinAttempts == 0 {
			runtime.Gosched()
		}
	}
}

// TryToAcquire makes a single acquisition attempt and reports whether
// the lock was taken.
func (lk *Spinlock) TryToAcquire() bool {
	return atomic.SwapUint32(&lk.locked, 1) == 0
}

// Release relinquishes a held lock.
func (lk *Spinlock) Release() {
	atomic.StoreUint32(&lk.locked, 0)
}
