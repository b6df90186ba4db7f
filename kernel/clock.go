package kernel

// Ticks is the system-wide tick counter. It only ever moves forward,
// by exactly one per timer event observed on the timekeeping hart.
type Ticks struct {
	lock Spinlock
	val  uint64
}

// Get returns the current tick count.
func (t *Ticks) Get() uint64 {
	t.lock.Acquire()
	v := t.val
	t.lock.Release()
	return v
}

// Watchdog halts the machine if the tick counter advances more than
// timeout past the last reset. A zero timeout disarms it.
type Watchdog struct {
	lock    Spinlock
	timeout uint64
	last    uint64
}

// ArmWatchdog configures the watchdog timeout and starts its window at
// the current tick. A zero timeout disarms the watchdog.
func (k *Kernel) ArmWatchdog(timeout uint64) {
	k.watchdog.lock.Acquire()
	k.ticks.lock.Acquire()
	k.watchdog.timeout = timeout
	k.watchdog.last = k.ticks.val
	k.ticks.lock.Release()
	k.watchdog.lock.Release()
}

// ResetWatchdog restarts the watchdog window at the current tick,
// keeping the configured timeout. The syscall layer calls this on
// behalf of a petting process.
func (k *Kernel) ResetWatchdog() {
	k.watchdog.lock.Acquire()
	k.ticks.lock.Acquire()
	k.watchdog.last = k.ticks.val
	k.ticks.lock.Release()
	k.watchdog.lock.Release()
}

// clockintr runs once per timer tick, only on the timekeeping hart.
// Lock order is watchdog then ticks; ArmWatchdog and ResetWatchdog
// take them in the same order.
func (k *Kernel) clockintr() {
	k.watchdog.lock.Acquire()
	k.ticks.lock.Acquire()
	if k.watchdog.timeout != 0 && k.ticks.val-k.watchdog.last > k.watchdog.timeout {
		k.ticks.lock.Release()
		k.watchdog.lock.Release()
		k.panic("watchdog expired")
		return
	}
	k.ticks.val++
	k.sched.Wakeup(&k.ticks)
	k.ticks.lock.Release()
	k.watchdog.lock.Release()
}
