package kernel

type Procstate int

const (
	UNUSED   Procstate = iota // 0
	USED                      // 1
	SLEEPING                  // 2
	RUNNABLE                  // 3
	RUNNING                   // 4
	ZOMBIE                    // 5
)

// TrapFrame is the per-process saved execution context, captured by
// the trampoline on every user->kernel transition and restored on the
// way back. The trampoline stores to it at fixed offsets through the
// TRAPFRAME virtual address, so the field order matters on real
// hardware.
type TrapFrame struct {
	KernelSatp   uint64 // kernel page table
	KernelSP     uint64 // top of process's kernel stack
	KernelTrap   uint64 // address of the user trap handler
	Epc          uint64 // saved user program counter
	KernelHartID uint64 // saved hart id, for cpuid()

	Ra  uint64
	Sp  uint64
	Gp  uint64
	Tp  uint64
	T0  uint64
	T1  uint64
	T2  uint64
	S0  uint64
	S1  uint64
	A0  uint64
	A1  uint64
	A2  uint64
	A3  uint64
	A4  uint64
	A5  uint64
	A6  uint64
	A7  uint64
	S2  uint64
	S3  uint64
	S4  uint64
	S5  uint64
	S6  uint64
	S7  uint64
	S8  uint64
	S9  uint64
	S10 uint64
	S11 uint64
	T3  uint64
	T4  uint64
	T5  uint64
	T6  uint64
}

// Proc is the trap layer's view of a process. Lifecycle, scheduling
// and the VMA list belong to the scheduler and allocator
// collaborators; this layer reads and writes the trapframe, the
// killed flag, and serializes fault resolution on VMALock.
type Proc struct {
	Lock Spinlock

	// Lock must be held when using these:
	State  Procstate
	PID    int
	killed bool

	// these are private to the process, no lock needed
	Name      string
	Kstack    uint64 // bottom of the process's kernel stack page
	Pagetable pagetable_t
	TF        *TrapFrame

	// serializes page-fault resolution against VMA mutation
	VMALock Spinlock
}

// Killed reports whether the process has been marked for termination.
func (p *Proc) Killed() bool {
	p.Lock.Acquire()
	k := p.killed
	p.Lock.Release()
	return k
}

// SetKilled marks the process for termination. The trap layer converts
// the mark into an exit before the process returns to user mode.
func (p *Proc) SetKilled() {
	p.Lock.Acquire()
	p.killed = true
	p.Lock.Release()
}
