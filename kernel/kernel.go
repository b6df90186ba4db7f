package kernel

import (
	hclog "github.com/hashicorp/go-hclog"
)

// PLIC is the claim/complete protocol of the platform-level interrupt
// controller.
type PLIC interface {
	Claim() int
	Complete(irq int)
}

// Device is an interrupt-driven device (the UART, a virtio disk).
type Device interface {
	ServiceInterrupt()
}

// Allocator owns the VMA list and the page tables; it materializes
// mappings on demand. Allocate returns nil on success or an error
// wrapping a FaultReason. Callers hold p.VMALock around Allocate.
type Allocator interface {
	Allocate(pagetable pagetable_t, p *Proc, addr uint64, scause uint64) error

	// DumpVMAs prints p's mapping layout for diagnostics.
	DumpVMAs(p *Proc)
}

// SyscallDispatcher decodes and runs the system call named by the
// current process's trapframe.
type SyscallDispatcher interface {
	Dispatch()
}

// Scheduler is the process scheduler as seen from the trap layer.
type Scheduler interface {
	// Current returns the process running on this hart, or nil when
	// the hart is idle or in scheduler context.
	Current() *Proc

	// Yield gives up the CPU; the caller resumes later.
	Yield()

	// Wakeup unblocks processes sleeping on cond.
	Wakeup(cond any)

	// Exit terminates the current process. It does not return.
	Exit(status int)
}

// Trampoline is the fixed user-transition stub mapped at TRAMPOLINE.
type Trampoline interface {
	// UserVec is the stvec target while a process runs in user mode.
	UserVec() uint64

	// UserRet switches to the user page table, restores user
	// registers from the trapframe and sret's. It does not return.
	UserRet(trapframe, satp uint64)
}

// TrampolineStub computes the two trampoline entry points as offsets
// from the base the page is mapped at, the way the linker lays the
// stub out, and delegates the actual transfer to Jump.
type TrampolineStub struct {
	Base       uint64
	UserVecOff uint64
	UserRetOff uint64

	// Jump transfers control to the stub entry fn. Must not return.
	Jump func(fn, trapframe, satp uint64)
}

func (t *TrampolineStub) UserVec() uint64 { return t.Base + t.UserVecOff }

func (t *TrampolineStub) UserRet(trapframe, satp uint64) {
	t.Jump(t.Base+t.UserRetOff, trapframe, satp)
}

// Config wires a Kernel to its hardware and collaborators.
type Config struct {
	Regs       CSR
	Log        hclog.Logger
	Scheduler  Scheduler
	Syscall    SyscallDispatcher
	Allocator  Allocator
	PLIC       PLIC
	UART       Device
	Disks      []Device // indexed by irq - VIRTIO0_IRQ
	Trampoline Trampoline

	// KernelVec is the stvec target for traps taken in supervisor
	// mode; UserTrapEntry is the handler address the trampoline jumps
	// to on a user trap, stored in every trapframe on user return.
	KernelVec     uint64
	UserTrapEntry uint64

	// WatchdogTimeout arms the watchdog at startup; zero leaves it
	// disarmed.
	WatchdogTimeout uint64

	// Halt stops the machine and must not return. Defaults to
	// spinning forever.
	Halt func(reason string)
}

// Kernel is the trap, interrupt and exception dispatch layer.
type Kernel struct {
	regs  CSR
	log   hclog.Logger
	sched Scheduler
	sys   SyscallDispatcher
	mem   Allocator
	plic  PLIC
	uart  Device
	disks []Device
	tramp Trampoline
	halt  func(string)

	kernelVec     uint64
	userTrapEntry uint64

	ticks    Ticks
	watchdog Watchdog
}

// New builds the trap layer. The equivalent of trapinit(): the shared
// tick and watchdog state live for the life of the machine.
func New(cfg Config) *Kernel {
	log := cfg.Log
	if log == nil {
		log = hclog.New(&hclog.LoggerOptions{Name: "kernel"})
	}
	halt := cfg.Halt
	if halt == nil {
		halt = func(string) {
			for {
			}
		}
	}
	k := &Kernel{
		regs:          cfg.Regs,
		log:           log,
		sched:         cfg.Scheduler,
		sys:           cfg.Syscall,
		mem:           cfg.Allocator,
		plic:          cfg.PLIC,
		uart:          cfg.UART,
		disks:         cfg.Disks,
		tramp:         cfg.Trampoline,
		halt:          halt,
		kernelVec:     cfg.KernelVec,
		userTrapEntry: cfg.UserTrapEntry,
	}
	k.watchdog.timeout = cfg.WatchdogTimeout
	return k
}

// TrapInitHart sets up this hart to take exceptions and traps while in
// the kernel.
func (k *Kernel) TrapInitHart() {
	k.regs.SetStvec(k.kernelVec)
}

// Ticks exposes the tick counter, for the sleep syscall path.
func (k *Kernel) Ticks() *Ticks { return &k.ticks }

// panic reports an unrecoverable condition and stops the machine.
func (k *Kernel) panic(reason string) {
	k.log.Error("panic", "reason", reason)
	k.halt(reason)
}
