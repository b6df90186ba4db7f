package kernel

import (
	"testing"

	hclog "github.com/hashicorp/go-hclog"
)

// fakeCSR is an in-memory register file standing in for the hart's
// supervisor CSRs.
type fakeCSR struct {
	scause  uint64
	stval   uint64
	sepc    uint64
	sstatus uint64
	stvec   uint64
	sip     uint64
	satp    uint64
	hartID  int
	intr    bool

	stvecHistory []uint64
}

func (c *fakeCSR) Scause() uint64 { return c.scause }
func (c *fakeCSR) Stval() uint64  { return c.stval }
func (c *fakeCSR) Sepc() uint64   { return c.sepc }
func (c *fakeCSR) SetSepc(v uint64) {
	c.sepc = v
}
func (c *fakeCSR) Sstatus() uint64     { return c.sstatus }
func (c *fakeCSR) SetSstatus(v uint64) { c.sstatus = v }
func (c *fakeCSR) SetStvec(v uint64) {
	c.stvec = v
	c.stvecHistory = append(c.stvecHistory, v)
}
func (c *fakeCSR) Sip() uint64     { return c.sip }
func (c *fakeCSR) SetSip(v uint64) { c.sip = v }
func (c *fakeCSR) Satp() uint64    { return c.satp }
func (c *fakeCSR) HartID() int     { return c.hartID }
func (c *fakeCSR) IntrOn()         { c.intr = true }
func (c *fakeCSR) IntrOff()        { c.intr = false }
func (c *fakeCSR) IntrGet() bool   { return c.intr }

type fakeScheduler struct {
	cur     *Proc
	yields  int
	wakeups []any
	exits   []int
	onYield func()
}

func (s *fakeScheduler) Current() *Proc { return s.cur }
func (s *fakeScheduler) Yield() {
	s.yields++
	if s.onYield != nil {
		s.onYield()
	}
}
func (s *fakeScheduler) Wakeup(cond any) { s.wakeups = append(s.wakeups, cond) }
func (s *fakeScheduler) Exit(status int) { s.exits = append(s.exits, status) }

type allocCall struct {
	pagetable pagetable_t
	addr      uint64
	scause    uint64
}

type fakeAllocator struct {
	err   error
	calls []allocCall
	dumps int
}

func (a *fakeAllocator) Allocate(pt pagetable_t, p *Proc, addr, scause uint64) error {
	a.calls = append(a.calls, allocCall{pt, addr, scause})
	return a.err
}

func (a *fakeAllocator) DumpVMAs(p *Proc) { a.dumps++ }

type fakePLIC struct {
	irq       int
	claims    int
	completed []int
}

func (pl *fakePLIC) Claim() int { pl.claims++; return pl.irq }
func (pl *fakePLIC) Complete(irq int) {
	pl.completed = append(pl.completed, irq)
}

type fakeDevice struct {
	serviced int
}

func (d *fakeDevice) ServiceInterrupt() { d.serviced++ }

type fakeSyscall struct {
	dispatched int
	fn         func()
}

func (s *fakeSyscall) Dispatch() {
	s.dispatched++
	if s.fn != nil {
		s.fn()
	}
}

type userRetCall struct {
	trapframe uint64
	satp      uint64
}

type fakeTrampoline struct {
	uservec uint64
	rets    []userRetCall
}

func (t *fakeTrampoline) UserVec() uint64 { return t.uservec }
func (t *fakeTrampoline) UserRet(tf, satp uint64) {
	t.rets = append(t.rets, userRetCall{tf, satp})
}

// harness wires a Kernel to fakes for everything.
type harness struct {
	k     *Kernel
	csr   *fakeCSR
	sched *fakeScheduler
	mem   *fakeAllocator
	plic  *fakePLIC
	uart  *fakeDevice
	disks []*fakeDevice
	sys   *fakeSyscall
	tramp *fakeTrampoline
	halts []string
}

const (
	testKernelVec     = uint64(0x80001000)
	testUserTrapEntry = uint64(0x80002000)
	testUserVec       = TRAMPOLINE + 0x10
)

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		csr:   &fakeCSR{},
		sched: &fakeScheduler{},
		mem:   &fakeAllocator{},
		plic:  &fakePLIC{},
		uart:  &fakeDevice{},
		disks: []*fakeDevice{{}, {}},
		sys:   &fakeSyscall{},
		tramp: &fakeTrampoline{uservec: testUserVec},
	}
	h.k = New(Config{
		Regs:       h.csr,
		Log:        hclog.NewNullLogger(),
		Scheduler:  h.sched,
		Syscall:    h.sys,
		Allocator:  h.mem,
		PLIC:       h.plic,
		UART:       h.uart,
		Disks:      []Device{h.disks[0], h.disks[1]},
		Trampoline: h.tramp,
		KernelVec:     testKernelVec,
		UserTrapEntry: testUserTrapEntry,
		Halt: func(reason string) {
			h.halts = append(h.halts, reason)
		},
	})
	return h
}

// userProc installs a runnable process as the hart's current process.
func (h *harness) userProc() *Proc {
	p := &Proc{
		PID:       3,
		Name:      "sh",
		State:     RUNNING,
		Kstack:    0x87f00000,
		Pagetable: pagetable_t(0x87e00000),
		TF:        &TrapFrame{},
	}
	h.sched.cur = p
	return p
}
