package kernel

import "fmt"

const PGSIZE = uint64(4096)
const MAXVA = uint64(1) << 38

// scause encoding: bit 63 distinguishes interrupts from exceptions,
// the low bits carry the cause number. The two numbering spaces are
// disjoint and both start at 0.
const (
	SCAUSE_INTERRUPT = uint64(1) << 63

	// exception cause numbers
	SCAUSE_ECALL_U          = uint64(8)
	SCAUSE_INSTR_PAGE_FAULT = uint64(12)
	SCAUSE_LOAD_PAGE_FAULT  = uint64(13)
	SCAUSE_STORE_PAGE_FAULT = uint64(15)

	// supervisor external interrupt, via PLIC
	SCAUSE_SEXT_CODE = uint64(9)

	// software interrupt from a machine-mode timer interrupt,
	// forwarded by timervec
	SCAUSE_SSOFT = SCAUSE_INTERRUPT | 1
)

// sstatus bits
const (
	SSTATUS_SPP  = uint64(1) << 8 // previous mode: 1=supervisor, 0=user
	SSTATUS_SPIE = uint64(1) << 5 // supervisor previous interrupt enable
	SSTATUS_SIE  = uint64(1) << 1 // supervisor interrupt enable
)

// sip bits
const (
	SIP_SSIP = uint64(1) << 1 // supervisor software interrupt pending
)

const SATP_SV39 = uint64(8) << 60

type pagetable_t uint64

func MAKE_SATP(pagetable pagetable_t) uint64 {
	return SATP_SV39 | (uint64(pagetable) >> 12)
}

func PGROUNDDOWN(a uint64) uint64 { return a &^ (PGSIZE - 1) }

// CSR is the supervisor-level control register file of the hart this
// code is executing on. The dispatch logic touches the hardware only
// through it: a platform adapter backs it on real hardware, a fake
// backs it under go test.
type CSR interface {
	Scause() uint64
	Stval() uint64
	Sepc() uint64
	SetSepc(v uint64)
	Sstatus() uint64
	SetSstatus(v uint64)
	SetStvec(v uint64)
	Sip() uint64
	SetSip(v uint64)
	Satp() uint64
	HartID() int

	// interrupt enable, sstatus.SIE
	IntrOn()
	IntrOff()
	IntrGet() bool
}

func hex(v uint64) string { return fmt.Sprintf("%#x", v) }
