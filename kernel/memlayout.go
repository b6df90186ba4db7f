package kernel

// Interrupt numbers and virtual layout, a go version of memlayout.h.
//
// qemu -machine virt wires the devices like this,
// based on qemu's hw/riscv/virt.c:
//
// 0C000000 -- PLIC
// 10000000 -- uart0
// 10001000 -- virtio disk 0
// 10002000 -- virtio disk 1

const UART0_IRQ = 10

const (
	VIRTIO0_IRQ = 1
	VIRTIO1_IRQ = 2
)

// the hart that owns the tick counter and the watchdog
const TIMEKEEPER_HART = 0

// map the trampoline page to the highest address,
// in both user and kernel space.
const TRAMPOLINE = MAXVA - PGSIZE

// the trapframe sits just under the trampoline in user space,
// at a fixed address the trampoline code knows.
const TRAPFRAME = TRAMPOLINE - PGSIZE
