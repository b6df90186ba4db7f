package kernel

import "errors"

// FaultReason classifies why demand paging could not resolve a fault.
// The allocator collaborator returns one of these (possibly wrapped)
// from Allocate.
type FaultReason int

const (
	FaultNoVMA     FaultReason = iota // no VMA covers the address
	FaultNoMem                        // kernel out of physical pages
	FaultNoFile                       // read of the backing file failed
	FaultMapFailed                    // installing the mapping failed
	FaultBadPerm                      // access not permitted by the VMA
)

func (r FaultReason) Error() string {
	switch r {
	case FaultNoVMA:
		return "no vma covers address"
	case FaultNoMem:
		return "out of memory"
	case FaultNoFile:
		return "backing file read failed"
	case FaultMapFailed:
		return "mappages failed"
	case FaultBadPerm:
		return "permission denied"
	default:
		return "unknown fault reason"
	}
}

// handlePageFault resolves a demand-paging fault for p, or marks p
// killed and returns the reason. The faulting instruction is retried
// on resume, so the saved epc is deliberately left alone. VMALock is
// held across the allocator call and released on every path.
func (k *Kernel) handlePageFault(p *Proc, scause, stval, sepc uint64) error {
	addr := PGROUNDDOWN(stval)

	k.log.Debug("page fault",
		"pid", p.PID, "name", p.Name,
		"scause", hex(scause), "stval", hex(stval), "sepc", hex(sepc))

	p.VMALock.Acquire()
	err := k.mem.Allocate(p.Pagetable, p, addr, scause)
	p.VMALock.Release()
	if err == nil {
		return nil
	}

	var reason FaultReason
	if !errors.As(err, &reason) {
		k.log.Error("page fault failed", "err", err)
	} else {
		switch reason {
		case FaultNoVMA:
			k.log.Error("could not find VMA associated with address", "addr", hex(addr))
		case FaultNoMem:
			k.log.Error("no more memory could be allocated from the kernel")
		case FaultNoFile:
			k.log.Error("could not read file associated with memory area")
		case FaultMapFailed:
			k.log.Error("mappages failed for an unknown reason")
		case FaultBadPerm:
			k.log.Error("bad permission", "addr", hex(addr), "scause", hex(scause))
		}
	}

	k.mem.DumpVMAs(p)
	k.log.Error("unrecoverable page fault",
		"pid", p.PID, "sepc", hex(sepc), "stval", hex(stval), "scause", hex(scause))
	p.SetKilled()
	return err
}
