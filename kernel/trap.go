package kernel

// UserTrap handles an interrupt, exception, or system call from user
// space. The trampoline jumps here after saving user state into the
// trapframe.
func (k *Kernel) UserTrap() {
	whichDev := intrNone

	if k.regs.Sstatus()&SSTATUS_SPP != 0 {
		k.panic("usertrap: not from user mode")
		return
	}

	// send interrupts and exceptions to kerneltrap(),
	// since we're now in the kernel.
	k.regs.SetStvec(k.kernelVec)

	p := k.sched.Current()

	// save user program counter.
	p.TF.Epc = k.regs.Sepc()

	scause := k.regs.Scause()

	switch {
	case scause == SCAUSE_ECALL_U:
		// system call

		if p.Killed() {
			k.sched.Exit(-1)
			return
		}

		// sepc points to the ecall instruction,
		// but we want to return to the next instruction.
		p.TF.Epc += 4

		// an interrupt will change sstatus &c registers,
		// so don't enable until done with those registers.
		k.regs.IntrOn()

		k.sys.Dispatch()

	case scause == SCAUSE_STORE_PAGE_FAULT ||
		scause == SCAUSE_LOAD_PAGE_FAULT ||
		scause == SCAUSE_INSTR_PAGE_FAULT:
		k.handlePageFault(p, scause, k.regs.Stval(), k.regs.Sepc())

	default:
		if whichDev = k.devintr(); whichDev == intrNone {
			k.log.Error("usertrap: unexpected scause",
				"scause", hex(scause), "desc", ScauseDesc(scause),
				"pid", p.PID, "name", p.Name,
				"sepc", hex(k.regs.Sepc()), "stval", hex(k.regs.Stval()))
			p.SetKilled()
		}
	}

	if p.Killed() {
		k.sched.Exit(-1)
		return
	}

	// give up the CPU if this is a timer interrupt.
	if whichDev == intrTimer {
		k.sched.Yield()
	}

	k.UserTrapRet()
}

// UserTrapRet returns to user space. The final trampoline call
// switches page tables and sret's; control does not come back here.
func (k *Kernel) UserTrapRet() {
	p := k.sched.Current()

	// turn off interrupts, since we're switching
	// the stvec target from kerneltrap() to usertrap().
	k.regs.IntrOff()

	// send syscalls, interrupts, and exceptions to the trampoline.
	k.regs.SetStvec(k.tramp.UserVec())

	// set up trapframe values the trampoline will need when
	// the process next re-enters the kernel.
	p.TF.KernelSatp = k.regs.Satp()
	p.TF.KernelSP = p.Kstack + PGSIZE
	p.TF.KernelTrap = k.userTrapEntry
	p.TF.KernelHartID = uint64(k.regs.HartID())

	// set up the sstatus value the trampoline's sret will use to get
	// to user space: previous mode user, interrupts enabled on return.
	x := k.regs.Sstatus()
	x &^= SSTATUS_SPP
	x |= SSTATUS_SPIE
	k.regs.SetSstatus(x)

	// set the exception program counter to the saved user pc.
	k.regs.SetSepc(p.TF.Epc)

	// jump to the trampoline at the top of memory, which switches to
	// the user page table, restores user registers, and sret's.
	k.tramp.UserRet(TRAPFRAME, MAKE_SATP(p.Pagetable))
}

// KernelTrap handles interrupts and exceptions taken while in
// supervisor mode, on whatever the current kernel stack is. Only
// device and timer interrupts are survivable here.
func (k *Kernel) KernelTrap() {
	sepc := k.regs.Sepc()
	sstatus := k.regs.Sstatus()
	scause := k.regs.Scause()

	if sstatus&SSTATUS_SPP == 0 {
		k.panic("kerneltrap: not from supervisor mode")
		return
	}
	if k.regs.IntrGet() {
		k.panic("kerneltrap: interrupts enabled")
		return
	}

	whichDev := k.devintr()
	if whichDev == intrNone {
		k.log.Error("kerneltrap: unexpected scause",
			"scause", hex(scause), "desc", ScauseDesc(scause),
			"sepc", hex(sepc), "stval", hex(k.regs.Stval()))
		k.panic("kerneltrap")
		return
	}

	// give up the CPU if this is a timer interrupt.
	if whichDev == intrTimer {
		if p := k.sched.Current(); p != nil && p.State == RUNNING {
			k.sched.Yield()
		}
	}

	// the yield() may have caused some traps to occur,
	// so restore trap registers for use by the kernel vector's sret.
	k.regs.SetSepc(sepc)
	k.regs.SetSstatus(sstatus)
}
