package kernel

// devintr return values
const (
	intrNone   = 0 // not recognized
	intrDevice = 1 // device interrupt serviced
	intrTimer  = 2 // timekeeping tick serviced
)

// devintr checks if the pending trap is an external interrupt or a
// software interrupt, and handles it.
// Returns intrTimer if a timer tick, intrDevice if another device,
// intrNone if not recognized.
func (k *Kernel) devintr() int {
	scause := k.regs.Scause()

	switch {
	case scause&SCAUSE_INTERRUPT != 0 && scause&0xff == SCAUSE_SEXT_CODE:
		// supervisor external interrupt, via PLIC.

		// irq indicates which device interrupted.
		irq := k.plic.Claim()

		switch {
		case irq == UART0_IRQ:
			k.uart.ServiceInterrupt()
		case irq >= VIRTIO0_IRQ && irq-VIRTIO0_IRQ < len(k.disks):
			k.disks[irq-VIRTIO0_IRQ].ServiceInterrupt()
		default:
			// the PLIC sends each device interrupt to every hart,
			// which generates a lot of claims with irq==0.
		}

		if irq != 0 {
			k.plic.Complete(irq)
		}

		return intrDevice

	case scause == SCAUSE_SSOFT:
		// software interrupt from a machine-mode timer interrupt.
		// only the timekeeping hart advances the clock.
		if k.regs.HartID() == TIMEKEEPER_HART {
			k.clockintr()
		}

		// acknowledge by clearing the SSIP bit in sip.
		k.regs.SetSip(k.regs.Sip() &^ SIP_SSIP)

		return intrTimer

	default:
		return intrNone
	}
}
