package kernel

// Labels for the scause codes the RISC-V privileged specification
// names. Codes outside these tables fall back to the reserved-range
// labels below, following the published allocation of standard, custom
// and platform ranges. Diagnostics only, never consulted for routing.

var intrDesc = map[uint64]string{
	0: "user software interrupt",
	1: "supervisor software interrupt",
	4: "user timer interrupt",
	5: "supervisor timer interrupt",
	8: "user external interrupt",
	9: "supervisor external interrupt",
}

var excDesc = map[uint64]string{
	0:  "instruction address misaligned",
	1:  "instruction access fault",
	2:  "illegal instruction",
	3:  "breakpoint",
	4:  "load address misaligned",
	5:  "load access fault",
	6:  "store/AMO address misaligned",
	7:  "store/AMO access fault",
	8:  "environment call from U-mode",
	9:  "environment call from S-mode",
	12: "instruction page fault",
	13: "load page fault",
	15: "store/AMO page fault",
}

const (
	reservedStd      = "reserved for future standard use"
	reservedCustom   = "reserved for custom use"
	reservedPlatform = "reserved for platform use"
)

// ScauseDesc returns a human-readable label for a raw scause value.
func ScauseDesc(scause uint64) string {
	code := scause &^ SCAUSE_INTERRUPT
	if scause&SCAUSE_INTERRUPT != 0 {
		if desc, ok := intrDesc[code]; ok {
			return desc
		}
		if code < 16 {
			return reservedStd
		}
		return reservedPlatform
	}
	if desc, ok := excDesc[code]; ok {
		return desc
	}
	switch {
	case code <= 23:
		return reservedStd
	case code <= 31:
		return reservedCustom
	case code <= 47:
		return reservedStd
	case code <= 63:
		return reservedCustom
	default:
		return reservedStd
	}
}
