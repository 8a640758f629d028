package cpu

// coproc.go dispatches the COP0-COP3 instruction family: register moves
// (MF/MT/CF/CT) and coprocessor-function instructions (RFE, GTE commands).
//
// Grounded on the original implementation's coprocessor dispatch
// (core/src/cpu/cpu.rs's Cop0/Cop2 match arms), generalized here to the
// four-slot Coprocessor table so slots 1 and 3 (absent on a PSX) fall
// through to the same CoprocessorUnusable path as a real R3000A.
import "github.com/lmarchetti/psxcore/internal/cop0"

// coFuncBit marks a COPz instruction whose remaining 25 bits are a
// coprocessor-defined function rather than an MF/MT/CF/CT register move;
// bit 25 of the instruction word.
const coFuncBit = 1 << 25

// rfeFunct is COP0's lone coprocessor function, Restore From Exception.
const rfeFunct = 0x10

func (cpu *CPU) execCoprocessor(ir Instruction, pc uint32, delaySlot bool) {
	n := ir.CopNo()

	co := cpu.cop[n]
	if co == nil {
		cpu.raise(cop0.Exception{Cause: cop0.CoprocessorUnusable, CopNo: n}, pc, delaySlot)
		return
	}

	if uint32(ir)&coFuncBit != 0 {
		if n == 0 && ir.Funct() == rfeFunct {
			cpu.COP0.RFE()
			return
		}

		co.RunCommand(uint32(ir) &^ coFuncBit)

		return
	}

	switch ir.Rs() {
	case copMF:
		cpu.scheduleLoad(ir.Rt(), co.MoveFromData(ir.Rd()))
	case copCF:
		cpu.scheduleLoad(ir.Rt(), co.MoveFromControl(ir.Rd()))
	case copMT:
		co.MoveToData(ir.Rd(), cpu.Get(ir.Rt()))
	case copCT:
		co.MoveToControl(ir.Rd(), cpu.Get(ir.Rt()))
	default:
		cpu.raise(cop0.Exception{Cause: cop0.ReservedInstr}, pc, delaySlot)
	}
}
