package cpu

// dispatch.go is the nested (opcode, funct) decode table and the execute
// semantics for every instruction class.
//
// Grounded on the original implementation's instruction set
// (core/src/cpu/cpu.rs's match over Inst, and src/core/mips/mips.rs's
// match (opcode, funct) tuple dispatch), re-expressed as a Go switch over
// the opcode/funct constants in opcodes.go. Per-instruction semantics
// (checked vs. wrapping arithmetic, branch/jump targets, load/store widths)
// follow the MIPS I reference rather than copying the original's sentinel
// values for divide-by-zero (see DESIGN.md).

import "github.com/lmarchetti/psxcore/internal/cop0"

// branchTo redirects the instruction that will execute two steps from now,
// marking the one about to execute (already latched into cpu.PC) as
// occupying the delay slot.
func (cpu *CPU) branchTo(target uint32) {
	cpu.NextPC = target
	cpu.inDelaySlot = true
}

// operation is a decoded instruction: the handler decodeOp resolves an
// opcode to. Caching the resolved operation alongside the instruction word
// (see fetch in exec.go) is what makes the BIOS instruction cache a decode
// cache rather than merely a fetch cache: a repeated fetch of the same word
// skips this function's switch entirely instead of re-running it every step.
type operation func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool)

// decodeOp resolves ir's opcode to the operation that executes it.
func decodeOp(ir Instruction) operation {
	switch ir.Opcode() {
	case opSPECIAL:
		return (*CPU).execSpecial
	case opREGIMM:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) { cpu.execRegimm(ir) }
	case opJ:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.branchTo((cpu.PC & 0xF0000000) | (ir.Target() << 2))
		}
	case opJAL:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.Set(31, cpu.PC+4)
			cpu.branchTo((cpu.PC & 0xF0000000) | (ir.Target() << 2))
		}
	case opBEQ:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.branchIf(cpu.Get(ir.Rs()) == cpu.Get(ir.Rt()), ir)
		}
	case opBNE:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.branchIf(cpu.Get(ir.Rs()) != cpu.Get(ir.Rt()), ir)
		}
	case opBLEZ:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.branchIf(int32(cpu.Get(ir.Rs())) <= 0, ir)
		}
	case opBGTZ:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.branchIf(int32(cpu.Get(ir.Rs())) > 0, ir)
		}
	case opADDI:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) {
			cpu.execAddImm(ir, pc, delaySlot, true)
		}
	case opADDIU:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) {
			cpu.execAddImm(ir, pc, delaySlot, false)
		}
	case opSLTI:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.setIf(ir.Rt(), int32(cpu.Get(ir.Rs())) < ir.SignedImm16())
		}
	case opSLTIU:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.setIf(ir.Rt(), cpu.Get(ir.Rs()) < uint32(ir.SignedImm16()))
		}
	case opANDI:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.Set(ir.Rt(), cpu.Get(ir.Rs())&uint32(ir.Imm16()))
		}
	case opORI:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.Set(ir.Rt(), cpu.Get(ir.Rs())|uint32(ir.Imm16()))
		}
	case opXORI:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.Set(ir.Rt(), cpu.Get(ir.Rs())^uint32(ir.Imm16()))
		}
	case opLUI:
		return func(cpu *CPU, ir Instruction, _ uint32, _ bool) {
			cpu.Set(ir.Rt(), uint32(ir.Imm16())<<16)
		}
	case opCOP0, opCOP1, opCOP2, opCOP3:
		return (*CPU).execCoprocessor
	case opLB:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) {
			cpu.execLoad(ir, pc, delaySlot, 1, true)
		}
	case opLBU:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) {
			cpu.execLoad(ir, pc, delaySlot, 1, false)
		}
	case opLH:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) {
			cpu.execLoad(ir, pc, delaySlot, 2, true)
		}
	case opLHU:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) {
			cpu.execLoad(ir, pc, delaySlot, 2, false)
		}
	case opLW:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) {
			cpu.execLoad(ir, pc, delaySlot, 4, true)
		}
	case opLWL:
		return (*CPU).execLWL
	case opLWR:
		return (*CPU).execLWR
	case opSB:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) { cpu.execStore(ir, pc, delaySlot, 1) }
	case opSH:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) { cpu.execStore(ir, pc, delaySlot, 2) }
	case opSW:
		return func(cpu *CPU, ir Instruction, pc uint32, delaySlot bool) { cpu.execStore(ir, pc, delaySlot, 4) }
	case opSWL:
		return (*CPU).execSWL
	case opSWR:
		return (*CPU).execSWR
	case opLWC2:
		return (*CPU).execLWC2
	case opSWC2:
		return (*CPU).execSWC2
	default:
		return func(cpu *CPU, _ Instruction, pc uint32, delaySlot bool) {
			cpu.raise(cop0.Exception{Cause: cop0.ReservedInstr}, pc, delaySlot)
		}
	}
}

func (cpu *CPU) setIf(reg uint8, cond bool) {
	if cond {
		cpu.Set(reg, 1)
	} else {
		cpu.Set(reg, 0)
	}
}

func (cpu *CPU) branchIf(cond bool, ir Instruction) {
	if cond {
		cpu.branchTo(uint32(int32(cpu.PC) + ir.BranchOffset()))
	}
}

func (cpu *CPU) execAddImm(ir Instruction, pc uint32, delaySlot bool, checked bool) {
	a := int32(cpu.Get(ir.Rs()))
	b := ir.SignedImm16()

	if checked && addOverflows(a, b) {
		cpu.raise(cop0.Exception{Cause: cop0.Overflow}, pc, delaySlot)
		return
	}

	cpu.Set(ir.Rt(), uint32(a+b))
}

// execSpecial dispatches the SPECIAL (opcode 0) instruction family, decoded
// further by its function code.
func (cpu *CPU) execSpecial(ir Instruction, pc uint32, delaySlot bool) {
	switch ir.Funct() {
	case fnSLL:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rt())<<ir.Shamt())
	case fnSRL:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rt())>>ir.Shamt())
	case fnSRA:
		cpu.Set(ir.Rd(), uint32(int32(cpu.Get(ir.Rt()))>>ir.Shamt()))
	case fnSLLV:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rt())<<(cpu.Get(ir.Rs())&0x1f))
	case fnSRLV:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rt())>>(cpu.Get(ir.Rs())&0x1f))
	case fnSRAV:
		cpu.Set(ir.Rd(), uint32(int32(cpu.Get(ir.Rt()))>>(cpu.Get(ir.Rs())&0x1f)))
	case fnJR:
		cpu.branchTo(cpu.Get(ir.Rs()))
	case fnJALR:
		target := cpu.Get(ir.Rs())
		cpu.Set(ir.Rd(), cpu.PC+4)
		cpu.branchTo(target)
	case fnSYSCALL:
		cpu.raise(cop0.Exception{Cause: cop0.Syscall}, pc, delaySlot)
	case fnBREAK:
		cpu.raise(cop0.Exception{Cause: cop0.Breakpoint}, pc, delaySlot)
	case fnMFHI:
		cpu.Set(ir.Rd(), cpu.HI)
	case fnMTHI:
		cpu.HI = cpu.Get(ir.Rs())
	case fnMFLO:
		cpu.Set(ir.Rd(), cpu.LO)
	case fnMTLO:
		cpu.LO = cpu.Get(ir.Rs())
	case fnMULT:
		prod := int64(int32(cpu.Get(ir.Rs()))) * int64(int32(cpu.Get(ir.Rt())))
		cpu.HI, cpu.LO = uint32(uint64(prod)>>32), uint32(prod)
	case fnMULTU:
		prod := uint64(cpu.Get(ir.Rs())) * uint64(cpu.Get(ir.Rt()))
		cpu.HI, cpu.LO = uint32(prod>>32), uint32(prod)
	case fnDIV:
		q, r := divSigned(int32(cpu.Get(ir.Rs())), int32(cpu.Get(ir.Rt())))
		cpu.LO, cpu.HI = uint32(q), uint32(r)
	case fnDIVU:
		q, r := divUnsigned(cpu.Get(ir.Rs()), cpu.Get(ir.Rt()))
		cpu.LO, cpu.HI = q, r
	case fnADD:
		a, b := int32(cpu.Get(ir.Rs())), int32(cpu.Get(ir.Rt()))
		if addOverflows(a, b) {
			cpu.raise(cop0.Exception{Cause: cop0.Overflow}, pc, delaySlot)
			return
		}

		cpu.Set(ir.Rd(), uint32(a+b))
	case fnADDU:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rs())+cpu.Get(ir.Rt()))
	case fnSUB:
		a, b := int32(cpu.Get(ir.Rs())), int32(cpu.Get(ir.Rt()))
		if subOverflows(a, b) {
			cpu.raise(cop0.Exception{Cause: cop0.Overflow}, pc, delaySlot)
			return
		}

		cpu.Set(ir.Rd(), uint32(a-b))
	case fnSUBU:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rs())-cpu.Get(ir.Rt()))
	case fnAND:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rs())&cpu.Get(ir.Rt()))
	case fnOR:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rs())|cpu.Get(ir.Rt()))
	case fnXOR:
		cpu.Set(ir.Rd(), cpu.Get(ir.Rs())^cpu.Get(ir.Rt()))
	case fnNOR:
		cpu.Set(ir.Rd(), ^(cpu.Get(ir.Rs()) | cpu.Get(ir.Rt())))
	case fnSLT:
		cpu.setIf(ir.Rd(), int32(cpu.Get(ir.Rs())) < int32(cpu.Get(ir.Rt())))
	case fnSLTU:
		cpu.setIf(ir.Rd(), cpu.Get(ir.Rs()) < cpu.Get(ir.Rt()))
	default:
		cpu.raise(cop0.Exception{Cause: cop0.ReservedInstr}, pc, delaySlot)
	}
}

// execRegimm dispatches the REGIMM (opcode 1) branch family, decoded
// further by the rt field. Unrecognized rt fields alias BGEZ on real
// hardware rather than raising an exception, so the default case matches it.
func (cpu *CPU) execRegimm(ir Instruction) {
	rs := int32(cpu.Get(ir.Rs()))
	link := ir.Rt() == riBLTZAL || ir.Rt() == riBGEZAL

	if link {
		cpu.Set(31, cpu.PC+4)
	}

	switch ir.Rt() {
	case riBLTZ, riBLTZAL:
		cpu.branchIf(rs < 0, ir)
	default:
		cpu.branchIf(rs >= 0, ir)
	}
}
