package cpu

import "testing"

func TestInstructionFieldAccessors(t *testing.T) {
	t.Parallel()

	// ADDIU r9, r8, -1  ->  0x2509FFFF
	ir := Instruction(0x2509FFFF)

	if got := ir.Opcode(); got != opADDIU {
		t.Errorf("Opcode() = %#x, want %#x", got, opADDIU)
	}

	if got := ir.Rs(); got != 8 {
		t.Errorf("Rs() = %d, want 8", got)
	}

	if got := ir.Rt(); got != 9 {
		t.Errorf("Rt() = %d, want 9", got)
	}

	if got := ir.SignedImm16(); got != -1 {
		t.Errorf("SignedImm16() = %d, want -1", got)
	}

	if got := ir.Imm16(); got != 0xFFFF {
		t.Errorf("Imm16() = %#x, want 0xFFFF", got)
	}
}

func TestInstructionRFields(t *testing.T) {
	t.Parallel()

	// ADD r3, r1, r2 -> opcode 0, rs=1, rt=2, rd=3, shamt=0, funct=0x20.
	ir := Instruction(0)
	ir |= Instruction(1) << 21
	ir |= Instruction(2) << 16
	ir |= Instruction(3) << 11
	ir |= Instruction(0x20)

	if got := ir.Rs(); got != 1 {
		t.Errorf("Rs() = %d, want 1", got)
	}

	if got := ir.Rt(); got != 2 {
		t.Errorf("Rt() = %d, want 2", got)
	}

	if got := ir.Rd(); got != 3 {
		t.Errorf("Rd() = %d, want 3", got)
	}

	if got := ir.Funct(); got != fnADD {
		t.Errorf("Funct() = %#x, want %#x", got, fnADD)
	}
}

func TestInstructionBranchOffsetScalesByFour(t *testing.T) {
	t.Parallel()

	ir := Instruction(uint32(uint16(0xFFFE))) // -2 as a 16-bit immediate.

	if got := ir.BranchOffset(); got != -8 {
		t.Errorf("BranchOffset() = %d, want -8", got)
	}
}

func TestInstructionTargetAndCopNo(t *testing.T) {
	t.Parallel()

	// J target 0x00100000 -> Target field is the word address's low 26 bits.
	ir := Instruction(opJ)<<26 | Instruction(0x00100000)

	if got := ir.Target(); got != 0x00100000 {
		t.Errorf("Target() = %#x, want 0x00100000", got)
	}

	cop0Ir := Instruction(opCOP0) << 26
	if got := cop0Ir.CopNo(); got != 0 {
		t.Errorf("CopNo() = %d, want 0", got)
	}

	cop2Ir := Instruction(opCOP2) << 26
	if got := cop2Ir.CopNo(); got != 2 {
		t.Errorf("CopNo() = %d, want 2", got)
	}
}
