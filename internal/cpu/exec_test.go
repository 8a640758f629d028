package cpu

import (
	"testing"

	"github.com/lmarchetti/psxcore/internal/bus"
	"github.com/lmarchetti/psxcore/internal/cop0"
)

// newTestCPU wires a fresh CPU to a fresh bus and COP0, exactly as
// machine.New does, without going through the machine package (which would
// require a BIOS image).
func newTestCPU() (*CPU, *cop0.COP0) {
	c0 := cop0.New()
	b := bus.New(c0)
	cpu := New(b, c0, NewGTEStub())

	return cpu, c0
}

func encodeR(opcode, rs, rt, rd, shamt, funct uint8) uint32 {
	return uint32(opcode)<<26 | uint32(rs)<<21 | uint32(rt)<<16 | uint32(rd)<<11 | uint32(shamt)<<6 | uint32(funct)
}

func encodeI(opcode, rs, rt uint8, imm uint16) uint32 {
	return uint32(opcode)<<26 | uint32(rs)<<21 | uint32(rt)<<16 | uint32(imm)
}

func encodeJ(opcode uint8, target uint32) uint32 {
	return uint32(opcode)<<26 | (target&0x0FFFFFFF)>>2
}

// loadProgram writes words into RAM through the KSEG0 uncached-mirror base,
// starting at addr, and points the CPU's PC pair at the first word.
func loadProgram(t *testing.T, cpu *CPU, addr uint32, words []uint32) {
	t.Helper()

	for i, w := range words {
		if err := cpu.Bus.WriteWord(addr+uint32(i*4), w); err != nil {
			t.Fatalf("loading program: %v", err)
		}
	}

	cpu.PC, cpu.NextPC = addr, addr+4
}

func step(t *testing.T, cpu *CPU, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if err := cpu.Step(); err != nil {
			t.Fatalf("Step() #%d: %v", i, err)
		}
	}
}

func TestLUIThenORIBuildsAnAbsoluteConstant(t *testing.T) {
	t.Parallel()

	cpu, _ := newTestCPU()

	const base = 0x80001000

	loadProgram(t, cpu, base, []uint32{
		encodeI(opLUI, 0, 1, 0x1234),
		encodeI(opORI, 1, 1, 0x5678),
	})

	step(t, cpu, 2)

	if got := cpu.Get(1); got != 0x12345678 {
		t.Errorf("r1 = %#x, want 0x12345678", got)
	}
}

func TestLoadDelaySlotHidesResultForOneInstruction(t *testing.T) {
	t.Parallel()

	cpu, _ := newTestCPU()

	const (
		codeBase = 0x80001000
		dataAddr = 0x80002000
	)

	if err := cpu.Bus.WriteWord(dataAddr, 0xCAFEBABE); err != nil {
		t.Fatalf("priming data word: %v", err)
	}

	loadProgram(t, cpu, codeBase, []uint32{
		encodeI(opLUI, 0, 2, 0x8000),          // r2 = 0x80000000
		encodeI(opORI, 2, 2, 0x2000),          // r2 |= 0x2000 -> dataAddr
		encodeI(opADDIU, 0, 1, 0x1111),        // r1 = 0x1111 (sentinel)
		encodeI(opLW, 2, 1, 0),                // r1 <- [r2], load-delayed
		encodeR(opSPECIAL, 1, 0, 3, 0, fnADDU), // r3 = r1 + r0, still delay slot
		encodeR(opSPECIAL, 1, 0, 4, 0, fnADDU), // r4 = r1 + r0, delay has resolved
	})

	step(t, cpu, 6)

	if got := cpu.Get(3); got != 0x1111 {
		t.Errorf("r3 = %#x, want 0x1111 (stale value, one instruction of invisibility)", got)
	}

	if got := cpu.Get(4); got != 0xCAFEBABE {
		t.Errorf("r4 = %#x, want 0xCAFEBABE (load has resolved)", got)
	}
}

func TestBranchDelaySlotAlwaysExecutes(t *testing.T) {
	t.Parallel()

	cpu, _ := newTestCPU()

	const codeBase = 0x80001000

	loadProgram(t, cpu, codeBase, []uint32{
		encodeI(opBEQ, 0, 0, 3),         // always taken; target = (codeBase+4) + 3*4
		encodeI(opADDIU, 0, 6, 11),      // delay slot: always executes
		encodeI(opADDIU, 0, 7, 22),      // skipped by the branch
		encodeI(opADDIU, 0, 7, 33),      // skipped by the branch
		encodeI(opADDIU, 0, 8, 44),      // branch target
	})

	step(t, cpu, 3)

	if got := cpu.Get(6); got != 11 {
		t.Errorf("r6 = %d, want 11 (delay slot instruction ran)", got)
	}

	if got := cpu.Get(7); got != 0 {
		t.Errorf("r7 = %d, want 0 (skipped instructions did not run)", got)
	}

	if got := cpu.Get(8); got != 44 {
		t.Errorf("r8 = %d, want 44 (branch target ran)", got)
	}
}

func TestMultuDivuMfloCompute(t *testing.T) {
	t.Parallel()

	cpu, _ := newTestCPU()

	const base = 0x80001000

	loadProgram(t, cpu, base, []uint32{
		encodeI(opADDIU, 0, 1, 6),                  // r1 = 6
		encodeI(opADDIU, 0, 2, 7),                  // r2 = 7
		encodeR(opSPECIAL, 1, 2, 0, 0, fnMULTU),    // HI:LO = 42
		encodeR(opSPECIAL, 0, 0, 3, 0, fnMFLO),     // r3 = 42
		encodeI(opADDIU, 0, 4, 2),                  // r4 = 2
		encodeR(opSPECIAL, 3, 4, 0, 0, fnDIVU),     // LO = 21, HI = 0
		encodeR(opSPECIAL, 0, 0, 5, 0, fnMFLO),     // r5 = 21
	})

	step(t, cpu, 7)

	if got := cpu.Get(3); got != 42 {
		t.Errorf("r3 = %d, want 42", got)
	}

	if got := cpu.Get(5); got != 21 {
		t.Errorf("r5 = %d, want 21", got)
	}
}

func TestCacheIsolationSuppressesStores(t *testing.T) {
	t.Parallel()

	cpu, c0 := newTestCPU()

	const base = 0x80001000

	loadProgram(t, cpu, base, []uint32{
		encodeI(opADDIU, 0, 1, 0x7f),
		encodeI(opSW, 0, 1, 0x100),
	})

	c0.Put(cop0.SR, cop0.SRIsc)

	step(t, cpu, 2)

	got, err := cpu.Bus.ReadWord(0x100)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}

	if got != 0 {
		t.Errorf("RAM[0x100] = %#x, want 0 (write suppressed by Isc)", got)
	}
}

func TestMisalignedLoadRaisesAdELAndVectors(t *testing.T) {
	t.Parallel()

	cpu, c0 := newTestCPU()

	const base = 0x80001000

	loadProgram(t, cpu, base, []uint32{
		encodeI(opLW, 0, 1, 3), // LW r1, 3(r0): misaligned by construction
	})

	step(t, cpu, 1)

	if got := cop0.Cause((c0.Get(cop0.CAUSE) >> 2) & 0x1f); got != cop0.AdEL {
		t.Errorf("CAUSE.ExcCode = %s, want AdEL", got)
	}

	if got := c0.Get(cop0.BadVaddr); got != 3 {
		t.Errorf("BadVaddr = %#x, want 3", got)
	}

	wantVector := uint32(0xBFC00180) // BEV set on reset.
	if cpu.PC != wantVector {
		t.Errorf("PC = %#x, want %#x (exception vector)", cpu.PC, wantVector)
	}
}

func TestCoprocessorUnusableForAbsentSlot(t *testing.T) {
	t.Parallel()

	cpu, c0 := newTestCPU()

	const base = 0x80001000

	// MFC1 r1, r0 : coprocessor 1 has no device installed.
	loadProgram(t, cpu, base, []uint32{
		encodeI(opCOP1, copMF, 1, 0),
	})

	step(t, cpu, 1)

	if got := cop0.Cause((c0.Get(cop0.CAUSE) >> 2) & 0x1f); got != cop0.CoprocessorUnusable {
		t.Errorf("CAUSE.ExcCode = %s, want CoprocessorUnusable", got)
	}
}

func TestJALLinksReturnAddress(t *testing.T) {
	t.Parallel()

	cpu, _ := newTestCPU()

	const base = 0x80001000

	loadProgram(t, cpu, base, []uint32{
		encodeJ(opJAL, base+16),
		encodeI(opADDIU, 0, 9, 1),  // delay slot
		encodeI(opADDIU, 0, 9, 2),  // skipped
		encodeI(opADDIU, 0, 9, 3),  // skipped
		encodeI(opADDIU, 0, 10, 9), // jump target
	})

	step(t, cpu, 2)

	if got := cpu.Get(31); got != base+8 {
		t.Errorf("r31 = %#x, want %#x (return address)", got, uint32(base+8))
	}
}

