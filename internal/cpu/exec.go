package cpu

// exec.go implements the fetch/decode/execute cycle.
//
// Grounded on the teacher's staged Step pipeline
// (internal/vm/exec.go: Fetch/Decode/EvalAddress/FetchOperands/Execute/Writeback),
// collapsed here to Fetch/commit-load-delay/Execute since the R3000A's
// simpler addressing modes don't need a separate address-evaluation stage;
// the decode step is the nested (opcode, funct) table the original
// implementation uses (src/core/mips/mips.rs), expressed as a Go switch.
import (
	"errors"
	"fmt"

	"github.com/lmarchetti/psxcore/internal/bus"
	"github.com/lmarchetti/psxcore/internal/cop0"
)

// Step runs a single instruction to completion: commit any outstanding
// load-delay writeback, fetch, decode, execute. Exceptions are handled
// internally by vectoring the PC into COP0's handler, so the returned error
// is always nil.
func (cpu *CPU) Step() error {
	isDelaySlot := cpu.inDelaySlot
	cpu.inDelaySlot = false

	curPC := cpu.PC
	cpu.PC = cpu.NextPC
	cpu.NextPC += 4

	if cpu.loadPending.valid {
		cpu.Set(cpu.loadPending.reg, cpu.loadPending.value)
	}

	cpu.loadPending = cpu.loadDelay
	cpu.loadDelay = pendingLoad{}

	ir, op, err := cpu.fetch(curPC)
	if err != nil {
		cpu.raise(mapFetchErr(err), curPC, isDelaySlot)
		return nil
	}

	cpu.log.Debug("fetched", "PC", fmt.Sprintf("%#08x", curPC), "IR", fmt.Sprintf("%#08x", uint32(ir)))

	op(cpu, ir, curPC, isDelaySlot)

	return nil
}

// scheduleLoad registers a load-delay writeback, taking effect at the start
// of the step after next. Writes to r0 are simply discarded, matching a real
// load-delay slot targeting r0.
func (cpu *CPU) scheduleLoad(reg uint8, val uint32) {
	if reg == 0 {
		return
	}

	cpu.loadDelay = pendingLoad{reg: reg, value: val, valid: true}
}

// raise enters the exception handler for exc, which occurred while executing
// the instruction at pc (in a branch-delay slot if delaySlot is true). Any
// outstanding load-delay writeback for the faulting instruction itself is
// discarded, matching hardware: an instruction that excepts never completes
// its writeback.
func (cpu *CPU) raise(exc cop0.Exception, pc uint32, delaySlot bool) {
	cpu.log.Debug("exception", "cause", exc.Cause, "pc", fmt.Sprintf("%#08x", pc))

	vector := cpu.COP0.Enter(exc, pc, delaySlot)

	cpu.PC = vector
	cpu.NextPC = vector + 4
	cpu.inDelaySlot = false
	cpu.loadDelay = pendingLoad{}
}

// mapFetchErr and mapDataErr translate bus errors into MIPS exceptions, per
// the fetch/load/store distinction the CAUSE register's exception codes draw
// (AdEL/IBE for fetch addresses, AdEL/DBE for load addresses, AdES/DBE for
// store addresses).
func mapFetchErr(err error) cop0.Exception {
	switch {
	case errors.Is(err, bus.ErrBadAddress):
		return cop0.Exception{Cause: cop0.AdEL, BadAddr: addrOf(err)}
	default:
		return cop0.Exception{Cause: cop0.IBE, BadAddr: addrOf(err)}
	}
}

func mapLoadErr(err error) cop0.Exception {
	switch {
	case errors.Is(err, bus.ErrBadAddress):
		return cop0.Exception{Cause: cop0.AdEL, BadAddr: addrOf(err)}
	default:
		return cop0.Exception{Cause: cop0.DBE, BadAddr: addrOf(err)}
	}
}

func mapStoreErr(err error) cop0.Exception {
	switch {
	case errors.Is(err, bus.ErrBadAddress):
		return cop0.Exception{Cause: cop0.AdES, BadAddr: addrOf(err)}
	default:
		return cop0.Exception{Cause: cop0.DBE, BadAddr: addrOf(err)}
	}
}

func addrOf(err error) uint32 {
	var be *bus.Error
	if errors.As(err, &be) {
		return be.Addr
	}

	return 0
}

// fetch reads one instruction word and resolves the operation its opcode
// decodes to, consulting the BIOS decode cache when the address falls in
// BIOS ROM: a cache hit returns the operation resolved on the first fetch of
// that word, so decodeOp's switch runs at most once per BIOS instruction
// instead of on every step.
//
// Grounded on the original implementation's BIOS decode cache
// (core/src/bus/bios.rs), keyed the same way: (addr - 0x1FC00000) >> 2.
func (cpu *CPU) fetch(addr uint32) (Instruction, operation, error) {
	if idx, ok := biosCacheIndex(addr); ok {
		if cpu.decodeCache[idx].valid {
			e := cpu.decodeCache[idx]
			return e.instr, e.op, nil
		}

		w, err := cpu.Bus.ReadWord(addr)
		if err != nil {
			return 0, nil, err
		}

		ir := Instruction(w)
		op := decodeOp(ir)
		cpu.decodeCache[idx] = decodeCacheEntry{instr: ir, op: op, valid: true}

		return ir, op, nil
	}

	w, err := cpu.Bus.ReadWord(addr)
	if err != nil {
		return 0, nil, err
	}

	ir := Instruction(w)

	return ir, decodeOp(ir), nil
}

const (
	biosPhysLo = 0x1FC00000
	biosPhysHi = 0x1FC00000 + bus.BIOSSize - 1
)

func biosCacheIndex(addr uint32) (int, bool) {
	phys := addr & 0x1FFFFFFF
	if phys < biosPhysLo || phys > biosPhysHi {
		return 0, false
	}

	return int(phys-biosPhysLo) >> 2, true
}
