// Package cpu implements an interpreter for the R3000A's integer pipeline:
// fetch/decode/execute, the branch-delay and load-delay slots, and exception
// raising into COP0.
package cpu

import (
	"fmt"

	"github.com/lmarchetti/psxcore/internal/bus"
	"github.com/lmarchetti/psxcore/internal/cop0"
	"github.com/lmarchetti/psxcore/internal/log"
)

// NumGPR is the number of general-purpose registers. r0 is hardwired to
// zero; writes to it are discarded.
const NumGPR = 32

// Reset vector: the PC the CPU fetches its first instruction from, and the
// address one word past it, which the (current, next) PC pair is
// initialized to so the first step behaves like any other.
const (
	ResetPC     uint32 = 0xBFC00000
	ResetNextPC uint32 = 0xBFC00004
)

// Coprocessor is the interface a coprocessor slot implements to receive
// MTC/MFC/CTC/CFC/coprocessor-command instructions. COP0 occupies slot 0
// through cop0Adapter; only its RFE function is special-cased, in
// execCoprocessor. Slots 1 and 3 have no coprocessor installed and any
// access to them raises CoprocessorUnusable.
type Coprocessor interface {
	MoveFromData(reg uint8) uint32
	MoveToData(reg uint8, val uint32)
	MoveFromControl(reg uint8) uint32
	MoveToControl(reg uint8, val uint32)
	RunCommand(cmd uint32)
}

// pendingLoad models the load-delay slot: a load instruction's destination
// register isn't visible to the instruction immediately following it; the
// value becomes visible only when the *next* instruction completes.
type pendingLoad struct {
	reg   uint8
	value uint32
	valid bool
}

// decodeCacheEntry caches the decode of one BIOS instruction word, keyed by
// (addr-0x1FC00000)>>2 so repeated fetches of BIOS code (which never
// self-modifies) skip both the bus read and decodeOp's opcode switch on
// every step. op is the resolved operation, not just the raw word, so a
// cache hit re-decodes nothing.
//
// Grounded on the original implementation's BIOS decode cache
// (core/src/bus/bios.rs: Cell<Inst> array sized BIOS_SIZE/4, populated on
// first fetch of each word).
type decodeCacheEntry struct {
	instr Instruction
	op    operation
	valid bool
}

// CPU holds the full interpreted state of the R3000A: general registers,
// HI/LO, the branch-delay PC pair, the pending load-delay slot, the
// coprocessor table, and the bus and COP0 it operates against.
type CPU struct {
	GPR [NumGPR]uint32
	HI  uint32
	LO  uint32

	// PC is the address of the instruction about to be fetched; NextPC is
	// the address that will be fetched after it. Branches and jumps change
	// NextPC, not PC, which is how the branch-delay slot falls out of the
	// ordinary fetch/advance sequence instead of needing special-case logic
	// at every call site.
	PC, NextPC uint32

	// inDelaySlot is true while the instruction about to execute occupies a
	// branch-delay slot; it is read and cleared at the start of Step and set
	// by branchTo when the instruction that just ran redirects NextPC.
	inDelaySlot bool

	// loadDelay is the writeback a load just scheduled; it is promoted to
	// loadPending at the start of the following step and committed to the
	// register file at the start of the step after that, giving every load
	// exactly one instruction's worth of delay before its result is visible.
	loadDelay, loadPending pendingLoad

	cop [4]Coprocessor // slot 0: cop0 adapter; slot 2: GTE stub; 1,3: absent.

	COP0 *cop0.COP0
	Bus  *bus.Bus

	decodeCache []decodeCacheEntry

	log *log.Logger
}

// New creates a CPU wired to the given bus and COP0, with the reset vector
// loaded into the PC pair and the decode cache allocated.
func New(b *bus.Bus, c *cop0.COP0, gte Coprocessor) *CPU {
	cpu := &CPU{
		Bus:         b,
		COP0:        c,
		decodeCache: make([]decodeCacheEntry, bus.BIOSSize/4),
		log:         log.DefaultLogger(),
	}

	cpu.cop[0] = &cop0Adapter{c}
	cpu.cop[2] = gte

	cpu.Reset()

	return cpu
}

// Reset restores the CPU to its power-on state: registers zeroed, PC pair at
// the reset vector, no pending load.
func (cpu *CPU) Reset() {
	cpu.GPR = [NumGPR]uint32{}
	cpu.HI, cpu.LO = 0, 0
	cpu.PC, cpu.NextPC = ResetPC, ResetNextPC
	cpu.inDelaySlot = false
	cpu.loadDelay = pendingLoad{}
	cpu.loadPending = pendingLoad{}
}

// Get returns a general register's value; r0 always reads zero.
func (cpu *CPU) Get(reg uint8) uint32 {
	if reg == 0 {
		return 0
	}

	return cpu.GPR[reg]
}

// Set writes a general register immediately (not through the load-delay
// slot). Writes to r0 are discarded.
func (cpu *CPU) Set(reg uint8, val uint32) {
	if reg == 0 {
		return
	}

	cpu.GPR[reg] = val
}

// WithLogger installs a logger, mirroring the teacher's WithLogger option
// functions (internal/vm/log.go), adapted from the LC-3's single top-level
// logger field to also reach the decode cache's silence (it has none to
// configure) for symmetry with how the bus and COP0 are wired.
func (cpu *CPU) WithLogger(l *log.Logger) {
	cpu.log = l
}

func (cpu *CPU) String() string {
	return fmt.Sprintf("PC:%#08x NextPC:%#08x HI:%#08x LO:%#08x", cpu.PC, cpu.NextPC, cpu.HI, cpu.LO)
}

func (cpu *CPU) LogValue() log.Value {
	return log.GroupValue(
		log.String("PC", fmt.Sprintf("%#08x", cpu.PC)),
		log.String("NEXT_PC", fmt.Sprintf("%#08x", cpu.NextPC)),
		log.String("HI", fmt.Sprintf("%#08x", cpu.HI)),
		log.String("LO", fmt.Sprintf("%#08x", cpu.LO)),
	)
}

// cop0Adapter exposes COP0 through the generic Coprocessor interface so
// slot-0 dispatch (MTC0/MFC0/CTC0/CFC0) in coproc.go doesn't need a special
// case alongside slots 1-3.
type cop0Adapter struct{ c *cop0.COP0 }

func (a *cop0Adapter) MoveFromData(reg uint8) uint32    { return a.c.Get(cop0.Register(reg)) }
func (a *cop0Adapter) MoveToData(reg uint8, val uint32) { a.c.Put(cop0.Register(reg), val) }
func (a *cop0Adapter) MoveFromControl(reg uint8) uint32 { return a.c.Get(cop0.Register(reg)) }
func (a *cop0Adapter) MoveToControl(reg uint8, val uint32) {
	a.c.Put(cop0.Register(reg), val)
}
func (a *cop0Adapter) RunCommand(_ uint32) {} // COP0 has no run-command instruction.
