package cpu

// GTEStub is a placeholder for the geometry transformation engine at
// coprocessor slot 2. It accepts every instruction a real GTE would (so
// BIOS code that merely checks the coprocessor is present doesn't fault) but
// performs no computation: its data and control registers are a flat,
// unmodeled bank, and RunCommand is a no-op.
//
// Grounded on the original implementation's DummyCoprocessor
// (src/core/mips/mod.rs), which panics on any access; this module instead
// keeps the registers readable/writable so BIOS initialization code that
// pokes the GTE during boot doesn't need the coprocessor to be fully
// implemented to get past early startup.
type GTEStub struct {
	data, ctrl [32]uint32
}

// NewGTEStub creates a GTE placeholder with all registers zeroed.
func NewGTEStub() *GTEStub { return &GTEStub{} }

func (g *GTEStub) MoveFromData(reg uint8) uint32       { return g.data[reg&0x1f] }
func (g *GTEStub) MoveToData(reg uint8, val uint32)    { g.data[reg&0x1f] = val }
func (g *GTEStub) MoveFromControl(reg uint8) uint32    { return g.ctrl[reg&0x1f] }
func (g *GTEStub) MoveToControl(reg uint8, val uint32) { g.ctrl[reg&0x1f] = val }
func (g *GTEStub) RunCommand(_ uint32)                 {}
