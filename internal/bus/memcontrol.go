package bus

import "fmt"

// MemController is the "generic command interpreter" MMIO device named by
// spec component B: eleven 32-bit configuration cells, each addressable only
// as a full word, with no behavior beyond storing whatever the BIOS writes.
//
// Grounded on the original implementation's MemControl register list
// (src/core/bus/io/memcontrol.rs) and, for the Go device shape, the teacher's
// Driver/Configure/Read/Write pattern (internal/vm/devices.go).
type MemController struct {
	regs map[uint32]*uint32

	exp1Base, exp2Base                     uint32
	exp1Size, exp3Size                     uint32
	biosRom, spuDelay, cdromDelay, exp2Size uint32
	comDelay, ramSize, cacheControl        uint32
}

// Addresses of the memory controller's cells, relative to the masked
// (KUSEG/KSEG0/KSEG1) physical address space, except CacheControlAddr which
// lives in KSEG2 and is never masked.
const (
	Exp1BaseAddr      uint32 = 0x1F801000
	Exp2BaseAddr      uint32 = 0x1F801004
	Exp1SizeAddr      uint32 = 0x1F801008
	Exp3SizeAddr      uint32 = 0x1F80100C
	BiosRomAddr       uint32 = 0x1F801010
	SPUDelayAddr      uint32 = 0x1F801014
	CDROMDelayAddr    uint32 = 0x1F801018
	Exp2SizeAddr      uint32 = 0x1F80101C
	ComDelayAddr      uint32 = 0x1F801020
	RamSizeAddr       uint32 = 0x1F801060
	CacheControlAddr  uint32 = 0xFFFE0130
)

// NewMemController creates a memory controller with all cells zeroed.
func NewMemController() *MemController {
	mc := &MemController{}
	mc.regs = map[uint32]*uint32{
		Exp1BaseAddr:     &mc.exp1Base,
		Exp2BaseAddr:     &mc.exp2Base,
		Exp1SizeAddr:     &mc.exp1Size,
		Exp3SizeAddr:     &mc.exp3Size,
		BiosRomAddr:      &mc.biosRom,
		SPUDelayAddr:     &mc.spuDelay,
		CDROMDelayAddr:   &mc.cdromDelay,
		Exp2SizeAddr:     &mc.exp2Size,
		ComDelayAddr:     &mc.comDelay,
		RamSizeAddr:      &mc.ramSize,
		CacheControlAddr: &mc.cacheControl,
	}

	return mc
}

// ReadWord returns a cell's value. addr is an absolute bus address, not an
// offset, since every cell is individually addressed.
func (mc *MemController) ReadWord(addr uint32) (uint32, error) {
	if cell, ok := mc.regs[addr]; ok {
		return *cell, nil
	}

	return 0, badAddress(addr)
}

// WriteWord sets a cell's value.
func (mc *MemController) WriteWord(addr uint32, val uint32) error {
	cell, ok := mc.regs[addr]
	if !ok {
		return badAddress(addr)
	}

	*cell = val

	return nil
}

// ReadByte and ReadHalf are not meaningful for this device; every cell is a
// whole 32-bit register and narrower accesses are a programming error in the
// BIOS, not a bus fault worth inventing new semantics for.
func (mc *MemController) ReadByte(addr uint32) (byte, error) {
	return 0, cannotReadSize(addr)
}

func (mc *MemController) ReadHalf(addr uint32) (uint16, error) {
	return 0, cannotReadSize(addr)
}

func (mc *MemController) WriteByte(addr uint32, _ byte) error {
	return cannotWriteSize(addr)
}

func (mc *MemController) WriteHalf(addr uint32, _ uint16) error {
	return cannotWriteSize(addr)
}

func cannotReadSize(addr uint32) error {
	return &Error{Addr: addr, Err: fmt.Errorf("%w: register requires word access", ErrCannotRead)}
}

func cannotWriteSize(addr uint32) error {
	return &Error{Addr: addr, Err: fmt.Errorf("%w: register requires word access", ErrCannotWrite)}
}
