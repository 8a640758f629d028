// Package bus implements the PSX address-space bus: memory regions, the
// memory-mapped I/O device table, and the router that turns a 32-bit logical
// address into an access against RAM, ROM, scratchpad, or a device.
package bus

import (
	"github.com/lmarchetti/psxcore/internal/log"
)

// Sizes of the fixed memory regions, per the documented memory map.
const (
	RAMSize        = 2 * 1024 * 1024
	ScratchpadSize = 1 * 1024
	BIOSSize       = 512 * 1024
)

// Address ranges of the memory map, given as physical (already
// segment-masked) addresses, per the original implementation's documented
// layout (core/src/bus/mod.rs).
const (
	ramLo, ramHi             = 0x00000000, 0x001FFFFF
	exp1Lo, exp1Hi           = 0x1F000000, 0x1F7FFFFF
	scratchpadLo, scratchHi  = 0x1F800000, 0x1F8003FF
	ioPortsLo, ioPortsHi     = 0x1F801000, 0x1F801FFF
	exp2Lo, exp2Hi           = 0x1F802000, 0x1F802FFF
	exp3Lo, exp3Hi           = 0x1FA00000, 0x1FBFFFFF
	biosLo, biosHi           = 0x1FC00000, 0x1FC7FFFF
	cacheCtrlLo, cacheCtrlHi = 0xFFFE0000, 0xFFFE01FF

	segmentMask = 0x1FFFFFFF
	kseg2Base   = 0xC0000000
)

// IsolateCache is the narrow capability the bus needs from COP0: whether the
// status register's Isc bit currently suppresses writes to memory. This is
// the intrinsic bus<->COP0 back-edge, localized to one method instead of a
// raw pointer back into the CPU.
//
// Grounded on spec's explicit instruction not to imitate the original Rust
// implementation's unsafe self-referential Machine pointer
// (core/src/machine.rs); an interface captured at construction serves the
// same purpose without unsafe code or an import cycle.
type IsolateCache interface {
	IsolateCache() bool
}

// Bus routes addresses to the three fixed regions and the device table. It
// implements spec's component C: alignment check, cache-isolation write
// suppression, segment mask (with the KSEG2 special case), then range
// dispatch.
type Bus struct {
	RAM        *RAM
	Scratchpad *RAM
	BIOS       *ROM
	IO         *IOPorts

	cache IsolateCache
	log   *log.Logger
}

// New creates a bus with RAM, scratchpad, and BIOS ROM allocated, and the
// memory controller and Expansion 2 devices registered. cache is asked on
// every store whether the data cache is isolated.
func New(cache IsolateCache) *Bus {
	io := NewIOPorts()

	mc := NewMemController()
	io.Register(ioPortsLo, ioPortsHi, mc)
	io.Register(cacheCtrlLo, cacheCtrlHi, mc)
	io.Register(exp2Lo, exp2Hi, NewExp2())

	return &Bus{
		RAM:        NewRAM(RAMSize),
		Scratchpad: NewRAM(ScratchpadSize),
		BIOS:       NewROM(BIOSSize),
		IO:         io,
		cache:      cache,
		log:        log.DefaultLogger(),
	}
}

// physical masks a logical address down to its physical address, applying
// the KSEG2 special case: KSEG2 (0xC0000000 and above) is not mirrored
// through the 0x1FFFFFFF mask the other segments share, since it addresses
// the CPU's own control registers rather than a mirrored region.
func physical(addr uint32) uint32 {
	if addr >= kseg2Base {
		return addr
	}

	return addr & segmentMask
}

// ReadByte, ReadHalf, and ReadWord load an 8/16/32-bit value. Half and word
// accesses must be naturally aligned.
func (b *Bus) ReadByte(addr uint32) (byte, error) {
	return dispatchRead(b, addr, 1, Region.ReadByte, Device.ReadByte)
}

func (b *Bus) ReadHalf(addr uint32) (uint16, error) {
	if addr&1 != 0 {
		return 0, badAddress(addr)
	}

	return dispatchRead(b, addr, 2, Region.ReadHalf, Device.ReadHalf)
}

func (b *Bus) ReadWord(addr uint32) (uint32, error) {
	if addr&3 != 0 {
		return 0, badAddress(addr)
	}

	return dispatchRead(b, addr, 4, Region.ReadWord, Device.ReadWord)
}

// WriteByte, WriteHalf, and WriteWord store an 8/16/32-bit value. While the
// data cache is isolated (COP0 SR.Isc), writes to RAM/scratchpad/BIOS are
// silently suppressed, matching the hardware's cache-flush idiom; writes to
// I/O devices are never suppressed, since Isc only isolates the data cache,
// not the bus.
func (b *Bus) WriteByte(addr uint32, val byte) error {
	return dispatchWrite(b, addr, 1, val,
		func(r Region, off uint32) error { return r.WriteByte(off, val) },
		func(d Device, a uint32) error { return d.WriteByte(a, val) })
}

func (b *Bus) WriteHalf(addr uint32, val uint16) error {
	if addr&1 != 0 {
		return badAddress(addr)
	}

	return dispatchWrite(b, addr, 2, val,
		func(r Region, off uint32) error { return r.WriteHalf(off, val) },
		func(d Device, a uint32) error { return d.WriteHalf(a, val) })
}

func (b *Bus) WriteWord(addr uint32, val uint32) error {
	if addr&3 != 0 {
		return badAddress(addr)
	}

	return dispatchWrite(b, addr, 4, val,
		func(r Region, off uint32) error { return r.WriteWord(off, val) },
		func(d Device, a uint32) error { return d.WriteWord(a, val) })
}

// region identifies which of the fixed regions, if any, an address falls
// in, returning the region and the offset relative to its base. The third
// return is false for addresses handled by a device or unmapped entirely.
func (b *Bus) region(phys uint32) (r Region, off uint32, ok bool) {
	switch {
	case phys >= ramLo && phys <= ramHi:
		return b.RAM, phys - ramLo, true
	case phys >= scratchpadLo && phys <= scratchHi:
		return b.Scratchpad, phys - scratchpadLo, true
	case phys >= biosLo && phys <= biosHi:
		return b.BIOS, phys - biosLo, true
	default:
		return nil, 0, false
	}
}

// unimplemented reports whether a physical address falls in a documented but
// unimplemented region (Expansion 1 or 3): these are distinct from a
// genuinely invalid address, but this module has nothing behind them.
func unimplemented(phys uint32) bool {
	return (phys >= exp1Lo && phys <= exp1Hi) || (phys >= exp3Lo && phys <= exp3Hi)
}

func dispatchRead[T any](
	b *Bus, addr uint32, _ uint32,
	readRegion func(Region, uint32) (T, error),
	readDevice func(Device, uint32) (T, error),
) (T, error) {
	var zero T

	phys := physical(addr)

	if r, off, ok := b.region(phys); ok {
		return readRegion(r, off)
	}

	if phys >= ioPortsLo && phys <= ioPortsHi || phys >= exp2Lo && phys <= exp2Hi {
		return readDevice(b.IO, phys)
	}

	if addr >= cacheCtrlLo && addr <= cacheCtrlHi {
		return readDevice(b.IO, addr)
	}

	if unimplemented(phys) {
		return zero, cannotRead(addr)
	}

	return zero, badAddress(addr)
}

func dispatchWrite[T any](
	b *Bus, addr uint32, _ uint32, _ T,
	writeRegion func(Region, uint32) error,
	writeDevice func(Device, uint32) error,
) error {
	phys := physical(addr)

	if r, off, ok := b.region(phys); ok {
		if b.cache != nil && b.cache.IsolateCache() {
			b.log.Debug("write suppressed: cache isolated", "addr", addr)
			return nil
		}

		return writeRegion(r, off)
	}

	if phys >= ioPortsLo && phys <= ioPortsHi || phys >= exp2Lo && phys <= exp2Hi {
		return writeDevice(b.IO, phys)
	}

	if addr >= cacheCtrlLo && addr <= cacheCtrlHi {
		return writeDevice(b.IO, addr)
	}

	if unimplemented(phys) {
		return cannotWrite(addr)
	}

	return badAddress(addr)
}
