package bus

import "encoding/binary"

// Region is an addressable block of memory: RAM, ROM, or scratchpad. Reads
// and writes take an offset already relative to the region's own base, not a
// full bus address; the router (see [Bus]) owns the base-address arithmetic.
//
// Grounded on the teacher's PhysicalMemory cell array (internal/vm/mem.go),
// generalized from 16-bit words to byte/half/word accesses since the R3000A,
// unlike the LC-3, is byte-addressable.
type Region interface {
	ReadByte(off uint32) (byte, error)
	ReadHalf(off uint32) (uint16, error)
	ReadWord(off uint32) (uint32, error)

	WriteByte(off uint32, val byte) error
	WriteHalf(off uint32, val uint16) error
	WriteWord(off uint32, val uint32) error

	// Len returns the region's size in bytes.
	Len() uint32
}

// RAM is a read-write region backed by a plain byte slice.
type RAM struct {
	cell []byte
}

// NewRAM allocates a RAM region of the given size, zero-initialized.
func NewRAM(size uint32) *RAM {
	return &RAM{cell: make([]byte, size)}
}

func (r *RAM) Len() uint32 { return uint32(len(r.cell)) }

func (r *RAM) ReadByte(off uint32) (byte, error) {
	if off >= r.Len() {
		return 0, badAddress(off)
	}

	return r.cell[off], nil
}

func (r *RAM) ReadHalf(off uint32) (uint16, error) {
	if off+2 > r.Len() {
		return 0, badAddress(off)
	}

	return binary.LittleEndian.Uint16(r.cell[off:]), nil
}

func (r *RAM) ReadWord(off uint32) (uint32, error) {
	if off+4 > r.Len() {
		return 0, badAddress(off)
	}

	return binary.LittleEndian.Uint32(r.cell[off:]), nil
}

func (r *RAM) WriteByte(off uint32, val byte) error {
	if off >= r.Len() {
		return badAddress(off)
	}

	r.cell[off] = val

	return nil
}

func (r *RAM) WriteHalf(off uint32, val uint16) error {
	if off+2 > r.Len() {
		return badAddress(off)
	}

	binary.LittleEndian.PutUint16(r.cell[off:], val)

	return nil
}

func (r *RAM) WriteWord(off uint32, val uint32) error {
	if off+4 > r.Len() {
		return badAddress(off)
	}

	binary.LittleEndian.PutUint32(r.cell[off:], val)

	return nil
}

// Bytes exposes the backing slice, for tests and debug tooling.
func (r *RAM) Bytes() []byte { return r.cell }

// ROM is a read-only region. Any write returns ErrCannotWrite, matching
// spec's component A contract for BIOS ROM.
type ROM struct {
	RAM
}

// NewROM allocates a ROM region of the given size, zero-initialized until
// loaded.
func NewROM(size uint32) *ROM {
	return &ROM{RAM: RAM{cell: make([]byte, size)}}
}

func (r *ROM) WriteByte(off uint32, _ byte) error   { return cannotWrite(off) }
func (r *ROM) WriteHalf(off uint32, _ uint16) error  { return cannotWrite(off) }
func (r *ROM) WriteWord(off uint32, _ uint32) error  { return cannotWrite(off) }

// Load copies an image into the ROM's backing store directly, bypassing the
// write-protection above. Used once, at construction time, by the BIOS
// loader.
func (r *ROM) Load(image []byte) {
	copy(r.cell, image)
}
