package bus

import "github.com/lmarchetti/psxcore/internal/log"

// Device is a memory-mapped I/O device: something that interprets specific
// absolute bus addresses as typed register accesses, rather than treating its
// range as flat storage. This is the "generic command interpreter" shape
// spec component B calls for.
//
// Grounded on the teacher's Driver/DeviceReader/DeviceWriter split
// (internal/vm/devices.go), collapsed into one interface since every PSX I/O
// device here supports both directions.
type Device interface {
	ReadByte(addr uint32) (byte, error)
	ReadHalf(addr uint32) (uint16, error)
	ReadWord(addr uint32) (uint32, error)
	WriteByte(addr uint32, val byte) error
	WriteHalf(addr uint32, val uint16) error
	WriteWord(addr uint32, val uint32) error
}

// IOPorts multiplexes the I/O port range (and the KSEG2 cache-control cell)
// across however many devices are registered, by address. An address with no
// registered device is a bus fault, matching the teacher's MMIO.Load/Store
// behavior for an address with no mapped device (internal/vm/io.go).
type IOPorts struct {
	devs []ioRange
	log  *log.Logger
}

type ioRange struct {
	lo, hi uint32 // inclusive
	dev    Device
}

// NewIOPorts creates an empty port multiplexer.
func NewIOPorts() *IOPorts {
	return &IOPorts{log: log.DefaultLogger()}
}

// Register maps a device across an inclusive address range.
func (io *IOPorts) Register(lo, hi uint32, dev Device) {
	io.devs = append(io.devs, ioRange{lo: lo, hi: hi, dev: dev})
}

func (io *IOPorts) find(addr uint32) Device {
	for _, r := range io.devs {
		if addr >= r.lo && addr <= r.hi {
			return r.dev
		}
	}

	return nil
}

func (io *IOPorts) ReadByte(addr uint32) (byte, error) {
	dev := io.find(addr)
	if dev == nil {
		return 0, badAddress(addr)
	}

	return dev.ReadByte(addr)
}

func (io *IOPorts) ReadHalf(addr uint32) (uint16, error) {
	dev := io.find(addr)
	if dev == nil {
		return 0, badAddress(addr)
	}

	return dev.ReadHalf(addr)
}

func (io *IOPorts) ReadWord(addr uint32) (uint32, error) {
	dev := io.find(addr)
	if dev == nil {
		return 0, badAddress(addr)
	}

	return dev.ReadWord(addr)
}

func (io *IOPorts) WriteByte(addr uint32, val byte) error {
	dev := io.find(addr)
	if dev == nil {
		return badAddress(addr)
	}

	return dev.WriteByte(addr, val)
}

func (io *IOPorts) WriteHalf(addr uint32, val uint16) error {
	dev := io.find(addr)
	if dev == nil {
		return badAddress(addr)
	}

	return dev.WriteHalf(addr, val)
}

func (io *IOPorts) WriteWord(addr uint32, val uint32) error {
	dev := io.find(addr)
	if dev == nil {
		return badAddress(addr)
	}

	return dev.WriteWord(addr, val)
}
