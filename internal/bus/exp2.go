package bus

import "github.com/lmarchetti/psxcore/internal/log"

// Exp2 stands in for Expansion Region 2: no real peripheral is modeled, so
// every access is accepted and logged rather than faulted, matching how real
// BIOS revisions probe this region for a debug UART that usually isn't
// populated. Reads return zero rather than an all-ones float, since nothing
// is attached to drive the bus high.
type Exp2 struct {
	log *log.Logger
}

// NewExp2 creates a dummy Expansion Region 2 device.
func NewExp2() *Exp2 {
	return &Exp2{log: log.DefaultLogger()}
}

func (e *Exp2) ReadByte(addr uint32) (byte, error) {
	e.log.Debug("exp2 read", "addr", addr)
	return 0, nil
}

func (e *Exp2) ReadHalf(addr uint32) (uint16, error) {
	e.log.Debug("exp2 read", "addr", addr)
	return 0, nil
}

func (e *Exp2) ReadWord(addr uint32) (uint32, error) {
	e.log.Debug("exp2 read", "addr", addr)
	return 0, nil
}

func (e *Exp2) WriteByte(addr uint32, val byte) error {
	e.log.Debug("exp2 write", "addr", addr, "val", val)
	return nil
}

func (e *Exp2) WriteHalf(addr uint32, val uint16) error {
	e.log.Debug("exp2 write", "addr", addr, "val", val)
	return nil
}

func (e *Exp2) WriteWord(addr uint32, val uint32) error {
	e.log.Debug("exp2 write", "addr", addr, "val", val)
	return nil
}
