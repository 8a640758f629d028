// Package machine assembles the CPU, bus, COP0, and BIOS into one runnable
// unit.
package machine

// machine.go corresponds to the teacher's vm.go: it owns construction order
// (bus before CPU, since the CPU needs a bus to read from; COP0 before bus,
// since the bus needs COP0's IsolateCache capability) and exposes the
// options pattern the teacher's LC3 uses for post-construction configuration.

import (
	"fmt"

	"github.com/lmarchetti/psxcore/internal/bios"
	"github.com/lmarchetti/psxcore/internal/bus"
	"github.com/lmarchetti/psxcore/internal/cop0"
	"github.com/lmarchetti/psxcore/internal/cpu"
	"github.com/lmarchetti/psxcore/internal/log"
)

// Machine is a PlayStation CPU core: an R3000A, its system-control
// coprocessor, and the address-space bus it executes against.
type Machine struct {
	CPU  *cpu.CPU
	COP0 *cop0.COP0
	Bus  *bus.Bus

	log *log.Logger
}

// New creates a machine with a fresh bus, COP0, and GTE stub wired together,
// and applies opts. Each option runs once, after construction, with the bus
// in place so it can load a BIOS image or install a different logger.
func New(opts ...OptionFn) *Machine {
	c0 := cop0.New()
	b := bus.New(c0)
	gte := cpu.NewGTEStub()
	core := cpu.New(b, c0, gte)

	m := &Machine{
		CPU:  core,
		COP0: c0,
		Bus:  b,
		log:  log.DefaultLogger(),
	}

	for _, fn := range opts {
		fn(m)
	}

	return m
}

// An OptionFn configures a machine after construction.
type OptionFn func(*Machine)

// WithBIOSFile loads the BIOS image at path.
func WithBIOSFile(path string) OptionFn {
	return func(m *Machine) {
		if err := bios.NewLoader().LoadFile(m.Bus, path); err != nil {
			m.log.Error("failed to load BIOS", "err", err, "path", path)
			panic(err)
		}
	}
}

// WithBIOSFromEnv loads the BIOS image named by bios.EnvVar.
func WithBIOSFromEnv() OptionFn {
	return func(m *Machine) {
		if err := bios.NewLoader().LoadFromEnv(m.Bus); err != nil {
			m.log.Error("failed to load BIOS", "err", err)
			panic(err)
		}
	}
}

// WithLogger installs a logger on the machine and its CPU.
func WithLogger(l *log.Logger) OptionFn {
	return func(m *Machine) {
		m.log = l
		m.CPU.WithLogger(l)
	}
}

// Reset restores the CPU to its power-on state. The bus's RAM and the COP0
// register file are not cleared, matching real hardware: only the CPU core
// resets on a soft reset.
func (m *Machine) Reset() {
	m.CPU.Reset()
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s\n%s", m.CPU, m.COP0)
}

func (m *Machine) LogValue() log.Value {
	return log.GroupValue(
		log.Any("CPU", m.CPU.LogValue()),
	)
}
