package machine

import (
	"context"
	"errors"
	"testing"

	"github.com/lmarchetti/psxcore/internal/cop0"
)

func TestNewWiresCOP0IsolateCacheToTheBus(t *testing.T) {
	t.Parallel()

	m := New()

	m.COP0.Put(cop0.SR, cop0.SRIsc)

	if err := m.Bus.WriteWord(0x100, 0xFFFFFFFF); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}

	got, err := m.Bus.ReadWord(0x100)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}

	if got != 0 {
		t.Errorf("RAM[0x100] = %#x, want 0 (Isc set on COP0 should suppress the bus write)", got)
	}
}

func TestResetRestoresCPUButNotBusOrCOP0(t *testing.T) {
	t.Parallel()

	m := New()

	m.CPU.Set(1, 0xDEADBEEF)
	m.COP0.Put(cop0.BPC, 0x1234)

	if err := m.Bus.WriteWord(0x200, 0xCAFEBABE); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}

	m.Reset()

	if got := m.CPU.Get(1); got != 0 {
		t.Errorf("r1 after Reset = %#x, want 0", got)
	}

	if got := m.CPU.PC; got != 0xBFC00000 {
		t.Errorf("PC after Reset = %#x, want reset vector", got)
	}

	if got := m.COP0.Get(cop0.BPC); got != 0x1234 {
		t.Errorf("BPC after Reset = %#x, want unchanged (COP0 survives a soft reset)", got)
	}

	got, err := m.Bus.ReadWord(0x200)
	if err != nil {
		t.Fatalf("ReadWord: %v", err)
	}

	if got != 0xCAFEBABE {
		t.Errorf("RAM[0x200] after Reset = %#x, want unchanged (RAM survives a soft reset)", got)
	}
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	t.Parallel()

	m := New()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestStepAdvancesThePC(t *testing.T) {
	t.Parallel()

	m := New()

	before := m.CPU.PC

	if err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if m.CPU.PC == before {
		t.Errorf("PC did not advance after Step (still %#x)", m.CPU.PC)
	}
}
