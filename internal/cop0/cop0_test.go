package cop0

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	c := New()

	if !c.BootExceptionVectors() {
		t.Error("want BEV set on reset")
	}

	if got := c.Get(PRId); got != 0x00000002 {
		t.Errorf("PRId = %#x, want 0x2", got)
	}

	if c.IsolateCache() {
		t.Error("want Isc clear on reset")
	}
}

func TestGetPutRoundTrip(t *testing.T) {
	t.Parallel()

	c := New()

	c.Put(BPC, 0x1234)
	if got := c.Get(BPC); got != 0x1234 {
		t.Errorf("BPC = %#x, want 0x1234", got)
	}

	c.Put(SR, 0xDEADBEEF)
	if got := c.Get(SR); got != 0xDEADBEEF {
		t.Errorf("SR = %#x, want 0xDEADBEEF", got)
	}
}

func TestPutReadOnlyRegistersIgnored(t *testing.T) {
	t.Parallel()

	c := New()

	c.Put(EPC, 0x80001234)
	if got := c.Get(EPC); got != 0 {
		t.Errorf("EPC = %#x, want 0 (read-only)", got)
	}

	c.Put(BadVaddr, 0x80001234)
	if got := c.Get(BadVaddr); got != 0 {
		t.Errorf("BadVaddr = %#x, want 0 (read-only)", got)
	}

	c.Put(PRId, 0xff)
	if got := c.Get(PRId); got != 0x00000002 {
		t.Errorf("PRId = %#x, want unchanged", got)
	}
}

func TestCausePutOnlyAffectsSoftwareBits(t *testing.T) {
	t.Parallel()

	c := New()

	c.Put(CAUSE, 0xffffffff)

	if got := c.Get(CAUSE); got != 0x0300 {
		t.Errorf("CAUSE = %#x, want 0x300 (only bits 9:8 writable)", got)
	}
}

func TestIsolateCacheReflectsSR(t *testing.T) {
	t.Parallel()

	c := New()
	c.Put(SR, SRIsc)

	if !c.IsolateCache() {
		t.Error("want Isc set")
	}
}

func TestEnterShiftsModeStackAndSetsCause(t *testing.T) {
	t.Parallel()

	c := New()
	c.Put(SR, SRBEV|0b0001) // current mode bits: interrupts enabled, kernel mode; BEV preserved.

	vector := c.Enter(Exception{Cause: Syscall}, 0x80010000, false)

	if vector != 0xBFC00180 {
		t.Errorf("vector = %#x, want BEV vector (BEV set on reset)", vector)
	}

	if got := c.Get(EPC); got != 0x80010000 {
		t.Errorf("EPC = %#x, want faulting PC", got)
	}

	if got := (c.Get(CAUSE) >> 2) & 0x1f; Cause(got) != Syscall {
		t.Errorf("CAUSE.ExcCode = %s, want Syscall", Cause(got))
	}

	if got := c.Get(SR) & 0x3f; got != 0b0100 {
		t.Errorf("SR mode stack = %#b, want shifted left by 2", got)
	}
}

func TestEnterInBranchDelaySlotBacksUpEPC(t *testing.T) {
	t.Parallel()

	c := New()

	c.Enter(Exception{Cause: Overflow}, 0x80010004, true)

	if got := c.Get(EPC); got != 0x80010000 {
		t.Errorf("EPC = %#x, want pc-4 (branch delay slot)", got)
	}

	if c.Get(CAUSE)&(1<<31) == 0 {
		t.Error("want CAUSE branch-delay bit set")
	}
}

func TestEnterCoprocessorUnusableRecordsCopNo(t *testing.T) {
	t.Parallel()

	c := New()

	c.Enter(Exception{Cause: CoprocessorUnusable, CopNo: 1}, 0x80010000, false)

	if got := (c.Get(CAUSE) >> 28) & 0x3; got != 1 {
		t.Errorf("CAUSE.CE = %d, want 1", got)
	}
}

func TestEnterAddressErrorRecordsBadVaddr(t *testing.T) {
	t.Parallel()

	c := New()

	c.Enter(Exception{Cause: AdEL, BadAddr: 0xdeadbeef}, 0x80010000, false)

	if got := c.Get(BadVaddr); got != 0xdeadbeef {
		t.Errorf("BadVaddr = %#x, want 0xdeadbeef", got)
	}
}

func TestRFEPopsModeStack(t *testing.T) {
	t.Parallel()

	c := New()
	c.Put(SR, 0b0110) // as if one exception entry already occurred.

	c.RFE()

	if got := c.Get(SR) & 0x3f; got != 0b01 {
		t.Errorf("SR mode stack = %#b, want shifted right by 2", got)
	}
}

func TestEnterSelectsRAMVectorWhenBEVClear(t *testing.T) {
	t.Parallel()

	c := New()
	c.Put(SR, c.Get(SR) &^ SRBEV)

	vector := c.Enter(Exception{Cause: Breakpoint}, 0x80010000, false)

	if vector != 0x80000080 {
		t.Errorf("vector = %#x, want RAM-resident vector", vector)
	}
}
