package cpu

import "testing"

func TestAddOverflows(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b int32
		want bool
	}{
		{1, 1, false},
		{2147483647, 1, true},
		{-2147483648, -1, true},
		{-1, -1, false},
		{2147483647, -1, false},
	}

	for _, c := range cases {
		if got := addOverflows(c.a, c.b); got != c.want {
			t.Errorf("addOverflows(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSubOverflows(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b int32
		want bool
	}{
		{0, 0, false},
		{-2147483648, 1, true},
		{2147483647, -1, true},
		{0, -2147483648, true},
		{1, 1, false},
	}

	for _, c := range cases {
		if got := subOverflows(c.a, c.b); got != c.want {
			t.Errorf("subOverflows(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestDivSignedOrdinary(t *testing.T) {
	t.Parallel()

	q, r := divSigned(7, 2)
	if q != 3 || r != 1 {
		t.Errorf("divSigned(7, 2) = (%d, %d), want (3, 1)", q, r)
	}

	q, r = divSigned(-7, 2)
	if q != -3 || r != -1 {
		t.Errorf("divSigned(-7, 2) = (%d, %d), want (-3, -1)", q, r)
	}
}

func TestDivSignedByZero(t *testing.T) {
	t.Parallel()

	q, r := divSigned(5, 0)
	if q != -1 || r != 5 {
		t.Errorf("divSigned(5, 0) = (%d, %d), want (-1, 5)", q, r)
	}

	q, r = divSigned(-5, 0)
	if q != 1 || r != -5 {
		t.Errorf("divSigned(-5, 0) = (%d, %d), want (1, -5)", q, r)
	}
}

func TestDivSignedOverflow(t *testing.T) {
	t.Parallel()

	q, r := divSigned(-2147483648, -1)
	if q != -2147483648 || r != 0 {
		t.Errorf("divSigned(INT32_MIN, -1) = (%d, %d), want (INT32_MIN, 0)", q, r)
	}
}

func TestDivUnsignedOrdinary(t *testing.T) {
	t.Parallel()

	q, r := divUnsigned(10, 3)
	if q != 3 || r != 1 {
		t.Errorf("divUnsigned(10, 3) = (%d, %d), want (3, 1)", q, r)
	}
}

func TestDivUnsignedByZero(t *testing.T) {
	t.Parallel()

	q, r := divUnsigned(0xCAFEBABE, 0)
	if q != 0xFFFFFFFF || r != 0xCAFEBABE {
		t.Errorf("divUnsigned(x, 0) = (%#x, %#x), want (0xFFFFFFFF, %#x)", q, r, uint32(0xCAFEBABE))
	}
}
