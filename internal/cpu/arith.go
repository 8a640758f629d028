package cpu

// arith.go has the checked and wrapping arithmetic helpers the ALU
// instructions need. Grounded on the original implementation's explicit
// checked_add/checked_sub calls for ADD/SUB/ADDI (which raise Overflow) as
// opposed to the *U variants' wrapping behavior (core/src/cpu/cpu.rs).

// addOverflows reports whether a+b overflows as a signed 32-bit addition.
func addOverflows(a, b int32) bool {
	sum := a + b
	return ((a ^ sum) & (b ^ sum)) < 0
}

// subOverflows reports whether a-b overflows as a signed 32-bit subtraction.
func subOverflows(a, b int32) bool {
	diff := a - b
	return ((a ^ b) & (a ^ diff)) < 0
}

// divSigned implements signed division with the corrected divide-by-zero
// and overflow behavior documented by the MIPS reference (not the original
// implementation's placeholder sentinel values; see DESIGN.md).
func divSigned(dividend, divisor int32) (quotient, remainder int32) {
	switch {
	case divisor == 0:
		if dividend < 0 {
			return 1, dividend
		}

		return -1, dividend
	case dividend == -2147483648 && divisor == -1:
		// The one signed quotient that doesn't fit in 32 bits; hardware
		// returns the dividend unchanged with a zero remainder.
		return dividend, 0
	default:
		return dividend / divisor, dividend % divisor
	}
}

// divUnsigned implements unsigned division with the corrected
// divide-by-zero behavior: Lo saturates to all-ones, Hi holds the dividend.
func divUnsigned(dividend, divisor uint32) (quotient, remainder uint32) {
	if divisor == 0 {
		return 0xFFFFFFFF, dividend
	}

	return dividend / divisor, dividend % divisor
}
