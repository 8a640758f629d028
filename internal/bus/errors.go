package bus

import (
	"errors"
	"fmt"
)

// Sentinel errors a Region or a Bus can return. The CPU translates these into
// MIPS exceptions at the point of fetch, load, or store.
var (
	ErrBus         = errors.New("bus")
	ErrBadAddress  = fmt.Errorf("%w: bad address", ErrBus)
	ErrCannotRead  = fmt.Errorf("%w: cannot read", ErrBus)
	ErrCannotWrite = fmt.Errorf("%w: cannot write", ErrBus)
)

// Error wraps one of the sentinel errors above with the address that caused
// it, so callers can report diagnostics without losing errors.Is/As
// compatibility with the sentinel.
type Error struct {
	Addr uint32
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %#08x", e.Err, e.Addr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func badAddress(addr uint32) error  { return &Error{Addr: addr, Err: ErrBadAddress} }
func cannotRead(addr uint32) error  { return &Error{Addr: addr, Err: ErrCannotRead} }
func cannotWrite(addr uint32) error { return &Error{Addr: addr, Err: ErrCannotWrite} }
