package machine

// exec.go defines the instruction cycle driver.
//
// Grounded on the teacher's Run loop (internal/vm/exec.go), carrying over
// its context-cancellation shape; unlike the LC-3, this CPU has no run
// flag to check each iteration, so the loop only watches ctx and the error
// Step returns.

import (
	"context"
	"errors"
	"fmt"

	"github.com/lmarchetti/psxcore/internal/log"
)

// ErrMachineStopped is wrapped around the error Run returns when Step fails,
// that is, when the CPU stops for a reason other than context cancellation
// (Step itself never returns a non-nil error for an emulated exception;
// those vector internally).
var ErrMachineStopped = errors.New("machine: stopped")

// Step runs a single instruction.
func (m *Machine) Step() error {
	return m.CPU.Step()
}

// Run steps the CPU until ctx is cancelled or Step returns an error.
func (m *Machine) Run(ctx context.Context) error {
	m.log.Info("START", log.Group("STATE", m))

	for {
		select {
		case <-ctx.Done():
			m.log.Warn("CANCELLED")
			return ctx.Err()
		default:
		}

		if err := m.Step(); err != nil {
			m.log.Error("HALTED", "ERR", err, log.Group("STATE", m))
			return fmt.Errorf("%w: %w", ErrMachineStopped, err)
		}
	}
}
