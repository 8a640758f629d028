// Package monitor implements an interactive, single-step debugger for a
// machine: step one instruction, run until interrupted, or dump register
// state, all driven by single keypresses.
package monitor

// monitor.go is grounded on the teacher's raw-terminal console
// (cmd/internal/tty/tty.go: term.IsTerminal guards a TTY before touching
// it), combined with the single-keypress read _examples/SchawnnDev-awesomeVM
// uses to service its own TRAP_GETC/TRAP_IN instructions
// (keyboard.GetSingleKey, checked against keyboard.KeyCtrlC). Unlike the
// teacher's console, this monitor has no simulated keyboard/display device
// to forward keystrokes to: keys are commands to the debugger itself.

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"github.com/lmarchetti/psxcore/internal/log"
	"github.com/lmarchetti/psxcore/internal/machine"
)

// ErrNoTTY is returned when the monitor is started with standard input that
// isn't a terminal, since single-keypress reads have no meaning otherwise.
var ErrNoTTY = errors.New("monitor: stdin is not a terminal")

// Stepper is the subset of machine.Machine the monitor drives.
type Stepper interface {
	Step() error
	fmt.Stringer
}

var _ Stepper = (*machine.Machine)(nil)

// continueBatch is how many instructions 'c' runs between checks of the
// context for cancellation.
const continueBatch = 4096

// Monitor is an interactive debugger: 's' steps one instruction, 'c' runs
// freely until the context is cancelled or Step returns an error (a keypress
// does not interrupt it), 'r' dumps CPU state, 'q' quits.
type Monitor struct {
	m   Stepper
	out io.Writer
	log *log.Logger
}

// New creates a monitor for m, writing register dumps and prompts to out.
func New(m Stepper, out io.Writer) *Monitor {
	return &Monitor{m: m, out: out, log: log.DefaultLogger()}
}

// Run reads commands from the keyboard until 'q' is pressed, ctx is
// cancelled, or Step returns an error. It requires stdin to be a terminal.
func (mon *Monitor) Run(ctx context.Context) error {
	if !term.IsTerminal(0) {
		return ErrNoTTY
	}

	fmt.Fprintln(mon.out, "monitor: s=step c=continue r=registers q=quit")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(mon.out, "(psx) ")

		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			return fmt.Errorf("monitor: %w", err)
		}

		if key == keyboard.KeyCtrlC || char == 'q' {
			return nil
		}

		switch char {
		case 'r':
			fmt.Fprintln(mon.out, mon.m.String())
		case 's':
			if err := mon.step(); err != nil {
				return err
			}
		case 'c':
			if err := mon.cont(ctx); err != nil {
				return err
			}
		}
	}
}

func (mon *Monitor) step() error {
	if err := mon.m.Step(); err != nil {
		fmt.Fprintf(mon.out, "halted: %s\n", err)
		return err
	}

	fmt.Fprintln(mon.out, mon.m.String())

	return nil
}

// cont runs the machine in batches of continueBatch instructions, checking
// ctx between batches so a cancelled context stops it promptly even without
// a new keypress.
func (mon *Monitor) cont(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for i := 0; i < continueBatch; i++ {
			if err := mon.m.Step(); err != nil {
				fmt.Fprintf(mon.out, "halted: %s\n", err)
				return err
			}
		}
	}
}
