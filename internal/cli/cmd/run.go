package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/lmarchetti/psxcore/internal/bios"
	"github.com/lmarchetti/psxcore/internal/cli"
	"github.com/lmarchetti/psxcore/internal/log"
	"github.com/lmarchetti/psxcore/internal/machine"
)

// Run is the command that boots a BIOS image and runs the CPU until it
// halts or is cancelled.
//
//	psxcore run -bios SCPH1001.BIN
func Run() cli.Command {
	return &runCmd{}
}

type runCmd struct {
	biosPath string
	debug    bool
}

func (runCmd) Description() string {
	return "boot a BIOS image and run the CPU"
}

func (runCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run [-bios file]

Boot a BIOS image and run the CPU core until it halts or is interrupted. If
-bios is not given, the `+bios.EnvVar+` environment variable names the image.`)

	return err
}

func (r *runCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.StringVar(&r.biosPath, "bios", "", "path to a BIOS image")
	fs.BoolVar(&r.debug, "debug", false, "enable debug logging")

	return fs
}

func (r *runCmd) Run(ctx context.Context, _ []string, _ io.Writer, logger *log.Logger) int {
	if r.debug {
		log.LogLevel.Set(log.Debug)
	}

	opts := []machine.OptionFn{machine.WithLogger(logger)}

	if r.biosPath != "" {
		opts = append(opts, machine.WithBIOSFile(r.biosPath))
	} else {
		opts = append(opts, machine.WithBIOSFromEnv())
	}

	m := machine.New(opts...)

	err := m.Run(ctx)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Info("stopped", "err", err)
		return 0
	case err != nil:
		logger.Error("halted", "err", err)
		return 1
	default:
		return 0
	}
}
