package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lmarchetti/psxcore/internal/cli"
	"github.com/lmarchetti/psxcore/internal/log"
	"github.com/lmarchetti/psxcore/internal/machine"
	"github.com/lmarchetti/psxcore/internal/monitor"
)

// MonitorCmd is the command that boots a BIOS image and drives it with the
// interactive single-step debugger.
//
//	psxcore monitor -bios SCPH1001.BIN
func MonitorCmd() cli.Command {
	return &monitorCmd{}
}

type monitorCmd struct {
	biosPath string
}

func (monitorCmd) Description() string {
	return "boot a BIOS image under the interactive debugger"
}

func (monitorCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `monitor [-bios file]

Boot a BIOS image and step the CPU core interactively.`)

	return err
}

func (m *monitorCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("monitor", flag.ExitOnError)
	fs.StringVar(&m.biosPath, "bios", "", "path to a BIOS image")

	return fs
}

func (m *monitorCmd) Run(ctx context.Context, _ []string, out io.Writer, logger *log.Logger) int {
	opts := []machine.OptionFn{machine.WithLogger(logger)}

	if m.biosPath != "" {
		opts = append(opts, machine.WithBIOSFile(m.biosPath))
	} else {
		opts = append(opts, machine.WithBIOSFromEnv())
	}

	mach := machine.New(opts...)

	mon := monitor.New(mach, os.Stdout)

	if err := mon.Run(ctx); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	return 0
}
