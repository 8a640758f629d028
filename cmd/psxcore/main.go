// cmd/psxcore is the command-line interface to the PSX CPU core: a
// standalone R3000A interpreter and memory bus for a PlayStation BIOS image.
package main

import (
	"context"
	"os"

	"github.com/lmarchetti/psxcore/internal/cli"
	"github.com/lmarchetti/psxcore/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Run(),
	cmd.MonitorCmd(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
