package main

import (
	"fmt"
	"os"

	"github.com/halcyard/gantry/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own structured error output; the message here
		// is the terse fallback for flag and argument errors.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
