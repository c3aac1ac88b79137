package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func main() {
	cmd := &commander.Command{
		UsageLine: os.Args[0] + " <command> [options]",
		Short:     "image quality filters",
		Flag:      *flag.NewFlagSet("imgfilter", flag.ExitOnError),
		Subcommands: []*commander.Command{
			predictCmd(),
			trainCmd(),
			historyCmd(),
		},
	}

	if err := cmd.Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}
