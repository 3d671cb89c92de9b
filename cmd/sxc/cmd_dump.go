package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/sxc-lang/sxc"
)

type dumpCmd struct{ runFlags }

func (*dumpCmd) Name() string { return "dump" }

func (*dumpCmd) Synopsis() string {
	return "Compile the given source programs and print a memory dump without running them."
}

func (*dumpCmd) Usage() string {
	return `dump <file>...:
  Compile each given source file and print its globals, disassembled code
  region, and initial stack, without executing it.
`
}

func (c *dumpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	status := subcommands.ExitSuccess
	for _, file := range f.Args() {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", file, err)
			status = subcommands.ExitFailure
			continue
		}

		prog, err := sxc.CompileSized(string(src), c.memSize())
		if err != nil {
			fmt.Fprintf(os.Stderr, "compiling %s: %v\n", file, err)
			status = subcommands.ExitFailure
			continue
		}

		fmt.Printf("# %s\n", file)
		sxc.NewDumper(prog, os.Stdout).Dump()
	}
	return status
}
