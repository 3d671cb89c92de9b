package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"github.com/sxc-lang/sxc"
	"github.com/sxc-lang/sxc/internal/logio"
)

type runCmd struct{ runFlags }

func (*runCmd) Name() string { return "run" }

func (*runCmd) Synopsis() string { return "Compile and run the given source programs." }

func (*runCmd) Usage() string {
	return `run <file>...:
  Compile each given source file and execute it immediately, wiring stdin
  and stdout to the program's svc read/write calls.
`
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer log.Close()

	for _, file := range f.Args() {
		src, err := os.ReadFile(file)
		if err != nil {
			log.Errorf("reading %s: %v", file, err)
			continue
		}

		prog, err := sxc.CompileSized(string(src), c.memSize())
		if err != nil {
			log.Errorf("compiling %s: %v", file, err)
			continue
		}

		host := newStdioHost(os.Stdin, os.Stdout)
		vm := sxc.NewVM(prog.Mem, host)
		if c.trace {
			vm.Logf = log.Leveledf("TRACE")
		}

		ctx, cancel := c.context()
		err = vm.Run(ctx)
		cancel()

		if ferr := host.flush(); ferr != nil && err == nil {
			err = ferr
		}
		host.restore()

		if err != nil {
			log.Errorf("running %s: %v", file, err)
		}
	}

	if log.ExitCode() != 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
