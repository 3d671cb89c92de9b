package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
)

var (
	out     io.Writer = os.Stdout
	version           = "0.1.0"
)

type versionCmd struct{}

func (*versionCmd) Name() string { return "version" }

func (*versionCmd) Synopsis() string { return "Print the sxc version." }

func (*versionCmd) Usage() string {
	return `version:
  Print the sxc version and exit.
`
}

func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (*versionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	fmt.Fprintf(out, "%s\n", version)
	return subcommands.ExitSuccess
}
