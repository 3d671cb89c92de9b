// Command sxc compiles and runs sxc source programs. It wraps the
// sxc package's lex/parse/analyze/emit/link/run pipeline in a
// google/subcommands CLI, following the split used by cmd_run.go,
// cmd_dump.go, and main.go in muhtutorials-vm.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&tokensCmd{}, "")
	subcommands.Register(&dumpCmd{}, "")
	subcommands.Register(&versionCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
