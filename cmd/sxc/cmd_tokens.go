package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/sxc-lang/sxc"
)

type tokensCmd struct{}

func (*tokensCmd) Name() string { return "tokens" }

func (*tokensCmd) Synopsis() string { return "Show the lexed tokens of the given source programs." }

func (*tokensCmd) Usage() string {
	return `tokens <file>...:
  Lex each given source file and print its token stream, one token per line.
`
}

func (*tokensCmd) SetFlags(*flag.FlagSet) {}

func (*tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	status := subcommands.ExitSuccess
	for _, file := range f.Args() {
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading %s: %v\n", file, err)
			status = subcommands.ExitFailure
			continue
		}
		for _, tok := range sxc.NewLexer(string(src)).Tokenize() {
			if tok.Zero() {
				break
			}
			fmt.Println(tok.String())
		}
	}
	return status
}
