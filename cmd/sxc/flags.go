package main

import (
	"context"
	"flag"
	"time"

	"github.com/sxc-lang/sxc"
)

// runFlags are the -timeout/-mem-limit/-trace flags shared by every
// subcommand that compiles or runs a program, mirroring the flag set
// jcorbin-gothird's main.go registers directly on the top-level flag.FlagSet.
type runFlags struct {
	timeout  time.Duration
	memLimit uint
	trace    bool
}

func (rf *runFlags) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&rf.timeout, "timeout", 0, "specify a time limit")
	f.UintVar(&rf.memLimit, "mem-limit", 0, "override the default memory size, in cells")
	f.BoolVar(&rf.trace, "trace", false, "enable trace logging")
}

// context returns a run context honoring -timeout, and its cancel func.
func (rf *runFlags) context() (context.Context, context.CancelFunc) {
	if rf.timeout == 0 {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), rf.timeout)
}

func (rf *runFlags) memSize() int {
	if rf.memLimit == 0 {
		return sxc.MemSize
	}
	return int(rf.memLimit)
}
