package sxc

import (
	"fmt"
	"io"
)

// Dumper writes a human-readable snapshot of a Program's memory: the
// reserved globals, the disassembled code region, and the live stack.
// This is observability only, not part of the VM's contract, grounded on
// jcorbin-gothird/dumper.go's vmDumper but simplified:
// this language has no dictionary to walk, just a linear code region
// bounded by the globals and the initial BP.
type Dumper struct {
	prog *Program
	out  io.Writer
}

// NewDumper returns a Dumper over prog, writing to out.
func NewDumper(prog *Program, out io.Writer) *Dumper {
	return &Dumper{prog: prog, out: out}
}

// Dump writes the full snapshot.
func (d *Dumper) Dump() {
	m := d.prog.Mem
	fmt.Fprintf(d.out, "# globals\n")
	fmt.Fprintf(d.out, "  IP=%d SP=%d BP=%d IO=%d\n",
		m.Get(GlobalIP), m.Get(GlobalSP), m.Get(GlobalBP), m.Get(GlobalIO))

	d.dumpCode()
	d.dumpStack()
}

func (d *Dumper) dumpCode() {
	m := d.prog.Mem
	codeEnd := m.Get(GlobalBP)
	fmt.Fprintf(d.out, "# code [%d, %d)\n", GlobSize, codeEnd)
	for addr := GlobSize; addr < codeEnd; {
		op := m.GetOp(addr)
		if op.hasOperand() {
			fmt.Fprintf(d.out, "  @%-6d %-14s %d\n", addr, op, m.Get(addr+1))
			addr += 2
		} else {
			fmt.Fprintf(d.out, "  @%-6d %-14s\n", addr, op)
			addr++
		}
	}
}

func (d *Dumper) dumpStack() {
	m := d.prog.Mem
	bp := m.Get(GlobalBP)
	sp := m.Get(GlobalSP)
	fmt.Fprintf(d.out, "# stack [%d, %d) bp=%d\n", bp, sp, bp)
	for addr := bp; addr < sp; addr++ {
		fmt.Fprintf(d.out, "  @%-6d %d\n", addr, m.Get(addr))
	}
}
