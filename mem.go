package sxc

import (
	"fmt"

	"github.com/sxc-lang/sxc/internal/mem"
)

// Memory is the single linear address space M shared by globals, code, and
// the activation stack. It is a thin, fixed-capacity view over
// internal/mem.Ints -- the same paged integer store jcorbin-gothird grows
// its FORTH dictionary into -- configured with a single page spanning the
// whole of M, since M's size is a compile-time constant rather than
// something that grows over a program's lifetime.
type Memory struct {
	ints mem.Ints
	size int
}

// NewMemory allocates a Memory of the given capacity (cells).
func NewMemory(size int) *Memory {
	m := &Memory{size: size}
	m.ints.PageSize = uint(size)
	m.ints.Limit = uint(size)
	return m
}

// Len returns M's fixed capacity.
func (m *Memory) Len() int { return m.size }

func (m *Memory) checkAddr(addr int, op string) error {
	if addr < 0 || addr >= m.size {
		return &runtimeError{msg: fmt.Sprintf("%s out of bounds @%d", op, addr), ip: addr}
	}
	return nil
}

// Get loads the raw integer cell at addr.
func (m *Memory) Get(addr int) int {
	if err := m.checkAddr(addr, "load"); err != nil {
		panic(err)
	}
	v, err := m.ints.Load(uint(addr))
	if err != nil {
		panic(&runtimeError{msg: err.Error(), ip: addr})
	}
	return v
}

// Set stores val into the cell at addr.
func (m *Memory) Set(addr, val int) {
	if err := m.checkAddr(addr, "store"); err != nil {
		panic(err)
	}
	if err := m.ints.Stor(uint(addr), val); err != nil {
		panic(&runtimeError{msg: err.Error(), ip: addr})
	}
}

// GetOp loads the cell at addr interpreted as an Opcode.
func (m *Memory) GetOp(addr int) Opcode { return Opcode(m.Get(addr)) }

// SetOp stores op into the cell at addr.
func (m *Memory) SetOp(addr int, op Opcode) { m.Set(addr, int(op)) }

// LoadRange copies n cells starting at addr into a fresh slice; cells never
// written read as zero, and a range reaching past M's capacity panics with
// a *runtimeError.
func (m *Memory) LoadRange(addr, n int) []int {
	buf := make([]int, n)
	if err := m.ints.LoadInto(uint(addr), buf); err != nil {
		panic(&runtimeError{msg: err.Error(), ip: addr})
	}
	return buf
}
