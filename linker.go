package sxc

import "fmt"

// Link performs the second pass over the emitted bytecode: every JMP, JZE,
// or CALL operand is rewritten from a label id to that label's resolved
// instruction address.
func Link(m *Memory, labels []Label) error {
	addr := GlobSize
	for {
		op := m.GetOp(addr)
		if op == OpNull {
			return nil
		}
		switch op {
		case OpJmp, OpJze, OpCall:
			addr++
			id := m.Get(addr)
			if id < 0 || id >= len(labels) {
				return fmt.Errorf("link error: invalid label id %d at address %d", id, addr)
			}
			m.Set(addr, labels[id].InstIndex)
			addr++
		case OpPushConst, OpPushVarAddr:
			addr += 2
		default:
			addr++
		}
	}
}
