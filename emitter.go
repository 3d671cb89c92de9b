package sxc

// Emit lowers the node stream into flat bytecode written into mem starting
// at mem[GlobSize], recording each label's resolved instruction address as
// it goes. It returns the address one past the last emitted
// instruction (the code's end, and the base of the initial stack frame).
func Emit(nodes []Node, labels []Label, m *Memory) (codeEnd int, err error) {
	iptr := GlobSize

	for i := range nodes {
		n := &nodes[i]
		switch n.Op {
		case OpLabel:
			labels[n.Val].InstIndex = iptr
		case OpLabelFnEnd, OpNop:
			// emit nothing
		case OpCall:
			id, ok := findLabelByName(labels, n.Token)
			if !ok {
				return 0, &linkError{callee: n.Token}
			}
			m.SetOp(iptr, n.Op)
			m.Set(iptr+1, id)
			iptr += 2
		case OpPushConst, OpPushVarAddr, OpJmp, OpJze:
			m.SetOp(iptr, n.Op)
			m.Set(iptr+1, n.Val)
			iptr += 2
		default:
			m.SetOp(iptr, n.Op)
			iptr++
		}
	}
	m.SetOp(iptr, OpNull)

	m.Set(GlobalIP, GlobSize)
	m.Set(GlobalBP, iptr)
	m.Set(GlobalSP, iptr+StackSize)

	return iptr, nil
}

func findLabelByName(labels []Label, name Token) (id int, ok bool) {
	for i := range labels {
		if labels[i].Token.Zero() {
			continue
		}
		if labels[i].Token.Equal(name) {
			return i, true
		}
	}
	return 0, false
}
