package sxc

// Node is a parse-time record: an opcode, an optional source token (carrying
// an identifier or a literal payload), and an integer value whose meaning
// depends on op -- val is reused as literal / frame offset / label id
// across the pipeline stages
// rather than split into a tagged variant, to match the original's memory
// layout faithfully).
type Node struct {
	Op    Opcode
	Token Token
	Val   int
}

// Label is a jump/call target. Token is set only for function-entry labels
// (the function's name token); anonymous if/loop labels carry a zero Token.
type Label struct {
	Token     Token
	InstIndex int
}

// labelTable accumulates Labels assigned monotonically increasing ids during
// parsing, exactly mirroring the original's lab_size counter.
type labelTable struct {
	labels []Label
}

// alloc reserves a fresh label id.
func (lt *labelTable) alloc() int {
	lt.labels = append(lt.labels, Label{})
	return len(lt.labels) - 1
}

// findByName linearly searches for a label with a matching name token,
// preserved from the original, whose own notes call this out as a spot a
// reimplementation could swap for a hash map -- kept as linear search here
// since it's the original, documented-as-suboptimal behavior).
func (lt *labelTable) findByName(name Token) (id int, ok bool) {
	for i := range lt.labels {
		if lt.labels[i].Token.Zero() {
			continue
		}
		if lt.labels[i].Token.Equal(name) {
			return i, true
		}
	}
	return 0, false
}
