package sxc

// Program is the result of compiling a source string: a linked, runnable
// Memory plus the label table that produced it, retained for callers --
// neither the VM nor the Dumper consults it after linking.
type Program struct {
	Mem    *Memory
	Labels []Label
}

// Compile runs the full front-end-to-bytecode pipeline:
// lex, parse, analyze, emit, link. The returned Program is ready for
// VM.Run.
func Compile(src string) (*Program, error) {
	return CompileSized(src, MemSize)
}

// CompileSized is Compile with an explicit memory capacity, primarily for
// tests that want a small M to exercise bounds errors cheaply.
func CompileSized(src string, memSize int) (*Program, error) {
	toks := NewLexer(src).Tokenize()

	p := NewParser(toks)
	nodes, labels, err := p.Parse()
	if err != nil {
		return nil, err
	}

	if err := Analyze(nodes); err != nil {
		return nil, err
	}

	m := NewMemory(memSize)
	if _, err := Emit(nodes, labels, m); err != nil {
		return nil, err
	}

	if err := Link(m, labels); err != nil {
		return nil, err
	}

	return &Program{Mem: m, Labels: labels}, nil
}
