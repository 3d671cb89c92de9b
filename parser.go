package sxc

import "github.com/sxc-lang/sxc/internal/panicerr"

// noLoop is the sentinel label id threaded through parsing in place of a
// real break/continue target when not inside a loop body. Using it is a
// parse error rather than silently emitting a dangling jump.
const noLoop = -1

// Parser implements the precedence-climbing recursive-descent parser,
// producing a flat Node stream and a Label table.
type Parser struct {
	ts     *tokenStream
	labels labelTable
	nodes  []Node

	maxNodes int
}

// NewParser returns a Parser over the given token sequence (as produced by
// Lexer.Tokenize).
func NewParser(toks []Token) *Parser {
	return &Parser{ts: newTokenStream(toks), maxNodes: defaultMaxNodes}
}

func (p *Parser) emit(op Opcode, tok Token, val int) {
	if p.maxNodes > 0 && len(p.nodes) >= p.maxNodes {
		panic(&lexError{msg: "node budget exceeded"})
	}
	p.nodes = append(p.nodes, Node{Op: op, Token: tok, Val: val})
}

func (p *Parser) allocLabel() int { return p.labels.alloc() }

// Parse consumes the entire token stream and returns the node stream
// (terminated implicitly; callers see it as a plain slice) along with the
// label table built up during parsing. Function definitions may appear
// anywhere at top level, interleaved with top-level statements, matching
// the original's "fn" special case in its top-level loop.
func (p *Parser) Parse() ([]Node, []Label, error) {
	err := panicerr.Recover("parser.Parse", func() error {
		for !p.ts.atEOF() {
			p.parseTop()
		}
		return nil
	})
	return p.nodes, p.labels.labels, err
}

func (p *Parser) parseTop() {
	if p.ts.peek().EqualString("fn") {
		p.parseFn()
		return
	}
	p.parseExpr(noLoop, noLoop)
}

// parseFn handles a top-level function definition. A function
// is only ever entered through CALL, which jumps straight to its LABEL;
// nothing in the surface grammar can target a raw instruction address. So a
// leading JMP skips the whole definition, guaranteeing that a function
// textually placed before its first call site is never reached by ordinary
// fallthrough -- which would otherwise execute its argument-declaring
// PUSH_VARADDR nodes and its call preamble with a stale BP/SP, corrupting
// the stack. A function must either be defined after the entry code runs,
// or the entry code must jump over it; parseFn supplies that jump automatically
// rather than leaving it as a hazard for the source program to avoid).
func (p *Parser) parseFn() {
	p.ts.next() // "fn"

	labSkip := p.allocLabel()
	p.emit(OpJmp, Token{}, labSkip)

	labFn := p.allocLabel()
	nameTok := p.ts.next()
	if nameTok.Zero() {
		panic(&parseError{msg: "expected function name", tok: nameTok})
	}
	p.labels.labels[labFn].Token = nameTok

	if !p.ts.next().EqualString("(") {
		panic(&parseError{msg: "expected '(' after function name", tok: nameTok})
	}

	var argToks []Token
	for !p.ts.peek().EqualString(")") {
		if p.ts.atEOF() {
			panic(&parseError{msg: "unterminated parameter list", tok: nameTok})
		}
		argTok := p.ts.next()
		argToks = append(argToks, argTok)
		p.emit(OpPushVarAddr, argTok, 0)
		if p.ts.peek().EqualString(",") {
			p.ts.next()
		}
	}
	p.ts.next() // ")"

	n := len(argToks)
	seen := make(map[string]bool, n)
	first := len(p.nodes) - n
	for i := 0; i < n; i++ {
		if seen[argToks[i].String()] {
			panic(&analyzeError{msg: "duplicate argument name", tok: argToks[i]})
		}
		seen[argToks[i].String()] = true
		// argument i of n gets offset -4-(n-1-i), so arguments appear at
		// BP-4, BP-5, ... in source order.
		p.nodes[first+i].Val = -4 - (n - 1 - i)
	}

	p.emit(OpLabel, Token{}, labFn)
	// Preamble: subtract the argument count from the saved caller SP slot
	// at BP-2, so that RETURN restores the caller's SP past the arguments
	// it pushed, as part of the call/return protocol.
	p.emit(OpPushVarAddr, Token{}, -2)
	p.emit(OpPushVarAddr, Token{}, -2)
	p.emit(OpGlobalGet, Token{}, 0)
	p.emit(OpPushConst, Token{}, n)
	p.emit(OpSub, Token{}, 0)
	p.emit(OpGlobalSet, Token{}, 0)

	p.parseExpr(noLoop, noLoop)

	p.emit(OpReturn, Token{}, 0)
	p.emit(OpLabelFnEnd, Token{}, 0)
	p.emit(OpLabel, Token{}, labSkip)
}

// parseExpr implements the expr production: if/loop/break/continue, else
// falls through to assign.
func (p *Parser) parseExpr(labBreak, labCont int) {
	switch {
	case p.ts.peek().EqualString("if"):
		p.parseIf(labBreak, labCont)
	case p.ts.peek().EqualString("loop"):
		p.parseLoop()
	case p.ts.peek().EqualString("break"):
		tok := p.ts.next()
		if labBreak == noLoop {
			panic(&parseError{msg: "break outside of loop", tok: tok})
		}
		p.emit(OpJmp, Token{}, labBreak)
	case p.ts.peek().EqualString("continue"):
		tok := p.ts.next()
		if labCont == noLoop {
			panic(&parseError{msg: "continue outside of loop", tok: tok})
		}
		p.emit(OpJmp, Token{}, labCont)
	default:
		p.parseAssign(labBreak, labCont)
	}
}

// parseIf does not enforce that the two arms leave equal stack depth --
// that is left as the caller's problem, same as the original.
func (p *Parser) parseIf(labBreak, labCont int) {
	p.ts.next() // "if"
	labIf := p.allocLabel()
	labElse := p.allocLabel()

	p.parseExpr(labBreak, labCont) // cond
	p.emit(OpJze, Token{}, labIf)
	p.parseExpr(labBreak, labCont) // then

	if p.ts.peek().EqualString("else") {
		p.ts.next()
		p.emit(OpJmp, Token{}, labElse)
		p.emit(OpLabel, Token{}, labIf)
		p.parseExpr(labBreak, labCont) // alt
		p.emit(OpLabel, Token{}, labElse)
	} else {
		p.emit(OpLabel, Token{}, labIf)
	}
}

func (p *Parser) parseLoop() {
	p.ts.next() // "loop"
	labStart := p.allocLabel()
	labEnd := p.allocLabel()

	p.emit(OpLabel, Token{}, labStart)
	p.parseExpr(labEnd, labStart) // body; break->end, continue->start
	p.emit(OpJmp, Token{}, labStart)
	p.emit(OpLabel, Token{}, labEnd)
}

func (p *Parser) parseAssign(labBreak, labCont int) {
	lhsStart := len(p.nodes)
	p.parseOr(labBreak, labCont)
	for p.ts.peek().EqualString("=") {
		p.ts.next()
		p.toAddress(lhsStart)
		lhsStart = len(p.nodes)
		p.parseOr(labBreak, labCont)
		p.emit(OpGlobalSet, Token{}, 0)
	}
}

// toAddress turns the expression just parsed at p.nodes[start:] from its
// value form back into its address form, by dropping a trailing
// GLOBAL_GET. Every address-yielding primary (a bare IDENT, or "*postfix")
// emits exactly that GLOBAL_GET as its last node, so stripping it recovers
// the address GLOBAL_SET needs for an assignment target; "&IDENT" already
// ends in PUSH_VARADDR with no GLOBAL_GET and passes through unchanged,
// since there is no separate lvalue grammar to consult -- this is inferred
// from the shape primary/unary actually emit for address-producing forms.
func (p *Parser) toAddress(start int) {
	if n := len(p.nodes); n > start && p.nodes[n-1].Op == OpGlobalGet {
		p.nodes = p.nodes[:n-1]
	}
}

func (p *Parser) parseOr(labBreak, labCont int) {
	p.parseAnd(labBreak, labCont)
	for p.ts.peek().EqualString("||") {
		p.ts.next()
		p.parseAnd(labBreak, labCont)
		p.emit(OpOr, Token{}, 0)
	}
}

// parseAnd recognizes "&&" as two adjacent '&' tokens.
func (p *Parser) parseAnd(labBreak, labCont int) {
	p.parseEq(labBreak, labCont)
	for p.ts.peek().EqualString("&") && p.ts.peekAt(1).EqualString("&") {
		p.ts.next()
		p.ts.next()
		p.parseEq(labBreak, labCont)
		p.emit(OpAnd, Token{}, 0)
	}
}

func (p *Parser) parseEq(labBreak, labCont int) {
	p.parseRel(labBreak, labCont)
	for {
		switch {
		case p.ts.peek().EqualString("=="):
			p.ts.next()
			p.parseRel(labBreak, labCont)
			p.emit(OpEq, Token{}, 0)
		case p.ts.peek().EqualString("!="):
			p.ts.next()
			p.parseRel(labBreak, labCont)
			p.emit(OpNe, Token{}, 0)
		default:
			return
		}
	}
}

func (p *Parser) parseRel(labBreak, labCont int) {
	p.parseAdd(labBreak, labCont)
	for {
		switch {
		case p.ts.peek().EqualString("<"):
			p.ts.next()
			p.parseAdd(labBreak, labCont)
			p.emit(OpLt, Token{}, 0)
		case p.ts.peek().EqualString(">"):
			p.ts.next()
			p.parseAdd(labBreak, labCont)
			p.emit(OpGt, Token{}, 0)
		default:
			return
		}
	}
}

func (p *Parser) parseAdd(labBreak, labCont int) {
	p.parseMul(labBreak, labCont)
	for {
		switch {
		case p.ts.peek().EqualString("+"):
			p.ts.next()
			p.parseMul(labBreak, labCont)
			p.emit(OpAdd, Token{}, 0)
		case p.ts.peek().EqualString("-"):
			p.ts.next()
			p.parseMul(labBreak, labCont)
			p.emit(OpSub, Token{}, 0)
		default:
			return
		}
	}
}

func (p *Parser) parseMul(labBreak, labCont int) {
	p.parseUnary(labBreak, labCont)
	for {
		switch {
		case p.ts.peek().EqualString("*"):
			p.ts.next()
			p.parseUnary(labBreak, labCont)
			p.emit(OpMul, Token{}, 0)
		case p.ts.peek().EqualString("/"):
			p.ts.next()
			p.parseUnary(labBreak, labCont)
			p.emit(OpDiv, Token{}, 0)
		case p.ts.peek().EqualString("%"):
			p.ts.next()
			p.parseUnary(labBreak, labCont)
			p.emit(OpMod, Token{}, 0)
		default:
			return
		}
	}
}

func (p *Parser) parseUnary(labBreak, labCont int) {
	switch {
	case p.ts.peek().EqualString("&"):
		p.ts.next()
		tok := p.ts.next()
		if tok.Zero() {
			panic(&parseError{msg: "expected identifier after '&'", tok: tok})
		}
		p.emit(OpPushVarAddr, tok, 0)
	case p.ts.peek().EqualString("*"):
		p.ts.next()
		p.parsePostfix(labBreak, labCont)
		p.emit(OpGlobalGet, Token{}, 0)
	default:
		p.parsePostfix(labBreak, labCont)
	}
}

// parsePostfix recognizes call forms: IDENT "(" arglist ")". "return" and
// "svc" are special-cased to dedicated opcodes rather than CALL.
func (p *Parser) parsePostfix(labBreak, labCont int) {
	start := p.ts.peek()
	if p.ts.peekAt(1).EqualString("(") {
		p.ts.next()
		p.parsePrimary(labBreak, labCont)
		switch {
		case start.EqualString("return"):
			p.emit(OpReturn, Token{}, 0)
		case start.EqualString("svc"):
			p.emit(OpSvc, Token{}, 0)
		default:
			p.emit(OpCall, start, 0)
		}
		return
	}
	p.parsePrimary(labBreak, labCont)
}

// parsePrimary implements "(" expr ("," expr)* ")" | NUMBER | IDENT.
// Nothing is popped between the exprs of a parenthesized form: each one
// leaves what it pushes on the stack, with the last one's value on top,
// matching the original's treatment of "(" as both grouping and
// argument-list syntax.
func (p *Parser) parsePrimary(labBreak, labCont int) {
	switch {
	case p.ts.peek().EqualString("("):
		open := p.ts.next()
		for !p.ts.peek().EqualString(")") {
			if p.ts.atEOF() {
				panic(&parseError{msg: "unterminated '('", tok: open})
			}
			p.parseExpr(labBreak, labCont)
			if p.ts.peek().EqualString(",") {
				p.ts.next()
			}
		}
		p.ts.next() // ")"
	case p.ts.peek().isNumber():
		tok := p.ts.next()
		p.emit(OpPushConst, tok, 0)
	default:
		tok := p.ts.peek()
		if tok.Zero() {
			panic(&parseError{msg: "unexpected end of input", tok: tok})
		}
		p.ts.next()
		p.emit(OpPushVarAddr, tok, 0)
		p.emit(OpGlobalGet, Token{}, 0)
	}
}
