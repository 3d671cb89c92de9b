package sxc

import (
	"context"

	"github.com/sxc-lang/sxc/internal/panicerr"
)

// Host mediates the three SVC host calls: read-one-byte from stdin,
// write-one-byte to stdout, and sleep. These are kept out of the core VM --
// it only ever talks to them through this interface, never touching an
// *os.File or time.Sleep directly.
type Host interface {
	ReadByte() (byte, error)
	WriteByte(b byte) error
	Sleep(ms int)
}

// NopHost discards writes, reads zero bytes, and sleeps instantly. Useful
// for compile-only tooling and as a safe embedded default.
type NopHost struct{}

func (NopHost) ReadByte() (byte, error) { return 0, nil }
func (NopHost) WriteByte(byte) error    { return nil }
func (NopHost) Sleep(int)               {}

// ctxCheckInterval bounds how often VM.Run polls ctx.Done(), so cancellation
// is observed promptly without paying a context check on every single
// instruction, since the VM's inner loop has no cancellation points of its
// own otherwise.
const ctxCheckInterval = 1 << 14

// VM is the fetch-decode-execute loop over a single linear Memory.
type VM struct {
	Mem  *Memory
	Host Host
	Logf func(mess string, args ...interface{})
}

// NewVM returns a VM over mem with host wired up for SVC calls. A nil host
// defaults to NopHost.
func NewVM(mem *Memory, host Host) *VM {
	if host == nil {
		host = NopHost{}
	}
	return &VM{Mem: mem, Host: host}
}

func (vm *VM) logf(mess string, args ...interface{}) {
	if vm.Logf != nil {
		vm.Logf(mess, args...)
	}
}

// Run drives the fetch-decode-execute loop until the instruction pointer
// reaches a NULL opcode or ctx is done. Runtime errors
// raised as panics deep in the dispatch loop are recovered by
// panicerr.Recover and returned as ordinary errors -- the same wrapping
// jcorbin-gothird uses around its own vm.Run, unwrapping back to the
// underlying *runtimeError via errors.As.
func (vm *VM) Run(ctx context.Context) error {
	return panicerr.Recover("vm.Run", func() error {
		m := vm.Mem
		steps := 0
		for {
			ip := m.Get(GlobalIP)
			op := m.GetOp(ip)
			if op == OpNull {
				return nil
			}

			steps++
			if steps%ctxCheckInterval == 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
			}

			vm.dispatch(op, ip)

			m.Set(GlobalIP, m.Get(GlobalIP)+1)
		}
	})
}

func (vm *VM) dispatch(op Opcode, ip int) {
	m := vm.Mem
	switch op {
	case OpNop:
		// none

	case OpPushConst:
		ip++
		m.Set(GlobalIP, ip)
		vm.push(m.Get(ip))

	case OpPushVarAddr:
		ip++
		m.Set(GlobalIP, ip)
		bp := m.Get(GlobalBP)
		vm.push(bp + m.Get(ip))

	case OpGlobalGet:
		sp := m.Get(GlobalSP)
		addr := m.Get(sp - 1)
		m.Set(sp-1, m.Get(addr))

	case OpGlobalSet:
		sp := m.Get(GlobalSP)
		addr := m.Get(sp - 2)
		val := m.Get(sp - 1)
		m.Set(addr, val)
		m.Set(GlobalSP, sp-2)

	case OpCall:
		sp := m.Get(GlobalSP)
		bp := m.Get(GlobalBP)
		target := m.Get(ip + 1)
		m.Set(sp+0, ip+1)
		m.Set(sp+1, sp)
		m.Set(sp+2, bp)
		m.Set(GlobalIP, target-1)
		m.Set(GlobalBP, sp+3)
		m.Set(GlobalSP, sp+StackSize)

	case OpReturn:
		sp := m.Get(GlobalSP)
		bp := m.Get(GlobalBP)
		r := m.Get(sp - 1)
		retIP := m.Get(bp - 3)
		retSP := m.Get(bp - 2)
		retBP := m.Get(bp - 1)
		m.Set(GlobalIP, retIP)
		m.Set(GlobalSP, retSP)
		m.Set(GlobalBP, retBP)
		m.Set(retSP, r)
		m.Set(GlobalSP, retSP+1)

	case OpJmp:
		target := m.Get(ip + 1)
		m.Set(GlobalIP, target-1)

	case OpJze:
		sp := m.Get(GlobalSP)
		c := m.Get(sp - 1)
		m.Set(GlobalSP, sp-1)
		if c == 0 {
			target := m.Get(ip + 1)
			m.Set(GlobalIP, target-1)
		} else {
			m.Set(GlobalIP, ip+1)
		}

	case OpOr:
		vm.binop(func(a, b int) int { return boolInt(a != 0 || b != 0) })
	case OpAnd:
		vm.binop(func(a, b int) int { return boolInt(a != 0 && b != 0) })
	case OpEq:
		vm.binop(func(a, b int) int { return boolInt(a == b) })
	case OpNe:
		vm.binop(func(a, b int) int { return boolInt(a != b) })
	case OpLt:
		vm.binop(func(a, b int) int { return boolInt(a < b) })
	case OpGt:
		vm.binop(func(a, b int) int { return boolInt(a > b) })
	case OpAdd:
		vm.binop(func(a, b int) int { return a + b })
	case OpSub:
		vm.binop(func(a, b int) int { return a - b })
	case OpMul:
		vm.binop(func(a, b int) int { return a * b })
	case OpDiv:
		vm.binop(func(a, b int) int {
			if b == 0 {
				panic(&runtimeError{msg: "division by zero", ip: ip})
			}
			return a / b
		})
	case OpMod:
		vm.binop(func(a, b int) int {
			if b == 0 {
				panic(&runtimeError{msg: "modulo by zero", ip: ip})
			}
			return a % b
		})

	case OpSvc:
		vm.svc(ip)

	default:
		panic(&runtimeError{msg: "illegal opcode " + op.String(), ip: ip})
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// binop applies f to the top two stack cells, replacing them with one
// result: "... x y -> ... (x op y)".
func (vm *VM) binop(f func(a, b int) int) {
	m := vm.Mem
	sp := m.Get(GlobalSP)
	a, b := m.Get(sp-2), m.Get(sp-1)
	m.Set(sp-2, f(a, b))
	m.Set(GlobalSP, sp-1)
}

func (vm *VM) push(val int) {
	m := vm.Mem
	sp := m.Get(GlobalSP)
	m.Set(sp, val)
	m.Set(GlobalSP, sp+1)
}

// svc dispatches the single host-call opcode on M[IO]. The VM
// never pops the stack here -- the caller is responsible for stack hygiene,
// by design.
func (vm *VM) svc(ip int) {
	m := vm.Mem
	sp := m.Get(GlobalSP)
	io := m.Get(GlobalIO)
	switch io {
	case 0:
		b, err := vm.Host.ReadByte()
		if err != nil {
			panic(&runtimeError{msg: "svc read: " + err.Error(), ip: ip})
		}
		m.Set(sp-1, int(b))
	case 1:
		b := byte(m.Get(sp - 1))
		if err := vm.Host.WriteByte(b); err != nil {
			panic(&runtimeError{msg: "svc write: " + err.Error(), ip: ip})
		}
	case 2:
		vm.Host.Sleep(m.Get(sp - 1))
	default:
		vm.logf("svc: unknown io mode %d, ignoring", io)
	}
}
