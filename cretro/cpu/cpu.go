package cpu

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/valerio/go-cretro/cretro/addr"
	"github.com/valerio/go-cretro/cretro/bit"
	"github.com/valerio/go-cretro/cretro/fault"
)

// Bus provides the interface for component communication
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	ClearDisplay()
	Draw(x, y uint8, sprite []byte) bool
	KeyPressed(key uint8) bool
	TakeKeyPress() (uint8, bool)
	DiscardKeyPress()
	DelayTimer() uint8
	SetDelayTimer(value uint8)
	SetSoundTimer(value uint8)
}

// State is the execution state of the CPU.
type State uint8

const (
	Running State = iota
	WaitingForKey
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// CPU holds the register file, call stack and execution state.
type CPU struct {
	// registers
	v  [addr.RegisterCount]uint8
	i  uint16
	pc uint16

	stack [addr.StackDepth]uint16
	sp    uint8

	// metadata
	state         State
	waitRegister  uint8
	fault         error
	currentOpcode uint16
	instructions  uint64

	quirks Quirks
	random func() uint8

	bus Bus
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithQuirks selects the quirk set used for ambiguous instructions.
func WithQuirks(q Quirks) Option {
	return func(c *CPU) { c.quirks = q }
}

// WithRandom replaces the byte source used by Cxnn.
func WithRandom(random func() uint8) Option {
	return func(c *CPU) { c.random = random }
}

// New returns an initialized CPU instance with PC at the program start.
func New(bus Bus, opts ...Option) *CPU {
	c := &CPU{
		pc:     addr.ProgramStart,
		bus:    bus,
		random: defaultRandom,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultRandom() uint8 {
	return uint8(rand.UintN(256))
}

// Exec performs one step: a full fetch-decode-execute cycle when running, or
// a single poll of the keypad when waiting for a key. Once a fault has halted
// the CPU every call returns that same fault.
func (c *CPU) Exec() error {
	switch c.state {
	case Halted:
		return c.fault
	case WaitingForKey:
		key, ok := c.bus.TakeKeyPress()
		if !ok {
			return nil
		}
		c.v[c.waitRegister] = key & 0xF
		c.state = Running
		return nil
	}

	pc := c.pc
	if !addr.IsInstructionAddress(pc) {
		c.currentOpcode = 0
		return c.halt(fault.At(fault.Runtime, pc, 0, "program counter %03X out of range", pc))
	}

	c.currentOpcode = bit.Combine(c.bus.Read(pc), c.bus.Read(pc+1))
	instr, err := Decode(c.currentOpcode)
	if err != nil {
		return c.halt(err)
	}

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("exec", "pc", pc, "opcode", c.currentOpcode, "instr", instr.String())
	}

	c.pc += 2
	if err := opcodes[instr.Op](c, instr); err != nil {
		c.pc = pc
		return c.halt(err)
	}
	c.instructions++

	return nil
}

// halt moves the CPU into its terminal state, stamping the fault with the
// location of the faulting instruction.
func (c *CPU) halt(err error) error {
	if f, ok := fault.As(err); ok {
		f.PC = c.pc
		f.Opcode = c.currentOpcode
	}
	c.state = Halted
	c.fault = err
	slog.Error("cpu halted", "pc", c.pc, "opcode", c.currentOpcode, "error", err)
	return err
}

// V returns the value of register Vn.
func (c *CPU) V(n uint8) uint8 { return c.v[n&0xF] }

// Registers returns a copy of V0-VF.
func (c *CPU) Registers() [addr.RegisterCount]uint8 { return c.v }

// I returns the index register.
func (c *CPU) I() uint16 { return c.i }

// PC returns the address of the next instruction to fetch.
func (c *CPU) PC() uint16 { return c.pc }

// SP returns the number of return addresses on the stack.
func (c *CPU) SP() uint8 { return c.sp }

// Stack returns the active portion of the call stack, bottom first.
func (c *CPU) Stack() []uint16 {
	out := make([]uint16, c.sp)
	copy(out, c.stack[:c.sp])
	return out
}

// State returns whether the CPU is running, waiting for a key or halted.
func (c *CPU) State() State { return c.state }

// Fault returns the error that halted the CPU, or nil.
func (c *CPU) Fault() error { return c.fault }

// WaitRegister returns the register that will receive the next key press
// while the CPU is waiting.
func (c *CPU) WaitRegister() uint8 { return c.waitRegister }

// CurrentOpcode returns the last instruction word fetched.
func (c *CPU) CurrentOpcode() uint16 { return c.currentOpcode }

// Instructions returns the number of instructions retired so far.
func (c *CPU) Instructions() uint64 { return c.instructions }

// Quirks returns the compatibility switches the CPU runs with.
func (c *CPU) Quirks() Quirks { return c.quirks }
