package cpu

import (
	"github.com/valerio/go-cretro/cretro/addr"
	"github.com/valerio/go-cretro/cretro/bit"
	"github.com/valerio/go-cretro/cretro/fault"
)

// opcodes maps every decoded operation to its handler. Handlers run after PC
// has moved past the instruction; a returned error halts the CPU before any
// further state is touched.
var opcodes = [opCount]func(c *CPU, in Instruction) error{
	OpInvalid: func(c *CPU, in Instruction) error {
		return fault.At(fault.Decode, 0, in.Raw, "unknown instruction %04X", in.Raw)
	},
	OpCLS: func(c *CPU, in Instruction) error {
		c.bus.ClearDisplay()
		return nil
	},
	OpRET: func(c *CPU, in Instruction) error {
		if c.sp == 0 {
			return fault.New(fault.Runtime, "return with empty stack")
		}
		target := c.stack[c.sp-1]
		if err := c.jump(target); err != nil {
			return err
		}
		c.sp--
		return nil
	},
	OpJP: func(c *CPU, in Instruction) error {
		return c.jump(in.NNN)
	},
	OpCALL: func(c *CPU, in Instruction) error {
		if !addr.IsInstructionAddress(in.NNN) {
			return fault.New(fault.Runtime, "call target %03X out of range", in.NNN)
		}
		if err := c.pushStack(c.pc); err != nil {
			return err
		}
		c.pc = in.NNN
		return nil
	},
	OpSEVxByte: func(c *CPU, in Instruction) error {
		c.skipIf(c.v[in.X] == in.NN)
		return nil
	},
	OpSNEVxByte: func(c *CPU, in Instruction) error {
		c.skipIf(c.v[in.X] != in.NN)
		return nil
	},
	OpSEVxVy: func(c *CPU, in Instruction) error {
		c.skipIf(c.v[in.X] == c.v[in.Y])
		return nil
	},
	OpSNEVxVy: func(c *CPU, in Instruction) error {
		c.skipIf(c.v[in.X] != c.v[in.Y])
		return nil
	},
	OpLDVxByte: func(c *CPU, in Instruction) error {
		c.v[in.X] = in.NN
		return nil
	},
	OpADDVxByte: func(c *CPU, in Instruction) error {
		c.v[in.X] += in.NN
		return nil
	},
	OpLDVxVy: func(c *CPU, in Instruction) error {
		c.v[in.X] = c.v[in.Y]
		return nil
	},
	OpOR: func(c *CPU, in Instruction) error {
		c.v[in.X] |= c.v[in.Y]
		return nil
	},
	OpAND: func(c *CPU, in Instruction) error {
		c.v[in.X] &= c.v[in.Y]
		return nil
	},
	OpXOR: func(c *CPU, in Instruction) error {
		c.v[in.X] ^= c.v[in.Y]
		return nil
	},
	OpADDVxVy: func(c *CPU, in Instruction) error {
		result, overflow := bit.CheckedAdd(c.v[in.X], c.v[in.Y])
		c.setWithFlag(in.X, result, overflow)
		return nil
	},
	OpSUB: func(c *CPU, in Instruction) error {
		result, borrow := bit.CheckedSub(c.v[in.X], c.v[in.Y])
		c.setWithFlag(in.X, result, !borrow)
		return nil
	},
	OpSUBN: func(c *CPU, in Instruction) error {
		result, borrow := bit.CheckedSub(c.v[in.Y], c.v[in.X])
		c.setWithFlag(in.X, result, !borrow)
		return nil
	},
	OpSHR: func(c *CPU, in Instruction) error {
		src := c.shiftSource(in)
		c.setWithFlag(in.X, src>>1, bit.IsSet(0, src))
		return nil
	},
	OpSHL: func(c *CPU, in Instruction) error {
		src := c.shiftSource(in)
		c.setWithFlag(in.X, src<<1, bit.IsSet(7, src))
		return nil
	},
	OpLDI: func(c *CPU, in Instruction) error {
		c.i = in.NNN
		return nil
	},
	OpJPV0: func(c *CPU, in Instruction) error {
		return c.jump(in.NNN + uint16(c.v[0]))
	},
	OpRND: func(c *CPU, in Instruction) error {
		c.v[in.X] = c.random() & in.NN
		return nil
	},
	OpDRW: func(c *CPU, in Instruction) error {
		if err := c.checkIndexRange(uint16(in.N), false); err != nil {
			return err
		}
		sprite := make([]byte, in.N)
		for row := range sprite {
			sprite[row] = c.bus.Read(c.i + uint16(row))
		}
		collision := c.bus.Draw(c.v[in.X], c.v[in.Y], sprite)
		c.v[addr.FlagRegister] = flag(collision)
		return nil
	},
	OpSKP: func(c *CPU, in Instruction) error {
		c.skipIf(c.bus.KeyPressed(c.v[in.X] & 0xF))
		return nil
	},
	OpSKNP: func(c *CPU, in Instruction) error {
		c.skipIf(!c.bus.KeyPressed(c.v[in.X] & 0xF))
		return nil
	},
	OpLDVxDT: func(c *CPU, in Instruction) error {
		c.v[in.X] = c.bus.DelayTimer()
		return nil
	},
	OpLDVxK: func(c *CPU, in Instruction) error {
		// only presses that happen after this instruction count
		c.bus.DiscardKeyPress()
		c.waitRegister = in.X
		c.state = WaitingForKey
		return nil
	},
	OpLDDTVx: func(c *CPU, in Instruction) error {
		c.bus.SetDelayTimer(c.v[in.X])
		return nil
	},
	OpLDSTVx: func(c *CPU, in Instruction) error {
		c.bus.SetSoundTimer(c.v[in.X])
		return nil
	},
	OpADDIVx: func(c *CPU, in Instruction) error {
		sum := c.i + uint16(c.v[in.X])
		if !c.quirks.IndexOverflowSetsVF {
			if sum > addr.MaxAddress {
				return fault.New(fault.Runtime, "index %03X + %02X leaves address space", c.i, c.v[in.X])
			}
			c.i = sum
			return nil
		}
		c.i = bit.Address(sum)
		c.v[addr.FlagRegister] = flag(sum > addr.MaxAddress)
		return nil
	},
	OpLDFVx: func(c *CPU, in Instruction) error {
		c.i = addr.FontGlyph(c.v[in.X])
		return nil
	},
	OpLDBVx: func(c *CPU, in Instruction) error {
		if err := c.checkIndexRange(3, true); err != nil {
			return err
		}
		value := c.v[in.X]
		c.bus.Write(c.i, value/100)
		c.bus.Write(c.i+1, (value/10)%10)
		c.bus.Write(c.i+2, value%10)
		return nil
	},
	OpLDIVx: func(c *CPU, in Instruction) error {
		if err := c.checkTransfer(in.X, true); err != nil {
			return err
		}
		for n := uint16(0); n <= uint16(in.X); n++ {
			c.bus.Write(c.i+n, c.v[n])
		}
		c.advanceIndex(in.X)
		return nil
	},
	OpLDVxI: func(c *CPU, in Instruction) error {
		if err := c.checkTransfer(in.X, false); err != nil {
			return err
		}
		for n := uint16(0); n <= uint16(in.X); n++ {
			c.v[n] = c.bus.Read(c.i + n)
		}
		c.advanceIndex(in.X)
		return nil
	},
}

func flag(set bool) uint8 {
	if set {
		return 1
	}
	return 0
}

// setWithFlag writes the result before VF, so VF holds the flag when x is F.
func (c *CPU) setWithFlag(x, result uint8, set bool) {
	c.v[x] = result
	c.v[addr.FlagRegister] = flag(set)
}

func (c *CPU) shiftSource(in Instruction) uint8 {
	if c.quirks.ShiftUsesVY {
		return c.v[in.Y]
	}
	return c.v[in.X]
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

func (c *CPU) jump(target uint16) error {
	if !addr.IsInstructionAddress(target) {
		return fault.New(fault.Runtime, "jump target %03X out of range", target)
	}
	c.pc = target
	return nil
}

func (c *CPU) pushStack(value uint16) error {
	if int(c.sp) >= len(c.stack) {
		return fault.New(fault.Runtime, "stack overflow")
	}
	c.stack[c.sp] = value
	c.sp++
	return nil
}

// checkIndexRange verifies that the length bytes starting at I are
// addressable, and for writes that none of them fall in the reserved region.
func (c *CPU) checkIndexRange(length uint16, write bool) error {
	if length == 0 {
		return nil
	}
	if uint32(c.i)+uint32(length)-1 > uint32(addr.MaxAddress) {
		return fault.New(fault.Runtime, "access of %d bytes at %03X leaves address space", length, c.i)
	}
	if write && c.i < addr.ProgramStart {
		return fault.New(fault.Runtime, "write to reserved address %03X", c.i)
	}
	return nil
}

// checkTransfer validates Fx55/Fx65. Unless I is kept, its final value
// must also stay addressable.
func (c *CPU) checkTransfer(x uint8, write bool) error {
	if err := c.checkIndexRange(uint16(x)+1, write); err != nil {
		return err
	}
	if !c.quirks.LoadStoreLeavesI && uint32(c.i)+uint32(x)+1 > uint32(addr.MaxAddress) {
		return fault.New(fault.Runtime, "index %03X would leave address space", uint32(c.i)+uint32(x)+1)
	}
	return nil
}

func (c *CPU) advanceIndex(x uint8) {
	if !c.quirks.LoadStoreLeavesI {
		c.i += uint16(x) + 1
	}
}
