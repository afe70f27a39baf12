package cpu

import (
	"fmt"

	"github.com/valerio/go-cretro/cretro/bit"
	"github.com/valerio/go-cretro/cretro/fault"
)

// Op identifies a decoded operation.
type Op uint8

const (
	OpInvalid Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEVxByte   // 3xnn
	OpSNEVxByte  // 4xnn
	OpSEVxVy     // 5xy0
	OpLDVxByte   // 6xnn
	OpADDVxByte  // 7xnn
	OpLDVxVy     // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDVxVy    // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEVxVy    // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxnn
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDIVx     // Fx1E
	OpLDFVx      // Fx29
	OpLDBVx      // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65

	opCount
)

var opNames = [opCount]string{
	"???", "CLS", "RET", "JP", "CALL", "SE", "SNE", "SE", "LD", "ADD",
	"LD", "OR", "AND", "XOR", "ADD", "SUB", "SHR", "SUBN", "SHL", "SNE",
	"LD", "JP", "RND", "DRW", "SKP", "SKNP", "LD", "LD", "LD", "LD",
	"ADD", "LD", "LD", "LD", "LD",
}

// Mnemonic returns the assembler name of the operation.
func (o Op) Mnemonic() string {
	if o >= opCount {
		return opNames[OpInvalid]
	}
	return opNames[o]
}

// Instruction is a decoded opcode. Only the operand fields used by Op are set,
// the others are left zero.
type Instruction struct {
	Op  Op
	Raw uint16

	X   uint8  // register index, bits 8-11
	Y   uint8  // register index, bits 4-7
	N   uint8  // 4 bit immediate, bits 0-3
	NN  uint8  // 8 bit immediate, bits 0-7
	NNN uint16 // 12 bit address, bits 0-11
}

// Decode turns a raw big-endian instruction word into an Instruction.
// Patterns that match no operation return a decode fault carrying the opcode.
func Decode(raw uint16) (Instruction, error) {
	switch bit.Nibble(raw, 3) {
	case 0x0:
		switch raw {
		case 0x00E0:
			return Instruction{Op: OpCLS, Raw: raw}, nil
		case 0x00EE:
			return Instruction{Op: OpRET, Raw: raw}, nil
		}
	case 0x1:
		return withAddress(OpJP, raw), nil
	case 0x2:
		return withAddress(OpCALL, raw), nil
	case 0x3:
		return withRegByte(OpSEVxByte, raw), nil
	case 0x4:
		return withRegByte(OpSNEVxByte, raw), nil
	case 0x5:
		if bit.Nibble(raw, 0) == 0x0 {
			return withRegs(OpSEVxVy, raw), nil
		}
	case 0x6:
		return withRegByte(OpLDVxByte, raw), nil
	case 0x7:
		return withRegByte(OpADDVxByte, raw), nil
	case 0x8:
		if op, ok := aluOps[bit.Nibble(raw, 0)]; ok {
			return withRegs(op, raw), nil
		}
	case 0x9:
		if bit.Nibble(raw, 0) == 0x0 {
			return withRegs(OpSNEVxVy, raw), nil
		}
	case 0xA:
		return withAddress(OpLDI, raw), nil
	case 0xB:
		return withAddress(OpJPV0, raw), nil
	case 0xC:
		return withRegByte(OpRND, raw), nil
	case 0xD:
		return Instruction{
			Op:  OpDRW,
			Raw: raw,
			X:   bit.Nibble(raw, 2),
			Y:   bit.Nibble(raw, 1),
			N:   bit.Nibble(raw, 0),
		}, nil
	case 0xE:
		switch bit.Low(raw) {
		case 0x9E:
			return withReg(OpSKP, raw), nil
		case 0xA1:
			return withReg(OpSKNP, raw), nil
		}
	case 0xF:
		if op, ok := miscOps[bit.Low(raw)]; ok {
			return withReg(op, raw), nil
		}
	}

	return Instruction{Raw: raw}, fault.At(fault.Decode, 0, raw, "unknown instruction %04X", raw)
}

// aluOps maps the low nibble of 8xyN instructions.
var aluOps = map[uint8]Op{
	0x0: OpLDVxVy,
	0x1: OpOR,
	0x2: OpAND,
	0x3: OpXOR,
	0x4: OpADDVxVy,
	0x5: OpSUB,
	0x6: OpSHR,
	0x7: OpSUBN,
	0xE: OpSHL,
}

// miscOps maps the low byte of FxNN instructions.
var miscOps = map[uint8]Op{
	0x07: OpLDVxDT,
	0x0A: OpLDVxK,
	0x15: OpLDDTVx,
	0x18: OpLDSTVx,
	0x1E: OpADDIVx,
	0x29: OpLDFVx,
	0x33: OpLDBVx,
	0x55: OpLDIVx,
	0x65: OpLDVxI,
}

func withAddress(op Op, raw uint16) Instruction {
	return Instruction{Op: op, Raw: raw, NNN: bit.Address(raw)}
}

func withRegByte(op Op, raw uint16) Instruction {
	return Instruction{Op: op, Raw: raw, X: bit.Nibble(raw, 2), NN: bit.Low(raw)}
}

func withRegs(op Op, raw uint16) Instruction {
	return Instruction{Op: op, Raw: raw, X: bit.Nibble(raw, 2), Y: bit.Nibble(raw, 1)}
}

func withReg(op Op, raw uint16) Instruction {
	return Instruction{Op: op, Raw: raw, X: bit.Nibble(raw, 2)}
}

// String returns the instruction in assembler syntax, e.g. "ADD V1, $05".
func (i Instruction) String() string {
	name := i.Op.Mnemonic()

	switch i.Op {
	case OpCLS, OpRET:
		return name
	case OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, i.NNN)
	case OpSEVxByte, OpSNEVxByte, OpLDVxByte, OpADDVxByte, OpRND:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.NN)
	case OpSEVxVy, OpSNEVxVy, OpLDVxVy, OpOR, OpAND, OpXOR, OpADDVxVy, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case OpSHR, OpSHL:
		return fmt.Sprintf("%s V%X", name, i.X)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, i.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, i.NNN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, i.X, i.Y, i.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", name, i.X)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, i.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", name, i.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, i.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, i.X)
	case OpADDIVx:
		return fmt.Sprintf("%s I, V%X", name, i.X)
	case OpLDFVx:
		return fmt.Sprintf("%s F, V%X", name, i.X)
	case OpLDBVx:
		return fmt.Sprintf("%s B, V%X", name, i.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", name, i.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", name, i.X)
	default:
		return fmt.Sprintf(".word $%04X", i.Raw)
	}
}
