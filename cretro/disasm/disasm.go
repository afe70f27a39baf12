package disasm

import (
	"fmt"
	"io"

	"github.com/valerio/go-cretro/cretro/addr"
	"github.com/valerio/go-cretro/cretro/bit"
	"github.com/valerio/go-cretro/cretro/cpu"
)

// InstructionSize is the length in bytes of every instruction.
const InstructionSize = 2

// Reader is the read-only view of memory the disassembler needs.
type Reader interface {
	Read(address uint16) uint8
}

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Opcode      uint16
	Instruction string
	Valid       bool
}

// Disassemble renders one instruction word. Words that do not decode are
// shown as data.
func Disassemble(address, opcode uint16) DisassemblyLine {
	instr, err := cpu.Decode(opcode)
	return DisassemblyLine{
		Address:     address,
		Opcode:      opcode,
		Instruction: instr.String(),
		Valid:       err == nil,
	}
}

// DisassembleAt disassembles the instruction at the given program counter.
// A word straddling the end of memory reads its missing byte as zero.
func DisassembleAt(pc uint16, r Reader) DisassemblyLine {
	pc &= addr.MaxAddress
	var low uint8
	if pc < addr.MaxAddress {
		low = r.Read(pc + 1)
	}
	return Disassemble(pc, bit.Combine(r.Read(pc), low))
}

// DisassembleBytes disassembles the word at offset in data, returning the
// text and the number of bytes consumed.
func DisassembleBytes(data []byte, offset int) (string, int) {
	if offset < 0 || offset >= len(data) {
		return "??", InstructionSize
	}
	if offset+1 >= len(data) {
		return fmt.Sprintf(".byte $%02X", data[offset]), 1
	}
	opcode := bit.Combine(data[offset], data[offset+1])
	return Disassemble(0, opcode).Instruction, InstructionSize
}

// DisassembleRange disassembles count instructions starting from startPC.
func DisassembleRange(startPC uint16, count int, r Reader) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	for pc := uint32(startPC); len(lines) < count && pc <= uint32(addr.MaxAddress); pc += InstructionSize {
		lines = append(lines, DisassembleAt(uint16(pc), r))
	}
	return lines
}

// Program disassembles a whole program image as it would sit in memory.
// A trailing odd byte is reported as data.
func Program(program []byte) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, (len(program)+1)/InstructionSize)
	for offset := 0; offset < len(program); offset += InstructionSize {
		address := addr.ProgramStart + uint16(offset)
		if offset+1 >= len(program) {
			lines = append(lines, DisassemblyLine{
				Address:     address,
				Opcode:      uint16(program[offset]),
				Instruction: fmt.Sprintf(".byte $%02X", program[offset]),
			})
			break
		}
		lines = append(lines, Disassemble(address, bit.Combine(program[offset], program[offset+1])))
	}
	return lines
}

// FormatDisassemblyLine formats a disassembly line for display
func FormatDisassemblyLine(line DisassemblyLine, isCurrentPC bool) string {
	prefix := " "
	if isCurrentPC {
		prefix = ">"
	}
	return fmt.Sprintf("%s%03X: %04X  %s", prefix, line.Address, line.Opcode, line.Instruction)
}

// WriteListing writes the disassembly of a program image to w, one line per instruction.
func WriteListing(w io.Writer, program []byte) error {
	for _, line := range Program(program) {
		if _, err := fmt.Fprintln(w, FormatDisassemblyLine(line, false)); err != nil {
			return err
		}
	}
	return nil
}
