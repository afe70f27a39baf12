package memory

import (
	"log/slog"

	"github.com/valerio/go-cretro/cretro/addr"
	"github.com/valerio/go-cretro/cretro/fault"
)

// fontSet holds the 16 hexadecimal digit sprites, 5 rows each.
var fontSet = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4KB address space. The font is written once at construction,
// the program region starts at addr.ProgramStart.
type Memory struct {
	data [addr.MemorySize]byte
}

// New returns a memory with the font loaded and an empty program region.
func New() *Memory {
	m := &Memory{}
	copy(m.data[addr.FontStart:], fontSet[:])
	return m
}

// Load copies a program image verbatim into the program region.
// Images that don't fit are rejected before anything is written.
func (m *Memory) Load(program []byte) error {
	if len(program) > addr.MaxProgramSize {
		return fault.New(fault.Load, "program is %d bytes, at most %d fit in memory", len(program), addr.MaxProgramSize)
	}

	copy(m.data[addr.ProgramStart:], program)
	slog.Debug("Program loaded", "bytes", len(program), "start", addr.ProgramStart)
	return nil
}

// Read returns the byte at the given address. Addresses wrap at 4KB.
func (m *Memory) Read(address uint16) byte {
	return m.data[address&addr.MaxAddress]
}

// Write sets the byte at the given address. Addresses wrap at 4KB.
// Callers are responsible for keeping writes out of the reserved region.
func (m *Memory) Write(address uint16, value byte) {
	m.data[address&addr.MaxAddress] = value
}

// Slice returns a copy of length bytes starting at address, truncated at the end of memory.
func (m *Memory) Slice(address uint16, length int) []byte {
	start := int(address & addr.MaxAddress)
	end := start + length
	if end > addr.MemorySize {
		end = addr.MemorySize
	}

	out := make([]byte, end-start)
	copy(out, m.data[start:end])
	return out
}
