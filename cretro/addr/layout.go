package addr

// memory map
const (
	// Start of the reserved interpreter area, also where the font lives.
	FontStart uint16 = 0x000
	// FontGlyphSize is the number of bytes (rows) of a single hex digit sprite.
	FontGlyphSize uint16 = 5
	// ProgramStart is where program images are loaded and execution begins.
	ProgramStart uint16 = 0x200
	// MaxAddress is the highest addressable byte.
	MaxAddress uint16 = 0xFFF
	// LastInstruction is the highest address an instruction can be fetched from.
	LastInstruction uint16 = MaxAddress - 1

	// MemorySize is the total amount of addressable bytes.
	MemorySize = int(MaxAddress) + 1
	// MaxProgramSize is the largest program image that fits above ProgramStart.
	MaxProgramSize = int(MaxAddress-ProgramStart) + 1
)

// machine limits
const (
	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16
	// RegisterCount is the number of general purpose V registers.
	RegisterCount = 16
	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16
	// FlagRegister is the index of VF.
	FlagRegister = 0xF
)

// FontGlyph returns the address of the sprite for the given hex digit.
// Only the low nibble of the digit is considered.
func FontGlyph(digit uint8) uint16 {
	return FontStart + uint16(digit&0x0F)*FontGlyphSize
}

// IsInstructionAddress reports whether a PC value is aligned and inside the program region.
func IsInstructionAddress(address uint16) bool {
	return address >= ProgramStart && address <= LastInstruction && address%2 == 0
}
