package debug

import "github.com/valerio/go-cretro/cretro/addr"

// CPUState contains all CPU register information for debugging
type CPUState struct {
	V     [addr.RegisterCount]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack []uint16

	DelayTimer uint8
	SoundTimer uint8

	State        string
	Opcode       uint16
	Instructions uint64

	// Steps and Ticks count clock steps and 60Hz timer ticks since start.
	Steps uint64
	Ticks uint64
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerRunning:
		return "running"
	case DebuggerPaused:
		return "paused"
	case DebuggerStepInstruction:
		return "step instruction"
	case DebuggerStepFrame:
		return "step frame"
	default:
		return "unknown"
	}
}

// Data contains all debug information needed by debug displays
type Data struct {
	CPU           *CPUState
	Memory        *MemorySnapshot
	Keys          [addr.KeyCount]bool
	DebuggerState DebuggerState
	Fault         string
}
