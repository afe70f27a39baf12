package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// Hex keypad, values match the key codes 0x0-0xF
	Keypad0 Action = iota
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadA
	KeypadB
	KeypadC
	KeypadD
	KeypadE
	KeypadF

	// Emulator features
	EmulatorDebugToggle
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorTestPatternCycle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease
)

// Category groups actions for help output.
type Category string

const (
	CategoryKeypad   Category = "keypad"
	CategoryEmulator Category = "emulator"
	CategoryDebug    Category = "debug"
)

// Info describes an action for help screens.
type Info struct {
	Category    Category
	Description string
}

var infos = map[Action]Info{
	EmulatorDebugToggle:      {CategoryEmulator, "toggle debug panels"},
	EmulatorSnapshot:         {CategoryEmulator, "save a frame snapshot"},
	EmulatorPauseToggle:      {CategoryEmulator, "pause or resume"},
	EmulatorStepFrame:        {CategoryEmulator, "run one frame while paused"},
	EmulatorStepInstruction:  {CategoryEmulator, "run one instruction while paused"},
	EmulatorTestPatternCycle: {CategoryEmulator, "cycle test pattern"},
	EmulatorQuit:             {CategoryEmulator, "quit"},
	DebugLogLevelIncrease:    {CategoryDebug, "more verbose logging"},
	DebugLogLevelDecrease:    {CategoryDebug, "less verbose logging"},
}

// GetInfo returns the description of an action.
func GetInfo(a Action) Info {
	if a.IsKeypad() {
		return Info{CategoryKeypad, fmt.Sprintf("keypad %X", int(a))}
	}
	if info, ok := infos[a]; ok {
		return info
	}
	return Info{CategoryEmulator, "unknown"}
}

// IsKeypad reports whether the action is one of the 16 hex keys.
func (a Action) IsKeypad() bool {
	return a >= Keypad0 && a <= KeypadF
}

// Key returns the keypad code for a keypad action.
func (a Action) Key() (uint8, bool) {
	if !a.IsKeypad() {
		return 0, false
	}
	return uint8(a), true
}

// FromKey returns the keypad action for a key code, only the low nibble is used.
func FromKey(key uint8) Action {
	return Keypad0 + Action(key&0xF)
}

func (a Action) String() string {
	return GetInfo(a).Description
}
