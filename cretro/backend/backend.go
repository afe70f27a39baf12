package backend

import (
	"log/slog"

	"github.com/valerio/go-cretro/cretro/audio"
	"github.com/valerio/go-cretro/cretro/debug"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/input/event"
	"github.com/valerio/go-cretro/cretro/video"
)

// Backend represents a complete emulator platform (rendering + input + audio)
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, SDL window, etc.)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, debug panels)
type Backend interface {
	// Init configures the backend with the provided configuration.
	// This is a required step before calling Update.
	Init(config BackendConfig) error

	// Update renders the frame, polls platform events and returns them
	// translated to input events.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// InputEvent is an action together with the kind of key transition that produced it.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}

// ActionHandler is implemented by backends that react to emulator actions
// themselves, e.g. taking snapshots or toggling debug panels.
type ActionHandler interface {
	HandleAction(act action.Action)
}

// DebugDataProvider gives backends read access to emulator state.
type DebugDataProvider interface {
	ExtractDebugData() *debug.Data
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title         string
	Scale         int
	ShowDebug     bool              // Backends may ignore unsupported features
	TestPattern   bool              // Emulator is showing test patterns instead of a program
	DebugProvider DebugDataProvider // Source for register and disassembly panels
	AudioProvider audio.Provider    // Nil when the emulator has no sound
	LogLevel      slog.Level        // Initial level for backends that capture logs
}
