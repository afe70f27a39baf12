package cretro

import (
	"github.com/valerio/go-cretro/cretro/audio"
	"github.com/valerio/go-cretro/cretro/debug"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/video"
)

// Emulator is the interface for all emulator implementations
type Emulator interface {
	RunUntilFrame() error
	GetCurrentFrame() *video.FrameBuffer
	HandleAction(act action.Action, pressed bool)
	ExtractDebugData() *debug.Data
	Audio() audio.Provider
}

var _ Emulator = (*Interpreter)(nil)
