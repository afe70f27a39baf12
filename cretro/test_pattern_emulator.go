package cretro

import (
	"log/slog"

	"github.com/valerio/go-cretro/cretro/audio"
	"github.com/valerio/go-cretro/cretro/debug"
	"github.com/valerio/go-cretro/cretro/display"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/valerio/go-cretro/cretro/video"
)

// TestPatternEmulator displays test patterns without actual emulation
type TestPatternEmulator struct {
	frameBuffer      *video.FrameBuffer
	patternType      int
	animationCounter int
}

func NewTestPatternEmulator() *TestPatternEmulator {
	e := &TestPatternEmulator{
		frameBuffer: video.NewFrameBuffer(),
	}
	e.drawPattern(0)
	return e
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.animationCounter++
	if e.animationCounter%display.TestPatternAnimationFrames == 0 {
		e.drawPattern(e.animationCounter / display.TestPatternAnimationFrames)
	}
	return nil
}

func (e *TestPatternEmulator) GetCurrentFrame() *video.FrameBuffer {
	return e.frameBuffer
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

func (e *TestPatternEmulator) ExtractDebugData() *debug.Data {
	return &debug.Data{DebuggerState: debug.DebuggerRunning}
}

func (e *TestPatternEmulator) Audio() audio.Provider {
	return nil
}

// Pattern returns the index of the pattern being shown.
func (e *TestPatternEmulator) Pattern() int {
	return e.patternType
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.patternType = (e.patternType + 1) % display.TestPatternCount
	e.drawPattern(e.animationCounter / display.TestPatternAnimationFrames)
	slog.Info("Switched to test pattern", "pattern", display.PatternNames[e.patternType])
}

// drawPattern renders the current pattern at the given animation step.
// Only stripes and diagonal move.
func (e *TestPatternEmulator) drawPattern(step int) {
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			color := video.OffColor
			if e.patternLit(x, y, step) {
				color = video.OnColor
			}
			e.frameBuffer.SetPixel(uint(x), uint(y), color)
		}
	}
}

func (e *TestPatternEmulator) patternLit(x, y, step int) bool {
	switch e.patternType {
	case 0: // checkerboard
		return ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 == 0
	case 1: // border, shows clipping problems at the edges
		return x == 0 || y == 0 || x == video.FramebufferWidth-1 || y == video.FramebufferHeight-1
	case 2: // vertical stripes
		return ((x+step*display.TestPatternStripeSpeed)/display.TestPatternStripeWidth)%2 == 0
	default: // diagonal
		return ((x+y+step*display.TestPatternDiagonalSpeed)/display.TestPatternTileSize)%2 == 0
	}
}

var _ Emulator = (*TestPatternEmulator)(nil)
