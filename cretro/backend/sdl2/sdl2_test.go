//go:build sdl2

package sdl2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-cretro/cretro/input/action"
	"github.com/veandco/go-sdl2/sdl"
)

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		key  sdl.Keycode
		want action.Action
	}{
		{sdl.K_1, action.Keypad1},
		{sdl.K_4, action.KeypadC},
		{sdl.K_q, action.Keypad4},
		{sdl.K_x, action.Keypad0},
		{sdl.K_v, action.KeypadF},
		{sdl.K_SPACE, action.EmulatorPauseToggle},
		{sdl.K_ESCAPE, action.EmulatorQuit},
		{sdl.K_F9, action.EmulatorSnapshot},
		{sdl.K_F10, action.EmulatorDebugToggle},
		{sdl.K_F12, action.EmulatorTestPatternCycle},
		{sdl.K_MINUS, action.DebugLogLevelDecrease},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyMapping[tt.key], "key %d", tt.key)
	}
}
