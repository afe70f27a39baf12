package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimers_Tick(t *testing.T) {
	tests := []struct {
		name       string
		delay      byte
		sound      byte
		ticks      int
		wantDelay  byte
		wantSound  byte
		wantToneOn bool
	}{
		{name: "counts down", delay: 10, sound: 5, ticks: 3, wantDelay: 7, wantSound: 2, wantToneOn: true},
		{name: "stops at zero", delay: 2, sound: 1, ticks: 10, wantDelay: 0, wantSound: 0},
		{name: "idle timers stay at zero", ticks: 5},
		{name: "independent counters", delay: 0, sound: 200, ticks: 1, wantSound: 199, wantToneOn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timers := NewTimers()
			timers.SetDelay(tt.delay)
			timers.SetSound(tt.sound)

			for i := 0; i < tt.ticks; i++ {
				timers.Tick()
			}

			assert.Equal(t, tt.wantDelay, timers.Delay())
			assert.Equal(t, tt.wantSound, timers.Sound())
			assert.Equal(t, tt.wantToneOn, timers.Tone())
		})
	}
}
