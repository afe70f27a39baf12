package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuzzer_silentByDefault(t *testing.T) {
	b := NewBuzzer()

	samples := b.GetSamples(128)

	assert.False(t, b.ToneOn())
	assert.Len(t, samples, 128)
	for _, s := range samples {
		assert.Equal(t, int16(0), s)
	}
}

func TestBuzzer_squareWave(t *testing.T) {
	b := NewBuzzer()
	b.SetTone(true)

	// one second of audio
	samples := b.GetSamples(SampleRate * Channels)

	edges := 0
	for i := Channels; i < len(samples); i += Channels {
		assert.Equal(t, samples[i], samples[i+1], "channels carry the same value")
		assert.Contains(t, []int16{amplitude, -amplitude}, samples[i])
		if samples[i] != samples[i-Channels] {
			edges++
		}
	}

	// two edges per period, allow for the partial period at either end
	assert.InDelta(t, 2*ToneFrequency, edges, 2)
}

func TestBuzzer_phaseContinuity(t *testing.T) {
	whole := NewBuzzer()
	whole.SetTone(true)
	expected := whole.GetSamples(400)

	split := NewBuzzer()
	split.SetTone(true)
	got := append(split.GetSamples(150), split.GetSamples(250)...)

	assert.Equal(t, expected, got)
}

func TestBuzzer_mute(t *testing.T) {
	b := NewBuzzer()
	b.SetTone(true)
	b.ToggleMute()

	assert.True(t, b.Muted())
	assert.True(t, b.ToneOn())
	for _, s := range b.GetSamples(64) {
		assert.Equal(t, int16(0), s)
	}

	b.ToggleMute()
	assert.False(t, b.Muted())
	assert.NotEqual(t, int16(0), b.GetSamples(2)[0])
}

func TestBuzzer_oddCount(t *testing.T) {
	b := NewBuzzer()
	assert.Len(t, b.GetSamples(5), 4)
}
