package audio

import (
	"log/slog"
	"sync"
)

// Buzzer is a single square wave tone generator driven by the sound timer.
// The tone is switched from the emulation loop and samples are pulled by the
// backend, possibly from another goroutine.
type Buzzer struct {
	mu sync.Mutex

	on    bool
	muted bool

	// phase accumulator in 16.16 fixed point, one period is sampleRate samples
	phase     uint32
	increment uint32
	period    uint32
}

// NewBuzzer returns a silent buzzer producing ToneFrequency at SampleRate.
func NewBuzzer() *Buzzer {
	return &Buzzer{
		increment: ToneFrequency << fpShift,
		period:    SampleRate << fpShift,
	}
}

// SetTone turns the buzzer on or off.
func (b *Buzzer) SetTone(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if on != b.on {
		slog.Debug("buzzer", "on", on)
	}
	b.on = on
}

func (b *Buzzer) ToneOn() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.on
}

func (b *Buzzer) ToggleMute() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = !b.muted
}

func (b *Buzzer) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// GetSamples renders count samples. count is rounded down to a whole number
// of stereo frames. The wave phase carries over between calls so consecutive
// buffers join without clicks.
func (b *Buzzer) GetSamples(count int) []int16 {
	b.mu.Lock()
	defer b.mu.Unlock()

	frames := count / Channels
	samples := make([]int16, frames*Channels)
	if !b.on || b.muted {
		return samples
	}

	for f := 0; f < frames; f++ {
		value := amplitude
		if b.phase >= b.period/2 {
			value = -amplitude
		}
		for ch := 0; ch < Channels; ch++ {
			samples[f*Channels+ch] = value
		}

		b.phase += b.increment
		if b.phase >= b.period {
			b.phase -= b.period
		}
	}

	return samples
}
