package audio

// Provider is the source backends pull samples from.
type Provider interface {
	// GetSamples returns count interleaved stereo samples.
	GetSamples(count int) []int16

	// ToneOn reports whether the buzzer is sounding.
	ToneOn() bool

	// ToggleMute silences output without affecting the tone state.
	ToggleMute()
	Muted() bool
}

var _ Provider = (*Buzzer)(nil)
