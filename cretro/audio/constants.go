package audio

const (
	// SampleRate is the output rate expected by audio backends.
	SampleRate = 44100
	// Channels is the number of interleaved output channels.
	Channels = 2

	// ToneFrequency is the pitch of the buzzer in Hz.
	ToneFrequency = 440

	// amplitude of the square wave, a quarter of full scale
	amplitude int16 = 8192

	// fpShift is the fixed point shift used for the phase accumulator
	fpShift = 16
)
