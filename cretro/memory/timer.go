package memory

// Timers holds the delay and sound countdown registers. Both are only ever
// decremented by Tick, which the interpreter calls at 60Hz of virtual time.
type Timers struct {
	delay byte
	sound byte
}

// NewTimers returns stopped timers.
func NewTimers() *Timers {
	return &Timers{}
}

// Tick decrements both timers by one, stopping at zero.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *Timers) Delay() byte { return t.delay }
func (t *Timers) Sound() byte { return t.sound }

func (t *Timers) SetDelay(value byte) { t.delay = value }
func (t *Timers) SetSound(value byte) { t.sound = value }

// Tone reports whether the buzzer should be sounding.
func (t *Timers) Tone() bool {
	return t.sound > 0
}
