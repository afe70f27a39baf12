package timing

// TimerFrequency is the rate, in Hz, at which the delay and sound timers count down.
const TimerFrequency = 60

const (
	// DefaultFrequency is the instruction rate used when none is configured.
	DefaultFrequency = 500
	// MaxFrequency is the highest accepted instruction rate.
	MaxFrequency = 1_000_000
	// FallbackFrequency replaces a configured rate outside (0, MaxFrequency].
	FallbackFrequency = MaxFrequency
)

// ValidFrequency reports whether hz is inside (0, MaxFrequency].
func ValidFrequency(hz int) bool {
	return hz > 0 && hz <= MaxFrequency
}

// Clock converts instruction steps into timer ticks using exact integer
// arithmetic. The accumulator counts in units of 1/(60*hz) seconds: each
// step adds 60 and each tick consumes hz.
type Clock struct {
	hz    uint64
	acc   uint64
	steps uint64
	ticks uint64
}

// NewClock returns a clock for the given instruction rate. Rates outside
// (0, MaxFrequency] are replaced by FallbackFrequency.
func NewClock(hz int) *Clock {
	if !ValidFrequency(hz) {
		hz = FallbackFrequency
	}
	return &Clock{hz: uint64(hz)}
}

// Advance accounts for one instruction step and returns how many 60Hz
// boundaries were crossed by it.
func (c *Clock) Advance() int {
	c.steps++
	c.acc += TimerFrequency

	ticks := 0
	for c.acc >= c.hz {
		c.acc -= c.hz
		ticks++
	}
	c.ticks += uint64(ticks)

	return ticks
}

// Hz returns the instruction rate the clock runs at.
func (c *Clock) Hz() int { return int(c.hz) }

// Steps returns the number of steps accounted so far.
func (c *Clock) Steps() uint64 { return c.steps }

// Ticks returns the number of timer ticks produced so far.
func (c *Clock) Ticks() uint64 { return c.ticks }
