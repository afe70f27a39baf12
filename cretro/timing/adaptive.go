package timing

import (
	"log/slog"
	"time"
)

// spinThreshold is how close to the deadline we stop sleeping and spin.
const spinThreshold = time.Millisecond

// AdaptiveLimiter sleeps until shortly before each frame deadline and spins
// for the remainder. Deadlines advance by a fixed period so rounding in
// sleeps does not accumulate; falling far behind resynchronises instead of
// rushing to catch up.
type AdaptiveLimiter struct {
	period   time.Duration
	deadline time.Time
	frames   int64
	behind   int64
	now      func() time.Time
}

func NewAdaptiveLimiter(period time.Duration) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		period:   period,
		deadline: time.Now().Add(period),
		now:      time.Now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	remaining := a.deadline.Sub(a.now())

	switch {
	case remaining > spinThreshold:
		time.Sleep(remaining - spinThreshold)
		fallthrough
	case remaining > 0:
		for a.now().Before(a.deadline) {
		}
	case remaining < -5*a.period:
		a.behind++
		slog.Debug("frame limiter resync", "late_ms", -remaining.Milliseconds(), "resyncs", a.behind)
		a.deadline = a.now()
	}

	a.deadline = a.deadline.Add(a.period)
	a.frames++
}

func (a *AdaptiveLimiter) Reset() {
	a.deadline = a.now().Add(a.period)
	a.frames = 0
}

// Frames returns the number of frames paced since the last reset.
func (a *AdaptiveLimiter) Frames() int64 {
	return a.frames
}
