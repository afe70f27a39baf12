package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_ticksPerSecond(t *testing.T) {
	testCases := []struct {
		hz int
	}{
		{hz: 1}, {hz: 7}, {hz: 59}, {hz: 60}, {hz: 61}, {hz: 500}, {hz: 540}, {hz: 999}, {hz: MaxFrequency},
	}
	for _, tC := range testCases {
		c := NewClock(tC.hz)
		total := 0
		for range tC.hz {
			total += c.Advance()
		}
		assert.Equal(t, TimerFrequency, total, "hz=%d", tC.hz)
		assert.Equal(t, uint64(tC.hz), c.Steps())
		assert.Equal(t, uint64(TimerFrequency), c.Ticks())
	}
}

func TestClock_tickSpacing(t *testing.T) {
	c := NewClock(500)

	// 500Hz crosses a 1/60s boundary every 8 or 9 steps
	last := 0
	for step := 1; step <= 500; step++ {
		if c.Advance() == 1 {
			gap := step - last
			assert.Contains(t, []int{8, 9}, gap)
			last = step
		}
	}
	assert.Equal(t, 500, last)
}

func TestClock_slowRates(t *testing.T) {
	c := NewClock(30)
	assert.Equal(t, 2, c.Advance())

	c = NewClock(120)
	assert.Equal(t, 0, c.Advance())
	assert.Equal(t, 1, c.Advance())
}

func TestClock_fallback(t *testing.T) {
	for _, hz := range []int{0, -1, MaxFrequency + 1} {
		assert.False(t, ValidFrequency(hz))
		assert.Equal(t, FallbackFrequency, NewClock(hz).Hz())
	}
	assert.True(t, ValidFrequency(MaxFrequency))
	assert.Equal(t, 1, NewClock(1).Hz())
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/60, FrameDuration())
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for range 1000 {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestAdaptiveLimiter_paces(t *testing.T) {
	period := 2 * time.Millisecond
	l := NewAdaptiveLimiter(period)

	start := time.Now()
	for range 10 {
		l.WaitForNextFrame()
	}

	assert.GreaterOrEqual(t, time.Since(start), 9*period)
	assert.Equal(t, int64(10), l.Frames())

	l.Reset()
	assert.Equal(t, int64(0), l.Frames())
}

func TestAdaptiveLimiter_resyncsWhenBehind(t *testing.T) {
	period := time.Millisecond
	l := NewAdaptiveLimiter(period)

	base := time.Now()
	l.now = func() time.Time { return base.Add(time.Second) }
	l.WaitForNextFrame()

	assert.Equal(t, base.Add(time.Second+period), l.deadline)
}

func TestTickerLimiter(t *testing.T) {
	l := NewTickerLimiter(time.Millisecond)
	defer l.Stop()

	start := time.Now()
	l.WaitForNextFrame()
	l.WaitForNextFrame()
	l.Reset()

	assert.Greater(t, time.Since(start), time.Duration(0))
}
