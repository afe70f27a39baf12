package timing

import "time"

// TickerLimiter paces frames with a time.Ticker. Missed ticks are dropped by
// the ticker, so a slow frame is never followed by a burst.
type TickerLimiter struct {
	period time.Duration
	ticker *time.Ticker
}

func NewTickerLimiter(period time.Duration) *TickerLimiter {
	return &TickerLimiter{
		period: period,
		ticker: time.NewTicker(period),
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
