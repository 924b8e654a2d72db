package metronome

import "time"

// Timer is the repeating beat clock driven by the state machine. Reschedule
// restarts the countdown in full at the new interval.
type Timer interface {
	Reschedule(interval time.Duration)
	Cancel()
}

// TickerTimer is a Timer backed by time.Ticker. Every Reschedule creates a
// fresh ticker and channel, so a tick buffered by a cancelled ticker is never
// delivered.
type TickerTimer struct {
	ticker   *time.Ticker
	interval time.Duration
	next     time.Time
	now      func() time.Time
}

func NewTickerTimer() *TickerTimer {
	return &TickerTimer{now: time.Now}
}

func (t *TickerTimer) Reschedule(interval time.Duration) {
	t.Cancel()
	t.interval = interval
	t.next = t.now().Add(interval)
	t.ticker = time.NewTicker(interval)
}

func (t *TickerTimer) Cancel() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

// C returns the channel of the active ticker, or nil when cancelled. A nil
// channel blocks forever in a select.
func (t *TickerTimer) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Active reports whether a ticker is scheduled.
func (t *TickerTimer) Active() bool {
	return t.ticker != nil
}

// mark records a firing at now and returns how far it landed from the
// expected time. Large drifts re-anchor the expectation.
func (t *TickerTimer) mark(now time.Time) time.Duration {
	drift := now.Sub(t.next)
	if drift > maxDrift || drift < -maxDrift {
		t.next = now
	}
	t.next = t.next.Add(t.interval)
	return drift
}

const maxDrift = 10 * time.Millisecond
