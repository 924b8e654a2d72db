package metronome

import (
	"errors"
	"time"
)

type fakeTimer struct {
	active     bool
	interval   time.Duration
	reschedule int
	cancels    int
}

func (t *fakeTimer) Reschedule(interval time.Duration) {
	t.active = true
	t.interval = interval
	t.reschedule++
}

func (t *fakeTimer) Cancel() {
	t.active = false
	t.cancels++
}

type tone struct {
	freq     float64
	duration time.Duration
	volume   float64
}

type fakeSink struct {
	ready   int
	tones   []tone
	failing bool
}

func (s *fakeSink) EnsureReady() error {
	s.ready++
	if s.failing {
		return errors.New("no device")
	}
	return nil
}

func (s *fakeSink) PlayTone(freq float64, d time.Duration, volume float64) error {
	s.tones = append(s.tones, tone{freq, d, volume})
	if s.failing {
		return errors.New("no device")
	}
	return nil
}

type harness struct {
	m        *Metronome
	timer    *fakeTimer
	sink     *fakeSink
	clicks   []ClickKind
	statuses []Status
}

func newHarness(cfg Config) *harness {
	h := &harness{timer: &fakeTimer{}, sink: &fakeSink{}}
	h.m = New(cfg, h.sink, h.timer, nil)
	h.m.OnClick = func(k ClickKind) { h.clicks = append(h.clicks, k) }
	h.m.OnDisplay = func(s Status) { h.statuses = append(h.statuses, s) }
	return h
}

func (h *harness) lastStatus() Status {
	return h.statuses[len(h.statuses)-1]
}

// fakeClock returns a now func that advances by the given steps on each
// call after the first.
func fakeClock(steps ...time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	return func() time.Time {
		if calls > 0 && calls-1 < len(steps) {
			now = now.Add(steps[calls-1])
		}
		calls++
		return now
	}
}
