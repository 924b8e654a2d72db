package metronome

import (
	"context"

	"github.com/dimfu/metrobars/internal/log"
)

// Loop owns a Metronome and serialises everything that touches it: intents
// submitted through Do and firings of its TickerTimer run one at a time on
// the goroutine that called Run.
type Loop struct {
	m       *Metronome
	timer   *TickerTimer
	log     *log.Logger
	intents chan func(*Metronome)
	done    chan struct{}
}

// NewLoop wires m to timer. m must have been built with the same timer.
func NewLoop(m *Metronome, timer *TickerTimer, logger *log.Logger) *Loop {
	return &Loop{
		m:       m,
		timer:   timer,
		log:     logger,
		intents: make(chan func(*Metronome), 16),
		done:    make(chan struct{}),
	}
}

// Do queues f to run on the loop goroutine. It returns false once the loop
// has exited.
func (l *Loop) Do(f func(*Metronome)) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.intents <- f:
		return true
	case <-l.done:
		return false
	}
}

// Run processes intents and beats until ctx is done. The clock is cancelled
// on the way out.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.timer.Cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.intents:
			f(l.m)
		case now := <-l.timer.C():
			if drift := l.timer.mark(now); drift > maxDrift || drift < -maxDrift {
				l.log.Debugf("beat drifted %v from schedule", drift)
			}
			l.m.Tick()
		}
	}
}
