package metronome

import (
	"math"
	"time"
)

// TapCapacity is how many recent taps are kept for tempo inference.
const TapCapacity = 5

// TapBuffer holds the most recent tap timestamps, oldest first.
type TapBuffer struct {
	taps []time.Time
}

// Add records a tap, evicting the oldest one once the buffer is full.
func (b *TapBuffer) Add(t time.Time) {
	if len(b.taps) == TapCapacity {
		copy(b.taps, b.taps[1:])
		b.taps = b.taps[:TapCapacity-1]
	}
	b.taps = append(b.taps, t)
}

func (b *TapBuffer) Len() int {
	return len(b.taps)
}

func (b *TapBuffer) Reset() {
	b.taps = b.taps[:0]
}

// Average returns the mean interval between consecutive taps. It needs at
// least two taps.
func (b *TapBuffer) Average() (time.Duration, bool) {
	if len(b.taps) < 2 {
		return 0, false
	}
	var total time.Duration
	for i := 1; i < len(b.taps); i++ {
		total += b.taps[i].Sub(b.taps[i-1])
	}
	return total / time.Duration(len(b.taps)-1), true
}

// bpmFromInterval converts an average beat interval to a rounded tempo.
// Non-positive intervals map to the largest tempo so clamping pins them to
// the upper bound.
func bpmFromInterval(d time.Duration) int {
	if d <= 0 {
		return math.MaxInt32
	}
	return int(math.Round(float64(time.Minute) / float64(d)))
}
