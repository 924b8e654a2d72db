package metronome

import (
	"testing"
	"time"
)

func TestTapBufferEvictsOldest(t *testing.T) {
	var b TapBuffer
	base := time.Unix(0, 0)
	for i := 0; i < 6; i++ {
		b.Add(base.Add(time.Duration(i) * time.Second))
	}

	if b.Len() != TapCapacity {
		t.Fatalf("len = %d, want %d", b.Len(), TapCapacity)
	}
	if !b.taps[0].Equal(base.Add(time.Second)) {
		t.Fatalf("oldest tap = %v, want the second one", b.taps[0])
	}
}

func TestTapBufferAverage(t *testing.T) {
	var b TapBuffer
	if _, ok := b.Average(); ok {
		t.Fatal("empty buffer produced an average")
	}

	base := time.Unix(0, 0)
	b.Add(base)
	if _, ok := b.Average(); ok {
		t.Fatal("single tap produced an average")
	}

	b.Add(base.Add(400 * time.Millisecond))
	b.Add(base.Add(1000 * time.Millisecond))
	avg, ok := b.Average()
	if !ok || avg != 500*time.Millisecond {
		t.Fatalf("average = %v, %v; want 500ms", avg, ok)
	}

	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("len after reset = %d", b.Len())
	}
}

func TestBPMFromInterval(t *testing.T) {
	cases := map[time.Duration]int{
		500 * time.Millisecond: 120,
		time.Second:            60,
		333 * time.Millisecond: 180,
	}
	for in, want := range cases {
		if got := bpmFromInterval(in); got != want {
			t.Errorf("bpmFromInterval(%v) = %d, want %d", in, got, want)
		}
	}
}
