package main

import (
	"testing"

	"github.com/eiannone/keyboard"

	"github.com/dimfu/metrobars/metronome"
)

func TestCommandFor(t *testing.T) {
	cases := []struct {
		r    rune
		key  keyboard.Key
		want command
	}{
		{0, keyboard.KeySpace, cmdToggle},
		{0, keyboard.KeyEnter, cmdStart},
		{0, keyboard.KeyArrowRight, cmdTempoUp},
		{0, keyboard.KeyArrowUp, cmdVolumeUp},
		{0, keyboard.KeyCtrlC, cmdQuit},
		{'t', 0, cmdTap},
		{'s', 0, cmdStop},
		{'p', 0, cmdPause},
		{']', 0, cmdTempoUpBig},
		{'m', 0, cmdTimeSignature},
		{'q', 0, cmdQuit},
		{'z', 0, cmdNone},
	}
	for _, tc := range cases {
		if got := commandFor(tc.r, tc.key); got != tc.want {
			t.Errorf("commandFor(%q, %d) = %d, want %d", tc.r, tc.key, got, tc.want)
		}
	}
}

func TestCommandApply(t *testing.T) {
	m := metronome.New(metronome.DefaultConfig(), nil, nil, nil)

	cmdToggle.apply(m)
	if m.State() != metronome.Running {
		t.Fatalf("toggle from stopped: %v", m.State())
	}
	cmdToggle.apply(m)
	if m.State() != metronome.Paused {
		t.Fatalf("toggle from running: %v", m.State())
	}

	cmdTempoUpBig.apply(m)
	cmdTempoDown.apply(m)
	if m.BPM() != 129 {
		t.Fatalf("bpm = %d, want 129", m.BPM())
	}

	cmdVolumeUp.apply(m)
	if level := volumeLevel(m); level != metronome.DefaultVolume+VOLUME_STEP {
		t.Fatalf("volume level = %d", level)
	}

	cmdTimeSignature.apply(m)
	if got := m.TimeSignature().String(); got != "3/4" {
		t.Fatalf("signature after cycling = %s, want 3/4", got)
	}

	cmdStop.apply(m)
	if m.State() != metronome.Stopped {
		t.Fatalf("stop: %v", m.State())
	}
}

func TestNextTimeSignatureWraps(t *testing.T) {
	last := TIME_SIGNATURES[len(TIME_SIGNATURES)-1]
	if got := nextTimeSignature(last); got != TIME_SIGNATURES[0] {
		t.Fatalf("after %v got %v, want %v", last, got, TIME_SIGNATURES[0])
	}
	odd := metronome.TimeSignature{Beats: 7, NoteValue: 8}
	if got := nextTimeSignature(odd); got != TIME_SIGNATURES[0] {
		t.Fatalf("unlisted signature advanced to %v", got)
	}
}
