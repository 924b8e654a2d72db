package main

import "github.com/dimfu/metrobars/metronome"

const (
	MIN_TEMPO = metronome.DefaultMinBPM
	MAX_TEMPO = metronome.DefaultMaxBPM

	TEMPO_STEP      = 1
	TEMPO_BIG_STEP  = 10
	VOLUME_STEP     = 5
	SAMPLE_RATE     = 44100
	CONFIG_DIR_NAME = "metrobars"
)

// TIME_SIGNATURES is the order the signature key cycles through.
var TIME_SIGNATURES = []metronome.TimeSignature{
	{Beats: 4, NoteValue: 4},
	{Beats: 3, NoteValue: 4},
	{Beats: 2, NoteValue: 4},
	{Beats: 2, NoteValue: 2},
	{Beats: 3, NoteValue: 8},
	{Beats: 6, NoteValue: 8},
	{Beats: 9, NoteValue: 8},
	{Beats: 12, NoteValue: 8},
	{Beats: 5, NoteValue: 4},
	{Beats: 6, NoteValue: 4},
}

// nextTimeSignature returns the entry after current in TIME_SIGNATURES,
// or the first one when current is not listed.
func nextTimeSignature(current metronome.TimeSignature) metronome.TimeSignature {
	for i, ts := range TIME_SIGNATURES {
		if ts == current {
			return TIME_SIGNATURES[(i+1)%len(TIME_SIGNATURES)]
		}
	}
	return TIME_SIGNATURES[0]
}
