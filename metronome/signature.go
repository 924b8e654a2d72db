package metronome

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeSignature describes how beats are grouped into bars. Only Beats drives
// the accent pattern; NoteValue is carried for display.
type TimeSignature struct {
	Beats     int // number of beats per measure
	NoteValue int // note that represents one beat
}

// DefaultTimeSignature is what any unparsable signature falls back to.
var DefaultTimeSignature = TimeSignature{Beats: 4, NoteValue: 4}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Beats, ts.NoteValue)
}

// ParseTimeSignature reads text of the form "N/M". The numerator must be a
// positive integer or the default signature is returned with ok == false.
// A missing or malformed denominator is replaced by 4.
func ParseTimeSignature(text string) (ts TimeSignature, ok bool) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 2 {
		return DefaultTimeSignature, false
	}

	beats, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || beats <= 0 {
		return DefaultTimeSignature, false
	}

	noteValue, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || noteValue <= 0 {
		noteValue = DefaultTimeSignature.NoteValue
	}

	return TimeSignature{Beats: beats, NoteValue: noteValue}, true
}
