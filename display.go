package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"

	"github.com/dimfu/metrobars/metronome"
)

// Display redraws the metronome status. On a terminal the status line is
// rewritten in place, otherwise every update is printed on its own line.
type Display struct {
	w    io.Writer
	live *uilive.Writer
	last string
}

func NewDisplay(out *os.File) *Display {
	if !isatty.IsTerminal(out.Fd()) && !isatty.IsCygwinTerminal(out.Fd()) {
		return &Display{w: out}
	}
	live := uilive.New()
	live.Out = out
	return &Display{w: live, live: live}
}

// Update renders s. Identical consecutive lines are written once.
func (d *Display) Update(s metronome.Status) {
	line := renderStatus(s)
	if line == d.last {
		return
	}
	d.last = line
	fmt.Fprintln(d.w, line)
	if d.live != nil {
		d.live.Flush()
	}
}

func renderStatus(s metronome.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-7s  %3d bpm  %s  bar %d  ", s.State, s.BPM, s.TimeSignature, s.Bar)
	for i := 1; i <= s.TimeSignature.Beats; i++ {
		switch {
		case i == s.Beat && i == 1:
			b.WriteString("X")
		case i == s.Beat:
			b.WriteString("x")
		default:
			b.WriteString(".")
		}
	}
	fmt.Fprintf(&b, "  vol %3.0f%%", s.Volume*100)
	return b.String()
}

func helpText() string {
	return strings.Join([]string{
		"space start/pause   s stop   t tap   m time signature",
		"←/→ tempo ±1   [/] tempo ±10   ↑/↓ volume   q quit",
	}, "\n")
}
