package main

import (
	"context"
	"math"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"

	"github.com/dimfu/metrobars/internal/log"
	"github.com/dimfu/metrobars/metronome"
)

var errQuit = errors.New("quit requested")

type command int

const (
	cmdNone command = iota
	cmdToggle
	cmdStart
	cmdPause
	cmdStop
	cmdTap
	cmdTempoDown
	cmdTempoUp
	cmdTempoDownBig
	cmdTempoUpBig
	cmdVolumeDown
	cmdVolumeUp
	cmdTimeSignature
	cmdQuit
)

func commandFor(r rune, key keyboard.Key) command {
	switch key {
	case keyboard.KeySpace:
		return cmdToggle
	case keyboard.KeyEnter:
		return cmdStart
	case keyboard.KeyArrowLeft:
		return cmdTempoDown
	case keyboard.KeyArrowRight:
		return cmdTempoUp
	case keyboard.KeyArrowDown:
		return cmdVolumeDown
	case keyboard.KeyArrowUp:
		return cmdVolumeUp
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return cmdQuit
	}

	switch r {
	case 'p':
		return cmdPause
	case 's':
		return cmdStop
	case 't':
		return cmdTap
	case 'm':
		return cmdTimeSignature
	case '-':
		return cmdTempoDown
	case '+', '=':
		return cmdTempoUp
	case '[':
		return cmdTempoDownBig
	case ']':
		return cmdTempoUpBig
	case 'q':
		return cmdQuit
	}
	return cmdNone
}

// apply performs the command. It must run on the loop goroutine.
func (c command) apply(m *metronome.Metronome) {
	switch c {
	case cmdToggle:
		if m.State() == metronome.Running {
			m.Pause()
		} else {
			m.Start()
		}
	case cmdStart:
		m.Start()
	case cmdPause:
		m.Pause()
	case cmdStop:
		m.Stop()
	case cmdTap:
		m.RegisterTap()
	case cmdTempoDown:
		m.SetTempo(m.BPM() - TEMPO_STEP)
	case cmdTempoUp:
		m.SetTempo(m.BPM() + TEMPO_STEP)
	case cmdTempoDownBig:
		m.SetTempo(m.BPM() - TEMPO_BIG_STEP)
	case cmdTempoUpBig:
		m.SetTempo(m.BPM() + TEMPO_BIG_STEP)
	case cmdVolumeDown:
		m.SetVolume(volumeLevel(m) - VOLUME_STEP)
	case cmdVolumeUp:
		m.SetVolume(volumeLevel(m) + VOLUME_STEP)
	case cmdTimeSignature:
		m.SetTimeSignature(nextTimeSignature(m.TimeSignature()).String())
	}
}

func volumeLevel(m *metronome.Metronome) int {
	return int(math.Round(m.Volume() * 100))
}

// listenKeys forwards key presses to the loop until ctx is done or a quit
// key is pressed, in which case errQuit is returned.
func listenKeys(ctx context.Context, loop *metronome.Loop, logger *log.Logger) error {
	keys, err := keyboard.GetKeys(10)
	if err != nil {
		return errors.Wrap(err, "opening keyboard")
	}
	defer keyboard.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				return errors.Wrap(ev.Err, "reading keyboard")
			}
			cmd := commandFor(ev.Rune, ev.Key)
			switch cmd {
			case cmdNone:
				logger.Debugf("unbound key %q (%d)", ev.Rune, ev.Key)
				continue
			case cmdQuit:
				return errQuit
			}
			if !loop.Do(cmd.apply) {
				return nil
			}
		}
	}
}
