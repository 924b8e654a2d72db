// Package metronome holds the beat scheduler: playback state, tempo, time
// signature, beat counting and tap tempo. A Metronome is not safe for
// concurrent use; drive it from a single goroutine such as Loop.
package metronome

import (
	"time"

	"github.com/dimfu/metrobars/internal/log"
)

type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

type ClickKind int

const (
	Normal ClickKind = iota
	Accent
)

func (k ClickKind) String() string {
	if k == Accent {
		return "accent"
	}
	return "normal"
}

const (
	DefaultBPM           = 120
	DefaultMinBPM        = 30
	DefaultMaxBPM        = 300
	DefaultVolume        = 30
	DefaultAccentFreq    = 1500.0
	DefaultNormalFreq    = 1000.0
	DefaultClickDuration = 50 * time.Millisecond
)

// AudioSink plays the clicks. EnsureReady is called before playback starts
// so a lazily created output can be acquired or resumed.
type AudioSink interface {
	EnsureReady() error
	PlayTone(freq float64, duration time.Duration, volume float64) error
}

type Config struct {
	MinBPM        int
	MaxBPM        int
	BPM           int
	TimeSignature string
	Volume        int // 0..100

	AccentFreq    float64
	NormalFreq    float64
	ClickDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		MinBPM:        DefaultMinBPM,
		MaxBPM:        DefaultMaxBPM,
		BPM:           DefaultBPM,
		TimeSignature: DefaultTimeSignature.String(),
		Volume:        DefaultVolume,
		AccentFreq:    DefaultAccentFreq,
		NormalFreq:    DefaultNormalFreq,
		ClickDuration: DefaultClickDuration,
	}
}

// Status is the snapshot handed to the display after every change.
type Status struct {
	State         State
	BPM           int
	Bar           int
	Beat          int // 1-based position in the bar, 0 before the first beat
	TimeSignature TimeSignature
	Volume        float64
}

type Metronome struct {
	cfg   Config
	sink  AudioSink
	timer Timer
	log   *log.Logger
	now   func() time.Time

	state     State
	bpm       int
	interval  time.Duration
	sig       TimeSignature
	beatCount int
	volume    float64
	taps      TapBuffer

	OnDisplay func(Status)
	OnClick   func(ClickKind)
}

// New builds a stopped metronome. Out-of-range settings in cfg are corrected
// rather than rejected. sink and timer may be nil.
func New(cfg Config, sink AudioSink, timer Timer, logger *log.Logger) *Metronome {
	if cfg.MinBPM < 1 {
		cfg.MinBPM = 1
	}
	if cfg.MaxBPM < cfg.MinBPM {
		cfg.MaxBPM = cfg.MinBPM
	}
	if cfg.AccentFreq <= 0 {
		cfg.AccentFreq = DefaultAccentFreq
	}
	if cfg.NormalFreq <= 0 {
		cfg.NormalFreq = DefaultNormalFreq
	}
	if cfg.ClickDuration <= 0 {
		cfg.ClickDuration = DefaultClickDuration
	}

	m := &Metronome{
		cfg:   cfg,
		sink:  sink,
		timer: timer,
		log:   logger,
		now:   time.Now,
		state: Stopped,
	}
	m.bpm = m.clamp(cfg.BPM)
	m.interval = intervalFor(m.bpm)
	m.sig, _ = ParseTimeSignature(cfg.TimeSignature)
	m.volume = volumeFromLevel(cfg.Volume)
	return m
}

func (m *Metronome) State() State                 { return m.state }
func (m *Metronome) BPM() int                     { return m.bpm }
func (m *Metronome) Interval() time.Duration      { return m.interval }
func (m *Metronome) TimeSignature() TimeSignature { return m.sig }
func (m *Metronome) BeatCount() int               { return m.beatCount }
func (m *Metronome) Volume() float64              { return m.volume }
func (m *Metronome) TapCount() int                { return m.taps.Len() }
func (m *Metronome) MinBPM() int                  { return m.cfg.MinBPM }
func (m *Metronome) MaxBPM() int                  { return m.cfg.MaxBPM }

// Bar is the 1-based bar the most recent beat belongs to.
func (m *Metronome) Bar() int {
	if m.beatCount == 0 {
		return 1
	}
	return (m.beatCount-1)/m.sig.Beats + 1
}

func (m *Metronome) Status() Status {
	beat := 0
	if m.beatCount > 0 {
		beat = (m.beatCount-1)%m.sig.Beats + 1
	}
	return Status{
		State:         m.state,
		BPM:           m.bpm,
		Bar:           m.Bar(),
		Beat:          beat,
		TimeSignature: m.sig,
		Volume:        m.volume,
	}
}

// Start begins playback. From Stopped the counters start over; from Paused
// they carry on. Starting while running does nothing.
func (m *Metronome) Start() {
	switch m.state {
	case Running:
		return
	case Stopped:
		m.beatCount = 0
	}

	if m.sink != nil {
		if err := m.sink.EnsureReady(); err != nil {
			m.log.Errorf("audio output not ready: %v", err)
		}
	}

	m.interval = intervalFor(m.bpm)
	m.state = Running
	m.schedule()
	m.log.Infof("started at %d bpm in %s", m.bpm, m.sig)
	m.display()
}

// Pause halts the clock but keeps the position in the bar.
func (m *Metronome) Pause() {
	if m.state != Running {
		return
	}
	m.cancel()
	m.state = Paused
	m.log.Infof("paused at beat %d", m.beatCount)
	m.display()
}

// Stop halts the clock and rewinds to the first beat of bar one.
func (m *Metronome) Stop() {
	m.cancel()
	m.state = Stopped
	m.beatCount = 0
	m.taps.Reset()
	m.log.Infof("stopped")
	m.display()
}

// Tick plays the next beat. It is invoked once per beat interval and does
// nothing unless the metronome is running.
func (m *Metronome) Tick() {
	if m.state != Running {
		return
	}

	m.beatCount++
	kind := Normal
	if (m.beatCount-1)%m.sig.Beats == 0 {
		kind = Accent
	}

	m.click(kind)
	m.display()
}

// SetTempo clamps bpm to the configured bounds and, while running, restarts
// the clock at the new interval straight away.
func (m *Metronome) SetTempo(bpm int) {
	clamped := m.clamp(bpm)
	if clamped != bpm {
		m.log.Debugf("tempo %d clamped to %d", bpm, clamped)
	}
	m.bpm = clamped
	m.interval = intervalFor(m.bpm)
	if m.state == Running {
		m.schedule()
	}
	m.display()
}

// SetTimeSignature applies a signature such as "3/4". Unparsable input falls
// back to 4/4. Either way the count restarts on a fresh bar.
func (m *Metronome) SetTimeSignature(text string) {
	sig, ok := ParseTimeSignature(text)
	if !ok {
		m.log.Warnf("invalid time signature %q, using %s", text, sig)
	}
	m.sig = sig
	m.beatCount = 0
	m.display()
}

// RegisterTap records a tap now and, once two or more taps are buffered,
// sets the tempo from their average spacing.
func (m *Metronome) RegisterTap() {
	m.taps.Add(m.now())
	avg, ok := m.taps.Average()
	if !ok {
		return
	}
	m.log.Debugf("tap tempo: %d taps, average interval %v", m.taps.Len(), avg)
	m.SetTempo(bpmFromInterval(avg))
}

// SetVolume takes a level from 0 to 100. It applies from the next click on.
func (m *Metronome) SetVolume(level int) {
	m.volume = volumeFromLevel(level)
	m.display()
}

func (m *Metronome) click(kind ClickKind) {
	freq := m.cfg.NormalFreq
	if kind == Accent {
		freq = m.cfg.AccentFreq
	}
	if m.sink != nil {
		if err := m.sink.PlayTone(freq, m.cfg.ClickDuration, m.volume); err != nil {
			m.log.Errorf("playing %s click: %v", kind, err)
		}
	}
	if m.OnClick != nil {
		m.OnClick(kind)
	}
}

func (m *Metronome) display() {
	if m.OnDisplay != nil {
		m.OnDisplay(m.Status())
	}
}

func (m *Metronome) schedule() {
	if m.timer != nil {
		m.timer.Reschedule(m.interval)
	}
}

func (m *Metronome) cancel() {
	if m.timer != nil {
		m.timer.Cancel()
	}
}

func (m *Metronome) clamp(bpm int) int {
	if bpm < m.cfg.MinBPM {
		return m.cfg.MinBPM
	}
	if bpm > m.cfg.MaxBPM {
		return m.cfg.MaxBPM
	}
	return bpm
}

func intervalFor(bpm int) time.Duration {
	return time.Minute / time.Duration(bpm)
}

func volumeFromLevel(level int) float64 {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return float64(level) / 100
}
