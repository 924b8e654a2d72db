package main

import (
	"math"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"

	"github.com/dimfu/metrobars/internal/log"
)

// AudioPlayer plays clicks through the speaker. The speaker is initialised
// on first use and kept for the life of the process. Pitches with a sample
// attached play the sample instead of a synthesised tone.
type AudioPlayer struct {
	sampleRate beep.SampleRate
	samples    map[float64]*beep.Buffer
	log        *log.Logger

	once    sync.Once
	ready   bool
	initErr error
	init    func(beep.SampleRate, int) error
	play    func(...beep.Streamer)
}

func NewAudioPlayer(sampleRate int, samples map[float64]string, logger *log.Logger) (*AudioPlayer, error) {
	ap := &AudioPlayer{
		sampleRate: beep.SampleRate(sampleRate),
		samples:    make(map[float64]*beep.Buffer, len(samples)),
		log:        logger,
		init:       speaker.Init,
		play:       speaker.Play,
	}
	for freq, path := range samples {
		buf, err := ap.loadSample(path)
		if err != nil {
			return nil, err
		}
		ap.samples[freq] = buf
		logger.Infof("loaded %s for %.0f Hz clicks", path, freq)
	}
	return ap, nil
}

// loadSample decodes a WAV file into a buffer at the player's sample rate.
func (ap *AudioPlayer) loadSample(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading audio file failed")
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "error while decoding %s", path)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != ap.sampleRate {
		s = beep.Resample(4, format.SampleRate, ap.sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: ap.sampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(s)
	return buffer, nil
}

// EnsureReady initialises the speaker once. A failure is remembered and
// returned on every later call.
func (ap *AudioPlayer) EnsureReady() error {
	ap.once.Do(func() {
		if err := ap.init(ap.sampleRate, ap.sampleRate.N(time.Second/30)); err != nil {
			ap.initErr = errors.Wrap(err, "error while initializing speaker")
			return
		}
		ap.ready = true
		ap.log.Debugf("speaker ready at %d Hz", ap.sampleRate)
	})
	return ap.initErr
}

func (ap *AudioPlayer) PlayTone(freq float64, duration time.Duration, volume float64) error {
	if err := ap.EnsureReady(); err != nil {
		return err
	}
	ap.play(ap.click(freq, duration, volume))
	return nil
}

// click builds the streamer for one click at the given volume in [0, 1].
func (ap *AudioPlayer) click(freq float64, duration time.Duration, volume float64) beep.Streamer {
	var s beep.Streamer
	if buf, ok := ap.samples[freq]; ok {
		s = buf.Streamer(0, buf.Len())
	} else {
		s = beep.Take(ap.sampleRate.N(duration), sineTone(ap.sampleRate, freq))
	}
	return &effects.Gain{Streamer: s, Gain: volume - 1}
}

// Close drops any clicks still playing.
func (ap *AudioPlayer) Close() {
	if ap.ready {
		speaker.Clear()
	}
}

// sineTone is an endless sine wave at freq.
func sineTone(sr beep.SampleRate, freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	var phase float64
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			v := math.Sin(phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase >= 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		return len(samples), true
	})
}
