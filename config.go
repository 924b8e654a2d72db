package main

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/dimfu/metrobars/metronome"
)

// Preset is a named tempo, time signature and optional volume picked with
// -preset. Presets are read from the config file and never written back.
type Preset struct {
	Key     string `toml:"key"`
	Tempo   int    `toml:"tempo"`
	Timesig string `toml:"timesig"`
	Volume  *int   `toml:"volume"`
}

type TempoConfig struct {
	Min     int `toml:"min"`
	Max     int `toml:"max"`
	Default int `toml:"default"`
}

type ClickConfig struct {
	AccentFreq   float64 `toml:"accent_freq"`
	NormalFreq   float64 `toml:"normal_freq"`
	DurationMS   int     `toml:"duration_ms"`
	SampleRate   int     `toml:"sample_rate"`
	AccentSample string  `toml:"accent_sample"`
	NormalSample string  `toml:"normal_sample"`
}

type Config struct {
	Tempo         TempoConfig `toml:"tempo"`
	TimeSignature string      `toml:"time_signature"`
	Volume        int         `toml:"volume"`
	LogLevel      string      `toml:"log_level"`
	Click         ClickConfig `toml:"click"`
	Presets       []Preset    `toml:"preset"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Tempo: TempoConfig{
			Min:     MIN_TEMPO,
			Max:     MAX_TEMPO,
			Default: metronome.DefaultBPM,
		},
		TimeSignature: metronome.DefaultTimeSignature.String(),
		Volume:        metronome.DefaultVolume,
		LogLevel:      "error",
		Click: ClickConfig{
			AccentFreq: metronome.DefaultAccentFreq,
			NormalFreq: metronome.DefaultNormalFreq,
			DurationMS: int(metronome.DefaultClickDuration / time.Millisecond),
			SampleRate: SAMPLE_RATE,
		},
	}
}

// configSearchPaths lists where the config file is looked for, in order:
//  1. $XDG_CONFIG_HOME/metrobars/config.toml
//  2. ~/.config/metrobars/config.toml
//  3. ~/.metrobars.toml
func configSearchPaths() []string {
	home := UserHomeDir()
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, CONFIG_DIR_NAME, "config.toml"))
	}
	return append(paths,
		filepath.Join(home, ".config", CONFIG_DIR_NAME, "config.toml"),
		filepath.Join(home, ".metrobars.toml"),
	)
}

// LoadConfig reads the config at path. With an empty path the standard
// locations are searched and defaults are returned when none exists.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		for _, p := range configSearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening config")
	}
	defer f.Close()

	cfg, err := LoadConfigFromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	cfg.Path = path
	cfg.Click.AccentSample = cfg.resolve(cfg.Click.AccentSample)
	cfg.Click.NormalSample = cfg.resolve(cfg.Click.NormalSample)
	return cfg, nil
}

func LoadConfigFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding toml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Tempo.Min < 1 {
		return errors.Errorf("tempo.min must be at least 1, got %d", c.Tempo.Min)
	}
	if c.Tempo.Max < c.Tempo.Min {
		return errors.Errorf("tempo.max (%d) is below tempo.min (%d)", c.Tempo.Max, c.Tempo.Min)
	}
	if c.Click.AccentFreq <= 0 || c.Click.NormalFreq <= 0 {
		return errors.New("click frequencies must be positive")
	}
	if c.Click.AccentSample != "" && c.Click.NormalSample != "" && c.Click.AccentFreq == c.Click.NormalFreq {
		return errors.New("click.accent_freq and click.normal_freq must differ when both samples are set")
	}
	if c.Click.DurationMS <= 0 {
		return errors.Errorf("click.duration_ms must be positive, got %d", c.Click.DurationMS)
	}
	if c.Click.SampleRate <= 0 {
		return errors.Errorf("click.sample_rate must be positive, got %d", c.Click.SampleRate)
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if p.Key == "" {
			return errors.New("preset without a key")
		}
		if seen[p.Key] {
			return errors.Errorf("preset %q is defined twice", p.Key)
		}
		seen[p.Key] = true
	}
	return nil
}

func (c *Config) GetPresetByKey(key string) *Preset {
	for i := range c.Presets {
		if c.Presets[i].Key == key {
			return &c.Presets[i]
		}
	}
	return nil
}

// ApplyPreset copies the fields a preset sets over the defaults.
func (c *Config) ApplyPreset(key string) error {
	p := c.GetPresetByKey(key)
	if p == nil {
		return errors.Errorf("`%v` preset not found", key)
	}
	if p.Tempo != 0 {
		c.Tempo.Default = p.Tempo
	}
	if p.Timesig != "" {
		c.TimeSignature = p.Timesig
	}
	if p.Volume != nil {
		c.Volume = *p.Volume
	}
	return nil
}

// Samples maps click pitches to the WAV file that replaces their tone.
func (c *Config) Samples() map[float64]string {
	samples := make(map[float64]string)
	if c.Click.AccentSample != "" {
		samples[c.Click.AccentFreq] = c.Click.AccentSample
	}
	if c.Click.NormalSample != "" {
		samples[c.Click.NormalFreq] = c.Click.NormalSample
	}
	return samples
}

func (c *Config) Metronome() metronome.Config {
	return metronome.Config{
		MinBPM:        c.Tempo.Min,
		MaxBPM:        c.Tempo.Max,
		BPM:           c.Tempo.Default,
		TimeSignature: c.TimeSignature,
		Volume:        c.Volume,
		AccentFreq:    c.Click.AccentFreq,
		NormalFreq:    c.Click.NormalFreq,
		ClickDuration: time.Duration(c.Click.DurationMS) * time.Millisecond,
	}
}

// resolve makes a sample path relative to the config file's directory.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}
