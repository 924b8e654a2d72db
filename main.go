package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dimfu/metrobars/internal/log"
	"github.com/dimfu/metrobars/metronome"
)

var (
	// flags
	tempo      = flag.Int("tempo", metronome.DefaultBPM, "the speed at which a passage of this metronome should be played")
	timesig    = flag.String("timesig", "4/4", "indicate how many beats are in each measure")
	volume     = flag.Int("volume", metronome.DefaultVolume, "click volume from 0 to 100")
	preset     = flag.String("preset", "", "load tempo, time signature and volume from a preset in the config file")
	configPath = flag.String("config", "", "path to a TOML config file")
	logLevel   = flag.String("log-level", "", "log level: debug, info, error or none")
	autostart  = flag.Bool("autostart", true, "start clicking as soon as the program starts")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "metrobars: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.New(os.Stderr, log.LevelError)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *preset != "" {
		if err := cfg.ApplyPreset(*preset); err != nil {
			return err
		}
	}
	applyFlags(cfg)
	logger.SetLevel(log.LevelFromString(cfg.LogLevel))

	if cfg.Path != "" {
		logger.Infof("using config %s", cfg.Path)
	}
	if !ValidTempo(cfg.Tempo.Default, cfg.Tempo.Min, cfg.Tempo.Max) {
		logger.Warnf("tempo %d is outside %d..%d and will be clamped", cfg.Tempo.Default, cfg.Tempo.Min, cfg.Tempo.Max)
	}
	if _, ok := metronome.ParseTimeSignature(cfg.TimeSignature); !ok {
		logger.Warnf("time signature %q is not valid, using %s", cfg.TimeSignature, metronome.DefaultTimeSignature)
	}

	player, err := NewAudioPlayer(cfg.Click.SampleRate, cfg.Samples(), logger)
	if err != nil {
		return err
	}
	defer player.Close()

	display := NewDisplay(os.Stdout)
	if display.live != nil {
		if err := ClearTerminal(); err != nil {
			logger.Debugf("clearing terminal: %v", err)
		}
	}

	timer := metronome.NewTickerTimer()
	m := metronome.New(cfg.Metronome(), player, timer, logger)
	m.OnDisplay = display.Update
	loop := metronome.NewLoop(m, timer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(ctx)
	})
	if isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Println(helpText())
		g.Go(func() error {
			return listenKeys(ctx, loop, logger)
		})
	} else {
		logger.Infof("stdin is not a terminal, keyboard controls disabled")
	}

	loop.Do(func(m *metronome.Metronome) {
		if *autostart {
			m.Start()
			return
		}
		display.Update(m.Status())
	})

	err = g.Wait()
	fmt.Println()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// applyFlags lets flags given on the command line override the file and
// preset values.
func applyFlags(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tempo":
			cfg.Tempo.Default = *tempo
		case "timesig":
			cfg.TimeSignature = *timesig
		case "volume":
			cfg.Volume = *volume
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
}
