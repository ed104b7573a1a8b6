package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/Lundis/go-gamemixer/audio"
	"github.com/Lundis/go-gamemixer/internal/config"
)

var errHelp = flag.ErrHelp

type options struct {
	cfg      *config.Config
	files    []string
	params   audio.PlayParams
	channel  string
	duration time.Duration
	sfx      []string
	playlist string
}

// parseArgs reads the flags and the config file they name. Flags that were
// set explicitly override the file.
func parseArgs(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("gamemixer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: gamemixer [flags] file...")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "path to a YAML configuration file")
	volume := fs.Float64("volume", 1, "playback volume in [0, 1]")
	pitch := fs.Float64("pitch", 1, "playback speed multiplier")
	loop := fs.Bool("loop", false, "loop every file until interrupted")
	duration := fs.Duration("duration", 0, "stop after this long; 0 waits for the files to end")
	headless := fs.Bool("headless", false, "mix without an output device")
	record := fs.String("record", "", "write the mix as raw float32 stereo to this file; implies -headless")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics at /metrics on this address")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	channel := fs.String("channel", "default", "channel to play the files on")
	sfxIds := fs.String("sfx", "", "comma-separated sound effects from assets.sfx_dir to play once")
	playlistId := fs.String("playlist", "", "playlist from assets.playlist_dir to play")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "headless":
			if *headless {
				cfg.Output.Backend = config.BackendNull
			}
		case "record":
			cfg.Output.Record = *record
			cfg.Output.Backend = config.BackendNull
		case "metrics-addr":
			cfg.Metrics.ListenAddr = *metricsAddr
		case "log-level":
			cfg.LogLevel = config.LogLevel(*logLevel)
		}
	})
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	var errs []error
	if *volume < 0 || *volume > 1 || math.IsNaN(*volume) {
		errs = append(errs, fmt.Errorf("-volume must be within [0, 1], got %v", *volume))
	}
	if !(*pitch > 0 && *pitch <= audio.MaxPitch) {
		errs = append(errs, fmt.Errorf("-pitch must be within (0, %v], got %v", audio.MaxPitch, *pitch))
	}
	if *duration < 0 {
		errs = append(errs, fmt.Errorf("-duration must not be negative, got %s", *duration))
	}
	ch, ok := config.Channels[*channel]
	if !ok {
		errs = append(errs, fmt.Errorf("-channel: unknown channel %q", *channel))
	}
	if fs.NArg() == 0 && *sfxIds == "" && *playlistId == "" {
		errs = append(errs, errors.New("nothing to play: pass audio files, -sfx or -playlist"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	var effects []string
	if *sfxIds != "" {
		effects = strings.Split(*sfxIds, ",")
	}
	return &options{
		cfg:   cfg,
		files: fs.Args(),
		params: audio.PlayParams{
			Looped:  *loop,
			Volume:  float32(*volume),
			Pitch:   *pitch,
			Channel: ch,
		},
		channel:  *channel,
		duration: *duration,
		sfx:      effects,
		playlist: *playlistId,
	}, nil
}
