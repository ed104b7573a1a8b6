// Command gamemixer decodes audio files and plays them through the mixer.
//
// Usage:
//
//	gamemixer [flags] file...
//
// Without -duration the command exits once every file has played, or keeps
// running until interrupted when -loop or -playlist is given.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lundis/go-gamemixer/audio"
	"github.com/Lundis/go-gamemixer/backend"
	"github.com/Lundis/go-gamemixer/internal/config"
	"github.com/Lundis/go-gamemixer/internal/observe"
	"github.com/Lundis/go-gamemixer/loaders"
	"github.com/Lundis/go-gamemixer/playlist"
	"github.com/Lundis/go-gamemixer/sfx"
)

// tail is added to the natural length of the files so the last fill reaches
// the device before the output closes.
const tail = 250 * time.Millisecond

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, errHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "gamemixer: %v\n", err)
		return 2
	}
	cfg := opts.cfg

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel.Level()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := play(ctx, opts, logger); err != nil {
		slog.Error("gamemixer failed", "err", err)
		return 1
	}
	return 0
}

func play(ctx context.Context, opts *options, logger *slog.Logger) error {
	cfg := opts.cfg

	clips := make([][]float32, 0, len(opts.files))
	for _, path := range opts.files {
		data, err := loaders.DecodeFile(path)
		if err != nil {
			return err
		}
		logger.Debug("decoded", "path", path, "frames", len(data)/audio.ChannelCount)
		clips = append(clips, data)
	}

	m, ctl := audio.New(
		audio.WithLogger(logger),
		audio.WithMasterVolume(cfg.Mixer.MasterVolume),
		audio.WithVoiceCapacity(cfg.Mixer.Voices),
		audio.WithMaxFrames(cfg.Mixer.MaxFrames),
	)
	defer m.Close()
	for name, v := range cfg.Mixer.Channels {
		ctl.SetChannelVolume(config.Channels[name], v)
	}

	if cfg.Assets.SfxDir != "" {
		if err := sfx.LoadFolder(cfg.Assets.SfxDir, ctl); err != nil {
			return err
		}
	}
	if cfg.Assets.PlaylistDir != "" {
		if err := playlist.LoadFolder(cfg.Assets.PlaylistDir, ctl); err != nil {
			return err
		}
	}

	wait := opts.duration
	if wait == 0 && !opts.params.Looped && opts.playlist == "" {
		wait = longest(clips, opts.params.Pitch) + tail
	}
	if wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}
	g, ctx := errgroup.WithContext(ctx)

	player, err := openOutput(ctx, g, cfg.Output, m, logger)
	if err != nil {
		return err
	}

	if cfg.Metrics.ListenAddr != "" {
		if err := serveMetrics(ctx, g, cfg.Metrics.ListenAddr, m, logger); err != nil {
			return err
		}
	}

	for i, data := range clips {
		id := ctl.LoadAsset(data)
		ctl.Play(id, opts.params)
		logger.Info("playing", "path", opts.files[i], "looped", opts.params.Looped, "channel", opts.channel)
	}
	for _, id := range opts.sfx {
		if !sfx.Id(id).Play() {
			logger.Warn("sound effect not played", "id", id)
		}
	}
	if opts.playlist != "" {
		playlist.Id(opts.playlist).Play()
	}

	g.Go(func() error {
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
			}
			playlist.Process(time.Since(start))
			if err := player.Err(); err != nil {
				return err
			}
		}
	})

	err = g.Wait()
	err = errors.Join(err, player.Close())
	s := m.Stats()
	logger.Info("stopped",
		"fills", s.Fills,
		"started", s.PlaybacksStarted,
		"finished", s.PlaybacksFinished,
		"stale", s.StaleCommands,
	)
	return err
}

// openOutput starts the configured backend. A device that cannot be opened
// falls back to the null backend.
func openOutput(ctx context.Context, g *errgroup.Group, out config.OutputConfig, m *audio.Mixer, logger *slog.Logger) (backend.Player, error) {
	if out.Backend == config.BackendDevice {
		o, err := backend.NewOto(m, audio.SampleRate, out.BufferSize, logger)
		if err == nil {
			return o, nil
		}
		logger.Warn("no output device, mixing without one", "err", err)
	}

	var sink io.Writer
	var file *os.File
	if out.Record != "" {
		f, err := os.Create(out.Record)
		if err != nil {
			return nil, fmt.Errorf("open record file: %w", err)
		}
		sink, file = f, f
	}
	n := backend.NewNull(m, backend.NullOptions{
		SampleRate: audio.SampleRate,
		Frames:     int(out.BufferSize.Seconds() * audio.SampleRate),
		Sink:       sink,
		Logger:     logger,
	})
	g.Go(func() error {
		err := n.Run(ctx)
		if file != nil {
			err = errors.Join(err, file.Close())
		}
		return err
	})
	return n, nil
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, m *audio.Mixer, logger *slog.Logger) error {
	p, err := observe.InitProvider()
	if err != nil {
		return err
	}
	reg, err := observe.RegisterMixer(p.MeterProvider, m)
	if err != nil {
		return errors.Join(err, p.Shutdown(context.Background()))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return errors.Join(srv.Shutdown(shutdownCtx), reg.Unregister(), p.Shutdown(shutdownCtx))
	})
	return nil
}

// longest returns how long the longest clip plays at pitch.
func longest(clips [][]float32, pitch float64) time.Duration {
	frames := 0
	for _, c := range clips {
		frames = max(frames, len(c)/audio.ChannelCount)
	}
	if pitch <= 0 {
		pitch = 1
	}
	return time.Duration(float64(frames) / pitch / audio.SampleRate * float64(time.Second))
}
