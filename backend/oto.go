//go:build !headless

package backend

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Oto plays a Stream on the default output device.
//
// oto allows one context per process, so NewOto must not be called twice.
type Oto struct {
	ctx     *oto.Context
	player  *oto.Player
	stream  Stream
	logger  *slog.Logger
	samples []float32
	err     atomicError
}

// NewOto opens the output device and starts pulling from s. It blocks until
// the device is ready. bufferSize 0 selects the driver default.
func NewOto(s Stream, sampleRate int, bufferSize time.Duration, logger *slog.Logger) (*Oto, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	<-ready

	o := &Oto{
		ctx:    ctx,
		stream: s,
		logger: logger,
	}
	o.player = ctx.NewPlayer(o)
	o.player.Play()
	logger.Info("backend: audio output opened", "sample_rate", sampleRate, "buffer", bufferSize)
	return o, nil
}

// Read implements io.Reader for the oto player. Every call produces whole
// frames and never blocks.
func (o *Oto) Read(p []byte) (int, error) {
	n := len(p) / 4 / channelCount * channelCount
	if cap(o.samples) < n {
		o.samples = make([]float32, n)
	}
	samples := o.samples[:n]
	o.stream.ReadFloat32s(samples)
	encodeFloat32LE(p, samples)
	return n * 4, nil
}

func (o *Oto) Err() error {
	if err := o.err.Load(); err != nil {
		return err
	}
	if err := o.player.Err(); err != nil {
		o.err.TryStore(fmt.Errorf("backend: player: %w", err))
		return o.err.Load()
	}
	if err := o.ctx.Err(); err != nil {
		o.err.TryStore(fmt.Errorf("backend: device: %w", err))
		return o.err.Load()
	}
	return nil
}

func (o *Oto) Close() error {
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("backend: close player: %w", err)
	}
	if err := o.ctx.Suspend(); err != nil {
		return fmt.Errorf("backend: suspend device: %w", err)
	}
	return nil
}
