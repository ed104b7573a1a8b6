package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/Lundis/go-gamemixer/internal/rtprio"
)

const defaultNullFrames = 512

// NullOptions configures a Null backend.
type NullOptions struct {
	SampleRate int

	// Frames is the number of frames per fill. 0 means 512.
	Frames int

	// Period is the time between fills. 0 derives it from Frames and
	// SampleRate so that the stream advances in real time.
	Period time.Duration

	// Sink receives every filled buffer as little-endian float32 samples.
	// A nil Sink discards the output.
	Sink io.Writer

	Logger *slog.Logger
}

// Null pulls from a Stream at the pace a device would, without a device.
type Null struct {
	stream Stream
	period time.Duration
	sink   io.Writer
	logger *slog.Logger

	buf   []float32
	bytes []byte
	err   atomicError

	cancel context.CancelFunc
	done   chan struct{}
}

func NewNull(s Stream, opts NullOptions) *Null {
	if opts.Frames <= 0 {
		opts.Frames = defaultNullFrames
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Period <= 0 {
		opts.Period = time.Duration(opts.Frames) * time.Second / time.Duration(opts.SampleRate)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	n := &Null{
		stream: s,
		period: opts.Period,
		sink:   opts.Sink,
		logger: opts.Logger,
		buf:    make([]float32, opts.Frames*channelCount),
	}
	if n.sink != nil {
		n.bytes = make([]byte, 4*len(n.buf))
	}
	return n
}

// Run fills one buffer per period until ctx is done. The calling goroutine is
// locked to its thread for the duration and the thread priority is raised
// where the platform allows it.
func (n *Null) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := rtprio.Raise(); err != nil {
		n.logger.Debug("backend: thread priority unchanged", "err", err)
	}

	t := time.NewTicker(n.period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
		n.stream.ReadFloat32s(n.buf)
		if n.sink == nil {
			continue
		}
		encodeFloat32LE(n.bytes, n.buf)
		if _, err := n.sink.Write(n.bytes); err != nil {
			err = fmt.Errorf("backend: write sink: %w", err)
			n.err.TryStore(err)
			return err
		}
	}
}

// Start runs n on its own goroutine until Close is called.
func (n *Null) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.done = make(chan struct{})
	go func() {
		defer close(n.done)
		if err := n.Run(ctx); err != nil {
			n.logger.Error("backend: null output stopped", "err", err)
		}
	}()
}

func (n *Null) Err() error {
	return n.err.Load()
}

// Close stops a backend started with Start and waits for its goroutine.
func (n *Null) Close() error {
	if n.cancel == nil {
		return nil
	}
	n.cancel()
	<-n.done
	n.cancel = nil
	return nil
}
