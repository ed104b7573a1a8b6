package backend

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

type rampStream struct {
	calls atomic.Int64
	next  float32
}

func (s *rampStream) ReadFloat32s(buf []float32) {
	s.calls.Add(1)
	for i := range buf {
		buf[i] = s.next
		s.next += 0.25
	}
}

func TestEncodeFloat32LE(t *testing.T) {
	t.Parallel()

	src := []float32{0, 1, -0.5, float32(math.Inf(1))}
	dst := make([]byte, 4*len(src))
	encodeFloat32LE(dst, src)
	for i, want := range src {
		got := math.Float32frombits(binary.LittleEndian.Uint32(dst[4*i:]))
		if got != want {
			t.Errorf("sample %d: got %v, want %v", i, got, want)
		}
	}

	encodeFloat32LE(nil, nil)
}

func TestAtomicErrorKeepsFirst(t *testing.T) {
	t.Parallel()

	var a atomicError
	if a.Load() != nil {
		t.Fatalf("zero value holds %v", a.Load())
	}
	if a.TryStore(nil) {
		t.Fatalf("nil error was stored")
	}
	first := errors.New("first")
	if !a.TryStore(first) {
		t.Fatalf("first error was not stored")
	}
	if a.TryStore(errors.New("second")) {
		t.Fatalf("second error replaced the first")
	}
	if !errors.Is(a.Load(), first) {
		t.Fatalf("Load() = %v, want %v", a.Load(), first)
	}
}

func TestNullRunFillsUntilCanceled(t *testing.T) {
	t.Parallel()

	s := &rampStream{}
	var sink bytes.Buffer
	n := NewNull(s, NullOptions{Frames: 4, Period: time.Millisecond, Sink: &sink})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := n.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	calls := s.calls.Load()
	if calls == 0 {
		t.Fatalf("stream was never read")
	}
	if got, want := sink.Len(), int(calls)*4*channelCount*4; got != want {
		t.Fatalf("sink holds %d bytes, want %d", got, want)
	}
	for i := 0; i < sink.Len()/4; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(sink.Bytes()[4*i:]))
		if want := float32(i) * 0.25; got != want {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestNullSinkErrorStopsRun(t *testing.T) {
	t.Parallel()

	n := NewNull(&rampStream{}, NullOptions{Frames: 2, Period: time.Millisecond, Sink: failingWriter{}})
	err := n.Run(context.Background())
	if err == nil {
		t.Fatalf("Run returned nil after a sink failure")
	}
	if !errors.Is(n.Err(), err) {
		t.Fatalf("Err() = %v, want %v", n.Err(), err)
	}
}

func TestNullStartClose(t *testing.T) {
	t.Parallel()

	s := &rampStream{}
	n := NewNull(s, NullOptions{Frames: 8, Period: time.Millisecond})
	n.Start()
	deadline := time.Now().Add(time.Second)
	for s.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.calls.Load() == 0 {
		t.Fatalf("stream was never read")
	}
	after := s.calls.Load()
	time.Sleep(5 * time.Millisecond)
	if s.calls.Load() != after {
		t.Fatalf("stream read after Close")
	}
	if err := n.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestNullDefaultPeriod(t *testing.T) {
	t.Parallel()

	n := NewNull(&rampStream{}, NullOptions{})
	if want := 512 * time.Second / 44100; n.period != want {
		t.Fatalf("period = %v, want %v", n.period, want)
	}
	if len(n.buf) != 512*channelCount {
		t.Fatalf("buffer holds %d samples, want %d", len(n.buf), 512*channelCount)
	}
}
