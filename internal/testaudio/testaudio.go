// Package testaudio generates small encoded audio files for tests.
package testaudio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV returns a 16-bit linear PCM WAV file holding samples.
func WAV(tb testing.TB, sampleRate, channels int, samples []int) []byte {
	return WAVDepth(tb, sampleRate, channels, 16, samples)
}

// WAVDepth is WAV with a chosen bit depth.
func WAVDepth(tb testing.TB, sampleRate, channels, bitDepth int, samples []int) []byte {
	tb.Helper()
	f, path := create(tb, "test.wav")
	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	if err := enc.Write(intBuffer(sampleRate, channels, bitDepth, samples)); err != nil {
		tb.Fatalf("encoding wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("closing wav encoder: %v", err)
	}
	return finish(tb, f, path)
}

// AIFF returns a 16-bit AIFF file holding samples.
func AIFF(tb testing.TB, sampleRate, channels int, samples []int) []byte {
	tb.Helper()
	f, path := create(tb, "test.aiff")
	enc := aiff.NewEncoder(f, sampleRate, 16, channels)
	if err := enc.Write(intBuffer(sampleRate, channels, 16, samples)); err != nil {
		tb.Fatalf("encoding aiff: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("closing aiff encoder: %v", err)
	}
	return finish(tb, f, path)
}

func intBuffer(sampleRate, channels, bitDepth int, samples []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
}

func create(tb testing.TB, name string) (*os.File, string) {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating %s: %v", path, err)
	}
	return f, path
}

func finish(tb testing.TB, f *os.File, path string) []byte {
	tb.Helper()
	if err := f.Close(); err != nil {
		tb.Fatalf("closing %s: %v", path, err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("reading %s: %v", path, err)
	}
	return raw
}
