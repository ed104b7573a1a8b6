package loaders_test

import (
	"errors"
	"testing"

	goaudio "github.com/go-audio/audio"
	"golang.org/x/tools/godoc/vfs/mapfs"

	"github.com/Lundis/go-gamemixer/internal/testaudio"
	"github.com/Lundis/go-gamemixer/loaders"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
		want loaders.Format
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), loaders.FormatWav},
		{"riff without wave", []byte("RIFF\x00\x00\x00\x00AVI LIST"), loaders.FormatUnknown},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFFCOMM"), loaders.FormatAiff},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFCFVER"), loaders.FormatAiff},
		{"ogg", []byte("OggS\x00\x02"), loaders.FormatOggVorbis},
		{"mp3 with tag", []byte("ID3\x04\x00"), loaders.FormatMp3},
		{"mp3 frame", []byte{0xFF, 0xFB, 0x90, 0x64}, loaders.FormatMp3},
		{"empty", nil, loaders.FormatUnknown},
		{"text", []byte("hello"), loaders.FormatUnknown},
	}
	for _, tt := range tests {
		if got := loaders.Sniff(tt.raw); got != tt.want {
			t.Errorf("%s: Sniff() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDecodeUnknown(t *testing.T) {
	t.Parallel()

	if _, err := loaders.Decode([]byte("hello")); !errors.Is(err, loaders.ErrUnknownFormat) {
		t.Fatalf("Decode() error = %v, want ErrUnknownFormat", err)
	}
}

func TestDecodeWavStereo(t *testing.T) {
	t.Parallel()

	data, err := loaders.Decode(testaudio.WAV(t, 44100, 2, []int{16384, -16384, 8192, 0}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []float32{0.5, -0.5, 0.25, 0}
	if len(data) != len(want) {
		t.Fatalf("got %v, want %v", data, want)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("got %v, want %v", data, want)
		}
	}
}

func TestDecodeCompressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
	}{
		{"ogg vorbis", testaudio.OggVorbisSilence(5)},
		{"mp3", testaudio.MP3Silence(2)},
	}
	for _, tt := range tests {
		data, err := loaders.Decode(tt.raw)
		if err != nil {
			t.Errorf("%s: Decode: %v", tt.name, err)
			continue
		}
		if len(data) == 0 || len(data)%2 != 0 {
			t.Errorf("%s: decoded %d samples", tt.name, len(data))
		}
	}
}

func TestDecodeMonoAtHalfRate(t *testing.T) {
	t.Parallel()

	data, err := loaders.Decode(testaudio.AIFF(t, 22050, 1, []int{16384, -16384, 8192}))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []float32{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5, 0.25, 0.25, 0.25, 0.25}
	if len(data) != len(want) {
		t.Fatalf("got %v, want %v", data, want)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("got %v, want %v", data, want)
		}
	}
}

func TestDecodeRejectsSurround(t *testing.T) {
	t.Parallel()

	_, err := loaders.Decode(testaudio.WAV(t, 44100, 6, make([]int, 12)))
	if !errors.Is(err, loaders.ErrTooManyChannels) {
		t.Fatalf("Decode() error = %v, want ErrTooManyChannels", err)
	}
}

func TestDecodeFS(t *testing.T) {
	t.Parallel()

	fs := mapfs.New(map[string]string{
		"sfx/click.wav": string(testaudio.WAV(t, 44100, 2, []int{1, 2, 3, 4})),
		"sfx/bad.wav":   "RIFF....WAVE",
	})
	data, err := loaders.DecodeFS(fs, "/sfx/click.wav")
	if err != nil {
		t.Fatalf("DecodeFS: %v", err)
	}
	if len(data) != 4 {
		t.Fatalf("got %d samples, want 4", len(data))
	}
	if _, err := loaders.DecodeFS(fs, "/sfx/missing.wav"); err == nil {
		t.Fatalf("DecodeFS of a missing file succeeded")
	}
	if _, err := loaders.DecodeFS(fs, "/sfx/bad.wav"); err == nil {
		t.Fatalf("DecodeFS of a broken file succeeded")
	}
}

func TestToStereo(t *testing.T) {
	t.Parallel()

	got, err := loaders.ToStereo([]float32{1, 2, 3}, 1)
	if err != nil {
		t.Fatalf("ToStereo: %v", err)
	}
	want := []float32{1, 1, 2, 2, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	got, err = loaders.ToStereo([]float32{1, 2, 3}, 2)
	if err != nil {
		t.Fatalf("ToStereo: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("trailing half frame kept: %v", got)
	}

	for _, channels := range []int{0, 3, 8} {
		if _, err := loaders.ToStereo(nil, channels); !errors.Is(err, loaders.ErrTooManyChannels) {
			t.Errorf("%d channels: error = %v, want ErrTooManyChannels", channels, err)
		}
	}
}

func TestResampleNearest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       []float32
		from, to int
		want     []float32
	}{
		{"same rate", []float32{1, 2, 3, 4}, 44100, 44100, []float32{1, 2, 3, 4}},
		{"upsample", []float32{1, 2, 3, 4}, 22050, 44100, []float32{1, 2, 1, 2, 3, 4, 3, 4}},
		{"downsample", []float32{1, 1, 2, 2, 3, 3, 4, 4}, 88200, 44100, []float32{1, 1, 3, 3}},
		{"uneven", []float32{1, 1, 2, 2, 3, 3}, 48000, 44100, []float32{1, 1, 2, 2}},
	}
	for _, tt := range tests {
		got := loaders.ResampleNearest(tt.in, tt.from, tt.to)
		if len(got) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
				break
			}
		}
	}
}

func TestNormalizeRejectsZeroRate(t *testing.T) {
	t.Parallel()

	_, err := loaders.Normalize([]float32{0, 0}, &goaudio.Format{NumChannels: 2})
	if !errors.Is(err, loaders.ErrInvalidSampleRate) {
		t.Fatalf("Normalize() error = %v, want ErrInvalidSampleRate", err)
	}
}
