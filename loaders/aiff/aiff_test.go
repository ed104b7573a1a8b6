package aiff_test

import (
	"errors"
	"testing"

	"github.com/Lundis/go-gamemixer/internal/testaudio"
	"github.com/Lundis/go-gamemixer/loaders/aiff"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		rate     int
		samples  []int
		want     []float32
	}{
		{"stereo", 2, 44100, []int{16384, -16384, 0, 8192}, []float32{0.5, -0.5, 0, 0.25}},
		{"mono", 1, 22050, []int{-32768, 16384}, []float32{-1, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, format, err := aiff.Load(testaudio.AIFF(t, tt.rate, tt.channels, tt.samples))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if format.NumChannels != tt.channels || format.SampleRate != tt.rate {
				t.Fatalf("format = %+v, want %d channels at %d", format, tt.channels, tt.rate)
			}
			if len(data) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(data), len(tt.want))
			}
			for i := range tt.want {
				if data[i] != tt.want[i] {
					t.Fatalf("sample %d: got %v, want %v", i, data[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	for _, raw := range [][]byte{nil, []byte("This is not AIFF data")} {
		if _, _, err := aiff.Load(raw); !errors.Is(err, aiff.ErrNotAiffFile) {
			t.Errorf("Load(%q) error = %v, want ErrNotAiffFile", raw, err)
		}
	}
}
