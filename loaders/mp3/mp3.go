// Package mp3 decodes MPEG-1/2 Layer III audio.
package mp3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gomp3 "github.com/hajimehoshi/go-mp3"
)

// Load decodes a whole MP3 stream. go-mp3 always produces 16-bit
// little-endian stereo, mono sources included.
func Load(raw []byte) ([]float32, *goaudio.Format, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("mp3: %w", err)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, nil, fmt.Errorf("mp3: read samples: %w", err)
	}
	return convertInt16ToFloat32(pcm), &goaudio.Format{
		NumChannels: 2,
		SampleRate:  dec.SampleRate(),
	}, nil
}

func convertInt16ToFloat32(pcm []byte) []float32 {
	out := make([]float32, len(pcm)/2)
	for i := range out {
		out[i] = float32(int16(binary.LittleEndian.Uint16(pcm[2*i:]))) / (1 << 15)
	}
	return out
}
