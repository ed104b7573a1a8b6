// Package oggvorbis decodes Ogg Vorbis streams.
package oggvorbis

import (
	"bytes"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/jfreymuth/oggvorbis"
)

// Load decodes a whole Ogg Vorbis stream. Vorbis decodes to float natively,
// so the samples are returned as they are.
func Load(oggData []byte) ([]float32, *goaudio.Format, error) {
	data, format, err := oggvorbis.ReadAll(bytes.NewReader(oggData))
	if err != nil {
		return nil, nil, fmt.Errorf("oggvorbis: %w", err)
	}
	return data, &goaudio.Format{
		NumChannels: format.Channels,
		SampleRate:  format.SampleRate,
	}, nil
}
