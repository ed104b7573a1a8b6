// Package aiff decodes AIFF files.
package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

var (
	ErrNotAiffFile         = errors.New("aiff: invalid header: 'FORM'/'AIFF' not found")
	ErrUnsupportedLayout   = errors.New("aiff: missing format information")
	ErrUnsupportedBitDepth = errors.New("aiff: unsupported bits per sample")
)

const chunkSamples = 4096

// Load decodes AIFF data with 8, 16, 24 or 32 bits per sample into
// interleaved float32 samples in [-1, 1].
func Load(raw []byte) ([]float32, *goaudio.Format, error) {
	dec := aiff.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, nil, ErrUnsupportedLayout
	}
	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	scale := float32(int64(1) << (bitDepth - 1))

	buf := &goaudio.IntBuffer{
		Data:   make([]int, chunkSamples*format.NumChannels),
		Format: format,
	}
	var out []float32
	for {
		n, err := dec.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			out = append(out, float32(v)/scale)
		}
		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("aiff: read samples: %w", err)
		}
	}
	return out, &goaudio.Format{
		NumChannels: format.NumChannels,
		SampleRate:  format.SampleRate,
	}, nil
}
