// Copyright 2016 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package wav provides WAV (RIFF) decoder.
package wav

import (
	"bytes"
	"errors"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	ErrNotWavFile          = errors.New("wav: invalid header: 'RIFF'/'WAVE' not found")
	ErrUnsupportedFormat   = errors.New("wav: format must be linear PCM")
	ErrUnsupportedBitDepth = errors.New("wav: unsupported bits per sample")
)

const formatPCM = 1

// Load decodes linear PCM WAV data with 8, 16, 24 or 32 bits per sample into
// interleaved float32 samples in [-1, 1]. The channel layout and sample rate
// are returned unchanged.
func Load(raw []byte) ([]float32, *goaudio.Format, error) {
	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, nil, fmt.Errorf("%w, got format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("wav: read samples: %w", err)
	}
	data, err := convertIntToFloat32(buf.Data, int(dec.BitDepth))
	if err != nil {
		return nil, nil, err
	}
	return data, &goaudio.Format{
		NumChannels: int(dec.NumChans),
		SampleRate:  int(dec.SampleRate),
	}, nil
}

// convertIntToFloat32 scales integer PCM by its bit depth. 8-bit WAV is unsigned.
func convertIntToFloat32(in []int, bitDepth int) ([]float32, error) {
	out := make([]float32, len(in))
	switch bitDepth {
	case 8:
		for i, v := range in {
			out[i] = float32(v-128) / (1 << 7)
		}
	case 16, 24, 32:
		scale := float32(int64(1) << (bitDepth - 1))
		for i, v := range in {
			out[i] = float32(v) / scale
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	return out, nil
}
