// Package loaders turns encoded audio files into the interleaved stereo
// float32 samples at 44100 Hz that the mixer plays.
package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"golang.org/x/tools/godoc/vfs"

	"github.com/Lundis/go-gamemixer/loaders/aiff"
	"github.com/Lundis/go-gamemixer/loaders/mp3"
	"github.com/Lundis/go-gamemixer/loaders/oggvorbis"
	"github.com/Lundis/go-gamemixer/loaders/wav"
)

// SampleRate is the rate every decoded sound is converted to.
const SampleRate = 44100

var (
	ErrUnknownFormat     = errors.New("loaders: unrecognized audio format")
	ErrTooManyChannels   = errors.New("loaders: only mono and stereo are supported")
	ErrInvalidSampleRate = errors.New("loaders: invalid sample rate")
)

// Format is a container format recognized by Sniff.
type Format int

const (
	FormatUnknown Format = iota
	FormatWav
	FormatAiff
	FormatOggVorbis
	FormatMp3
)

func (f Format) String() string {
	switch f {
	case FormatWav:
		return "wav"
	case FormatAiff:
		return "aiff"
	case FormatOggVorbis:
		return "ogg"
	case FormatMp3:
		return "mp3"
	}
	return "unknown"
}

// Sniff guesses the container format from the first bytes of raw.
func Sniff(raw []byte) Format {
	switch {
	case len(raw) >= 12 && bytes.Equal(raw[0:4], []byte("RIFF")) && bytes.Equal(raw[8:12], []byte("WAVE")):
		return FormatWav
	case len(raw) >= 12 && bytes.Equal(raw[0:4], []byte("FORM")) &&
		(bytes.Equal(raw[8:12], []byte("AIFF")) || bytes.Equal(raw[8:12], []byte("AIFC"))):
		return FormatAiff
	case bytes.HasPrefix(raw, []byte("OggS")):
		return FormatOggVorbis
	case bytes.HasPrefix(raw, []byte("ID3")):
		return FormatMp3
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1]&0xE0 == 0xE0:
		// MPEG frame sync
		return FormatMp3
	}
	return FormatUnknown
}

// Decode decodes raw and converts the result to stereo at SampleRate.
func Decode(raw []byte) ([]float32, error) {
	var (
		data   []float32
		format *goaudio.Format
		err    error
	)
	switch f := Sniff(raw); f {
	case FormatWav:
		data, format, err = wav.Load(raw)
	case FormatAiff:
		data, format, err = aiff.Load(raw)
	case FormatOggVorbis:
		data, format, err = oggvorbis.Load(raw)
	case FormatMp3:
		data, format, err = mp3.Load(raw)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, err
	}
	return Normalize(data, format)
}

// DecodeFile reads and decodes the file at path.
func DecodeFile(path string) ([]float32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open: %w", path, err)
	}
	data, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// DecodeFS reads and decodes path from fs.
func DecodeFS(fs vfs.Opener, path string) ([]float32, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open: %w", path, err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	data, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Normalize converts interleaved samples in the given format to stereo at
// SampleRate. Mono is duplicated onto both channels.
func Normalize(data []float32, format *goaudio.Format) ([]float32, error) {
	stereo, err := ToStereo(data, format.NumChannels)
	if err != nil {
		return nil, err
	}
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, format.SampleRate)
	}
	return ResampleNearest(stereo, format.SampleRate, SampleRate), nil
}

// ToStereo returns interleaved stereo samples. Stereo input is returned as is.
func ToStereo(data []float32, channels int) ([]float32, error) {
	switch channels {
	case 1:
		out := make([]float32, 2*len(data))
		for i, s := range data {
			out[2*i] = s
			out[2*i+1] = s
		}
		return out, nil
	case 2:
		return data[:len(data)/2*2], nil
	}
	return nil, fmt.Errorf("%w: got %d channels", ErrTooManyChannels, channels)
}

// ResampleNearest converts interleaved stereo samples from one rate to another
// by picking the nearest earlier source frame for every output frame. It is
// lossy; sounds that matter should be stored at the target rate. The output
// always holds whole frames.
func ResampleNearest(data []float32, from, to int) []float32 {
	if from == to {
		return data
	}
	srcFrames := int64(len(data) / 2)
	dstFrames := srcFrames * int64(to) / int64(from)
	out := make([]float32, 2*dstFrames)
	for n := int64(0); n < dstFrames; n++ {
		ix := n * srcFrames / dstFrames
		out[2*n] = data[2*ix]
		out[2*n+1] = data[2*ix+1]
	}
	return out
}
