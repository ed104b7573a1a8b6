// Package backend drives a mixer from an audio device, or from the wall clock
// when no device is wanted.
package backend

import "errors"

// ErrUnavailable is returned when no audio device can be opened.
var ErrUnavailable = errors.New("backend: audio device unavailable")

// Stream produces interleaved stereo float32 samples. ReadFloat32s must fill
// all of buf and must not block. *audio.Mixer implements it.
type Stream interface {
	ReadFloat32s(buf []float32)
}

// Player is a running backend.
type Player interface {
	// Err returns the first error the backend hit while running, if any.
	Err() error
	Close() error
}

const channelCount = 2
