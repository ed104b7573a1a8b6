package audio

import "errors"

var (
	// ErrClosed is returned when sending to a mixer that has been closed.
	ErrClosed = errors.New("audio: mixer closed")

	errContextExists     = errors.New("audio: context was already created")
	errUnsupportedRate   = errors.New("audio: unsupported sample rate")
	errUnsupportedLayout = errors.New("audio: only stereo output is supported")
)
