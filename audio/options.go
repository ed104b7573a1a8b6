package audio

import "log/slog"

const (
	defaultVoiceCapacity = 32
	defaultMaxFrames     = 4096
)

// Option configures a Mixer during construction.
type Option func(*Mixer)

// WithLogger sets the logger used by the mixer and its Control.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mixer) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMasterVolume sets the initial master volume. It panics if volume is
// outside [0, 1].
func WithMasterVolume(volume float32) Option {
	checkVolume(volume)
	return func(m *Mixer) {
		m.buses.master = volume
	}
}

// WithVoiceCapacity preallocates room for n simultaneous playbacks. The table
// still grows past n, at the cost of an allocation on the audio goroutine.
func WithVoiceCapacity(n int) Option {
	return func(m *Mixer) {
		if n > 0 {
			m.voiceCapacity = n
		}
	}
}

// WithMaxFrames preallocates the scratch buffer for fills of up to n frames at
// any pitch up to MaxPitch. Larger requests grow the buffer once.
func WithMaxFrames(n int) Option {
	return func(m *Mixer) {
		if n > 0 {
			m.maxFrames = n
		}
	}
}
