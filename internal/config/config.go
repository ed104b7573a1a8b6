// Package config holds the YAML configuration of the gamemixer command.
package config

import (
	"log/slog"
	"time"

	"github.com/Lundis/go-gamemixer/audio"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level converts l to a slog level. Unknown levels map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Backend selects where the mixed audio goes.
type Backend string

const (
	// BackendDevice plays on the default output device, falling back to
	// BackendNull when there is none.
	BackendDevice Backend = "device"
	// BackendNull runs the mixer in real time without a device.
	BackendNull Backend = "null"
)

// IsValid reports whether b is a recognised backend.
func (b Backend) IsValid() bool {
	return b == BackendDevice || b == BackendNull
}

// Channels maps the channel names accepted in mixer.channels to their ids.
var Channels = map[string]audio.ChannelId{
	"default":  audio.ChannelIdDefault,
	"music":    audio.ChannelIdMusic,
	"ambience": audio.ChannelIdAmbience,
	"sfx":      audio.ChannelIdSfx,
	"ui":       audio.ChannelIdUi,
	"dialog":   audio.ChannelIdDialog,
}

// Config is the root configuration.
type Config struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	Output  OutputConfig  `yaml:"output"`
	Mixer   MixerConfig   `yaml:"mixer"`
	Metrics MetricsConfig `yaml:"metrics"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// OutputConfig configures the audio backend.
type OutputConfig struct {
	Backend Backend `yaml:"backend"`

	// BufferSize is the device buffer length, e.g. "20ms". 0 uses the driver default.
	BufferSize time.Duration `yaml:"buffer_size"`

	// Record writes the mixed output as raw little-endian float32 stereo to
	// this file. Only used by the null backend.
	Record string `yaml:"record"`
}

// MixerConfig configures the mixing engine.
type MixerConfig struct {
	MasterVolume float32 `yaml:"master_volume"`

	// Voices is the number of playbacks to preallocate room for.
	Voices int `yaml:"voices"`

	// MaxFrames is the largest fill to preallocate scratch space for.
	MaxFrames int `yaml:"max_frames"`

	// Channels sets initial channel volumes by name, see [Channels].
	Channels map[string]float32 `yaml:"channels"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// ListenAddr serves /metrics when set, e.g. ":9090".
	ListenAddr string `yaml:"listen_addr"`
}

// AssetsConfig points at optional sound effect and playlist folders.
type AssetsConfig struct {
	// SfxDir holds sfx.json and the files it references.
	SfxDir string `yaml:"sfx_dir"`
	// PlaylistDir holds playlist.json and the files it references.
	PlaylistDir string `yaml:"playlist_dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Output: OutputConfig{
			Backend: BackendDevice,
		},
		Mixer: MixerConfig{
			MasterVolume: 1,
			Voices:       32,
			MaxFrames:    4096,
		},
	}
}
