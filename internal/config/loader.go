package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. Unknown keys are an error.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg, err := load(r)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if !cfg.Output.Backend.IsValid() {
		errs = append(errs, fmt.Errorf("output.backend %q is invalid; valid values: device, null", cfg.Output.Backend))
	}
	if cfg.Output.BufferSize < 0 {
		errs = append(errs, fmt.Errorf("output.buffer_size must not be negative, got %s", cfg.Output.BufferSize))
	}
	if cfg.Output.Record != "" && cfg.Output.Backend != BackendNull {
		errs = append(errs, errors.New("output.record requires output.backend: null"))
	}

	if !validVolume(cfg.Mixer.MasterVolume) {
		errs = append(errs, fmt.Errorf("mixer.master_volume must be within [0, 1], got %v", cfg.Mixer.MasterVolume))
	}
	if cfg.Mixer.Voices < 0 {
		errs = append(errs, fmt.Errorf("mixer.voices must not be negative, got %d", cfg.Mixer.Voices))
	}
	if cfg.Mixer.MaxFrames < 0 {
		errs = append(errs, fmt.Errorf("mixer.max_frames must not be negative, got %d", cfg.Mixer.MaxFrames))
	}
	for name, v := range cfg.Mixer.Channels {
		if _, ok := Channels[name]; !ok {
			errs = append(errs, fmt.Errorf("mixer.channels: unknown channel %q", name))
		}
		if !validVolume(v) {
			errs = append(errs, fmt.Errorf("mixer.channels.%s must be within [0, 1], got %v", name, v))
		}
	}

	return errors.Join(errs...)
}

func validVolume(v float32) bool {
	return v >= 0 && v <= 1
}
