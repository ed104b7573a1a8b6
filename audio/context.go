// Copyright 2021 The Oto Authors
// Copyright 2025 Lundis
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

package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Lundis/go-gamemixer/backend"
)

var (
	contextCreationMutex sync.Mutex
	defaultContext       *audioContext
)

// NewContextOptions represents options for InitContext.
type NewContextOptions struct {
	// SampleRate must be 0 or SampleRate. The mixer runs at a fixed rate; sounds
	// at other rates are converted by the loaders.
	SampleRate int

	// ChannelCount must be 0 or ChannelCount.
	ChannelCount int

	// BufferSize specifies a buffer size in the underlying device.
	//
	// If 0 is specified, the driver's default buffer size is used.
	// Set BufferSize to adjust the buffer size if you want to adjust latency or reduce noises.
	// Too big buffer size can increase the latency time.
	// On the other hand, too small buffer size can cause glitch noises due to buffer shortage.
	BufferSize time.Duration

	// Headless skips the audio device and paces the mixer against the wall
	// clock instead. The mixer also falls back to this when no device can be
	// opened.
	Headless bool

	// Sink receives the mixed output in headless mode as little-endian float32.
	Sink io.Writer

	// Options are passed on to New.
	Options []Option
}

type audioContext struct {
	mixer   *Mixer
	control *Control
	logger  *slog.Logger
	ready   chan struct{}

	mu     sync.Mutex
	player backend.Player
}

// InitContext creates the mixer, its Control and an output backend.
// InitContext returns a channel that is closed when the output is ready, and an error if it exists.
// The Control can be used right away; commands queue up until the output starts pulling.
//
// Creating multiple contexts is NOT supported. Call CloseContext before creating a new one.
func InitContext(options *NewContextOptions) (chan struct{}, error) {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()

	if defaultContext != nil {
		return nil, errContextExists
	}
	if options == nil {
		options = &NewContextOptions{}
	}
	if options.SampleRate != 0 && options.SampleRate != SampleRate {
		return nil, fmt.Errorf("%w: %d", errUnsupportedRate, options.SampleRate)
	}
	if options.ChannelCount != 0 && options.ChannelCount != ChannelCount {
		return nil, fmt.Errorf("%w: %d channels", errUnsupportedLayout, options.ChannelCount)
	}

	m, ctl := New(options.Options...)
	c := &audioContext{
		mixer:   m,
		control: ctl,
		logger:  m.logger,
		ready:   make(chan struct{}),
	}
	defaultContext = c

	// Opening a device might take some time. Do this asynchronously.
	go func() {
		defer close(c.ready)
		p := c.open(options)
		c.mu.Lock()
		c.player = p
		c.mu.Unlock()
	}()
	return c.ready, nil
}

func (c *audioContext) open(options *NewContextOptions) backend.Player {
	if !options.Headless {
		o, err := backend.NewOto(c.mixer, SampleRate, options.BufferSize, c.logger)
		if err == nil {
			return o
		}
		c.logger.Warn("audio: no output device, mixing without one", "err", err)
	}
	frames := 0
	if options.BufferSize > 0 {
		frames = int(options.BufferSize.Seconds() * SampleRate)
	}
	n := backend.NewNull(c.mixer, backend.NullOptions{
		SampleRate: SampleRate,
		Frames:     frames,
		Sink:       options.Sink,
		Logger:     c.logger,
	})
	n.Start()
	return n
}

// DefaultControl returns the Control of the context created by InitContext,
// or nil if there is none.
func DefaultControl() *Control {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()
	if defaultContext == nil {
		return nil
	}
	return defaultContext.control
}

// DefaultMixer returns the Mixer of the context created by InitContext, or
// nil if there is none. Its Stats method is safe to call from anywhere.
func DefaultMixer() *Mixer {
	contextCreationMutex.Lock()
	defer contextCreationMutex.Unlock()
	if defaultContext == nil {
		return nil
	}
	return defaultContext.mixer
}

// ContextErr returns the first error reported by the output backend.
func ContextErr() error {
	contextCreationMutex.Lock()
	c := defaultContext
	contextCreationMutex.Unlock()
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.player == nil {
		return nil
	}
	return c.player.Err()
}

// CloseContext waits for the output to be ready, stops it and closes the mixer.
func CloseContext() error {
	contextCreationMutex.Lock()
	c := defaultContext
	defaultContext = nil
	contextCreationMutex.Unlock()
	if c == nil {
		return nil
	}

	<-c.ready
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.player.Close()
	return errors.Join(err, c.mixer.Close())
}
