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
	"fmt"
	"log/slog"
	"sync/atomic"
)

const (
	// SampleRate is the fixed rate of every sound and of the mixer output.
	SampleRate = 44100
	// ChannelCount is the number of interleaved output channels.
	ChannelCount = 2
	// MaxPitch is the fastest a playback can be played. A fill of n frames
	// reads at most n*MaxPitch source frames per playback.
	MaxPitch = 8
)

// Mixer sums all active playbacks into an interleaved stereo stream.
//
// The mixer owns the loaded sounds, the playback table and the bus settings.
// They are only ever touched by the goroutine calling FillBuffer (or
// ReadFloat32s); other goroutines reach them through a Control.
type Mixer struct {
	queue   *commandQueue
	control *Control
	logger  *slog.Logger
	stats   counters
	status  statusBoard
	closed  atomic.Bool

	voiceCapacity int
	maxFrames     int

	// owned by the fill goroutine
	sounds    soundStore
	playbacks []playback
	buses     busTable
	scratch   []float32
}

// Stats is a snapshot of mixer counters.
type Stats struct {
	Sounds            int
	Voices            int
	Fills             uint64
	CommandsApplied   uint64
	StaleCommands     uint64
	CommandsDropped   uint64
	PlaybacksStarted  uint64
	PlaybacksFinished uint64
}

type counters struct {
	sounds   atomic.Int64
	voices   atomic.Int64
	fills    atomic.Uint64
	applied  atomic.Uint64
	stale    atomic.Uint64
	dropped  atomic.Uint64
	started  atomic.Uint64
	finished atomic.Uint64
}

// New creates a Mixer and the Control that feeds it.
func New(opts ...Option) (*Mixer, *Control) {
	m := &Mixer{
		queue:         newCommandQueue(),
		logger:        slog.Default(),
		voiceCapacity: defaultVoiceCapacity,
		maxFrames:     defaultMaxFrames,
		sounds:        newSoundStore(),
		buses:         newBusTable(1),
	}
	for _, o := range opts {
		o(m)
	}
	m.playbacks = make([]playback, 0, m.voiceCapacity)
	m.status.entries = make([]statusEntry, 0, m.voiceCapacity)
	m.scratch = make([]float32, 0, (MaxPitch*m.maxFrames+2)*ChannelCount)
	m.control = &Control{
		queue:  m.queue,
		stats:  &m.stats,
		status: &m.status,
		logger: m.logger,
	}
	return m, m.control
}

// Control returns the Control created together with m.
func (m *Mixer) Control() *Control {
	return m.control
}

// FillBuffer applies every queued command and then writes frames interleaved
// stereo frames into buf. len(buf) must be at least frames*ChannelCount.
//
// FillBuffer must only be called from one goroutine at a time. It does not
// block and, once the scratch buffers are warm, does not allocate.
func (m *Mixer) FillBuffer(buf []float32, frames int) {
	m.drain()
	if m.closed.Load() {
		m.release()
	}

	out := buf[:frames*ChannelCount]
	clear(out)

	live := m.playbacks[:0]
	finished := 0
	for i := range m.playbacks {
		p := &m.playbacks[i]
		bus, paused := m.buses.gain(p.channel)
		if !paused {
			m.render(p, out, frames, bus)
		}
		if p.finished {
			finished++
			continue
		}
		live = append(live, *p)
	}
	// drop the asset references held by removed slots
	clear(m.playbacks[len(live):])
	m.playbacks = live

	m.stats.fills.Add(1)
	if finished > 0 {
		m.stats.finished.Add(uint64(finished))
		m.stats.voices.Store(int64(len(m.playbacks)))
	}
	m.publish()
}

// ReadFloat32s fills buf with len(buf)/ChannelCount frames of mixed output.
func (m *Mixer) ReadFloat32s(buf []float32) {
	m.FillBuffer(buf, len(buf)/ChannelCount)
}

// Close stops accepting commands. Commands sent afterwards are dropped. The
// next fill releases every sound and playback and outputs silence from then on.
// Close is safe to call from any goroutine, and more than once.
func (m *Mixer) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		m.queue.close()
		m.logger.Debug("audio: mixer closed")
	}
	return nil
}

// Stats returns the current counters. It is safe for concurrent use.
func (m *Mixer) Stats() Stats {
	return Stats{
		Sounds:            int(m.stats.sounds.Load()),
		Voices:            int(m.stats.voices.Load()),
		Fills:             m.stats.fills.Load(),
		CommandsApplied:   m.stats.applied.Load(),
		StaleCommands:     m.stats.stale.Load(),
		CommandsDropped:   m.stats.dropped.Load(),
		PlaybacksStarted:  m.stats.started.Load(),
		PlaybacksFinished: m.stats.finished.Load(),
	}
}

// release drops the sounds and playbacks of a closed mixer.
func (m *Mixer) release() {
	if m.sounds.len() == 0 && len(m.playbacks) == 0 {
		return
	}
	m.sounds.clear()
	clear(m.playbacks)
	m.playbacks = m.playbacks[:0]
	m.stats.sounds.Store(0)
	m.stats.voices.Store(0)
}

// drain applies every command currently in the queue. It does not wait for more.
func (m *Mixer) drain() {
	applied := 0
	for {
		cmd, ok := m.queue.pop()
		if !ok {
			break
		}
		m.apply(cmd)
		applied++
	}
	if applied > 0 {
		m.stats.applied.Add(uint64(applied))
		m.stats.sounds.Store(int64(m.sounds.len()))
		m.stats.voices.Store(int64(len(m.playbacks)))
	}
}

func (m *Mixer) apply(cmd command) {
	switch c := cmd.(type) {
	case addSoundCmd:
		m.sounds.add(c.id, c.data)
	case playCmd:
		a, ok := m.sounds.get(c.sound)
		if !ok {
			m.stats.stale.Add(1)
			return
		}
		m.playbacks = append(m.playbacks, newPlayback(c.playback, a, c.params))
		m.stats.started.Add(1)
	case stopCmd:
		if !m.removePlaybacks(func(p *playback) bool { return p.id == c.playback }) {
			m.stats.stale.Add(1)
		}
	case stopAllCmd:
		if !m.removePlaybacks(func(p *playback) bool { return p.sound.id == c.sound }) {
			m.stats.stale.Add(1)
		}
	case setVolumeCmd:
		m.updatePlaybacks(func(p *playback) bool { return p.id == c.playback },
			func(p *playback) { p.volume = c.volume })
	case setVolumeAllCmd:
		m.updatePlaybacks(func(p *playback) bool { return p.sound.id == c.sound },
			func(p *playback) { p.volume = c.volume })
	case setPitchCmd:
		m.updatePlaybacks(func(p *playback) bool { return p.id == c.playback },
			func(p *playback) {
				p.pitch = c.pitch
				if c.pitch == 1 {
					// back to frame-exact copying from the current frame
					p.phase = 0
				}
			})
	case deleteSoundCmd:
		if !m.sounds.remove(c.sound) {
			m.stats.stale.Add(1)
			return
		}
		m.removePlaybacks(func(p *playback) bool { return p.sound.id == c.sound })
	case setMasterVolumeCmd:
		m.buses.master = c.volume
	case setChannelVolumeCmd:
		m.buses.setVolume(c.channel, c.volume)
	case setChannelPausedCmd:
		m.buses.setPaused(c.channel, c.paused)
	default:
		panic(fmt.Sprintf("audio: unhandled command %T", cmd))
	}
}

// removePlaybacks deletes every playback matching match, keeping order.
// It reports whether anything was removed.
func (m *Mixer) removePlaybacks(match func(*playback) bool) bool {
	live := m.playbacks[:0]
	for i := range m.playbacks {
		if match(&m.playbacks[i]) {
			continue
		}
		live = append(live, m.playbacks[i])
	}
	if len(live) == len(m.playbacks) {
		return false
	}
	clear(m.playbacks[len(live):])
	m.playbacks = live
	return true
}

func (m *Mixer) updatePlaybacks(match func(*playback) bool, update func(*playback)) {
	found := false
	for i := range m.playbacks {
		if match(&m.playbacks[i]) {
			update(&m.playbacks[i])
			found = true
		}
	}
	if !found {
		m.stats.stale.Add(1)
	}
}
