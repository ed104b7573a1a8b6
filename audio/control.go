package audio

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// PlayParams configures a new playback.
type PlayParams struct {
	// Looped restarts the sound from the beginning whenever it ends.
	// A looped playback runs until it is stopped or its sound is deleted.
	Looped bool

	// Volume is the linear volume in [0, 1]. The mixer applies it through a
	// square curve together with the bus volume.
	Volume float32

	// Pitch is the playback speed multiplier, at most MaxPitch. 0 means 1
	// (native speed).
	Pitch float64

	// Channel selects the bus. The zero value is ChannelIdDefault.
	Channel ChannelId

	// FadeIn ramps the volume up linearly from silence over this duration.
	FadeIn time.Duration
}

// Control sends commands to a Mixer. It never touches mixer state directly:
// every method enqueues one command and returns immediately, and the mixer
// applies it at the start of its next fill.
//
// Ids are allocated on the caller side, so a sound can be played right after
// LoadAsset returns.
//
// All methods of Control are safe for concurrent use.
type Control struct {
	queue  *commandQueue
	stats  *counters
	status *statusBoard
	logger *slog.Logger

	nextSound    atomic.Uint64
	nextPlayback atomic.Uint64
}

// LoadAsset hands decoded samples to the mixer and returns their id.
// samples must be interleaved stereo float32 at SampleRate; a trailing odd
// sample is dropped. The mixer takes ownership of the slice: it must not be
// modified afterwards.
func (c *Control) LoadAsset(samples []float32) SoundId {
	id := SoundId(c.nextSound.Add(1))
	samples = samples[:len(samples)/ChannelCount*ChannelCount]
	c.send(addSoundCmd{id: id, data: samples})
	return id
}

// Play starts a new playback of sound id. It panics if params.Volume is outside
// [0, 1] or params.Pitch is negative or above MaxPitch.
//
// If the sound has been deleted by the time the mixer sees the command, the
// playback silently never starts.
func (c *Control) Play(id SoundId, params PlayParams) PlaybackId {
	checkVolume(params.Volume)
	if params.Pitch == 0 {
		params.Pitch = 1
	}
	checkPitch(params.Pitch)
	if params.FadeIn < 0 {
		params.FadeIn = 0
	}
	pid := PlaybackId(c.nextPlayback.Add(1))
	c.send(playCmd{sound: id, playback: pid, params: params})
	return pid
}

// Stop stops one playback. There is no confirmation; the playback produces no
// samples from the next fill onwards.
func (c *Control) Stop(id PlaybackId) {
	c.send(stopCmd{playback: id})
}

// StopAll stops every playback of sound id.
func (c *Control) StopAll(id SoundId) {
	c.send(stopAllCmd{sound: id})
}

// SetVolume changes the volume of one playback. It panics if volume is outside [0, 1].
func (c *Control) SetVolume(id PlaybackId, volume float32) {
	checkVolume(volume)
	c.send(setVolumeCmd{playback: id, volume: volume})
}

// SetVolumeAll changes the volume of every current playback of sound id.
// It panics if volume is outside [0, 1].
func (c *Control) SetVolumeAll(id SoundId, volume float32) {
	checkVolume(volume)
	c.send(setVolumeAllCmd{sound: id, volume: volume})
}

// SetPitch changes the speed of one playback. It panics unless pitch is in
// (0, MaxPitch]. Setting the pitch to exactly 1 drops the sub-frame part of
// the cursor.
func (c *Control) SetPitch(id PlaybackId, pitch float64) {
	checkPitch(pitch)
	c.send(setPitchCmd{playback: id, pitch: pitch})
}

// DeleteAsset removes sound id from the mixer together with all of its playbacks.
func (c *Control) DeleteAsset(id SoundId) {
	c.send(deleteSoundCmd{sound: id})
}

// SetMasterVolume sets the volume applied to every channel.
func (c *Control) SetMasterVolume(volume float32) {
	checkVolume(volume)
	c.send(setMasterVolumeCmd{volume: volume})
}

// SetChannelVolume sets the volume of one channel.
func (c *Control) SetChannelVolume(channel ChannelId, volume float32) {
	checkVolume(volume)
	c.send(setChannelVolumeCmd{channel: channel, volume: volume})
}

// PauseChannel silences a channel. Its playbacks keep their position.
func (c *Control) PauseChannel(channel ChannelId) {
	c.send(setChannelPausedCmd{channel: channel, paused: true})
}

// ResumeChannel undoes PauseChannel.
func (c *Control) ResumeChannel(channel ChannelId) {
	c.send(setChannelPausedCmd{channel: channel, paused: false})
}

// send enqueues cmd. A closed mixer only loses configuration, so the failure
// is logged and counted instead of being returned.
func (c *Control) send(cmd command) {
	if err := c.queue.push(cmd); err != nil {
		c.stats.dropped.Add(1)
		c.logger.Debug("audio: command dropped", "command", fmt.Sprintf("%T", cmd), "err", err)
	}
}

func checkVolume(volume float32) {
	if !(volume >= 0 && volume <= 1) {
		panic(fmt.Sprintf("audio: volume %v is outside [0, 1]", volume))
	}
}

func checkPitch(pitch float64) {
	if !(pitch > 0 && pitch <= MaxPitch) {
		panic(fmt.Sprintf("audio: pitch %v is outside (0, %v]", pitch, MaxPitch))
	}
}
