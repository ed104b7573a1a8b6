package audio

import "sync"

// PlaybackStatus is what the mixer last published about one playback.
type PlaybackStatus struct {
	Sound SoundId
	// Frame is the cursor in source frames, Frames the length of the sound.
	Frame  int
	Frames int
	Looped bool
}

// Progress returns how far the playback is through its sound, in [0, 1).
// A looped playback starts over at 0 on every pass.
func (s PlaybackStatus) Progress() float32 {
	if s.Frames == 0 {
		return 0
	}
	return float32(s.Frame) / float32(s.Frames)
}

type statusEntry struct {
	id     PlaybackId
	status PlaybackStatus
}

// statusBoard is the copy of the playback table that other goroutines read.
// The mixer rewrites it at the end of a fill. It never waits for the lock: if
// a reader holds it, that fill's update is skipped and the next one catches up.
type statusBoard struct {
	mu      sync.Mutex
	entries []statusEntry
}

func (m *Mixer) publish() {
	if !m.status.mu.TryLock() {
		return
	}
	e := m.status.entries[:0]
	for i := range m.playbacks {
		p := &m.playbacks[i]
		e = append(e, statusEntry{
			id: p.id,
			status: PlaybackStatus{
				Sound:  p.sound.id,
				Frame:  p.pos,
				Frames: p.sound.frames(),
				Looped: p.looped,
			},
		})
	}
	m.status.entries = e
	m.status.mu.Unlock()
}

func (b *statusBoard) lookup(id PlaybackId) (PlaybackStatus, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.entries {
		if b.entries[i].id == id {
			return b.entries[i].status, true
		}
	}
	return PlaybackStatus{}, false
}

// Status returns the state of playback id as of the end of the most recent
// fill. ok is false when the playback was not live then: it has finished or
// been stopped, or the mixer has not applied its Play yet.
func (c *Control) Status(id PlaybackId) (status PlaybackStatus, ok bool) {
	return c.status.lookup(id)
}

// IsPlaying reports whether playback id was live at the end of the most
// recent fill. A playback on a paused channel counts as playing.
func (c *Control) IsPlaying(id PlaybackId) bool {
	_, ok := c.status.lookup(id)
	return ok
}
