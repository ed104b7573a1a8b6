package audio

// SoundId identifies a loaded sound. Ids come from Control.LoadAsset and are
// never reused within one mixer.
type SoundId uint64

// PlaybackId identifies a single playback of a sound.
type PlaybackId uint64

// asset is a decoded sound. The samples are interleaved stereo at SampleRate:
//
//	[data]      = [frame 1] [frame 2] [frame 3] ...
//	[frame *]   = [left] [right]
//	[channel *] = [float32]
//
// data is never written after the asset has been created. Playbacks keep the
// *asset they were started from, so deleting the sound from the store never
// leaves them pointing at freed or reused memory.
type asset struct {
	id   SoundId
	data []float32
}

func (a *asset) frames() int {
	return len(a.data) / ChannelCount
}

// soundStore maps ids to assets. Only the mixer goroutine touches it.
type soundStore struct {
	sounds map[SoundId]*asset
}

func newSoundStore() soundStore {
	return soundStore{
		sounds: make(map[SoundId]*asset),
	}
}

func (s *soundStore) add(id SoundId, data []float32) {
	s.sounds[id] = &asset{id: id, data: data}
}

func (s *soundStore) get(id SoundId) (*asset, bool) {
	a, ok := s.sounds[id]
	return a, ok
}

func (s *soundStore) remove(id SoundId) bool {
	if _, ok := s.sounds[id]; !ok {
		return false
	}
	delete(s.sounds, id)
	return true
}

func (s *soundStore) clear() {
	clear(s.sounds)
}

func (s *soundStore) len() int {
	return len(s.sounds)
}
