package playlist

import (
	"time"

	"github.com/Lundis/go-gamemixer/audio"
)

var (
	playLists       map[Id]*PlayList
	currentPlayList *PlayList
	control         *audio.Control
	paused          bool
)

type Id string

type PlayList struct {
	Id           Id
	Tracks       []*Track
	currentTrack int

	playback audio.PlaybackId
	// started is set once the mixer has reported the current track playing.
	started bool
	// elapsed is the unpaused time the current track has been playing,
	// as seen by Process.
	elapsed     time.Duration
	lastProcess time.Duration
	processed   bool
}

type Track struct {
	Path     string
	Name     string
	Author   string
	Volume   float32
	sound    audio.SoundId
	duration time.Duration
}

// Duration returns how long the track plays at native speed.
func (t *Track) Duration() time.Duration {
	return t.duration
}

// Pause pauses the music channel. The current track keeps its position.
func Pause() {
	lock.Lock()
	defer lock.Unlock()
	if control == nil {
		return
	}
	paused = true
	control.PauseChannel(audio.ChannelIdMusic)
}

// Stop stops the current playlist.
func Stop() {
	lock.Lock()
	defer lock.Unlock()
	if currentPlayList != nil {
		currentPlayList.stop()
		currentPlayList = nil
	}
}

// NowPlaying returns the current playlist and track.
func NowPlaying() (Id, Track, bool) {
	lock.Lock()
	defer lock.Unlock()
	if currentPlayList == nil {
		return "", Track{}, false
	}
	return currentPlayList.Id, *currentPlayList.Tracks[currentPlayList.currentTrack], true
}

// Play resumes the music channel and starts the playlist, unless it is already playing.
// A playlist with a single track loops it; longer playlists advance from Process.
func (playListId Id) Play() {
	lock.Lock()
	defer lock.Unlock()
	if control == nil {
		return
	}
	paused = false
	control.ResumeChannel(audio.ChannelIdMusic)
	if currentPlayList != nil && currentPlayList.Id == playListId {
		return
	}
	if currentPlayList != nil {
		currentPlayList.stop()
	}
	currentPlayList = nil
	if pl, ok := playLists[playListId]; ok && len(pl.Tracks) > 0 {
		currentPlayList = pl
		currentPlayList.play()
	}
}

// Process advances the current playlist to its next track once the mixer
// reports that the current one has played to the end. A track the mixer never
// reported as playing is given up on after its duration of unpaused time.
// now is any monotonic clock, such as the time since the game started.
//
// Call Process regularly from your game loop.
func Process(now time.Duration) {
	lock.Lock()
	defer lock.Unlock()
	pl := currentPlayList
	if pl == nil {
		return
	}
	if pl.processed && !paused {
		pl.elapsed += now - pl.lastProcess
	}
	pl.lastProcess = now
	pl.processed = true
	if len(pl.Tracks) < 2 {
		return
	}
	playing := control.IsPlaying(pl.playback)
	if playing {
		pl.started = true
	}
	ended := pl.started && !playing
	if ended || (!pl.started && pl.elapsed >= pl.Tracks[pl.currentTrack].duration) {
		pl.playNext()
	}
}

func (pl *PlayList) play() {
	track := pl.Tracks[pl.currentTrack]
	pl.playback = control.Play(track.sound, audio.PlayParams{
		Looped:  len(pl.Tracks) == 1,
		Volume:  track.Volume,
		Channel: audio.ChannelIdMusic,
	})
	pl.started = false
	pl.elapsed = 0
}

func (pl *PlayList) stop() {
	control.Stop(pl.playback)
	pl.processed = false
}

func (pl *PlayList) playNext() {
	pl.stop()
	pl.currentTrack = (pl.currentTrack + 1) % len(pl.Tracks)
	pl.play()
	pl.processed = true
}
