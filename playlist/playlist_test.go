package playlist

import (
	"testing"
	"time"

	"golang.org/x/tools/godoc/vfs/mapfs"

	"github.com/Lundis/go-gamemixer/audio"
	"github.com/Lundis/go-gamemixer/internal/testaudio"
)

const registry = `[
	{"Id": "battle", "Tracks": [
		{"Path": "a.wav", "Name": "Charge", "Author": "A", "Volume": 1},
		{"Path": "b.wav", "Name": "Retreat", "Author": "B", "Volume": 0.5}
	]},
	{"Id": "menu", "Tracks": [
		{"Path": "a.wav", "Name": "Theme", "Volume": 3}
	]},
	{"Id": "broken", "Tracks": [
		{"Path": "a.wav"},
		{"Path": "missing.ogg"}
	]}
]`

// tenthOfASecond is a stereo track of 4410 frames.
func tenthOfASecond(t *testing.T) string {
	return string(testaudio.WAV(t, 44100, 2, make([]int, 2*4410)))
}

// loadTestRegistry loads the registry into a fresh mixer. Playlists are
// package state, so tests using it do not run in parallel.
func loadTestRegistry(t *testing.T) *audio.Mixer {
	t.Helper()
	fs := mapfs.New(map[string]string{
		"playlist.json": registry,
		"a.wav":         tenthOfASecond(t),
		"b.wav":         tenthOfASecond(t),
	})
	m, ctl := audio.New()
	t.Cleanup(func() {
		Stop()
		m.Close()
	})
	if err := Load(fs, ctl); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func fill(m *audio.Mixer) {
	m.FillBuffer(make([]float32, 2), 1)
}

func TestLoad(t *testing.T) {
	m := loadTestRegistry(t)
	fill(m)

	if _, ok := playLists["broken"]; ok {
		t.Fatalf("playlist with a missing track was loaded")
	}
	// battle and menu load three tracks; broken loads one and deletes it again
	if got := m.Stats().Sounds; got != 3 {
		t.Fatalf("%d sounds loaded, want 3", got)
	}
	track := playLists["battle"].Tracks[0]
	if track.Duration() != 100*time.Millisecond {
		t.Fatalf("duration = %v, want 100ms", track.Duration())
	}
	if got := playLists["menu"].Tracks[0].Volume; got != 1 {
		t.Fatalf("volume %v not clamped to 1", got)
	}
}

func TestLoadMissingRegistry(t *testing.T) {
	_, ctl := audio.New()
	if err := Load(mapfs.New(map[string]string{}), ctl); err == nil {
		t.Fatalf("Load without playlist.json succeeded")
	}
}

func fillFrames(m *audio.Mixer, frames int) {
	m.FillBuffer(make([]float32, 2*frames), frames)
}

func TestPlayAdvancesTracks(t *testing.T) {
	m := loadTestRegistry(t)

	Id("battle").Play()
	fill(m)
	id, track, ok := NowPlaying()
	if !ok || id != "battle" || track.Name != "Charge" {
		t.Fatalf("NowPlaying() = %q, %q, %v", id, track.Name, ok)
	}

	// the mixer still reports the track, however much time has passed
	Process(0)
	Process(time.Hour)
	if _, track, _ := NowPlaying(); track.Name != "Charge" {
		t.Fatalf("advanced to %q before the track ended", track.Name)
	}
	fillFrames(m, 4410)
	Process(time.Hour + time.Millisecond)
	if _, track, _ := NowPlaying(); track.Name != "Retreat" {
		t.Fatalf("still on %q after the track ended", track.Name)
	}
	fill(m)
	s := m.Stats()
	if s.Voices != 1 || s.PlaybacksStarted != 2 {
		t.Fatalf("voices %d started %d, want 1 and 2", s.Voices, s.PlaybacksStarted)
	}

	// a paused track keeps its place
	Pause()
	fillFrames(m, 4410)
	Process(2 * time.Hour)
	if _, track, _ := NowPlaying(); track.Name != "Retreat" {
		t.Fatalf("advanced to %q while paused", track.Name)
	}
	Id("battle").Play()
	fillFrames(m, 4410)
	Process(2*time.Hour + time.Millisecond)
	if _, track, _ := NowPlaying(); track.Name != "Charge" {
		t.Fatalf("did not wrap around to the first track, on %q", track.Name)
	}
}

func TestProcessWithoutMixerFallsBackToDuration(t *testing.T) {
	loadTestRegistry(t)

	Id("battle").Play()
	Process(0)
	Process(50 * time.Millisecond)
	if _, track, _ := NowPlaying(); track.Name != "Charge" {
		t.Fatalf("advanced to %q before the track's duration", track.Name)
	}

	// time spent paused does not count
	Pause()
	Process(500 * time.Millisecond)
	if _, track, _ := NowPlaying(); track.Name != "Charge" {
		t.Fatalf("advanced to %q while paused", track.Name)
	}
	Id("battle").Play()
	Process(550 * time.Millisecond)
	if _, track, _ := NowPlaying(); track.Name != "Retreat" {
		t.Fatalf("still on %q after the track's duration", track.Name)
	}
}

func TestSingleTrackLoops(t *testing.T) {
	m := loadTestRegistry(t)

	Id("menu").Play()
	Process(0)
	Process(time.Hour)
	fill(m)
	if _, track, _ := NowPlaying(); track.Name != "Theme" {
		t.Fatalf("NowPlaying() = %q, want Theme", track.Name)
	}
	s := m.Stats()
	if s.Voices != 1 || s.PlaybacksStarted != 1 {
		t.Fatalf("voices %d started %d, want 1 and 1", s.Voices, s.PlaybacksStarted)
	}
}

func TestSwitchAndStop(t *testing.T) {
	m := loadTestRegistry(t)

	Id("battle").Play()
	Id("battle").Play()
	Id("menu").Play()
	fill(m)
	if got := m.Stats().Voices; got != 1 {
		t.Fatalf("%d voices after switching playlists, want 1", got)
	}
	if got := m.Stats().PlaybacksStarted; got != 2 {
		t.Fatalf("%d playbacks started, want 2", got)
	}

	Stop()
	fill(m)
	if got := m.Stats().Voices; got != 0 {
		t.Fatalf("%d voices after Stop, want 0", got)
	}
	if _, _, ok := NowPlaying(); ok {
		t.Fatalf("NowPlaying reports a playlist after Stop")
	}

	Id("unknown").Play()
	if _, _, ok := NowPlaying(); ok {
		t.Fatalf("unknown playlist started")
	}
}
