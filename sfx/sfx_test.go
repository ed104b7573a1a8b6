package sfx

import (
	"testing"
	"time"

	"golang.org/x/tools/godoc/vfs/mapfs"

	"github.com/Lundis/go-gamemixer/audio"
	"github.com/Lundis/go-gamemixer/internal/testaudio"
)

const registry = `[
	{"Id": "ui-click", "Volume": 1, "Variations": [
		{"Path": "click1.wav", "Probability": 0.5, "Volume": 0.5},
		{"Path": "click2.wav", "Probability": 0.5, "Volume": 0.5}
	]},
	{"Id": "door_slam", "Volume": 2, "ThrottlingMs": 60000, "Variations": [
		{"Path": "click1.wav", "Probability": 1, "Volume": 1}
	]},
	{"Id": "broken", "Volume": 1, "Variations": [
		{"Path": "missing.wav", "Probability": 1, "Volume": 1}
	]}
]`

// loadTestRegistry loads the registry into a fresh mixer. The registry is
// package state, so tests using it do not run in parallel.
func loadTestRegistry(t *testing.T) *audio.Mixer {
	t.Helper()
	wav := string(testaudio.WAV(t, 44100, 2, []int{16384, 16384, 16384, 16384}))
	fs := mapfs.New(map[string]string{
		"sfx.json":   registry,
		"click1.wav": wav,
		"click2.wav": wav,
	})
	m, ctl := audio.New()
	t.Cleanup(func() { m.Close() })
	if err := Load(fs, ctl); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestLoad(t *testing.T) {
	m := loadTestRegistry(t)
	m.FillBuffer(make([]float32, 2), 1)

	if got := m.Stats().Sounds; got != 2 {
		t.Fatalf("%d sounds loaded, want 2 (shared paths decode once)", got)
	}
	if got := len(loadedSfx["broken"].Variations); got != 0 {
		t.Fatalf("broken effect kept %d variations", got)
	}
	if got := loadedSfx["door_slam"].Variations[0].volume; got != 1 {
		t.Fatalf("volume %v not clamped to 1", got)
	}
	if got := loadedSfx["ui-click"].Variations[1].volume; got != 0.5 {
		t.Fatalf("volume = %v, want 0.5", got)
	}
}

func TestReloadDeletesPreviousSounds(t *testing.T) {
	m := loadTestRegistry(t)
	m.FillBuffer(make([]float32, 2), 1)

	fs := mapfs.New(map[string]string{"sfx.json": `[]`})
	if err := Load(fs, m.Control()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.FillBuffer(make([]float32, 2), 1)
	if got := m.Stats().Sounds; got != 0 {
		t.Fatalf("%d sounds left after reload, want 0", got)
	}
}

func TestLoadMissingRegistry(t *testing.T) {
	_, ctl := audio.New()
	if err := Load(mapfs.New(map[string]string{}), ctl); err == nil {
		t.Fatalf("Load without sfx.json succeeded")
	}
	if err := Load(mapfs.New(map[string]string{"sfx.json": "{"}), ctl); err == nil {
		t.Fatalf("Load with broken sfx.json succeeded")
	}
}

func TestPlay(t *testing.T) {
	m := loadTestRegistry(t)

	if !Id("ui-click").Play() {
		t.Fatalf("ui-click did not play")
	}
	if Id("broken").Play() {
		t.Fatalf("effect without variations played")
	}
	if Id("not-there").Play() {
		t.Fatalf("unknown effect played")
	}
	if !Id("door_slam").PlayFadeIn(time.Millisecond) {
		t.Fatalf("door_slam did not play")
	}
	if Id("door_slam").Play() {
		t.Fatalf("throttled effect played")
	}

	buf := make([]float32, 8)
	m.FillBuffer(buf, 4)
	if got := m.Stats().PlaybacksStarted; got != 2 {
		t.Fatalf("%d playbacks started, want 2", got)
	}
	// ui-click at 0.5 squared plus a door slam that is still silent
	if buf[0] != 0.125 {
		t.Fatalf("first sample = %v, want 0.125", buf[0])
	}

	if !Id("ui-click").PlayRandomFadeIn(time.Millisecond) {
		t.Fatalf("ui-click did not play with a random fade-in")
	}
	m.FillBuffer(buf, 4)
	if got := m.Stats().PlaybacksStarted; got != 3 {
		t.Fatalf("%d playbacks started, want 3", got)
	}
}

func TestScheduler(t *testing.T) {
	m := loadTestRegistry(t)

	s := NewScheduler()
	s.PlaySoundEffectAt("ui-click", 2*time.Second)
	s.PlaySoundEffectAtFadeIn("ui-click", 5*time.Second, time.Millisecond)
	s.PlaySoundEffectAtRandomFadeIn("ui-click", time.Second, 0)

	s.Process(5 * time.Second)
	if s.Len() != 0 {
		t.Fatalf("%d sounds left, want 0", s.Len())
	}
	m.FillBuffer(make([]float32, 2), 1)
	// the sound due at 1s is more than 3s late and is dropped
	if got := m.Stats().PlaybacksStarted; got != 2 {
		t.Fatalf("%d playbacks started, want 2", got)
	}

	s.PlaySoundEffectAt("ui-click", 10*time.Second)
	s.Process(9 * time.Second)
	if s.Len() != 1 {
		t.Fatalf("future sound was removed early")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Clear left %d sounds", s.Len())
	}
}

func TestConstantName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ui-button.click": "UiButtonClick",
		"door_slam":       "DoorSlam",
		"boom":            "Boom",
		"two  spaces":     "TwoSpaces",
		"":                "",
	}
	for in, want := range tests {
		if got := constantName(in); got != want {
			t.Errorf("constantName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExportConstants(t *testing.T) {
	loadTestRegistry(t)

	got := ExportConstants()
	want := map[string]string{
		"UiClick":  "ui-click",
		"DoorSlam": "door_slam",
		"Broken":   "broken",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
