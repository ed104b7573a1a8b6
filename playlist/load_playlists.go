package playlist

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/tools/godoc/vfs"

	"github.com/Lundis/go-gamemixer/audio"
	"github.com/Lundis/go-gamemixer/loaders"
)

var lock sync.Mutex

// LoadFolder loads playlists from a regular folder.
// See Load for more information.
func LoadFolder(folder string, ctl *audio.Control) error {
	return Load(vfs.OS(folder), ctl)
}

// Load loads playlists from a virtual filesystem and hands the tracks to ctl.
// At the root of the filesystem there must be a "playlist.json" file, which references any files to be loaded.
// A playlist with a track that fails to load is skipped. Tracks from a previous Load are deleted.
func Load(fileSystem vfs.Opener, ctl *audio.Control) error {
	lock.Lock()
	defer lock.Unlock()
	start := time.Now()
	playlists, err := loadRegistry(fileSystem, "playlist.json")
	if err != nil {
		return err
	}
	unload()
	control = ctl

	loaded := make(map[Id]*PlayList, len(playlists))
playlistLoop:
	for _, pl := range playlists {
		var sounds []audio.SoundId
		for _, track := range pl.Tracks {
			mem, err := loaders.DecodeFS(fileSystem, track.Path)
			if err != nil {
				slog.Error("playlist: failed to load music track", "playlist", string(pl.Id), "path", track.Path, "err", err)
				for _, id := range sounds {
					ctl.DeleteAsset(id)
				}
				continue playlistLoop
			}
			track.sound = ctl.LoadAsset(mem)
			track.duration = time.Duration(len(mem)/audio.ChannelCount) * time.Second / audio.SampleRate
			track.Volume = min(max(track.Volume, 0), 1)
			sounds = append(sounds, track.sound)
		}
		loaded[pl.Id] = pl
	}
	playLists = loaded

	slog.Info("playlist: loaded playlists", "count", len(playLists), "elapsed", time.Since(start))
	return nil
}

// unload stops the current playlist and deletes all loaded tracks. lock must be held.
func unload() {
	if control == nil {
		return
	}
	if currentPlayList != nil {
		currentPlayList.stop()
		currentPlayList = nil
	}
	for _, pl := range playLists {
		for _, track := range pl.Tracks {
			control.DeleteAsset(track.sound)
		}
	}
	playLists = nil
}

func readFile(fs vfs.Opener, path string) (data []byte, err error) {
	file, err := fs.Open(path)
	if err != nil {
		return
	}
	data, err = io.ReadAll(file)
	_ = file.Close()
	return
}

func loadRegistry(fs vfs.Opener, path string) (registry []*PlayList, err error) {
	data, err := readFile(fs, path)
	if err != nil {
		err = fmt.Errorf("failed to open %s: %w", path, err)
		return
	}
	err = json.Unmarshal(data, &registry)
	if err != nil {
		err = fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return
}
