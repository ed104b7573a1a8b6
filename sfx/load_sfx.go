package sfx

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

// LoadFolder loads sound effects from a regular folder.
// See Load for more information.
func LoadFolder(folder string, ctl *audio.Control) error {
	return Load(vfs.OS(folder), ctl)
}

// Load loads sound effects from a virtual filesystem and hands them to ctl.
// At the root of the filesystem there must be a "sfx.json" file, which references any files to be loaded.
// Variations that fail to load are logged and skipped. Sounds from a previous Load are deleted.
func Load(fileSystem vfs.Opener, ctl *audio.Control) error {
	lock.Lock()
	defer lock.Unlock()
	start := time.Now()
	soundEffects, err := loadRegistry(fileSystem, "sfx.json")
	if err != nil {
		return err
	}
	unload()

	sounds := make(map[string]audio.SoundId)
	effects := make(map[Id]*Sfx, len(soundEffects))
	for _, e := range soundEffects {
		variations := e.Variations[:0]
		for _, v := range e.Variations {
			id, ok := sounds[v.Path]
			if !ok {
				mem, err := loaders.DecodeFS(fileSystem, v.Path)
				if err != nil {
					slog.Error("sfx: failed to load sound effect", "path", v.Path, "err", err)
					continue
				}
				id = ctl.LoadAsset(mem)
				sounds[v.Path] = id
			}
			v.sound = id
			v.volume = clampVolume(e.Volume * v.Volume)
			variations = append(variations, v)
		}
		e.Variations = variations
		effects[e.Id] = e
	}
	loadedSfx = effects
	control = ctl

	slog.Info("sfx: loaded sound effects", "count", len(loadedSfx), "sounds", len(sounds),
		"elapsed", time.Since(start))
	return nil
}

// unload deletes the sounds of the previous Load. lock must be held.
func unload() {
	if control == nil {
		return
	}
	deleted := make(map[audio.SoundId]bool)
	for _, e := range loadedSfx {
		for _, v := range e.Variations {
			if !deleted[v.sound] {
				control.DeleteAsset(v.sound)
				deleted[v.sound] = true
			}
		}
	}
	loadedSfx = nil
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

func loadRegistry(fs vfs.Opener, path string) (registry []*Sfx, err error) {
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
