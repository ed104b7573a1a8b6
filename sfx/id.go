package sfx

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Id is used to identify a specific sound effect
// Use Play to play the sounds after loading them
type Id string

func (id Id) Play() bool {
	return id.PlayFadeIn(0)
}

func (id Id) PlayRandomFadeIn(maxFadeIn time.Duration) bool {
	if maxFadeIn <= 0 {
		return id.PlayFadeIn(0)
	}
	return id.PlayFadeIn(time.Duration(rand.Int64N(int64(maxFadeIn))))
}

// PlayFadeIn plays a random variation of the effect. It returns false if the
// effect is not loaded, has no variations, or every variation is throttled.
func (id Id) PlayFadeIn(fadeIn time.Duration) bool {
	lock.Lock()
	defer lock.Unlock()
	if loadedSfx, ok := loadedSfx[id]; ok {
		return loadedSfx.play(control, fadeIn)
	}
	slog.Warn("sfx: not loaded", "id", string(id))
	return false
}
