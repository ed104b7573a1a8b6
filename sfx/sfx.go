package sfx

import (
	"math/rand/v2"
	"time"

	"github.com/Lundis/go-gamemixer/audio"
)

var (
	loadedSfx map[Id]*Sfx
	control   *audio.Control
)

type Sfx struct {
	Id           Id
	Volume       float32
	ThrottlingMs int
	Variations   []*SfxVariant
	lastPlayed   time.Time
}

type SfxVariant struct {
	Path         string
	Probability  float64
	Volume       float32
	ThrottlingMs int
	sound        audio.SoundId
	volume       float32
	lastPlayed   time.Time
}

func (e *Sfx) play(ctl *audio.Control, fadeIn time.Duration) bool {
	if len(e.Variations) == 0 {
		return false
	}

	now := time.Now()
	if now.Sub(e.lastPlayed) <= time.Duration(e.ThrottlingMs)*time.Millisecond {
		return false
	}
	unThrottled := make([]*SfxVariant, 0, len(e.Variations))
	probabilitySum := 0.0
	for _, v := range e.Variations {
		if now.Sub(v.lastPlayed) > time.Duration(v.ThrottlingMs)*time.Millisecond {
			unThrottled = append(unThrottled, v)
			probabilitySum += v.Probability
		}
	}
	if len(unThrottled) == 0 {
		return false
	}

	random := rand.Float64() * probabilitySum
	chosen := unThrottled[len(unThrottled)-1]
	for _, v := range unThrottled {
		if random < v.Probability {
			chosen = v
			break
		}
		random -= v.Probability
	}
	chosen.play(ctl, fadeIn, now)
	e.lastPlayed = now
	return true
}

func (e *SfxVariant) play(ctl *audio.Control, fadeIn time.Duration, now time.Time) {
	ctl.Play(e.sound, audio.PlayParams{
		Volume:  e.volume,
		Channel: audio.ChannelIdSfx,
		FadeIn:  fadeIn,
	})
	e.lastPlayed = now
}

// clampVolume keeps a configured volume inside the range the mixer accepts.
func clampVolume(v float32) float32 {
	return min(max(v, 0), 1)
}
