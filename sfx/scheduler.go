package sfx

import (
	"math/rand/v2"
	"time"
)

// lateLimit is how far behind schedule a sound may be and still play.
const lateLimit = 3 * time.Second

// Scheduler lets you register sounds that should play in the future.
//
// If you are making a simulation game, the time is likely virtual,
// and this lets you use any time notion, as long as it is expressed as a
// time.Duration since some epoch of your choice.
//
// Scheduler can be used to schedule sounds to match timed animations,
// without needing to worry about executing it at exactly the right time.
//
// Remember to call Scheduler.Process() from your game loop.
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	sounds []queuedSound
}

type queuedSound struct {
	id         Id
	whenToPlay time.Duration
	fadeIn     time.Duration
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		sounds: make([]queuedSound, 0, 100),
	}
}

func (fs *Scheduler) PlaySoundEffectAt(id Id, at time.Duration) {
	fs.PlaySoundEffectAtFadeIn(id, at, 0)
}

func (fs *Scheduler) PlaySoundEffectAtFadeIn(id Id, at time.Duration, fadeIn time.Duration) {
	fs.sounds = append(fs.sounds, queuedSound{
		whenToPlay: at,
		fadeIn:     fadeIn,
		id:         id,
	})
}

func (fs *Scheduler) PlaySoundEffectAtRandomFadeIn(id Id, at time.Duration, maxFadeIn time.Duration) {
	var fadeIn time.Duration
	if maxFadeIn > 0 {
		fadeIn = time.Duration(rand.Int64N(int64(maxFadeIn)))
	}
	fs.PlaySoundEffectAtFadeIn(id, at, fadeIn)
}

func (fs *Scheduler) Clear() {
	fs.sounds = fs.sounds[:0]
}

// Len returns the number of sounds still waiting.
func (fs *Scheduler) Len() int {
	return len(fs.sounds)
}

// Process plays every sound that is due at now. Sounds more than three
// seconds overdue are dropped without playing.
func (fs *Scheduler) Process(now time.Duration) {
	i := 0
	for i < len(fs.sounds) {
		if fs.sounds[i].whenToPlay > now {
			i++
			continue
		}
		if fs.sounds[i].whenToPlay >= now-lateLimit {
			fs.sounds[i].id.PlayFadeIn(fs.sounds[i].fadeIn)
		}
		// clean array by moving the last element to the now free position
		fs.sounds[i] = fs.sounds[len(fs.sounds)-1]
		fs.sounds = fs.sounds[:len(fs.sounds)-1]
	}
}
