package audio

import (
	"math"
	"time"
)

// playback is one active instance of a sound. Several playbacks may share the
// same asset; each keeps its own cursor.
type playback struct {
	id      PlaybackId
	sound   *asset
	channel ChannelId
	looped  bool
	volume  float32
	pitch   float64

	// pos is the frame the next fill starts at, phase the fractional part
	// left over by a non-unit pitch.
	pos   int
	phase float64

	fadeFrames int
	fadePos    int

	finished bool
}

func newPlayback(id PlaybackId, a *asset, params PlayParams) playback {
	return playback{
		id:         id,
		sound:      a,
		channel:    params.Channel,
		looped:     params.Looped,
		volume:     params.Volume,
		pitch:      params.Pitch,
		fadeFrames: fadeFrames(params.FadeIn),
	}
}

func fadeFrames(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds() * SampleRate))
}

// fade returns the fade-in multiplier for the next output frame and steps the ramp.
func (p *playback) fade() float32 {
	if p.fadePos >= p.fadeFrames {
		return 1
	}
	f := float32(p.fadePos) / float32(p.fadeFrames)
	p.fadePos++
	return f
}

// fetch copies up to need frames starting at the cursor into m.scratch,
// wrapping around for looped playbacks. It returns the number of frames copied,
// which is less than need only when a non-looped sound runs out.
func (m *Mixer) fetch(p *playback, need int) int {
	data := p.sound.data
	total := len(data) / ChannelCount
	m.scratch = m.scratch[:0]
	pos := p.pos
	got := 0
	for got < need && pos < total {
		n := min(need-got, total-pos)
		m.scratch = append(m.scratch, data[pos*ChannelCount:(pos+n)*ChannelCount]...)
		got += n
		pos += n
		if pos == total && p.looped {
			pos = 0
		}
	}
	return got
}

// render adds frames frames of p into out, scaled by the squared product of
// the playback volume and bus, and advances the cursor.
func (m *Mixer) render(p *playback, out []float32, frames int, bus float32) {
	total := p.sound.frames()
	if total == 0 {
		p.finished = true
		return
	}
	g := p.volume * bus
	g *= g

	if p.pitch == 1 && p.phase == 0 {
		n := m.fetch(p, frames)
		src := m.scratch
		if p.fadePos >= p.fadeFrames {
			for i := 0; i < n*ChannelCount; i++ {
				out[i] += src[i] * g
			}
		} else {
			for i := 0; i < n; i++ {
				f := g * p.fade()
				out[2*i] += src[2*i] * f
				out[2*i+1] += src[2*i+1] * f
			}
		}
		m.advance(p, n, total)
		return
	}

	// Linear interpolation between neighbouring source frames. Output frame i
	// reads source position phase + i*pitch relative to the cursor.
	need := int(p.phase+float64(frames-1)*p.pitch) + 2
	avail := m.fetch(p, need)
	src := m.scratch
	end := p.phase + float64(frames)*p.pitch
	for i := 0; i < frames; i++ {
		x := p.phase + float64(i)*p.pitch
		idx := int(x)
		if idx >= avail {
			end = x
			break
		}
		next := idx + 1
		if next >= avail {
			// past the last frame of a one-shot sound: hold it
			next = idx
		}
		frac := float32(x - float64(idx))
		f := g * p.fade()
		l0, r0 := src[2*idx], src[2*idx+1]
		l1, r1 := src[2*next], src[2*next+1]
		out[2*i] += (l0 + (l1-l0)*frac) * f
		out[2*i+1] += (r0 + (r1-r0)*frac) * f
	}
	adv := int(end)
	p.phase = end - float64(adv)
	m.advance(p, adv, total)
}

func (m *Mixer) advance(p *playback, n, total int) {
	if p.looped {
		p.pos = (p.pos + n) % total
		return
	}
	p.pos += n
	if p.pos >= total {
		p.finished = true
	}
}
