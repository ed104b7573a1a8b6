package audio

// ChannelId groups playbacks onto a mixing bus with its own volume and pause state.
type ChannelId int

const (
	ChannelIdDefault  ChannelId = iota
	ChannelIdMusic    ChannelId = iota
	ChannelIdAmbience ChannelId = iota
	ChannelIdSfx      ChannelId = iota
	ChannelIdUi       ChannelId = iota
	ChannelIdDialog   ChannelId = iota
	// ChannelIdLast is for when you want to define additional channels yourself
	ChannelIdLast ChannelId = iota
)

// SetVolume sets the volume of this channel on the default context.
// It does nothing if no context was initialized.
func (cid ChannelId) SetVolume(volume float32) {
	if c := DefaultControl(); c != nil {
		c.SetChannelVolume(cid, volume)
	}
}

// Pause silences this channel on the default context. Playbacks on a paused
// channel keep their position until the channel is resumed.
func (cid ChannelId) Pause() {
	if c := DefaultControl(); c != nil {
		c.PauseChannel(cid)
	}
}

// Resume undoes Pause on the default context.
func (cid ChannelId) Resume() {
	if c := DefaultControl(); c != nil {
		c.ResumeChannel(cid)
	}
}

type channelSettings struct {
	volume float32
	paused bool
}

// busTable holds the master volume and per-channel settings.
// It is owned by the mixer goroutine.
type busTable struct {
	master   float32
	channels map[ChannelId]channelSettings
}

func newBusTable(master float32) busTable {
	return busTable{
		master:   master,
		channels: make(map[ChannelId]channelSettings, int(ChannelIdLast)),
	}
}

func (b *busTable) settings(id ChannelId) channelSettings {
	if s, ok := b.channels[id]; ok {
		return s
	}
	return channelSettings{
		volume: 1,
	}
}

func (b *busTable) setVolume(id ChannelId, volume float32) {
	s := b.settings(id)
	s.volume = volume
	b.channels[id] = s
}

func (b *busTable) setPaused(id ChannelId, paused bool) {
	s := b.settings(id)
	s.paused = paused
	b.channels[id] = s
}

// gain returns the bus volume for playbacks on channel id, i.e. the master
// volume times the channel volume, and whether the channel is paused.
func (b *busTable) gain(id ChannelId) (float32, bool) {
	s := b.settings(id)
	return b.master * s.volume, s.paused
}
