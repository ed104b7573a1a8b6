package audio

// command is a message from a Control to the mixer.
// The set of implementations is closed: every type below must be handled in
// Mixer.apply, which panics on anything else.
type command interface {
	isCommand()
}

type addSoundCmd struct {
	id   SoundId
	data []float32
}

type playCmd struct {
	sound    SoundId
	playback PlaybackId
	params   PlayParams
}

type stopCmd struct {
	playback PlaybackId
}

type stopAllCmd struct {
	sound SoundId
}

type setVolumeCmd struct {
	playback PlaybackId
	volume   float32
}

type setVolumeAllCmd struct {
	sound  SoundId
	volume float32
}

type setPitchCmd struct {
	playback PlaybackId
	pitch    float64
}

type deleteSoundCmd struct {
	sound SoundId
}

type setMasterVolumeCmd struct {
	volume float32
}

type setChannelVolumeCmd struct {
	channel ChannelId
	volume  float32
}

type setChannelPausedCmd struct {
	channel ChannelId
	paused  bool
}

func (addSoundCmd) isCommand()         {}
func (playCmd) isCommand()             {}
func (stopCmd) isCommand()             {}
func (stopAllCmd) isCommand()          {}
func (setVolumeCmd) isCommand()        {}
func (setVolumeAllCmd) isCommand()     {}
func (setPitchCmd) isCommand()         {}
func (deleteSoundCmd) isCommand()      {}
func (setMasterVolumeCmd) isCommand()  {}
func (setChannelVolumeCmd) isCommand() {}
func (setChannelPausedCmd) isCommand() {}
