// Package observe exports mixer counters as OpenTelemetry metrics.
//
// The mixer keeps its own atomic counters and never calls into OpenTelemetry
// from the audio goroutine. Instruments here are asynchronous: their callbacks
// read a Stats snapshot whenever a reader collects.
package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/Lundis/go-gamemixer/audio"
)

// meterName is the instrumentation scope name used for all mixer metrics.
const meterName = "github.com/Lundis/go-gamemixer"

// StatsSource is implemented by *audio.Mixer.
type StatsSource interface {
	Stats() audio.Stats
}

type instruments struct {
	voices metric.Int64ObservableGauge
	sounds metric.Int64ObservableGauge

	fills    metric.Int64ObservableCounter
	applied  metric.Int64ObservableCounter
	stale    metric.Int64ObservableCounter
	dropped  metric.Int64ObservableCounter
	started  metric.Int64ObservableCounter
	finished metric.Int64ObservableCounter
}

// RegisterMixer creates the mixer instruments on mp and reports src through
// them. Unregister the returned registration to stop reporting.
func RegisterMixer(mp metric.MeterProvider, src StatsSource) (metric.Registration, error) {
	m := mp.Meter(meterName)
	var (
		in  instruments
		err error
	)

	if in.voices, err = m.Int64ObservableGauge("gamemixer.mixer.voices",
		metric.WithDescription("Playbacks currently in the mixer."),
	); err != nil {
		return nil, err
	}
	if in.sounds, err = m.Int64ObservableGauge("gamemixer.mixer.sounds",
		metric.WithDescription("Sounds currently loaded in the mixer."),
	); err != nil {
		return nil, err
	}

	counters := []struct {
		dst  *metric.Int64ObservableCounter
		name string
		desc string
	}{
		{&in.fills, "gamemixer.mixer.fills", "Output buffers filled."},
		{&in.applied, "gamemixer.commands.applied", "Control commands applied by the mixer."},
		{&in.stale, "gamemixer.commands.stale", "Commands that referred to a sound or playback that no longer exists."},
		{&in.dropped, "gamemixer.commands.dropped", "Commands sent after the mixer was closed."},
		{&in.started, "gamemixer.playbacks.started", "Playbacks started."},
		{&in.finished, "gamemixer.playbacks.finished", "Playbacks that ran to the end of their sound."},
	}
	for _, c := range counters {
		if *c.dst, err = m.Int64ObservableCounter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	reg, err := m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := src.Stats()
		o.ObserveInt64(in.voices, int64(s.Voices))
		o.ObserveInt64(in.sounds, int64(s.Sounds))
		o.ObserveInt64(in.fills, int64(s.Fills))
		o.ObserveInt64(in.applied, int64(s.CommandsApplied))
		o.ObserveInt64(in.stale, int64(s.StaleCommands))
		o.ObserveInt64(in.dropped, int64(s.CommandsDropped))
		o.ObserveInt64(in.started, int64(s.PlaybacksStarted))
		o.ObserveInt64(in.finished, int64(s.PlaybacksFinished))
		return nil
	}, in.voices, in.sounds, in.fills, in.applied, in.stale, in.dropped, in.started, in.finished)
	if err != nil {
		return nil, fmt.Errorf("observe: register callback: %w", err)
	}
	return reg, nil
}
