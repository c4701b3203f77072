// Package player drives the interpreter at a fixed rate and publishes the
// composited frames on the event bus.
package player

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/interpreter"
	"github.com/NALStudio/NDiscoPlus/internal/ledger"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// WallClock is the system clock.
type WallClock struct{}

// Now returns time.Now().
func (WallClock) Now() time.Time { return time.Now() }

// Player owns the active track data and playback position.
type Player struct {
	clock    Clock
	bus      *eventbus.Bus
	ledger   *ledger.Ledger
	interval time.Duration
	timer    *interpreter.FrameTimer

	mu        sync.Mutex
	records   []light.Record
	data      *interpreter.Data
	duration  time.Duration
	startedAt time.Time
	playing   bool
	lastFrame interpreter.Frame
}

// New creates a player ticking every interval. ledger may be nil.
func New(clock Clock, bus *eventbus.Bus, l *ledger.Ledger, records []light.Record, interval, fpsLogPeriod time.Duration) *Player {
	return &Player{
		clock:    clock,
		bus:      bus,
		ledger:   l,
		interval: interval,
		timer:    interpreter.NewFrameTimer(fpsLogPeriod),
		records:  records,
	}
}

// Load replaces the track data. Playback stops until Play is called.
func (p *Player) Load(data *interpreter.Data, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.data = data
	p.duration = duration
	p.playing = false
	if data != nil {
		p.records = data.Lights
	}
}

// Play starts the loaded track from the beginning.
func (p *Player) Play() bool {
	return p.Seek(0)
}

// Seek starts playback at progress.
func (p *Player) Seek(progress time.Duration) bool {
	p.mu.Lock()
	if p.data == nil {
		p.mu.Unlock()
		log.Warn().Msg("No track loaded, ignoring play request")
		return false
	}
	p.startedAt = p.clock.Now().Add(-progress)
	wasPlaying := p.playing
	p.playing = true
	trackID := p.data.TrackID
	p.mu.Unlock()

	if !wasPlaying {
		p.record(ledger.EventPlaybackStarted, eventbus.EventTypePlaybackStarted, trackID, map[string]any{
			"progress_ms": progress.Milliseconds(),
		})
	}
	log.Info().Str("track_id", trackID).Dur("progress", progress).Msg("Playback started")
	return true
}

// Stop halts playback. Lights go dark on the next tick.
func (p *Player) Stop() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	progress := p.clock.Now().Sub(p.startedAt)
	trackID := p.data.TrackID
	p.mu.Unlock()

	p.record(ledger.EventPlaybackStopped, eventbus.EventTypePlaybackStopped, trackID, map[string]any{
		"progress_ms": progress.Milliseconds(),
	})
	log.Info().Str("track_id", trackID).Dur("progress", progress).Msg("Playback stopped")
}

// Playing reports whether a track is playing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// LastFrame returns a copy of the most recently published frame.
func (p *Player) LastFrame() interpreter.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastFrame.Clone()
}

// Step composites and publishes one frame.
func (p *Player) Step() interpreter.Frame {
	now := p.clock.Now()
	p.timer.Tick(now)

	p.mu.Lock()
	data, playing := p.data, p.playing
	progress := now.Sub(p.startedAt)
	finished := playing && p.duration > 0 && progress >= p.duration
	records := p.records
	p.mu.Unlock()

	if finished {
		p.Stop()
		playing = false
	}

	var frame interpreter.Frame
	trackID := ""
	if !playing || data == nil {
		frame = interpreter.Black(0, records)
	} else {
		trackID = data.TrackID
		var err error
		frame, err = interpreter.Update(progress, data)
		if err != nil {
			p.fault(data, progress, err)
			frame = interpreter.Black(progress, records)
		}
	}

	p.mu.Lock()
	p.lastFrame = frame
	p.mu.Unlock()

	p.bus.Publish(eventbus.Event{
		Type:    eventbus.EventTypeFrame,
		TrackID: trackID,
		Payload: frame,
	})
	return frame
}

// fault drops data after the interpreter rejected it.
func (p *Player) fault(data *interpreter.Data, progress time.Duration, err error) {
	log.Error().Err(err).
		Str("track_id", data.TrackID).
		Dur("progress", progress).
		Msg("Interpreter failed, dropping track data")

	p.mu.Lock()
	if p.data == data {
		p.data = nil
		p.playing = false
	}
	p.mu.Unlock()

	p.record(ledger.EventInterpreterFault, eventbus.EventTypeInterpreterFault, data.TrackID, map[string]any{
		"error":       err.Error(),
		"progress_ms": progress.Milliseconds(),
	})
}

func (p *Player) record(lt ledger.EventType, bt eventbus.EventType, trackID string, payload map[string]any) {
	if p.ledger != nil {
		if err := p.ledger.AppendWithSource(lt, trackID, "player", payload); err != nil {
			log.Error().Err(err).Str("event_type", string(lt)).Msg("Failed to append ledger entry")
		}
	}
	p.bus.Publish(eventbus.Event{Type: bt, TrackID: trackID, Payload: payload})
}

// Run ticks until ctx is cancelled, then publishes a final dark frame.
func (p *Player) Run(ctx context.Context) error {
	log.Info().Dur("interval", p.interval).Msg("Player started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Stop()
			p.Step()
			log.Info().Msg("Player stopped")
			return nil
		case <-ticker.C:
			p.Step()
		}
	}
}
