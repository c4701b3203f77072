// Package sink holds frame consumers that are not device transports.
package sink

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/interpreter"
)

// LogSink writes frames to the logger at debug level, at most once per period.
type LogSink struct {
	period time.Duration
	now    func() time.Time

	mu     sync.Mutex
	last   time.Time
	logged int
}

// NewLogSink creates a sink logging one frame per period.
func NewLogSink(period time.Duration) *LogSink {
	if period <= 0 {
		period = time.Second
	}
	return &LogSink{period: period, now: time.Now}
}

// Register subscribes the sink to bus.
func (s *LogSink) Register(bus *eventbus.Bus) {
	bus.Subscribe(eventbus.EventTypeFrame, s.HandleFrame)
	for _, et := range []eventbus.EventType{
		eventbus.EventTypeTrackPrepared,
		eventbus.EventTypePlaybackStarted,
		eventbus.EventTypePlaybackStopped,
		eventbus.EventTypeInterpreterFault,
	} {
		bus.Subscribe(et, s.HandleTrackEvent)
	}
}

// HandleFrame logs the frame if the period has elapsed.
func (s *LogSink) HandleFrame(e eventbus.Event) {
	frame, ok := e.Payload.(interpreter.Frame)
	event := log.Debug()
	if !ok || !event.Enabled() {
		event.Discard()
		return
	}

	now := s.now()
	s.mu.Lock()
	if !s.last.IsZero() && now.Sub(s.last) < s.period {
		s.mu.Unlock()
		event.Discard()
		return
	}
	s.last = now
	s.logged++
	s.mu.Unlock()

	lights := zerolog.Dict()
	for id, c := range frame.Lights {
		lights = lights.Str(id.String(), c.Hex()+" "+c.String())
	}

	event.
		Str("track_id", e.TrackID).
		Dur("progress", frame.Progress).
		Dict("lights", lights).
		Msg("Frame")
}

// HandleTrackEvent logs playback lifecycle events.
func (s *LogSink) HandleTrackEvent(e eventbus.Event) {
	event := log.Info()
	if e.Type == eventbus.EventTypeInterpreterFault {
		event = log.Warn()
	}
	event = event.Str("event_type", string(e.Type)).Str("track_id", e.TrackID)
	if payload, ok := e.Payload.(map[string]any); ok {
		event = event.Fields(payload)
	}
	event.Msg("Track event")
}

// Logged returns how many frames were written.
func (s *LogSink) Logged() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logged
}
