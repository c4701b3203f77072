package hue

import (
	"context"
	"sync"
	"time"

	"github.com/amimof/huego"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/interpreter"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// StateSetter updates bridge lights. *huego.Bridge implements it.
type StateSetter interface {
	SetLightStateContext(ctx context.Context, i int, l huego.State) (*huego.Response, error)
}

// Sink forwards composited frames to bridge lights. Only the newest frame
// is sent; lights whose state did not change are skipped.
type Sink struct {
	bridge   StateSetter
	mappings []Mapping
	limiter  *rate.Limiter
	timeout  time.Duration

	mu        sync.Mutex
	latest    *interpreter.Frame
	latestSeq uint64
	trigger   chan struct{}

	// owned by Run
	sent map[light.ID]huego.State
}

// NewSink creates a bridge sink sending at most rateHz light updates per second.
func NewSink(bridge StateSetter, mappings []Mapping, rateHz float64, timeout time.Duration) *Sink {
	if rateHz <= 0 {
		rateHz = 25
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Sink{
		bridge:   bridge,
		mappings: mappings,
		limiter:  rate.NewLimiter(rate.Limit(rateHz), max(1, int(rateHz))),
		timeout:  timeout,
		trigger:  make(chan struct{}, 1),
		sent:     make(map[light.ID]huego.State, len(mappings)),
	}
}

// HandleFrame is an eventbus handler for frame events.
func (s *Sink) HandleFrame(e eventbus.Event) {
	frame, ok := e.Payload.(interpreter.Frame)
	if !ok {
		return
	}

	s.mu.Lock()
	if e.Seq < s.latestSeq {
		s.mu.Unlock()
		return
	}
	s.latest, s.latestSeq = &frame, e.Seq
	s.mu.Unlock()

	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run sends frames until ctx is cancelled.
func (s *Sink) Run(ctx context.Context) error {
	log.Info().Int("lights", len(s.mappings)).Msg("Hue sink started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Hue sink stopped")
			return nil
		case <-s.trigger:
			s.mu.Lock()
			frame := s.latest
			s.latest = nil
			s.mu.Unlock()

			if frame == nil {
				continue
			}
			if err := s.push(ctx, *frame); err != nil {
				log.Info().Msg("Hue sink stopped")
				return nil
			}
		}
	}
}

// push sends the changed lights of frame. It only fails when ctx is done.
func (s *Sink) push(ctx context.Context, frame interpreter.Frame) error {
	for _, m := range s.mappings {
		c, ok := frame.Lights[m.Light.ID]
		if !ok {
			continue
		}

		state := State(c)
		if prev, ok := s.sent[m.Light.ID]; ok && sameState(prev, state) {
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
		_, err := s.bridge.SetLightStateContext(reqCtx, m.Number, state)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Int("light", m.Number).Str("id", m.Light.ID.String()).Msg("Failed to set light state")
			continue
		}
		s.sent[m.Light.ID] = state
	}
	return nil
}
