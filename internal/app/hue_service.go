package app

import (
	"context"

	"github.com/amimof/huego"
	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/config"
	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/hue"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// HueService owns the bridge connection and the frame sink.
type HueService struct {
	cfg *config.Config

	Bridge   *huego.Bridge
	Mappings []hue.Mapping
	Sink     *hue.Sink
}

// NewHueService creates a new HueService, or nil when Hue is disabled.
func NewHueService(cfg *config.Config) *HueService {
	if !cfg.Lights.Hue.Enabled {
		return nil
	}
	return &HueService{
		cfg:    cfg,
		Bridge: huego.New(cfg.Lights.Hue.Bridge, cfg.Lights.Hue.Token),
	}
}

// Connect enumerates the configured lights on the bridge.
func (s *HueService) Connect(ctx context.Context) error {
	mappings, err := hue.Enumerate(ctx, s.cfg.Lights.Hue, s.Bridge)
	if err != nil {
		return err
	}
	s.Mappings = mappings
	s.Sink = hue.NewSink(s.Bridge, mappings, s.cfg.Lights.Hue.RateLimitHz, s.cfg.Lights.Hue.Timeout.Duration())

	log.Info().Str("bridge", s.cfg.Lights.Hue.Bridge).Int("lights", len(mappings)).Msg("Connected to Hue bridge")
	return nil
}

// Lights returns the enumerated lights.
func (s *HueService) Lights() []light.Light {
	return hue.Lights(s.Mappings)
}

// Start subscribes the sink to frames and runs it.
func (s *HueService) Start(ctx context.Context, bus *eventbus.Bus) {
	bus.Subscribe(eventbus.EventTypeFrame, s.Sink.HandleFrame)
	go func() {
		if err := s.Sink.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Hue sink error")
		}
	}()
}
