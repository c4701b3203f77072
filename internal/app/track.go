package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/chunk"
	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/effect"
	"github.com/NALStudio/NDiscoPlus/internal/eventbus"
	"github.com/NALStudio/NDiscoPlus/internal/interpreter"
	"github.com/NALStudio/NDiscoPlus/internal/ledger"
	"github.com/NALStudio/NDiscoPlus/internal/light"
	"github.com/NALStudio/NDiscoPlus/internal/lua/modules"
	"github.com/NALStudio/NDiscoPlus/internal/storage"
)

// Generator authors a track's effects into api.
type Generator interface {
	Generate(ctx context.Context, session *modules.Session) error
}

// colorCycleGenerator is used when no effect script is configured.
type colorCycleGenerator struct{}

func (colorCycleGenerator) Generate(_ context.Context, s *modules.Session) error {
	return effect.NewColorCycle(s.Palette, s.Track.Seed).Generate(s.API, s.Track.Duration)
}

// ExportsKept is the number of track exports kept in storage.
const ExportsKept = 8

// TrackPreparer turns a track description into interpreter data.
type TrackPreparer struct {
	generator Generator
	exports   *storage.Exports
	ledger    *ledger.Ledger
	bus       *eventbus.Bus
}

// NewTrackPreparer creates a preparer. A nil generator falls back to the
// colour cycle.
func NewTrackPreparer(generator Generator, exports *storage.Exports, l *ledger.Ledger, bus *eventbus.Bus) *TrackPreparer {
	if generator == nil {
		generator = colorCycleGenerator{}
	}
	return &TrackPreparer{generator: generator, exports: exports, ledger: l, bus: bus}
}

// Prepare generates, indexes and records the effects of track.
func (p *TrackPreparer) Prepare(
	ctx context.Context,
	track modules.Track,
	palette color.Palette,
	cfg effect.Config,
	records []light.Record,
) (*interpreter.Data, error) {
	started := time.Now()

	api := effect.NewAPI(cfg, records)
	if err := p.generator.Generate(ctx, modules.NewSession(api, track, palette, records)); err != nil {
		return nil, fmt.Errorf("failed to generate effects for %s: %w", track.ID, err)
	}

	effects := chunk.FromAPI(api, track.Duration)
	data, err := interpreter.NewData(track.ID, palette, cfg, effects, records)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare %s: %w", track.ID, err)
	}

	if err := p.exports.Save(effects.Export(track.ID)); err != nil {
		log.Warn().Err(err).Str("track_id", track.ID).Msg("Failed to save effect export")
	} else if n, err := p.exports.Prune(ExportsKept); err != nil {
		log.Warn().Err(err).Msg("Failed to prune effect exports")
	} else if n > 0 {
		log.Debug().Int("removed", n).Msg("Pruned old effect exports")
	}

	payload := map[string]any{
		"effects":     len(effects.Effects()),
		"transitions": len(api.Background.Transitions()),
		"disabled":    len(effects.Disabled()),
		"chunks":      effects.ChunkCount(),
		"lights":      len(records),
		"duration_ms": track.Duration.Milliseconds(),
	}
	if err := p.ledger.Append(ledger.EventTrackPrepared, track.ID, payload); err != nil {
		log.Warn().Err(err).Str("track_id", track.ID).Msg("Failed to append ledger entry")
	}
	p.bus.Publish(eventbus.Event{Type: eventbus.EventTypeTrackPrepared, TrackID: track.ID, Payload: payload})

	log.Info().
		Str("track_id", track.ID).
		Int("effects", len(effects.Effects())).
		Int("chunks", effects.ChunkCount()).
		Dur("took", time.Since(started)).
		Msg("Track prepared")

	return data, nil
}
