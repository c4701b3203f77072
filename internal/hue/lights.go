package hue

import (
	"context"
	"fmt"

	"github.com/amimof/huego"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/config"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// LightFetcher looks up bridge lights. *huego.Bridge implements it.
type LightFetcher interface {
	GetLightContext(ctx context.Context, i int) (*huego.Light, error)
}

// Mapping binds an entertainment channel light to its bridge light number.
type Mapping struct {
	Light  light.Light
	Number int
}

// Enumerate builds the Hue lights of cfg. Missing model ids and names are
// fetched from the bridge when bridge is non-nil.
func Enumerate(ctx context.Context, cfg config.HueConfig, bridge LightFetcher) ([]Mapping, error) {
	entertainment, err := uuid.Parse(cfg.EntertainmentConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid entertainment configuration id %q: %w", cfg.EntertainmentConfig, err)
	}

	mappings := make([]Mapping, 0, len(cfg.Lights))
	seen := make(map[uint8]bool, len(cfg.Lights))
	for _, lc := range cfg.Lights {
		if seen[lc.Channel] {
			return nil, fmt.Errorf("duplicate hue channel %d", lc.Channel)
		}
		seen[lc.Channel] = true

		m, err := mapping(ctx, entertainment, lc, bridge)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}

	log.Info().
		Str("entertainment_config", entertainment.String()).
		Int("lights", len(mappings)).
		Msg("Hue lights enumerated")
	return mappings, nil
}

func mapping(ctx context.Context, entertainment uuid.UUID, lc config.HueLightConfig, bridge LightFetcher) (Mapping, error) {
	id := light.HueID(entertainment, lc.Channel)
	model, name := lc.Model, lc.Name

	if (model == "" || name == "") && bridge != nil {
		bl, err := bridge.GetLightContext(ctx, lc.Light)
		if err != nil {
			return Mapping{}, fmt.Errorf("failed to fetch bridge light %d: %w", lc.Light, err)
		}
		if model == "" {
			model = bl.ModelID
		}
		if name == "" {
			name = bl.Name
		}
	}
	if name == "" {
		name = id.HumanReadable()
	}

	gamut, ok := GamutForModel(model)
	if !ok {
		log.Debug().Str("model", model).Uint8("channel", lc.Channel).Msg("Unknown hue model, assuming gamut C")
		gamut = color.GamutC
	}

	l := light.Light{
		ID:          id,
		DisplayName: name,
		Position:    lc.Position,
		Gamut:       &gamut,
	}
	if latency := lc.Latency.Duration(); latency > 0 {
		l.ExpectedLatency = &latency
	}
	if lc.PhysicalID != "" {
		physical, err := uuid.Parse(lc.PhysicalID)
		if err != nil {
			return Mapping{}, fmt.Errorf("invalid physical light id for channel %d: %w", lc.Channel, err)
		}
		l.PhysicalID = &physical
	}

	return Mapping{Light: l, Number: lc.Light}, nil
}

// Lights returns the lights of mappings.
func Lights(mappings []Mapping) []light.Light {
	out := make([]light.Light, len(mappings))
	for i, m := range mappings {
		out[i] = m.Light
	}
	return out
}
