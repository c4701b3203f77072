// Package interpreter composites a track's background and effects into one
// colour per light at any playback position.
package interpreter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/NALStudio/NDiscoPlus/internal/chunk"
	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/effect"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Data is everything Update needs for one track. It is immutable after
// NewData and safe to share between goroutines.
type Data struct {
	TrackID string
	Palette color.Palette
	Config  effect.Config
	Effects *chunk.Collection
	Lights  []light.Record

	backdrop map[light.ID]color.Color
}

// NewData assigns each light its fallback backdrop colour: roster lights take
// palette colours in roster order, any other light with transitions follows
// in key order. Fallbacks use the configured base brightness.
func NewData(trackID string, palette color.Palette, cfg effect.Config, effects *chunk.Collection, lights []light.Record) (*Data, error) {
	if palette.Len() == 0 {
		return nil, errors.New("palette has no colours")
	}
	if effects == nil {
		effects = chunk.NewBuilder().Build()
	}

	d := &Data{
		TrackID:  trackID,
		Palette:  palette,
		Config:   cfg,
		Effects:  effects,
		Lights:   append([]light.Record(nil), lights...),
		backdrop: make(map[light.ID]color.Color),
	}

	order := make([]light.ID, 0, len(lights))
	for _, r := range d.Lights {
		order = append(order, r.Light.ID)
	}

	for _, id := range effects.TransitionLights() {
		if !slices.Contains(order, id) {
			order = append(order, id)
		}
	}

	for i, id := range order {
		if _, dup := d.backdrop[id]; dup {
			continue
		}
		c, err := palette.At(i % palette.Len()).WithBrightness(cfg.BaseBrightness)
		if err != nil {
			return nil, fmt.Errorf("backdrop colour for %s: %w", id, err)
		}
		d.backdrop[id] = c
	}

	return d, nil
}

// Backdrop returns the fallback backdrop colour of id.
func (d *Data) Backdrop(id light.ID) color.Color {
	return d.backdrop[id]
}
