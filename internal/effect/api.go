package effect

import (
	"fmt"

	"github.com/NALStudio/NDiscoPlus/internal/channel"
	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// API is what effect authors write into while a track is being prepared.
// It is not safe for concurrent use.
type API struct {
	Config     Config
	Background *Background

	channels []*Channel
}

// NewAPI creates empty channels for every real tier.
func NewAPI(cfg Config, records []light.Record) *API {
	api := &API{
		Config:     cfg,
		Background: newBackground(records),
		channels:   make([]*Channel, 0, len(channel.Ordered)),
	}
	for _, k := range channel.Ordered {
		api.channels = append(api.channels, newChannel(k, records))
	}
	return api
}

// Channel returns the channel for tier k.
func (a *API) Channel(k channel.Channel) (*Channel, bool) {
	for _, c := range a.channels {
		if c.kind == k {
			return c, true
		}
	}
	return nil, false
}

// Channels returns the channels in ascending priority.
func (a *API) Channels() []*Channel {
	out := make([]*Channel, len(a.channels))
	copy(out, a.channels)
	return out
}

// Flattened returns every effect ordered by channel priority, then by
// insertion order. Later entries composite over earlier ones.
func (a *API) Flattened() []Effect {
	n := 0
	for _, c := range a.channels {
		n += len(c.effects)
	}
	out := make([]Effect, 0, n)
	for _, c := range a.channels {
		out = append(out, c.effects...)
	}
	return out
}

// ClearFor clears every channel author may clear over iv, then lays a reset
// effect for each governed light so the window starts from reset.
func (a *API) ClearFor(author channel.Channel, iv Interval, reset func(light.Light) color.Color) {
	for _, c := range a.channels {
		if !author.MayClear(c.kind) {
			continue
		}
		c.Clear(iv.Start, iv.End)
		for _, l := range c.lights {
			c.Add(NewColor(l.ID, iv.Start, iv.Duration(), reset(l)))
		}
	}
}

// ClearForFlash reserves iv for a flash: channels up to Flash are cleared
// and reset to each light's black point.
func (a *API) ClearForFlash(iv Interval) {
	a.ClearFor(channel.Flash, iv, func(l light.Light) color.Color {
		return l.Black()
	})
}

// ClearForStrobes reserves the window spanning all intervals for strobes.
// Every channel is cleared and reset to the strobe colour at brightness 0
// so brightness interpolation keeps the strobe hue.
func (a *API) ClearForStrobes(intervals []Interval) error {
	if len(intervals) == 0 {
		return nil
	}

	window := intervals[0]
	for _, iv := range intervals[1:] {
		window.Start = min(window.Start, iv.Start)
		window.End = max(window.End, iv.End)
	}

	reset, err := a.Config.StrobeColor.WithBrightness(0)
	if err != nil {
		return fmt.Errorf("strobe reset colour: %w", err)
	}
	a.ClearFor(channel.Strobe, window, func(light.Light) color.Color { return reset })
	return nil
}
