package effect

import (
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/channel"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Channel is one priority tier's effect list together with the lights it
// governs. Effects are kept in insertion order.
type Channel struct {
	kind    channel.Channel
	lights  []light.Light
	effects []Effect
}

func newChannel(kind channel.Channel, records []light.Record) *Channel {
	c := &Channel{kind: kind}
	for _, r := range records {
		if r.Channel.Governs(kind) {
			c.lights = append(c.lights, r.Light)
		}
	}
	return c
}

// Kind returns the tier.
func (c *Channel) Kind() channel.Channel { return c.kind }

// Lights returns the lights governed by this channel.
func (c *Channel) Lights() []light.Light {
	out := make([]light.Light, len(c.lights))
	copy(out, c.lights)
	return out
}

// Effects returns the effects in insertion order.
func (c *Channel) Effects() []Effect {
	out := make([]Effect, len(c.effects))
	copy(out, c.effects)
	return out
}

// Len returns the number of effects.
func (c *Channel) Len() int { return len(c.effects) }

// Add appends an effect.
func (c *Channel) Add(e Effect) {
	c.effects = append(c.effects, e)
}

// Clear removes every effect intersecting [start, end). An effect whose
// plateau begins before start is kept up to start, and one whose plateau
// begins at or after end only loses the part of its fade-in inside the window.
func (c *Channel) Clear(start, end time.Duration) {
	window := Interval{Start: start, End: end}

	kept := c.effects[:0]
	for _, e := range c.effects {
		if !e.Interval().Overlaps(window) {
			kept = append(kept, e)
			continue
		}
		switch {
		case e.Position < start:
			kept = append(kept, truncate(e, start))
		case e.Position >= end:
			kept = append(kept, delayFadeIn(e, end))
		}
	}
	clear(c.effects[len(kept):])
	c.effects = kept
}

// truncate shortens e so it ends no later than at.
func truncate(e Effect, at time.Duration) Effect {
	plateauEnd := min(e.Position+e.Duration, at)
	e.Duration = plateauEnd - e.Position
	e.FadeOut = min(e.FadeOut, at-plateauEnd)
	return e
}

// delayFadeIn shortens e's fade-in so it starts no earlier than at.
func delayFadeIn(e Effect, at time.Duration) Effect {
	e.FadeIn = min(e.FadeIn, e.Position-at)
	return e
}
