package effect

import (
	"github.com/NALStudio/NDiscoPlus/internal/channel"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Background is the backdrop layer beneath all effect channels. It is not a
// Channel: it holds per-light transitions and the intervals in which the
// backdrop must contribute nothing.
type Background struct {
	lights      []light.Light
	transitions []BackgroundTransition
	disabled    []Interval
}

func newBackground(records []light.Record) *Background {
	b := &Background{}
	for _, r := range records {
		if r.Channel.Governs(channel.Background) {
			b.lights = append(b.lights, r.Light)
		}
	}
	return b
}

// Lights returns the lights the backdrop is drawn on.
func (b *Background) Lights() []light.Light {
	out := make([]light.Light, len(b.lights))
	copy(out, b.lights)
	return out
}

// Add records a transition. Ordering and overlap are checked by readers.
func (b *Background) Add(t BackgroundTransition) {
	b.transitions = append(b.transitions, t)
}

// DisableFor suppresses the backdrop over iv.
func (b *Background) DisableFor(iv Interval) {
	b.disabled = append(b.disabled, iv)
}

// Transitions returns the transitions in insertion order.
func (b *Background) Transitions() []BackgroundTransition {
	out := make([]BackgroundTransition, len(b.transitions))
	copy(out, b.transitions)
	return out
}

// Disabled returns the disabled intervals in insertion order.
func (b *Background) Disabled() []Interval {
	out := make([]Interval, len(b.disabled))
	copy(out, b.disabled)
	return out
}
