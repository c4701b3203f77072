// Package chunk indexes a track's effects into fixed one-second buckets so
// each frame only looks at the effects that can be active around it.
package chunk

import (
	"iter"
	"slices"
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/effect"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Size is the width of one chunk.
const Size = time.Second

type chunk struct {
	effects  []int
	disabled []int
}

// Collection is the immutable temporal index of one track. It is safe for
// concurrent readers.
type Collection struct {
	effects     []effect.Effect
	disabled    []effect.Interval
	transitions map[light.ID][]effect.BackgroundTransition
	lightOrder  []light.ID
	chunks      []chunk
}

// Index returns the chunk index containing t, rounding towards negative
// infinity.
func Index(t time.Duration) int {
	i := int(t / Size)
	if t < 0 && t%Size != 0 {
		i--
	}
	return i
}

// ChunkCount returns the number of chunks.
func (c *Collection) ChunkCount() int { return len(c.chunks) }

// View is the read-only content of a single chunk. The zero View is empty.
type View struct {
	parent *Collection
	chunk  *chunk
}

// Empty reports whether the view has no chunk behind it.
func (v View) Empty() bool { return v.chunk == nil }

// Effects yields the chunk's effects in flattened compositing order.
// Membership is a superset: callers re-check each effect's interval.
func (v View) Effects() iter.Seq[effect.Effect] {
	return func(yield func(effect.Effect) bool) {
		if v.chunk == nil {
			return
		}
		for _, i := range v.chunk.effects {
			if !yield(v.parent.effects[i]) {
				return
			}
		}
	}
}

// BackgroundDisabled reports whether a disabled interval recorded in this
// chunk contains t.
func (v View) BackgroundDisabled(t time.Duration) bool {
	if v.chunk == nil {
		return false
	}
	for _, i := range v.chunk.disabled {
		if v.parent.disabled[i].Contains(t) {
			return true
		}
	}
	return false
}

// At returns the chunk containing t. Times outside the track give an empty
// view, never an error.
func (c *Collection) At(t time.Duration) View {
	i := Index(t)
	if i < 0 || i >= len(c.chunks) {
		return View{}
	}
	return View{parent: c, chunk: &c.chunks[i]}
}

// EffectsAt yields the candidate effects around t.
func (c *Collection) EffectsAt(t time.Duration) iter.Seq[effect.Effect] {
	return c.At(t).Effects()
}

// BackgroundDisabledAt reports whether the backdrop is disabled at t.
func (c *Collection) BackgroundDisabledAt(t time.Duration) bool {
	return c.At(t).BackgroundDisabled(t)
}

// Transitions returns the start-ordered backdrop transitions of id.
// The returned slice must not be modified.
func (c *Collection) Transitions(id light.ID) []effect.BackgroundTransition {
	return c.transitions[id]
}

// TransitionLights returns every light with at least one transition,
// ordered by key.
func (c *Collection) TransitionLights() []light.ID {
	return slices.Clone(c.lightOrder)
}

// BackgroundTransitions yields each light's start-ordered transitions in key
// order. The yielded slices must not be modified.
func (c *Collection) BackgroundTransitions() iter.Seq2[light.ID, []effect.BackgroundTransition] {
	return func(yield func(light.ID, []effect.BackgroundTransition) bool) {
		for _, id := range c.lightOrder {
			if !yield(id, c.transitions[id]) {
				return
			}
		}
	}
}

// Effects returns a copy of all effects in flattened order.
func (c *Collection) Effects() []effect.Effect {
	out := make([]effect.Effect, len(c.effects))
	copy(out, c.effects)
	return out
}

// Disabled returns a copy of all disabled intervals.
func (c *Collection) Disabled() []effect.Interval {
	out := make([]effect.Interval, len(c.disabled))
	copy(out, c.disabled)
	return out
}
