package chunk

import (
	"slices"
	"sort"
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/effect"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// MaxLength bounds the indexed span of any collection. Entries reaching past
// the indexed span stay in the collection but are never returned by a query.
const MaxLength = 6 * time.Hour

// Builder accumulates a track's directives and freezes them into a
// Collection.
type Builder struct {
	length      time.Duration
	effects     []effect.Effect
	disabled    []effect.Interval
	transitions map[light.ID][]effect.BackgroundTransition
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		length:      MaxLength,
		transitions: make(map[light.ID][]effect.BackgroundTransition),
	}
}

// Limit restricts the indexed span to [0, length]. Lengths outside
// (0, MaxLength] are ignored.
func (b *Builder) Limit(length time.Duration) *Builder {
	if length > 0 && length <= MaxLength {
		b.length = length
	}
	return b
}

// AddEffects appends effects in compositing order.
func (b *Builder) AddEffects(effects ...effect.Effect) *Builder {
	b.effects = append(b.effects, effects...)
	return b
}

// AddDisabled appends backdrop-disabled intervals.
func (b *Builder) AddDisabled(intervals ...effect.Interval) *Builder {
	b.disabled = append(b.disabled, intervals...)
	return b
}

// AddTransitions inserts transitions into each light's start-ordered list.
// Transitions with equal starts keep insertion order.
func (b *Builder) AddTransitions(transitions ...effect.BackgroundTransition) *Builder {
	for _, t := range transitions {
		ordered := b.transitions[t.Light]
		i := sort.Search(len(ordered), func(i int) bool { return ordered[i].Start > t.Start })
		b.transitions[t.Light] = slices.Insert(ordered, i, t)
	}
	return b
}

// Build freezes the builder's content. The builder may be reused; later
// additions do not affect the returned Collection.
func (b *Builder) Build() *Collection {
	c := &Collection{
		effects:     slices.Clone(b.effects),
		disabled:    slices.Clone(b.disabled),
		transitions: make(map[light.ID][]effect.BackgroundTransition, len(b.transitions)),
	}
	for id, ts := range b.transitions {
		c.transitions[id] = slices.Clone(ts)
		c.lightOrder = append(c.lightOrder, id)
	}
	sort.Slice(c.lightOrder, func(i, j int) bool {
		return c.lightOrder[i].String() < c.lightOrder[j].String()
	})

	limit := Index(b.length)
	for i, e := range c.effects {
		c.place(e.Start(), e.End(), limit, func(ch *chunk) { ch.effects = append(ch.effects, i) })
	}
	for i, d := range c.disabled {
		c.place(d.Start, d.End, limit, func(ch *chunk) { ch.disabled = append(ch.disabled, i) })
	}
	return c
}

// place registers an entry in every chunk from start to end inclusive.
// Starts before zero are clamped to the first chunk and ends past limit to
// the last one.
func (c *Collection) place(start, end time.Duration, limit int, add func(*chunk)) {
	first := max(Index(start), 0)
	last := min(Index(end), limit)
	if first > last {
		return
	}
	for len(c.chunks) <= last {
		c.chunks = append(c.chunks, chunk{})
	}
	for j := first; j <= last; j++ {
		add(&c.chunks[j])
	}
}

// FromAPI indexes everything an effect API collected for a track of the
// given length.
func FromAPI(api *effect.API, length time.Duration) *Collection {
	b := NewBuilder().Limit(length).AddEffects(api.Flattened()...)
	if api.Background != nil {
		b.AddTransitions(api.Background.Transitions()...)
		b.AddDisabled(api.Background.Disabled()...)
	}
	return b.Build()
}
