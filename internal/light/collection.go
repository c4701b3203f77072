package light

import (
	"fmt"
	"math"
	"sort"
)

// Bounds is the axis-aligned box enclosing a collection.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// Collection is an ordered, read-only set of lights.
type Collection struct {
	lights []Light
	byID   map[ID]int
	bounds Bounds
}

// NewCollection builds a collection, rejecting duplicate ids.
func NewCollection(lights []Light) (*Collection, error) {
	c := &Collection{
		lights: make([]Light, len(lights)),
		byID:   make(map[ID]int, len(lights)),
		bounds: Bounds{
			MinX: math.Inf(1), MaxX: math.Inf(-1),
			MinY: math.Inf(1), MaxY: math.Inf(-1),
			MinZ: math.Inf(1), MaxZ: math.Inf(-1),
		},
	}
	copy(c.lights, lights)

	for i, l := range c.lights {
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate light %s", l.ID)
		}
		c.byID[l.ID] = i

		c.bounds.MinX = math.Min(c.bounds.MinX, l.Position.X)
		c.bounds.MaxX = math.Max(c.bounds.MaxX, l.Position.X)
		c.bounds.MinY = math.Min(c.bounds.MinY, l.Position.Y)
		c.bounds.MaxY = math.Max(c.bounds.MaxY, l.Position.Y)
		c.bounds.MinZ = math.Min(c.bounds.MinZ, l.Position.Z)
		c.bounds.MaxZ = math.Max(c.bounds.MaxZ, l.Position.Z)
	}
	if len(lights) == 0 {
		c.bounds = Bounds{}
	}

	return c, nil
}

// Len returns the number of lights.
func (c *Collection) Len() int { return len(c.lights) }

// Lights returns a copy of the lights in insertion order.
func (c *Collection) Lights() []Light {
	out := make([]Light, len(c.lights))
	copy(out, c.lights)
	return out
}

// Get looks up a light by id.
func (c *Collection) Get(id ID) (Light, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Light{}, false
	}
	return c.lights[i], true
}

// Bounds returns the bounding box of all light positions.
func (c *Collection) Bounds() Bounds { return c.bounds }

// SplitX groups lights left to right, starting a new group wherever the gap
// between neighbouring lights exceeds tolerance.
func (c *Collection) SplitX(tolerance float64) ([][]Light, error) {
	if tolerance <= 0 {
		return nil, fmt.Errorf("tolerance must be positive, got %v", tolerance)
	}

	sorted := c.sortedByX()
	var groups [][]Light
	var current []Light
	for i, l := range sorted {
		if i > 0 && l.Position.X-sorted[i-1].Position.X > tolerance {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, l)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups, nil
}

// GroupX splits lights left to right into count groups of near-equal size.
// Earlier groups receive the remainder.
func (c *Collection) GroupX(count int) ([][]Light, error) {
	if count <= 0 {
		return nil, fmt.Errorf("group count must be positive, got %d", count)
	}

	sorted := c.sortedByX()
	size, extra := len(sorted)/count, len(sorted)%count

	groups := make([][]Light, 0, count)
	start := 0
	for i := 0; i < count; i++ {
		end := start + size
		if i < extra {
			end++
		}
		groups = append(groups, sorted[start:end])
		start = end
	}
	return groups, nil
}

func (c *Collection) sortedByX() []Light {
	sorted := c.Lights()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position.X < sorted[j].Position.X
	})
	return sorted
}
