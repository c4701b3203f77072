package color

import "math"

// Tolerance for points lying on a gamut edge.
const epsilon = 1e-12

// Point is a chromaticity coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Color returns the point as a colour with the given brightness.
func (p Point) Color(brightness float64) (Color, error) {
	return New(p.X, p.Y, brightness)
}

// Gamut is a triangular chromaticity region a light can reproduce.
type Gamut struct {
	Red   Point `json:"red" yaml:"red"`
	Green Point `json:"green" yaml:"green"`
	Blue  Point `json:"blue" yaml:"blue"`
}

// Philips Hue gamuts.
var (
	GamutA = Gamut{
		Red:   Point{X: 0.704, Y: 0.296},
		Green: Point{X: 0.2151, Y: 0.7106},
		Blue:  Point{X: 0.138, Y: 0.08},
	}
	GamutB = Gamut{
		Red:   Point{X: 0.675, Y: 0.322},
		Green: Point{X: 0.409, Y: 0.518},
		Blue:  Point{X: 0.167, Y: 0.04},
	}
	GamutC = Gamut{
		Red:   Point{X: 0.6915, Y: 0.3083},
		Green: Point{X: 0.17, Y: 0.7},
		Blue:  Point{X: 0.1532, Y: 0.0475},
	}
)

// Black returns the darkest in-gamut colour: the red vertex at brightness 0.
func (g Gamut) Black() Color {
	return Color{x: g.Red.X, y: g.Red.Y}
}

// Contains reports whether p lies on or inside the triangle.
func (g Gamut) Contains(p Point) bool {
	d1 := cross(g.Red, g.Green, p)
	d2 := cross(g.Green, g.Blue, p)
	d3 := cross(g.Blue, g.Red, p)

	hasNeg := d1 < -epsilon || d2 < -epsilon || d3 < -epsilon
	hasPos := d1 > epsilon || d2 > epsilon || d3 > epsilon
	return !(hasNeg && hasPos)
}

// Clamp returns p if it is inside the gamut, otherwise the nearest point on
// the triangle boundary.
func (g Gamut) Clamp(p Point) Point {
	if g.Contains(p) {
		return p
	}

	best := closestOnSegment(g.Red, g.Green, p)
	bestDist := dist2(best, p)
	for _, edge := range [2][2]Point{{g.Green, g.Blue}, {g.Blue, g.Red}} {
		c := closestOnSegment(edge[0], edge[1], p)
		if d := dist2(c, p); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func closestOnSegment(a, b, p Point) Point {
	abX, abY := b.X-a.X, b.Y-a.Y
	lenSq := abX*abX + abY*abY
	if lenSq == 0 {
		return a
	}
	t := ((p.X-a.X)*abX + (p.Y-a.Y)*abY) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Point{X: a.X + abX*t, Y: a.Y + abY*t}
}

func dist2(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
