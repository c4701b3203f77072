// Package color provides the device-independent colour model used by the
// compositing engine: CIE 1931 chromaticity plus a 0..1 brightness.
package color

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrNotFinite is returned when a colour component is NaN or infinite.
// Such values must never reach a physical light.
var ErrNotFinite = errors.New("color component must be finite")

// Color is an immutable CIE 1931 xy chromaticity with brightness.
type Color struct {
	x          float64
	y          float64
	brightness float64
}

// New creates a colour, failing if any component is not finite.
func New(x, y, brightness float64) (Color, error) {
	if err := checkFinite("x", x); err != nil {
		return Color{}, err
	}
	if err := checkFinite("y", y); err != nil {
		return Color{}, err
	}
	if err := checkFinite("brightness", brightness); err != nil {
		return Color{}, err
	}
	return Color{x: x, y: y, brightness: brightness}, nil
}

// MustNew is like New but panics on invalid input.
func MustNew(x, y, brightness float64) Color {
	c, err := New(x, y, brightness)
	if err != nil {
		panic(err)
	}
	return c
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s = %v", ErrNotFinite, name, v)
	}
	return nil
}

// X returns the x chromaticity coordinate.
func (c Color) X() float64 { return c.x }

// Y returns the y chromaticity coordinate.
func (c Color) Y() float64 { return c.y }

// Brightness returns the brightness in the range 0..1.
func (c Color) Brightness() float64 { return c.brightness }

// WithX returns a copy with x replaced.
func (c Color) WithX(x float64) (Color, error) {
	return New(x, c.y, c.brightness)
}

// WithY returns a copy with y replaced.
func (c Color) WithY(y float64) (Color, error) {
	return New(c.x, y, c.brightness)
}

// WithBrightness returns a copy with brightness replaced.
func (c Color) WithBrightness(brightness float64) (Color, error) {
	return New(c.x, c.y, brightness)
}

// Lerp interpolates component-wise between a and b.
// t is not clamped; callers own the range of t.
func Lerp(a, b Color, t float64) (Color, error) {
	return New(
		a.x+(b.x-a.x)*t,
		a.y+(b.y-a.y)*t,
		a.brightness+(b.brightness-a.brightness)*t,
	)
}

// Clamp projects the chromaticity into the gamut. Brightness is unchanged.
func (c Color) Clamp(g Gamut) Color {
	p := g.Clamp(Point{X: c.x, Y: c.y})
	return Color{x: p.X, y: p.Y, brightness: c.brightness}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("xy(%.4f, %.4f) bri %.3f", c.x, c.y, c.brightness)
}

type colorJSON struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Brightness float64 `json:"brightness"`
}

// MarshalJSON implements json.Marshaler.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(colorJSON{X: c.x, Y: c.y, Brightness: c.brightness})
}

// UnmarshalJSON implements json.Unmarshaler, rejecting non-finite values.
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw colorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := New(raw.X, raw.Y, raw.Brightness)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
