package color

import (
	"fmt"
	"math"
)

// D65 white point, used for colours with no chromaticity (black).
var whiteD65 = Point{X: 0.3127, Y: 0.3290}

// FromSRGB converts gamma-encoded sRGB components (0..1) to a colour.
// Brightness is the relative luminance.
func FromSRGB(r, g, b float64) (Color, error) {
	lr := inverseCompand(r)
	lg := inverseCompand(g)
	lb := inverseCompand(b)

	// https://en.wikipedia.org/wiki/SRGB#From_sRGB_to_CIE_XYZ
	bigX := 0.4124*lr + 0.3576*lg + 0.1805*lb
	bigY := 0.2126*lr + 0.7152*lg + 0.0722*lb
	bigZ := 0.0193*lr + 0.1192*lg + 0.9505*lb

	sum := bigX + bigY + bigZ
	if sum == 0 {
		return New(whiteD65.X, whiteD65.Y, 0)
	}
	return New(bigX/sum, bigY/sum, bigY)
}

// FromRGB8 converts 8-bit sRGB components to a colour.
func FromRGB8(r, g, b uint8) (Color, error) {
	return FromSRGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

// ToSRGB converts the colour to gamma-encoded sRGB, clamped to 0..1.
func (c Color) ToSRGB() (r, g, b float64) {
	if c.y == 0 {
		return 0, 0, 0
	}
	bigY := c.brightness
	bigX := bigY / c.y * c.x
	bigZ := bigY / c.y * (1 - c.x - c.y)

	// https://en.wikipedia.org/wiki/SRGB#From_CIE_XYZ_to_sRGB
	lr := 3.2406*bigX - 1.5372*bigY - 0.4986*bigZ
	lg := -0.9689*bigX + 1.8758*bigY + 0.0415*bigZ
	lb := 0.0557*bigX - 0.2040*bigY + 1.0570*bigZ

	return clamp01(compand(lr)), clamp01(compand(lg)), clamp01(compand(lb))
}

// Hex returns the colour as an HTML #rrggbb string.
func (c Color) Hex() string {
	r, g, b := c.ToSRGB()
	return fmt.Sprintf("#%02x%02x%02x", to8(r), to8(g), to8(b))
}

func inverseCompand(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func compand(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func to8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
