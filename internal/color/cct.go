package color

import (
	"errors"
	"fmt"
)

// ErrTemperatureRange is returned for colour temperatures outside the
// approximation's defined range.
var ErrTemperatureRange = errors.New("color temperature out of range")

// BlackBody approximates the Planckian locus for 1667..25000 K.
// https://en.wikipedia.org/wiki/Planckian_locus#Approximation
func BlackBody(kelvin, brightness float64) (Color, error) {
	if kelvin < 1667 || kelvin > 25000 {
		return Color{}, fmt.Errorf("%w: black body defined for 1667..25000 K, got %v", ErrTemperatureRange, kelvin)
	}

	t := kelvin
	t2 := t * t
	t3 := t2 * t

	var x float64
	if t <= 4000 {
		x = -0.2661239e9/t3 - 0.2343589e6/t2 + 0.8776956e3/t + 0.179910
	} else {
		x = -3.0258469e9/t3 + 2.1070379e6/t2 + 0.2226347e3/t + 0.240390
	}

	x2 := x * x
	x3 := x2 * x

	var y float64
	switch {
	case t <= 2222:
		y = -1.1063814*x3 - 1.34811020*x2 + 2.18555832*x - 0.20219683
	case t <= 4000:
		y = -0.9549476*x3 - 1.37418593*x2 + 2.09137015*x - 0.16748867
	default:
		y = 3.0817580*x3 - 5.87338670*x2 + 3.75112997*x - 0.37001483
	}

	return New(x, y, brightness)
}

// Daylight computes the CIE Illuminant D series for 4000..25000 K.
// https://en.wikipedia.org/wiki/Standard_illuminant#Computation
func Daylight(kelvin, brightness float64) (Color, error) {
	if kelvin < 4000 || kelvin > 25000 {
		return Color{}, fmt.Errorf("%w: daylight defined for 4000..25000 K, got %v", ErrTemperatureRange, kelvin)
	}

	t := kelvin
	t2 := t * t
	t3 := t2 * t

	var x float64
	if t <= 7000 {
		x = 0.244063 + 0.09911e3/t + 2.9678e6/t2 - 4.6070e9/t3
	} else {
		x = 0.237040 + 0.24748e3/t + 1.9018e6/t2 - 2.0064e9/t3
	}
	y := -3.000*x*x + 2.870*x - 0.275

	return New(x, y, brightness)
}
