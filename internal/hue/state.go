package hue

import (
	"math"
	"slices"

	"github.com/amimof/huego"

	"github.com/NALStudio/NDiscoPlus/internal/color"
)

// Bridge brightness range for a light that is on.
const (
	minBri = 1
	maxBri = 254
)

// State converts a composited colour into a bridge light state.
// Zero brightness turns the light off.
func State(c color.Color) huego.State {
	if c.Brightness() <= 0 {
		return huego.State{On: false}
	}

	bri := math.Round(c.Brightness() * maxBri)
	return huego.State{
		On:  true,
		Bri: uint8(min(max(bri, minBri), maxBri)),
		Xy:  []float32{float32(c.X()), float32(c.Y())},
	}
}

func sameState(a, b huego.State) bool {
	return a.On == b.On && a.Bri == b.Bri && slices.Equal(a.Xy, b.Xy)
}
