package effect

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// ColorCycleAnimation is the length of one colour-cycle transition.
const ColorCycleAnimation = 10 * time.Second

// ColorCycle authors a backdrop that slowly moves every light between random
// palette colours, resting 2 to 10 seconds between transitions.
type ColorCycle struct {
	Palette color.Palette
	Rand    *rand.Rand
}

// NewColorCycle returns a colour cycle seeded deterministically.
func NewColorCycle(palette color.Palette, seed uint64) *ColorCycle {
	return &ColorCycle{Palette: palette, Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type animation struct {
	light light.ID
	end   time.Duration
}

// Generate fills api.Background up to trackDuration.
func (c *ColorCycle) Generate(api *API, trackDuration time.Duration) error {
	lights := api.Background.lights
	if len(lights) == 0 || c.Palette.Len() == 0 {
		return nil
	}

	animations := make([]animation, 0, len(lights))
	for _, l := range lights {
		animations = append(animations, animation{light: l.ID, end: c.cooldown()})
	}

	for running := true; running; {
		now := slices.MinFunc(animations, func(a, b animation) int {
			return cmp.Compare(a.end, b.end)
		}).end
		animations = slices.DeleteFunc(animations, func(a animation) bool { return a.end <= now })

		for _, l := range lights {
			if slices.ContainsFunc(animations, func(a animation) bool { return a.light == l.ID }) {
				continue
			}

			end := now + ColorCycleAnimation + c.cooldown()
			if end > trackDuration {
				// keep scheduling the remaining lights of this round
				running = false
				continue
			}

			col, err := c.Palette.At(c.Rand.IntN(c.Palette.Len())).WithBrightness(api.Config.BaseBrightness)
			if err != nil {
				return err
			}

			animations = append(animations, animation{light: l.ID, end: end})
			api.Background.Add(NewTransition(l.ID, now, ColorCycleAnimation, col))
		}

		if len(animations) == 0 {
			break
		}
	}
	return nil
}

func (c *ColorCycle) cooldown() time.Duration {
	seconds := 2 + c.Rand.Float64()*8
	return time.Duration(seconds * float64(time.Second))
}
