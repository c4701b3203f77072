package interpreter

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// ErrOverlappingTransitions is returned when two background transitions of
// the same light overlap in time.
var ErrOverlappingTransitions = errors.New("background transitions overlap")

// Frame is the composited output of one tick. Lights is owned by the caller.
type Frame struct {
	Progress time.Duration
	Lights   map[light.ID]color.Color
}

// Clone returns a deep copy.
func (f Frame) Clone() Frame {
	return Frame{Progress: f.Progress, Lights: maps.Clone(f.Lights)}
}

// Update composites the colour of every configured light at progress.
// It is a pure function of its arguments.
func Update(progress time.Duration, data *Data) (Frame, error) {
	lights := make(map[light.ID]color.Color, len(data.Lights))

	if err := updateBackground(lights, progress, data); err != nil {
		return Frame{}, err
	}
	if err := updateEffects(lights, progress, data); err != nil {
		return Frame{}, err
	}
	if err := finish(lights, data.Lights); err != nil {
		return Frame{}, err
	}

	return Frame{Progress: progress, Lights: lights}, nil
}

func updateBackground(lights map[light.ID]color.Color, progress time.Duration, data *Data) error {
	if data.Effects.BackgroundDisabledAt(progress) {
		return nil
	}

	for id, transitions := range data.Effects.BackgroundTransitions() {
		fallback := data.Backdrop(id)

		// rightmost transition with Start <= progress
		current := sort.Search(len(transitions), func(i int) bool {
			return transitions[i].Start > progress
		}) - 1
		if current < 0 {
			lights[id] = fallback
			continue
		}

		from := fallback
		if current > 0 {
			prev := transitions[current-1]
			if prev.End() > transitions[current].Start {
				return fmt.Errorf("%w: light %s, %v and %v", ErrOverlappingTransitions, id, prev.Interval(), transitions[current].Interval())
			}
			from = prev.Color
		}

		c, err := transitions[current].Interpolate(progress, from)
		if err != nil {
			return fmt.Errorf("background of %s: %w", id, err)
		}
		lights[id] = c
	}
	return nil
}

func updateEffects(lights map[light.ID]color.Color, progress time.Duration, data *Data) error {
	for e := range data.Effects.EffectsAt(progress) {
		if !e.Interval().Contains(progress) {
			continue
		}

		current, ok := lights[e.Light]
		if !ok {
			seed, err := e.ResolvedColor(data.Config.StrobeColor)
			if err != nil {
				return fmt.Errorf("effect on %s: %w", e.Light, err)
			}
			if current, err = seed.WithBrightness(0); err != nil {
				return err
			}
		}

		c, err := e.Interpolate(progress, current)
		if err != nil {
			return fmt.Errorf("effect on %s at %v: %w", e.Light, e.Position, err)
		}
		lights[e.Light] = c
	}
	return nil
}

func finish(lights map[light.ID]color.Color, records []light.Record) error {
	for _, r := range records {
		id := r.Light.ID

		c, ok := lights[id]
		if !ok {
			lights[id] = r.Light.Black()
			continue
		}

		if r.Light.Gamut != nil {
			c = c.Clamp(*r.Light.Gamut)
		}
		if r.Brightness != 1 {
			var err error
			if c, err = c.WithBrightness(c.Brightness() * r.Brightness); err != nil {
				return fmt.Errorf("brightness of %s: %w", id, err)
			}
		}
		lights[id] = c
	}
	return nil
}

// Black returns a frame with every light at its black point.
func Black(progress time.Duration, records []light.Record) Frame {
	lights := make(map[light.ID]color.Color, len(records))
	for _, r := range records {
		lights[r.Light.ID] = r.Light.Black()
	}
	return Frame{Progress: progress, Lights: lights}
}
