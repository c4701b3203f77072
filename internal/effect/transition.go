package effect

import (
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// BackgroundTransition ramps a light's backdrop colour to Color over
// [Start, Start+Duration) and holds it afterwards.
type BackgroundTransition struct {
	Light    light.ID      `json:"light_id"`
	Start    time.Duration `json:"start"`
	Duration time.Duration `json:"duration"`
	Color    color.Color   `json:"color"`
}

// NewTransition builds a transition.
func NewTransition(id light.ID, start, duration time.Duration, c color.Color) BackgroundTransition {
	return BackgroundTransition{Light: id, Start: start, Duration: duration, Color: c}
}

// End is Start + Duration.
func (t BackgroundTransition) End() time.Duration { return t.Start + t.Duration }

// Interval returns [Start, End).
func (t BackgroundTransition) Interval() Interval { return Interval{Start: t.Start, End: t.End()} }

// Interpolate returns the backdrop colour at progress given the colour the
// light had before this transition.
func (t BackgroundTransition) Interpolate(progress time.Duration, from color.Color) (color.Color, error) {
	switch {
	case progress < t.Start:
		return from, nil
	case progress >= t.End():
		return t.Color, nil
	default:
		return color.Lerp(from, t.Color, ratio(progress-t.Start, t.Duration))
	}
}
