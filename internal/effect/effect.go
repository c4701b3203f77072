package effect

import (
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Effect is a timed colour directive for one light. Nil colour fields
// inherit from whatever colour preceded the effect.
//
// The light holds the target colour from Position for Duration, ramping in
// over FadeIn before and back out over FadeOut after.
type Effect struct {
	Light    light.ID      `json:"light_id"`
	Position time.Duration `json:"position"`
	Duration time.Duration `json:"duration"`

	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"`

	FadeIn  time.Duration `json:"fade_in"`
	FadeOut time.Duration `json:"fade_out"`
}

// New returns an effect that inherits every colour component.
func New(id light.ID, position, duration time.Duration) Effect {
	return Effect{Light: id, Position: position, Duration: duration}
}

// NewColor returns an effect overriding the whole colour.
func NewColor(id light.ID, position, duration time.Duration, c color.Color) Effect {
	return New(id, position, duration).WithColor(c)
}

// NewBrightness returns an effect overriding only brightness.
func NewBrightness(id light.ID, position, duration time.Duration, brightness float64) Effect {
	return New(id, position, duration).WithBrightness(brightness)
}

// WithColor returns a copy overriding all colour components.
func (e Effect) WithColor(c color.Color) Effect {
	x, y, b := c.X(), c.Y(), c.Brightness()
	e.X, e.Y, e.Brightness = &x, &y, &b
	return e
}

// WithChromaticity returns a copy overriding x and y only.
func (e Effect) WithChromaticity(x, y float64) Effect {
	e.X, e.Y = &x, &y
	return e
}

// WithBrightness returns a copy overriding brightness only.
func (e Effect) WithBrightness(brightness float64) Effect {
	e.Brightness = &brightness
	return e
}

// WithFade returns a copy with the given fade-in and fade-out.
func (e Effect) WithFade(in, out time.Duration) Effect {
	e.FadeIn, e.FadeOut = in, out
	return e
}

// Start is the instant the fade-in begins.
func (e Effect) Start() time.Duration { return e.Position - e.FadeIn }

// End is the instant the fade-out finishes.
func (e Effect) End() time.Duration { return e.Position + e.Duration + e.FadeOut }

// Interval returns [Start, End).
func (e Effect) Interval() Interval { return Interval{Start: e.Start(), End: e.End()} }

// ResolvedColor fills unset components from base.
func (e Effect) ResolvedColor(base color.Color) (color.Color, error) {
	x, y, b := base.X(), base.Y(), base.Brightness()
	if e.X != nil {
		x = *e.X
	}
	if e.Y != nil {
		y = *e.Y
	}
	if e.Brightness != nil {
		b = *e.Brightness
	}
	return color.New(x, y, b)
}

// Interpolate evaluates the fade envelope at progress, starting and ending
// at from.
func (e Effect) Interpolate(progress time.Duration, from color.Color) (color.Color, error) {
	to, err := e.ResolvedColor(from)
	if err != nil {
		return color.Color{}, err
	}

	plateauEnd := e.Position + e.Duration
	if progress >= e.Position && progress < plateauEnd {
		return to, nil
	}

	var t float64
	if progress < e.Position {
		t = ratio(progress-e.Start(), e.FadeIn)
	} else {
		t = 1 - ratio(progress-plateauEnd, e.FadeOut)
		if e.FadeOut <= 0 {
			t = 0
		}
	}
	return color.Lerp(from, to, t)
}

// ratio returns elapsed/total clamped to [0, 1]. An empty fade has not begun.
func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(elapsed) / float64(total)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
