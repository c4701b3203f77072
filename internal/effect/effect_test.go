package effect

import (
	"errors"
	"testing"
	"time"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestInterval(t *testing.T) {
	iv := NewInterval(time.Second, 2*time.Second)
	if iv.Duration() != 2*time.Second {
		t.Errorf("Duration() = %v, want 2s", iv.Duration())
	}

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{ms(999), false},
		{time.Second, true},
		{ms(2999), true},
		{3 * time.Second, false},
	}
	for _, tt := range tests {
		if got := iv.Contains(tt.at); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}

	if !iv.Overlaps(NewInterval(ms(2500), time.Second)) {
		t.Error("intervals sharing [2.5s, 3s) should overlap")
	}
	if iv.Overlaps(NewInterval(3*time.Second, time.Second)) {
		t.Error("adjacent intervals should not overlap")
	}
}

func TestEffect_Envelope(t *testing.T) {
	from := color.MustNew(0, 0, 0)
	to := color.MustNew(0.5, 0.4, 1)
	e := NewColor(light.ScreenID(1, 0), 2*time.Second, time.Second, to).WithFade(ms(500), ms(500))

	half, err := color.Lerp(from, to, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		at   time.Duration
		want color.Color
	}{
		{ms(1500), from},
		{ms(1750), half},
		{ms(2000), to},
		{ms(2500), to},
		{ms(2999), to},
		{ms(3250), half},
		{ms(3500), from},
	}
	for _, tt := range tests {
		got, err := e.Interpolate(tt.at, from)
		if err != nil {
			t.Fatalf("Interpolate(%v): %v", tt.at, err)
		}
		if got != tt.want {
			t.Errorf("Interpolate(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}

	if e.Start() != ms(1500) || e.End() != ms(3500) {
		t.Errorf("Start/End = %v/%v, want 1.5s/3.5s", e.Start(), e.End())
	}
}

func TestEffect_ZeroFadesNeverProduceNaN(t *testing.T) {
	from := color.MustNew(0.3, 0.3, 0.2)
	e := NewBrightness(light.ScreenID(1, 0), time.Second, 0, 1)

	for _, at := range []time.Duration{ms(500), time.Second, ms(1500)} {
		got, err := e.Interpolate(at, from)
		if err != nil {
			t.Fatalf("Interpolate(%v): %v", at, err)
		}
		if got != from {
			t.Errorf("Interpolate(%v) = %v, want %v", at, got, from)
		}
	}
}

func TestEffect_ResolvedColorInheritsUnsetFields(t *testing.T) {
	base := color.MustNew(0.2, 0.3, 0.4)

	tests := []struct {
		name string
		e    Effect
		want color.Color
	}{
		{"nothing set", New(light.ScreenID(1, 0), 0, time.Second), base},
		{"brightness only", NewBrightness(light.ScreenID(1, 0), 0, time.Second, 1), color.MustNew(0.2, 0.3, 1)},
		{"chromaticity only", New(light.ScreenID(1, 0), 0, time.Second).WithChromaticity(0.6, 0.3), color.MustNew(0.6, 0.3, 0.4)},
		{"full colour", NewColor(light.ScreenID(1, 0), 0, time.Second, color.MustNew(0.1, 0.1, 0.1)), color.MustNew(0.1, 0.1, 0.1)},
	}
	for _, tt := range tests {
		got, err := tt.e.ResolvedColor(base)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: ResolvedColor() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBackgroundTransition_Interpolate(t *testing.T) {
	from := color.MustNew(0.2, 0.2, 0.1)
	to := color.MustNew(0.6, 0.3, 0.1)
	tr := NewTransition(light.ScreenID(1, 0), 10*time.Second, 10*time.Second, to)

	half, _ := color.Lerp(from, to, 0.5)
	tests := []struct {
		at   time.Duration
		want color.Color
	}{
		{9 * time.Second, from},
		{10 * time.Second, from},
		{15 * time.Second, half},
		{20 * time.Second, to},
		{time.Minute, to},
	}
	for _, tt := range tests {
		got, err := tr.Interpolate(tt.at, from)
		if err != nil {
			t.Fatalf("Interpolate(%v): %v", tt.at, err)
		}
		if got != tt.want {
			t.Errorf("Interpolate(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}

	instant := NewTransition(light.ScreenID(1, 0), time.Second, 0, to)
	if got, _ := instant.Interpolate(time.Second, from); got != to {
		t.Errorf("zero-length transition = %v, want %v", got, to)
	}
}

func TestNewStrobe(t *testing.T) {
	cfg := DefaultConfig()
	e, err := NewStrobe(cfg, light.ScreenID(1, 0), NewInterval(time.Second, ms(100)))
	if err != nil {
		t.Fatalf("NewStrobe: %v", err)
	}
	got, _ := e.ResolvedColor(color.Color{})
	if got != cfg.StrobeColor {
		t.Errorf("strobe colour = %v, want %v", got, cfg.StrobeColor)
	}
	if e.Position != time.Second || e.Duration != ms(100) {
		t.Errorf("strobe timing = %v+%v", e.Position, e.Duration)
	}

	cfg.StrobeStyle = StrobeRealistic
	if _, err := NewStrobe(cfg, light.ScreenID(1, 0), NewInterval(0, ms(100))); !errors.Is(err, ErrUnsupportedStrobeStyle) {
		t.Errorf("NewStrobe(realistic) error = %v, want ErrUnsupportedStrobeStyle", err)
	}
}

func TestStrobeStyleText(t *testing.T) {
	var s StrobeStyle
	if err := s.UnmarshalText([]byte("Realistic")); err != nil || s != StrobeRealistic {
		t.Errorf("UnmarshalText(Realistic) = %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("sparkly")); err == nil {
		t.Error("UnmarshalText(sparkly) should fail")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseBrightness != 0.1 || cfg.EffectBaseBrightness != 0.35 || cfg.ReducedMaxBrightness != 0.75 {
		t.Errorf("DefaultConfig() brightness defaults = %+v", cfg)
	}
	if cfg.StrobeColor.Brightness() != 1 {
		t.Errorf("strobe brightness = %v, want 1", cfg.StrobeColor.Brightness())
	}
}
