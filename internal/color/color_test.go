package color

import (
	"errors"
	"math"
	"testing"
)

func TestNew_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		name    string
		x, y, b float64
	}{
		{name: "nan_x", x: math.NaN(), y: 0.3, b: 1},
		{name: "inf_y", x: 0.3, y: math.Inf(1), b: 1},
		{name: "neg_inf_brightness", x: 0.3, y: 0.3, b: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.x, tt.y, tt.b)
			if !errors.Is(err, ErrNotFinite) {
				t.Errorf("New(%v, %v, %v) error = %v, want ErrNotFinite", tt.x, tt.y, tt.b, err)
			}
		})
	}
}

func TestNew_AcceptsOutOfRangeFiniteValues(t *testing.T) {
	c, err := New(-1, 2, 3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.X() != -1 || c.Y() != 2 || c.Brightness() != 3 {
		t.Errorf("New() = %v, components not preserved", c)
	}
}

func TestLerp(t *testing.T) {
	a := MustNew(0, 0, 0)
	b := MustNew(0.5, 0.4, 1)

	mid, err := Lerp(a, b, 0.5)
	if err != nil {
		t.Fatalf("Lerp() error = %v", err)
	}
	if mid != MustNew(0.25, 0.2, 0.5) {
		t.Errorf("Lerp(a, b, 0.5) = %v", mid)
	}

	if got, _ := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(a, b, 0) = %v, want %v", got, a)
	}
	if got, _ := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(a, b, 1) = %v, want %v", got, b)
	}
}

func TestLerp_NonFiniteFactor(t *testing.T) {
	_, err := Lerp(MustNew(0, 0, 0), MustNew(1, 1, 1), math.NaN())
	if !errors.Is(err, ErrNotFinite) {
		t.Errorf("Lerp with NaN factor error = %v, want ErrNotFinite", err)
	}
}

func TestCopyWith(t *testing.T) {
	c := MustNew(0.3, 0.4, 0.5)

	if got, _ := c.WithX(0.1); got != MustNew(0.1, 0.4, 0.5) {
		t.Errorf("WithX = %v", got)
	}
	if got, _ := c.WithY(0.1); got != MustNew(0.3, 0.1, 0.5) {
		t.Errorf("WithY = %v", got)
	}
	if got, _ := c.WithBrightness(0); got != MustNew(0.3, 0.4, 0) {
		t.Errorf("WithBrightness = %v", got)
	}
	if _, err := c.WithBrightness(math.NaN()); err == nil {
		t.Error("WithBrightness(NaN) should fail")
	}
}

func TestBlackBody(t *testing.T) {
	c, err := BlackBody(5600, 1)
	if err != nil {
		t.Fatalf("BlackBody(5600) error = %v", err)
	}
	// Roughly on the Planckian locus near D55.
	if math.Abs(c.X()-0.33) > 0.01 || math.Abs(c.Y()-0.34) > 0.01 {
		t.Errorf("BlackBody(5600) = %v, want close to xy(0.33, 0.34)", c)
	}

	if _, err := BlackBody(1000, 1); !errors.Is(err, ErrTemperatureRange) {
		t.Errorf("BlackBody(1000) error = %v, want ErrTemperatureRange", err)
	}
}

func TestDaylight(t *testing.T) {
	c, err := Daylight(6504, 1)
	if err != nil {
		t.Fatalf("Daylight(6504) error = %v", err)
	}
	if math.Abs(c.X()-0.3127) > 0.002 || math.Abs(c.Y()-0.3290) > 0.002 {
		t.Errorf("Daylight(6504) = %v, want close to D65", c)
	}

	if _, err := Daylight(3000, 1); !errors.Is(err, ErrTemperatureRange) {
		t.Errorf("Daylight(3000) error = %v, want ErrTemperatureRange", err)
	}
}

func TestFromSRGB(t *testing.T) {
	white, err := FromSRGB(1, 1, 1)
	if err != nil {
		t.Fatalf("FromSRGB error = %v", err)
	}
	if math.Abs(white.X()-0.3127) > 0.001 || math.Abs(white.Y()-0.3290) > 0.001 {
		t.Errorf("white = %v, want D65 chromaticity", white)
	}
	if math.Abs(white.Brightness()-1) > 0.001 {
		t.Errorf("white brightness = %v, want 1", white.Brightness())
	}

	black, err := FromSRGB(0, 0, 0)
	if err != nil {
		t.Fatalf("FromSRGB(black) error = %v", err)
	}
	if black.Brightness() != 0 {
		t.Errorf("black brightness = %v, want 0", black.Brightness())
	}
}

func TestHex_RoundTripPrimaries(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    string
	}{
		{255, 0, 0, "#ff0000"},
		{0, 255, 0, "#00ff00"},
		{0, 0, 255, "#0000ff"},
		{255, 255, 255, "#ffffff"},
	}

	for _, tt := range tests {
		c, err := FromRGB8(tt.r, tt.g, tt.b)
		if err != nil {
			t.Fatalf("FromRGB8 error = %v", err)
		}
		if got := c.Hex(); got != tt.want {
			t.Errorf("FromRGB8(%d, %d, %d).Hex() = %s, want %s", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestDefaultPalettes(t *testing.T) {
	for i, p := range SRGBPalettes {
		if p.Len() != 4 {
			t.Errorf("SRGBPalettes[%d].Len() = %d, want 4", i, p.Len())
		}
	}
	if HDRPalette.Len() != 6 {
		t.Errorf("HDRPalette.Len() = %d, want 6", HDRPalette.Len())
	}
	for i := 0; i < HDRPalette.Len(); i++ {
		c := HDRPalette.At(i)
		if !GamutC.Contains(Point{X: c.X(), Y: c.Y()}) {
			t.Errorf("HDRPalette[%d] = %v outside gamut C", i, c)
		}
	}
}
