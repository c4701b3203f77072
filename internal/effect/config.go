package effect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// ErrUnsupportedStrobeStyle is returned for strobe styles that cannot be
// generated.
var ErrUnsupportedStrobeStyle = errors.New("unsupported strobe style")

// StrobeStyle selects how strobe effects are shaped.
type StrobeStyle uint8

const (
	// StrobeInstant switches straight to the strobe colour.
	StrobeInstant StrobeStyle = iota
	// StrobeRealistic imitates a discharge lamp's decay. Not implemented.
	StrobeRealistic
)

func (s StrobeStyle) String() string {
	switch s {
	case StrobeInstant:
		return "instant"
	case StrobeRealistic:
		return "realistic"
	default:
		return fmt.Sprintf("strobe_style(%d)", uint8(s))
	}
}

// ParseStrobeStyle parses "instant" or "realistic".
func ParseStrobeStyle(s string) (StrobeStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "instant":
		return StrobeInstant, nil
	case "realistic":
		return StrobeRealistic, nil
	default:
		return 0, fmt.Errorf("unknown strobe style %q", s)
	}
}

// Config holds the numeric defaults shared by effect authors and the
// interpreter.
type Config struct {
	// BaseBrightness is the brightness of the background layer.
	BaseBrightness float64
	// EffectBaseBrightness is used by effects that leave brightness alone
	// so the scene never goes fully dark.
	EffectBaseBrightness float64
	// ReducedMaxBrightness caps bright effects for eye comfort.
	ReducedMaxBrightness float64

	StrobeColor color.Color
	StrobeStyle StrobeStyle
}

// DefaultStrobeKelvin is the colour temperature of a photographic strobe.
const DefaultStrobeKelvin = 5600

// DefaultConfig returns the stock effect configuration.
func DefaultConfig() Config {
	strobe, err := color.BlackBody(DefaultStrobeKelvin, 1)
	if err != nil {
		panic(err)
	}
	return Config{
		BaseBrightness:       0.1,
		EffectBaseBrightness: 0.35,
		ReducedMaxBrightness: 0.75,
		StrobeColor:          strobe,
		StrobeStyle:          StrobeInstant,
	}
}

// NewStrobe returns a strobe flash on id shaped by the configured style.
func NewStrobe(cfg Config, id light.ID, iv Interval) (Effect, error) {
	switch cfg.StrobeStyle {
	case StrobeInstant:
		return NewColor(id, iv.Start, iv.Duration(), cfg.StrobeColor), nil
	default:
		return Effect{}, fmt.Errorf("%w: %s", ErrUnsupportedStrobeStyle, cfg.StrobeStyle)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s StrobeStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StrobeStyle) UnmarshalText(text []byte) error {
	parsed, err := ParseStrobeStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
