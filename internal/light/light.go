package light

import (
	"time"

	"github.com/google/uuid"

	"github.com/NALStudio/NDiscoPlus/internal/channel"
	"github.com/NALStudio/NDiscoPlus/internal/color"
)

// Position is a light's location in the room, each axis roughly -1..1.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Light is the static per-session descriptor of one addressable light.
type Light struct {
	ID              ID
	DisplayName     string
	Position        Position
	Gamut           *color.Gamut
	ExpectedLatency *time.Duration

	// PhysicalID is the bridge light resource behind a Hue channel.
	// It is metadata for signalling and never part of the identity.
	PhysicalID *uuid.UUID
}

// Black returns the colour a light shows when nothing drives it:
// the gamut's black point, or the zero colour when no gamut is known.
func (l Light) Black() color.Color {
	if l.Gamut != nil {
		return l.Gamut.Black()
	}
	return color.Color{}
}

// Config holds the per-light overrides of a light profile.
type Config struct {
	Channel    channel.Channel `json:"channel" yaml:"channel"`
	Brightness float64         `json:"brightness" yaml:"brightness"`
}

// DefaultConfig returns the overrides applied when a profile has none.
func DefaultConfig() Config {
	return Config{Channel: channel.All, Brightness: 1}
}

// Record returns the light record for l under these overrides.
func (c Config) Record(l Light) Record {
	return Record{Light: l, Channel: c.Channel, Brightness: c.Brightness}
}

// Record wraps a light with the session overrides of the active profile.
type Record struct {
	Light      Light
	Channel    channel.Channel
	Brightness float64
}

// NewRecord returns a record with default overrides.
func NewRecord(l Light) Record {
	return DefaultConfig().Record(l)
}
