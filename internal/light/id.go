// Package light describes the addressable lights the engine drives.
package light

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the variant of an ID.
type Kind uint8

const (
	KindScreen Kind = iota + 1
	KindHue
)

// ID identifies a light. It is a closed sum over screen and Hue lights,
// comparable by value and usable as a map key.
type ID struct {
	kind Kind

	// screen
	total uint8
	index uint8

	// hue
	config  uuid.UUID
	channel uint8
}

// ScreenID identifies one of total on-screen gradient lights.
func ScreenID(total, index uint8) ID {
	return ID{kind: KindScreen, total: total, index: index}
}

// HueID identifies a channel of a Hue entertainment configuration.
func HueID(entertainmentConfig uuid.UUID, channel uint8) ID {
	return ID{kind: KindHue, config: entertainmentConfig, channel: channel}
}

// Kind returns the variant.
func (id ID) Kind() Kind { return id.kind }

// IsZero reports whether the ID was never assigned.
func (id ID) IsZero() bool { return id.kind == 0 }

// Screen returns the screen light fields.
func (id ID) Screen() (total, index uint8, ok bool) {
	return id.total, id.index, id.kind == KindScreen
}

// Hue returns the Hue light fields.
func (id ID) Hue() (entertainmentConfig uuid.UUID, channel uint8, ok bool) {
	return id.config, id.channel, id.kind == KindHue
}

// String returns the stable key form, e.g. "screen:4:1" or "hue:<uuid>:3".
func (id ID) String() string {
	switch id.kind {
	case KindScreen:
		return fmt.Sprintf("screen:%d:%d", id.total, id.index)
	case KindHue:
		return fmt.Sprintf("hue:%s:%d", id.config, id.channel)
	default:
		return "invalid"
	}
}

// HumanReadable returns a display label.
func (id ID) HumanReadable() string {
	switch id.kind {
	case KindScreen:
		return fmt.Sprintf("Screen Light %d", id.index)
	case KindHue:
		return fmt.Sprintf("Hue Light (channel: %d)", id.channel)
	default:
		return "Unknown Light"
	}
}

// ParseID parses the String form.
func ParseID(s string) (ID, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return ID{}, fmt.Errorf("invalid light id %q", s)
	}

	switch parts[0] {
	case "screen":
		total, err := strconv.ParseUint(parts[1], 10, 8)
		if err != nil {
			return ID{}, fmt.Errorf("invalid screen light total in %q: %w", s, err)
		}
		index, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			return ID{}, fmt.Errorf("invalid screen light index in %q: %w", s, err)
		}
		return ScreenID(uint8(total), uint8(index)), nil
	case "hue":
		config, err := uuid.Parse(parts[1])
		if err != nil {
			return ID{}, fmt.Errorf("invalid entertainment configuration in %q: %w", s, err)
		}
		ch, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			return ID{}, fmt.Errorf("invalid hue channel in %q: %w", s, err)
		}
		return HueID(config, uint8(ch)), nil
	default:
		return ID{}, fmt.Errorf("unknown light id type %q", parts[0])
	}
}

// MarshalText implements encoding.TextMarshaler (used for map keys).
func (id ID) MarshalText() ([]byte, error) {
	if id.kind == 0 {
		return nil, fmt.Errorf("cannot marshal zero light id")
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

type idJSON struct {
	Type                string     `json:"type"`
	TotalLightCount     *uint8     `json:"total_light_count,omitempty"`
	Index               *uint8     `json:"index,omitempty"`
	EntertainmentConfig *uuid.UUID `json:"entertainment_configuration_id,omitempty"`
	ChannelID           *uint8     `json:"channel_id,omitempty"`
}

// MarshalJSON writes a tagged object.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case KindScreen:
		return json.Marshal(idJSON{Type: "screen", TotalLightCount: &id.total, Index: &id.index})
	case KindHue:
		return json.Marshal(idJSON{Type: "hue", EntertainmentConfig: &id.config, ChannelID: &id.channel})
	default:
		return nil, fmt.Errorf("cannot marshal zero light id")
	}
}

// UnmarshalJSON reads the tagged object written by MarshalJSON.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw idJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case "screen":
		if raw.TotalLightCount == nil || raw.Index == nil {
			return fmt.Errorf("screen light id missing fields")
		}
		*id = ScreenID(*raw.TotalLightCount, *raw.Index)
	case "hue":
		if raw.EntertainmentConfig == nil || raw.ChannelID == nil {
			return fmt.Errorf("hue light id missing fields")
		}
		*id = HueID(*raw.EntertainmentConfig, *raw.ChannelID)
	default:
		return fmt.Errorf("unknown light id type %q", raw.Type)
	}
	return nil
}
