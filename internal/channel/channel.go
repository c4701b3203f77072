// Package channel defines the priority tiers effects are composited in.
package channel

import (
	"fmt"
	"strings"
)

// Channel is a priority tier. Higher values composite on top of lower ones.
type Channel uint8

const (
	Background Channel = iota
	Default
	Flash
	Strobe

	// All orders above every real channel. A light assigned to All is
	// governed by every channel.
	All
)

// Ordered lists the real channels in compositing order.
var Ordered = []Channel{Background, Default, Flash, Strobe}

var names = map[Channel]string{
	Background: "background",
	Default:    "default",
	Flash:      "flash",
	Strobe:     "strobe",
	All:        "all",
}

// String implements fmt.Stringer.
func (c Channel) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("channel(%d)", uint8(c))
}

// Parse returns the channel with the given (case-insensitive) name.
func Parse(s string) (Channel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, n := range names {
		if n == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown channel %q", s)
}

// MayClear reports whether an effect author working in c may clear target.
// A channel may clear itself and anything below it, never anything above.
func (c Channel) MayClear(target Channel) bool {
	return target <= c
}

// Governs reports whether a light assigned to c takes part in channel k.
func (c Channel) Governs(k Channel) bool {
	return c == All || c == k
}

// MarshalText implements encoding.TextMarshaler.
func (c Channel) MarshalText() ([]byte, error) {
	if _, ok := names[c]; !ok {
		return nil, fmt.Errorf("invalid channel %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
