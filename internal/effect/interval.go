// Package effect holds the declarative lighting directives produced once per
// track: timed effects grouped into priority channels and the background
// transitions beneath them.
package effect

import (
	"fmt"
	"time"
)

// Interval is the half-open time range [Start, End).
type Interval struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// NewInterval returns the interval starting at start lasting duration.
func NewInterval(start, duration time.Duration) Interval {
	return Interval{Start: start, End: start + duration}
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration { return i.End - i.Start }

// Overlaps reports whether the two intervals share any instant.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains reports whether t lies in [Start, End).
func (i Interval) Contains(t time.Duration) bool {
	return i.Start <= t && t < i.End
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start, i.End)
}
