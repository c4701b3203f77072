package interpreter

import (
	"time"

	"github.com/rs/zerolog/log"
)

// FrameTimer measures the time between frames and logs the average and
// minimum frame rate once per period. It never affects frame content.
type FrameTimer struct {
	period time.Duration

	last        time.Time
	windowStart time.Time
	frames      int
	longest     time.Duration
}

// NewFrameTimer returns a timer reporting every period. A zero period
// disables logging.
func NewFrameTimer(period time.Duration) *FrameTimer {
	return &FrameTimer{period: period}
}

// FPSStats is one reporting window.
type FPSStats struct {
	Frames  int
	Average float64
	Minimum float64
}

// Tick records a frame at now and returns the time since the previous one.
// The first tick returns zero. When a reporting window completes its
// statistics are logged and returned.
func (t *FrameTimer) Tick(now time.Time) (time.Duration, *FPSStats) {
	if t.last.IsZero() {
		t.last, t.windowStart = now, now
		return 0, nil
	}

	delta := now.Sub(t.last)
	t.last = now
	t.frames++
	t.longest = max(t.longest, delta)

	elapsed := now.Sub(t.windowStart)
	if t.period <= 0 || elapsed < t.period {
		return delta, nil
	}

	stats := &FPSStats{
		Frames:  t.frames,
		Average: float64(t.frames) / elapsed.Seconds(),
	}
	if t.longest > 0 {
		stats.Minimum = 1 / t.longest.Seconds()
	}

	log.Debug().
		Int("frames", stats.Frames).
		Float64("avg_fps", stats.Average).
		Float64("min_fps", stats.Minimum).
		Msg("Frame rate")

	t.windowStart = now
	t.frames = 0
	t.longest = 0
	return delta, stats
}
