package modules

import (
	"fmt"
	"math/rand/v2"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/effect"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Track describes the track effects are being generated for.
type Track struct {
	ID       string
	Duration time.Duration
	Seed     uint64
}

// Session is the state one generation pass writes into.
type Session struct {
	API     *effect.API
	Track   Track
	Palette color.Palette
	Records []light.Record
	Rand    *rand.Rand
}

// NewSession creates a session with a random source seeded from the track.
func NewSession(api *effect.API, track Track, palette color.Palette, records []light.Record) *Session {
	return &Session{
		API:     api,
		Track:   track,
		Palette: palette,
		Records: records,
		Rand:    rand.New(rand.NewPCG(track.Seed, track.Seed>>1|1)),
	}
}

// within raises an argument error for argument n when iv ends after the
// track.
func (s *Session) within(L *lua.LState, n int, iv effect.Interval) {
	if iv.End > s.Track.Duration {
		L.ArgError(n, fmt.Sprintf("%v ends after the track (%v)", iv, s.Track.Duration))
	}
}

// SessionRef points modules at the active session. It is only touched from
// the Lua worker goroutine.
type SessionRef struct {
	current *Session
}

// Set activates s. Pass nil once generation is over.
func (r *SessionRef) Set(s *Session) { r.current = s }

// check returns the active session or raises a Lua error.
func (r *SessionRef) check(L *lua.LState) *Session {
	if r.current == nil {
		L.RaiseError("no track is being generated")
		return nil
	}
	return r.current
}
