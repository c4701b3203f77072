package modules

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/NALStudio/NDiscoPlus/internal/effect"
)

// BackgroundModule authors the backdrop layer. All times are in seconds.
type BackgroundModule struct {
	session *SessionRef
}

// NewBackgroundModule creates a new background module
func NewBackgroundModule(session *SessionRef) *BackgroundModule {
	return &BackgroundModule{session: session}
}

// Loader is the module loader for Lua
func (m *BackgroundModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "lights", L.NewFunction(m.lights))
	L.SetField(mod, "add", L.NewFunction(m.add))
	L.SetField(mod, "disable", L.NewFunction(m.disable))
	L.SetField(mod, "color_cycle", L.NewFunction(m.colorCycle))

	L.Push(mod)
	return 1
}

// background.lights()
func (m *BackgroundModule) lights(L *lua.LState) int {
	L.Push(lightsTable(L, m.session.check(L).API.Background.Lights()))
	return 1
}

// background.add(light, start, duration, color)
func (m *BackgroundModule) add(L *lua.LState) int {
	s := m.session.check(L)
	id := checkLightID(L, 1)
	t := effect.NewTransition(id, checkSeconds(L, 2), checkSeconds(L, 3), checkColor(L, 4))
	s.within(L, 3, t.Interval())
	s.API.Background.Add(t)
	return 0
}

// background.disable(start, end)
func (m *BackgroundModule) disable(L *lua.LState) int {
	s := m.session.check(L)
	iv := effect.Interval{Start: checkSeconds(L, 1), End: checkSeconds(L, 2)}
	s.within(L, 2, iv)
	s.API.Background.DisableFor(iv)
	return 0
}

// background.color_cycle(seed?) fills the backdrop for the whole track.
func (m *BackgroundModule) colorCycle(L *lua.LState) int {
	s := m.session.check(L)
	seed := uint64(L.OptInt64(1, int64(s.Track.Seed)))
	if err := effect.NewColorCycle(s.Palette, seed).Generate(s.API, s.Track.Duration); err != nil {
		L.RaiseError("color_cycle: %s", err)
	}
	return 0
}
