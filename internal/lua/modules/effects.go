package modules

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/NALStudio/NDiscoPlus/internal/channel"
	"github.com/NALStudio/NDiscoPlus/internal/effect"
)

// EffectsModule lets scripts author effects on the session's channels.
// All times are in seconds.
type EffectsModule struct {
	session *SessionRef
}

// NewEffectsModule creates a new effects module
func NewEffectsModule(session *SessionRef) *EffectsModule {
	return &EffectsModule{session: session}
}

// Loader is the module loader for Lua
func (m *EffectsModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "lights", L.NewFunction(m.lights))
	L.SetField(mod, "count", L.NewFunction(m.count))
	L.SetField(mod, "add", L.NewFunction(m.add))
	L.SetField(mod, "strobe", L.NewFunction(m.strobe))
	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetField(mod, "clear_for_flash", L.NewFunction(m.clearForFlash))
	L.SetField(mod, "clear_for_strobes", L.NewFunction(m.clearForStrobes))

	L.Push(mod)
	return 1
}

func (m *EffectsModule) channel(L *lua.LState, n int) *effect.Channel {
	s := m.session.check(L)
	k := checkChannel(L, n)
	if k == channel.Background {
		L.ArgError(n, "background is authored through the background module")
		return nil
	}
	ch, ok := s.API.Channel(k)
	if !ok {
		L.ArgError(n, "unknown channel")
		return nil
	}
	return ch
}

// effects.lights(channel) -> lights governed by the channel
func (m *EffectsModule) lights(L *lua.LState) int {
	L.Push(lightsTable(L, m.channel(L, 1).Lights()))
	return 1
}

// effects.count(channel) -> number of effects on the channel
func (m *EffectsModule) count(L *lua.LState) int {
	L.Push(lua.LNumber(m.channel(L, 1).Len()))
	return 1
}

// effects.add(channel, {light, position, duration, x?, y?, brightness?, fade_in?, fade_out?})
func (m *EffectsModule) add(L *lua.LState) int {
	s := m.session.check(L)
	ch := m.channel(L, 1)
	tbl := L.CheckTable(2)

	id, err := parseLightField(tbl)
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	e := effect.New(id,
		fieldSeconds(L, 2, tbl, "position", true),
		fieldSeconds(L, 2, tbl, "duration", true),
	)
	e.X = optNumber(L, 2, tbl, "x")
	e.Y = optNumber(L, 2, tbl, "y")
	e.Brightness = optNumber(L, 2, tbl, "brightness")
	e = e.WithFade(
		fieldSeconds(L, 2, tbl, "fade_in", false),
		fieldSeconds(L, 2, tbl, "fade_out", false),
	)
	s.within(L, 2, e.Interval())

	ch.Add(e)
	return 0
}

// effects.strobe(light, start, duration) adds a strobe flash on the strobe channel.
func (m *EffectsModule) strobe(L *lua.LState) int {
	s := m.session.check(L)
	id := checkLightID(L, 1)
	iv := effect.NewInterval(checkSeconds(L, 2), checkSeconds(L, 3))
	s.within(L, 3, iv)

	e, err := effect.NewStrobe(s.API.Config, id, iv)
	if err != nil {
		L.RaiseError("strobe: %s", err)
		return 0
	}
	ch, ok := s.API.Channel(channel.Strobe)
	if !ok {
		L.RaiseError("strobe channel is unavailable")
		return 0
	}
	ch.Add(e)
	return 0
}

// effects.clear(channel, start, end)
func (m *EffectsModule) clear(L *lua.LState) int {
	ch := m.channel(L, 1)
	ch.Clear(checkSeconds(L, 2), checkSeconds(L, 3))
	return 0
}

// effects.clear_for_flash(start, end)
func (m *EffectsModule) clearForFlash(L *lua.LState) int {
	s := m.session.check(L)
	iv := effect.Interval{Start: checkSeconds(L, 1), End: checkSeconds(L, 2)}
	s.within(L, 2, iv)
	s.API.ClearForFlash(iv)
	return 0
}

// effects.clear_for_strobes({{start, end}, ...})
func (m *EffectsModule) clearForStrobes(L *lua.LState) int {
	s := m.session.check(L)
	tbl := L.CheckTable(1)

	intervals := make([]effect.Interval, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		pair, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(1, "intervals must be {start, end} pairs")
			return 0
		}
		start, sok := pair.RawGetInt(1).(lua.LNumber)
		end, eok := pair.RawGetInt(2).(lua.LNumber)
		if !sok || !eok {
			L.ArgError(1, "intervals must be {start, end} pairs")
			return 0
		}
		iv := effect.Interval{Start: seconds(float64(start)), End: seconds(float64(end))}
		s.within(L, 1, iv)
		intervals = append(intervals, iv)
	}

	if err := s.API.ClearForStrobes(intervals); err != nil {
		L.RaiseError("clear_for_strobes: %s", err)
	}
	return 0
}
