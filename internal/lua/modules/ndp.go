package modules

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// NDPModule exposes track info, palette, colour helpers and the session's
// random source.
type NDPModule struct {
	session *SessionRef
}

// NewNDPModule creates a new ndp module
func NewNDPModule(session *SessionRef) *NDPModule {
	return &NDPModule{session: session}
}

// Loader is the module loader for Lua
func (m *NDPModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "track", L.NewFunction(m.track))
	L.SetField(mod, "config", L.NewFunction(m.config))
	L.SetField(mod, "lights", L.NewFunction(m.lights))
	L.SetField(mod, "group_x", L.NewFunction(m.groupX))
	L.SetField(mod, "split_x", L.NewFunction(m.splitX))
	L.SetField(mod, "palette", L.NewFunction(m.palette))
	L.SetField(mod, "random", L.NewFunction(m.random))
	L.SetField(mod, "random_int", L.NewFunction(m.randomInt))
	L.SetField(mod, "rgb", L.NewFunction(m.rgb))
	L.SetField(mod, "kelvin", L.NewFunction(m.kelvin))

	L.Push(mod)
	return 1
}

// TrackTable returns the table passed to generate(track).
func TrackTable(L *lua.LState, t Track) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "id", lua.LString(t.ID))
	L.SetField(tbl, "duration", lua.LNumber(t.Duration.Seconds()))
	L.SetField(tbl, "seed", lua.LNumber(t.Seed))
	return tbl
}

// ndp.track() -> {id, duration, seed}
func (m *NDPModule) track(L *lua.LState) int {
	s := m.session.check(L)
	L.Push(TrackTable(L, s.Track))
	return 1
}

// ndp.config() -> {base_brightness, effect_base_brightness, reduced_max_brightness, strobe_color, strobe_style}
func (m *NDPModule) config(L *lua.LState) int {
	cfg := m.session.check(L).API.Config
	tbl := L.NewTable()
	L.SetField(tbl, "base_brightness", lua.LNumber(cfg.BaseBrightness))
	L.SetField(tbl, "effect_base_brightness", lua.LNumber(cfg.EffectBaseBrightness))
	L.SetField(tbl, "reduced_max_brightness", lua.LNumber(cfg.ReducedMaxBrightness))
	L.SetField(tbl, "strobe_color", colorTable(L, cfg.StrobeColor))
	L.SetField(tbl, "strobe_style", lua.LString(cfg.StrobeStyle.String()))
	L.Push(tbl)
	return 1
}

// ndp.lights() -> array of {id, name, x, y, z, channel, brightness}
func (m *NDPModule) lights(L *lua.LState) int {
	s := m.session.check(L)
	tbl := L.NewTable()
	for _, rec := range s.Records {
		lt := lightTable(L, rec.Light)
		L.SetField(lt, "channel", lua.LString(rec.Channel.String()))
		L.SetField(lt, "brightness", lua.LNumber(rec.Brightness))
		tbl.Append(lt)
	}
	L.Push(tbl)
	return 1
}

// ndp.group_x(count) -> count arrays of lights, left to right
func (m *NDPModule) groupX(L *lua.LState) int {
	count := L.CheckInt(1)
	return m.pushGroups(L, func(c *light.Collection) ([][]light.Light, error) {
		return c.GroupX(count)
	})
}

// ndp.split_x(tolerance) -> arrays of lights separated by gaps wider than tolerance
func (m *NDPModule) splitX(L *lua.LState) int {
	tolerance := float64(L.CheckNumber(1))
	return m.pushGroups(L, func(c *light.Collection) ([][]light.Light, error) {
		return c.SplitX(tolerance)
	})
}

func (m *NDPModule) pushGroups(L *lua.LState, split func(*light.Collection) ([][]light.Light, error)) int {
	s := m.session.check(L)
	lights := make([]light.Light, 0, len(s.Records))
	for _, rec := range s.Records {
		lights = append(lights, rec.Light)
	}
	c, err := light.NewCollection(lights)
	if err != nil {
		L.RaiseError("lights: %s", err)
		return 0
	}
	groups, err := split(c)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	tbl := L.NewTable()
	for _, g := range groups {
		tbl.Append(lightsTable(L, g))
	}
	L.Push(tbl)
	return 1
}

// ndp.palette() -> array of colours
func (m *NDPModule) palette(L *lua.LState) int {
	s := m.session.check(L)
	tbl := L.NewTable()
	for _, c := range s.Palette.Colors() {
		tbl.Append(colorTable(L, c))
	}
	L.Push(tbl)
	return 1
}

// ndp.random() -> number in [0, 1)
func (m *NDPModule) random(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.check(L).Rand.Float64()))
	return 1
}

// ndp.random_int(lo, hi) -> integer in [lo, hi]
func (m *NDPModule) randomInt(L *lua.LState) int {
	s := m.session.check(L)
	lo, hi := L.CheckInt(1), L.CheckInt(2)
	if hi < lo {
		L.ArgError(2, "upper bound is below lower bound")
		return 0
	}
	L.Push(lua.LNumber(lo + s.Rand.IntN(hi-lo+1)))
	return 1
}

// ndp.rgb(r, g, b) with channels in 0..1
func (m *NDPModule) rgb(L *lua.LState) int {
	c, err := color.FromSRGB(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)), float64(L.CheckNumber(3)))
	if err != nil {
		L.RaiseError("rgb: %s", err)
		return 0
	}
	L.Push(colorTable(L, c))
	return 1
}

// ndp.kelvin(temperature, brightness?, curve?) where curve is
// "blackbody" (default) or "daylight"
func (m *NDPModule) kelvin(L *lua.LState) int {
	kelvin, brightness := float64(L.CheckNumber(1)), float64(L.OptNumber(2, 1))

	var c color.Color
	var err error
	switch curve := L.OptString(3, "blackbody"); curve {
	case "blackbody":
		c, err = color.BlackBody(kelvin, brightness)
	case "daylight":
		c, err = color.Daylight(kelvin, brightness)
	default:
		L.ArgError(3, "curve must be blackbody or daylight")
		return 0
	}
	if err != nil {
		L.RaiseError("kelvin: %s", err)
		return 0
	}
	L.Push(colorTable(L, c))
	return 1
}
