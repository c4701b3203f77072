package modules

import (
	"math"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/NALStudio/NDiscoPlus/internal/channel"
	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// LuaToGo converts a Lua value to a Go value
func LuaToGo(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return float64(val)
	case lua.LBool:
		return bool(val)
	case *lua.LTable:
		if n := val.Len(); n > 0 {
			arr := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				arr = append(arr, LuaToGo(val.RawGetInt(i)))
			}
			return arr
		}
		obj := make(map[string]any)
		val.ForEach(func(k, v lua.LValue) {
			obj[lua.LVAsString(k)] = LuaToGo(v)
		})
		return obj
	case *lua.LNilType:
		return nil
	default:
		return v.String()
	}
}

// seconds converts Lua seconds to a duration.
func seconds(v float64) time.Duration {
	return time.Duration(math.Round(v * float64(time.Second)))
}

func checkSeconds(L *lua.LState, n int) time.Duration {
	return seconds(float64(L.CheckNumber(n)))
}

func checkLightID(L *lua.LState, n int) light.ID {
	id, err := light.ParseID(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return id
}

func parseLightField(tbl *lua.LTable) (light.ID, error) {
	return light.ParseID(lua.LVAsString(tbl.RawGetString("light")))
}

func checkChannel(L *lua.LState, n int) channel.Channel {
	c, err := channel.Parse(L.CheckString(n))
	if err != nil || c == channel.All {
		L.ArgError(n, "channel must be one of background, default, flash, strobe")
	}
	return c
}

// colorTable returns {x=, y=, brightness=}.
func colorTable(L *lua.LState, c color.Color) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "x", lua.LNumber(c.X()))
	L.SetField(tbl, "y", lua.LNumber(c.Y()))
	L.SetField(tbl, "brightness", lua.LNumber(c.Brightness()))
	return tbl
}

func checkColor(L *lua.LState, n int) color.Color {
	tbl := L.CheckTable(n)
	c, err := color.New(
		float64(lua.LVAsNumber(tbl.RawGetString("x"))),
		float64(lua.LVAsNumber(tbl.RawGetString("y"))),
		float64(lua.LVAsNumber(tbl.RawGetString("brightness"))),
	)
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return c
}

// optNumber reads an optional numeric field of the table argument n.
func optNumber(L *lua.LState, n int, tbl *lua.LTable, key string) *float64 {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return nil
	}
	num, ok := v.(lua.LNumber)
	if !ok {
		L.ArgError(n, key+" must be a number")
		return nil
	}
	f := float64(num)
	return &f
}

// fieldSeconds reads tbl[key] of the table argument n as seconds. A missing
// optional field is zero.
func fieldSeconds(L *lua.LState, n int, tbl *lua.LTable, key string, required bool) time.Duration {
	if tbl.RawGetString(key) == lua.LNil && required {
		L.ArgError(n, key+" is required")
		return 0
	}
	if f := optNumber(L, n, tbl, key); f != nil {
		return seconds(*f)
	}
	return 0
}

// lightTable describes a light for scripts.
func lightTable(L *lua.LState, l light.Light) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "id", lua.LString(l.ID.String()))
	L.SetField(tbl, "name", lua.LString(l.DisplayName))
	L.SetField(tbl, "x", lua.LNumber(l.Position.X))
	L.SetField(tbl, "y", lua.LNumber(l.Position.Y))
	L.SetField(tbl, "z", lua.LNumber(l.Position.Z))
	return tbl
}

func lightsTable(L *lua.LState, lights []light.Light) *lua.LTable {
	tbl := L.NewTable()
	for _, l := range lights {
		tbl.Append(lightTable(L, l))
	}
	return tbl
}
