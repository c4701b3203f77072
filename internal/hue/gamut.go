package hue

import "github.com/NALStudio/NDiscoPlus/internal/color"

// Bridge model ids grouped by the colour gamut of the bulb.
var modelGamuts = map[string]color.Gamut{
	// Living colors, LightStrips (first generation)
	"LLC001": color.GamutA, "LLC005": color.GamutA, "LLC006": color.GamutA,
	"LLC007": color.GamutA, "LLC010": color.GamutA, "LLC011": color.GamutA,
	"LLC012": color.GamutA, "LLC013": color.GamutA, "LLC014": color.GamutA,
	"LST001": color.GamutA,

	// First generation bulbs
	"LCT001": color.GamutB, "LCT002": color.GamutB, "LCT003": color.GamutB,
	"LCT007": color.GamutB, "LLM001": color.GamutB,

	// Extended colour range
	"LCT010": color.GamutC, "LCT011": color.GamutC, "LCT012": color.GamutC,
	"LCT014": color.GamutC, "LCT015": color.GamutC, "LCT016": color.GamutC,
	"LLC020": color.GamutC, "LST002": color.GamutC, "LST003": color.GamutC,
	"LST004": color.GamutC, "LCA001": color.GamutC, "LCA002": color.GamutC,
	"LCA003": color.GamutC, "LCG002": color.GamutC, "LCB001": color.GamutC,
	"LCE002": color.GamutC, "LCX001": color.GamutC, "LCX002": color.GamutC,
	"LCX003": color.GamutC,
}

// GamutForModel returns the gamut of a bridge model id.
func GamutForModel(modelID string) (color.Gamut, bool) {
	g, ok := modelGamuts[modelID]
	return g, ok
}
