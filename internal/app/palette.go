package app

import (
	"fmt"
	"strconv"

	"github.com/NALStudio/NDiscoPlus/internal/color"
)

// ResolvePalette returns the built-in palette named by the palette setting:
// an index into the sRGB palettes, or "hdr".
func ResolvePalette(name string) (color.Palette, error) {
	if name == "hdr" {
		return color.HDRPalette, nil
	}

	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || i >= len(color.SRGBPalettes) {
		return color.Palette{}, fmt.Errorf("unknown palette %q (want 0..%d or hdr)", name, len(color.SRGBPalettes)-1)
	}
	return color.SRGBPalettes[i], nil
}
