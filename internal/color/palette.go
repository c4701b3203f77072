package color

// Palette is an ordered, read-only list of colours.
type Palette struct {
	colors []Color
}

// NewPalette copies colors into a new palette.
func NewPalette(colors ...Color) Palette {
	c := make([]Color, len(colors))
	copy(c, colors)
	return Palette{colors: c}
}

// Len returns the number of colours.
func (p Palette) Len() int { return len(p.colors) }

// At returns the colour at index i.
func (p Palette) At(i int) Color { return p.colors[i] }

// Colors returns a copy of the palette colours.
func (p Palette) Colors() []Color {
	c := make([]Color, len(p.colors))
	copy(c, p.colors)
	return c
}

func rgb8(r, g, b uint8) Color {
	c, err := FromRGB8(r, g, b)
	if err != nil {
		panic(err)
	}
	return c
}

func lerpMust(a, b Color, t float64) Color {
	c, err := Lerp(a, b, t)
	if err != nil {
		panic(err)
	}
	return c
}

// SRGBPalettes are the built-in palettes authored in sRGB.
var SRGBPalettes = []Palette{
	NewPalette(
		rgb8(255, 0, 0),     // red
		rgb8(0, 255, 255),   // cyan
		rgb8(255, 105, 180), // pink
		rgb8(102, 51, 153),  // purple
	),
	NewPalette(
		rgb8(15, 192, 252), // cyan
		rgb8(123, 29, 175), // purple
		rgb8(255, 47, 185), // pink
		rgb8(252, 237, 15), // yellow
	),
	NewPalette(
		rgb8(164, 20, 217), // purple
		rgb8(255, 128, 43), // orange
		rgb8(52, 199, 165), // dark cyan
		rgb8(93, 80, 206),  // purple
	),
}

// HDRPalette spans the corners and edge midpoints of Hue gamut C.
var HDRPalette = func() Palette {
	r := MustNew(GamutC.Red.X, GamutC.Red.Y, 1)
	g := MustNew(GamutC.Green.X, GamutC.Green.Y, 1)
	b := MustNew(GamutC.Blue.X, GamutC.Blue.Y, 1)
	return NewPalette(r, lerpMust(r, g, 0.5), g, lerpMust(g, b, 0.5), b, lerpMust(b, r, 0.5))
}()

// DefaultPalette returns the first built-in sRGB palette.
func DefaultPalette() Palette {
	return SRGBPalettes[0]
}
