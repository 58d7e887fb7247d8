package vtcore

// ColorKind discriminates the variants a terminal color can take.
type ColorKind uint8

const (
	// ColorDefault is the terminal's default foreground/background, resolved
	// against Palette.Foreground/Background rather than a fixed RGB value.
	ColorDefault ColorKind = iota
	// ColorIndexed covers both the 16-color and 256-color palette ranges;
	// Index distinguishes them (0-15 vs 16-255), resolved against Palette.
	ColorIndexed
	// ColorRGB is a 24-bit truecolor value set via SGR 38;2/48;2/58;2.
	ColorRGB
)

// Color is the sum type spec.md §3 describes: default, palette-index 0-15,
// palette-index 16-255, or 24-bit RGB. Zero value is ColorDefault.
type Color struct {
	Kind  ColorKind
	Index uint8
	R, G, B uint8
}

// DefaultColor is the zero-value Color (ColorDefault).
var DefaultColor = Color{Kind: ColorDefault}

// Indexed builds a Color referencing palette slot n.
func Indexed(n uint8) Color { return Color{Kind: ColorIndexed, Index: n} }

// RGB builds a 24-bit truecolor Color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// RGBA resolves a Color to concrete 8-bit-per-channel RGBA, given the
// palette and default fg/bg in effect. Resolution mirrors the teacher's
// resolveDefaultColor/resolveNamedColor split, generalized over our Color
// sum type instead of the teacher's image/color.Color interface.
func (c Color) RGBA(p *Palette, fg bool) (r, g, b, a uint8) {
	switch c.Kind {
	case ColorIndexed:
		rgb := p.Entry(c.Index)
		return rgb.R, rgb.G, rgb.B, 255
	case ColorRGB:
		return c.R, c.G, c.B, 255
	default:
		if fg {
			return p.Foreground.R, p.Foreground.G, p.Foreground.B, 255
		}
		return p.Background.R, p.Background.G, p.Background.B, 255
	}
}

// RGB8 is a plain 8-bit-per-channel color triple, used for palette entries.
type RGB8 struct{ R, G, B uint8 }

// Palette holds the 256-slot indexed color table plus the default
// fg/bg/cursor colors. OSC 4 sets indexed entries; OSC 10/11 only report
// Foreground/Background, and no sequence reassigns or restores the defaults.
type Palette struct {
	Entries    [256]RGB8
	Foreground RGB8
	Background RGB8
	Cursor     RGB8
}

// NewPalette builds the standard xterm 256-color palette: 16 named colors,
// a 6x6x6 color cube, and a 24-step grayscale ramp. Grounded on the
// teacher's colors.go DefaultPalette/init().
func NewPalette() *Palette {
	p := &Palette{
		Foreground: RGB8{229, 229, 229},
		Background: RGB8{0, 0, 0},
		Cursor:     RGB8{229, 229, 229},
	}
	named := [16]RGB8{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	}
	copy(p.Entries[:16], named[:])

	i := 16
	steps := [6]uint8{0, 51, 102, 153, 204, 255}
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.Entries[i] = RGB8{steps[r], steps[g], steps[b]}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p.Entries[232+j] = RGB8{gray, gray, gray}
	}
	return p
}

// Entry returns the palette color at the given 0-255 index.
func (p *Palette) Entry(i uint8) RGB8 { return p.Entries[i] }

// Dim returns a 0.66-scaled version of c, matching the teacher's dim-color
// derivation for faint-attribute rendering.
func Dim(c RGB8) RGB8 {
	return RGB8{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
	}
}
