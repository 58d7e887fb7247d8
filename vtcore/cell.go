package vtcore

// CellFlags is a bitmask of the boolean attributes spec.md §3 lists:
// bold, faint, italic, blink, rapid-blink, inverse, hidden, strikethrough,
// protected. Grounded on the teacher's cell.go CellFlags, trimmed to drop
// the per-cell Dirty/WideChar/WideCharSpacer bits (those live on Cell/Line
// directly here, not as flags shared with style attributes).
type CellFlags uint16

const (
	FlagBold CellFlags = 1 << iota
	FlagFaint
	FlagItalic
	FlagBlink
	FlagRapidBlink
	FlagInverse
	FlagHidden
	FlagStrikethrough
	FlagProtected
)

// Has reports whether all bits in mask are set.
func (f CellFlags) Has(mask CellFlags) bool { return f&mask == mask }

// UnderlineStyle enumerates the underline renderings SGR 4/4:n select.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Attributes is the style pack every Cell carries, per spec.md §3.
type Attributes struct {
	Fg             Color
	Bg             Color
	UnderlineColor Color
	UnderlineStyle UnderlineStyle
	Flags          CellFlags
	HyperlinkID    uint32 // 0 means "no hyperlink"
}

// DefaultAttributes is the zero-value style: default colors, no flags, no
// underline, no hyperlink.
var DefaultAttributes = Attributes{}

// WidthClass classifies how many grid columns a Cell's codepoint occupies.
type WidthClass uint8

const (
	WidthSingle WidthClass = iota
	WidthLeadingWide
	WidthTrailingWide
)

// Cell is a single grid position: a codepoint, its style, and its width
// class (spec.md §3). A WidthTrailingWide cell's Ch is always a filler
// rune (space); its Attrs mirror the paired WidthLeadingWide cell so that
// erasing either clears both consistently.
type Cell struct {
	Ch    rune
	Attrs Attributes
	Width WidthClass
}

// BlankCell returns a space cell carrying attrs (used for erase/fill).
// Protected-ness is never implied by attrs: callers that need to preserve
// protection must copy Attrs.Flags&FlagProtected explicitly.
func BlankCell(attrs Attributes) Cell {
	return Cell{Ch: ' ', Attrs: attrs, Width: WidthSingle}
}

// Protected reports whether c is marked protected (DECSCA), honored by
// selective-erase operations only.
func (c Cell) Protected() bool { return c.Attrs.Flags.Has(FlagProtected) }
