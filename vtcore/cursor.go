package vtcore

// CursorStyle determines how the cursor is rendered, set via DECSCUSR
// (CSI n SP q). Grounded on the teacher's cursor.go CursorStyle enum.
type CursorStyle int

const (
	CursorBlinkingBlock CursorStyle = iota
	CursorSteadyBlock
	CursorBlinkingUnderline
	CursorSteadyUnderline
	CursorBlinkingBar
	CursorSteadyBar
)

// Cursor tracks position, pending-wrap, and rendering style. Coordinates
// are 0-based absolute screen coordinates (not origin-mode relative);
// origin-mode translation happens at the point cursor-addressing CSI
// sequences are interpreted.
type Cursor struct {
	Row, Col    int
	PendingWrap bool
	Style       CursorStyle
	Visible     bool
}

// NewCursor returns a cursor at (0,0), visible, blinking block, matching
// the teacher's NewCursor default.
func NewCursor() Cursor {
	return Cursor{Style: CursorBlinkingBlock, Visible: true}
}

// SavedCursor is the DECSC slot: position, current attributes template,
// origin-mode flag, and active charset -- everything save-cursor/
// restore-cursor round-trips, per spec.md §4.3.
type SavedCursor struct {
	Row, Col   int
	Attrs      Attributes
	OriginMode bool
	Charset    CharsetIndex
}

// CharsetIndex selects one of the four G0-G3 character-set slots.
type CharsetIndex int

const (
	G0 CharsetIndex = iota
	G1
	G2
	G3
)

// Charset is the designated character set for a G0-G3 slot.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)
