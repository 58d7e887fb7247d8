package vtcore

// Line is an ordered row of Cells at the screen's current width, plus a
// Continuation flag marking it as a wrap continuation of the previous row
// (Resize does not reflow on it). Grounded on spec.md §3's Line
// type and the teacher's row-of-Cell representation in buffer.go.
type Line struct {
	Cells        []Cell
	Continuation bool
}

func newLine(cols int, attrs Attributes) Line {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i] = BlankCell(attrs)
	}
	return Line{Cells: cells}
}

// Position is a 0-indexed (row, col) screen coordinate.
type Position struct{ Row, Col int }

// Before reports whether p sits strictly before q in row-major order.
func (p Position) Before(q Position) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

// ProtectionState is the three-state DECSCA state machine spec.md §4.3
// describes: transitions only via the character-protection CSI (DECSCA).
type ProtectionState uint8

const (
	ProtectionUnset ProtectionState = iota
	ProtectionProtected
	ProtectionUnprotectedExplicit
)

// ScreenBuffer is a rectangular grid of styled Cells with cursor, tab
// stops, scroll region, and protection state -- spec.md §4.3's core
// mutable structure. Grounded on the teacher's buffer.go Buffer type,
// generalized to track wide-cell-pair integrity and the protection state
// machine that buffer.go leaves implicit.
type ScreenBuffer struct {
	cols, rows int
	lines      []Line

	cursor Cursor
	saved  *SavedCursor

	tabStops []bool

	scrollTop, scrollBottom int
	originMode              bool
	autoWrap                bool
	protectMode             ProtectionState

	template Attributes
	charsets [4]Charset
	active   CharsetIndex

	// Scrollback receives lines retired from the top of a full-screen
	// scroll region. nil for the alternate screen, which never appends to
	// scrollback (spec.md §4.4).
	Scrollback *ScrollbackStore

	dirtyFrom, dirtyTo int // inclusive row range touched since last ClearDirty; dirtyFrom > dirtyTo means clean
}

// NewScreenBuffer constructs a rows x cols buffer, cursor home, full-screen
// scroll region, auto-wrap on, tab stops every 8th column.
func NewScreenBuffer(cols, rows int, scrollback *ScrollbackStore) *ScreenBuffer {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	b := &ScreenBuffer{
		cols:          cols,
		rows:          rows,
		cursor:        NewCursor(),
		scrollBottom:  rows - 1,
		autoWrap:      true,
		Scrollback:    scrollback,
		dirtyFrom:     1,
		dirtyTo:       0,
	}
	b.lines = make([]Line, rows)
	for i := range b.lines {
		b.lines[i] = newLine(cols, DefaultAttributes)
	}
	b.resetTabStops()
	return b
}

func (b *ScreenBuffer) resetTabStops() {
	b.tabStops = make([]bool, b.cols)
	for c := 0; c < b.cols; c += 8 {
		b.tabStops[c] = true
	}
}

// Cols, Rows return the buffer's dimensions.
func (b *ScreenBuffer) Cols() int { return b.cols }
func (b *ScreenBuffer) Rows() int { return b.rows }

// Cursor returns the current cursor state.
func (b *ScreenBuffer) Cursor() Cursor { return b.cursor }

// SetAutoWrap, AutoWrap control the auto-wrap mode flag.
func (b *ScreenBuffer) SetAutoWrap(v bool) { b.autoWrap = v }
func (b *ScreenBuffer) AutoWrap() bool     { return b.autoWrap }

// SetOriginMode, OriginMode control origin-mode (DECOM).
func (b *ScreenBuffer) SetOriginMode(v bool) {
	b.originMode = v
	b.gotoOrigin()
}
func (b *ScreenBuffer) OriginMode() bool { return b.originMode }

// Template returns the Attributes applied to newly-written characters.
func (b *ScreenBuffer) Template() Attributes    { return b.template }
func (b *ScreenBuffer) SetTemplate(a Attributes) { b.template = a }

// Line returns a copy-free view of row r's cells, or nil if out of range.
func (b *ScreenBuffer) Line(r int) []Cell {
	if r < 0 || r >= b.rows {
		return nil
	}
	return b.lines[r].Cells
}

// LineContinuation reports the wrap-continuation flag of row r.
func (b *ScreenBuffer) LineContinuation(r int) bool {
	if r < 0 || r >= b.rows {
		return false
	}
	return b.lines[r].Continuation
}

func (b *ScreenBuffer) markDirty(r int) {
	if b.dirtyFrom > b.dirtyTo {
		b.dirtyFrom, b.dirtyTo = r, r
		return
	}
	if r < b.dirtyFrom {
		b.dirtyFrom = r
	}
	if r > b.dirtyTo {
		b.dirtyTo = r
	}
}

// DirtyRows returns the inclusive row range touched since the last
// ClearDirty, and whether anything was touched at all.
func (b *ScreenBuffer) DirtyRows() (from, to int, ok bool) {
	if b.dirtyFrom > b.dirtyTo {
		return 0, 0, false
	}
	return b.dirtyFrom, b.dirtyTo, true
}

// ClearDirty resets dirty tracking.
func (b *ScreenBuffer) ClearDirty() { b.dirtyFrom, b.dirtyTo = 1, 0 }

func (b *ScreenBuffer) clampCursor() {
	if b.cursor.Row < 0 {
		b.cursor.Row = 0
	}
	if b.cursor.Row >= b.rows {
		b.cursor.Row = b.rows - 1
	}
	if b.cursor.Col < 0 {
		b.cursor.Col = 0
	}
	if b.cursor.Col >= b.cols {
		b.cursor.Col = b.cols - 1
	}
}

// effectiveRow translates a row argument according to origin-mode, used by
// the cursor-addressing operations.
func (b *ScreenBuffer) effectiveRow(row int) int {
	if b.originMode {
		return row + b.scrollTop
	}
	return row
}

func (b *ScreenBuffer) gotoOrigin() {
	if b.originMode {
		b.cursor.Row = b.scrollTop
	} else {
		b.cursor.Row = 0
	}
	b.cursor.Col = 0
	b.cursor.PendingWrap = false
}

// --- cursor addressing ---

// Goto moves the cursor to an absolute (row, col), origin-mode aware.
func (b *ScreenBuffer) Goto(row, col int) {
	b.cursor.Row = b.effectiveRow(row)
	b.cursor.Col = col
	b.cursor.PendingWrap = false
	b.clampCursor()
}

// GotoCol, GotoRow move the cursor along one axis only.
func (b *ScreenBuffer) GotoCol(col int) {
	b.cursor.Col = col
	b.cursor.PendingWrap = false
	b.clampCursor()
}
func (b *ScreenBuffer) GotoRow(row int) {
	b.cursor.Row = b.effectiveRow(row)
	b.cursor.PendingWrap = false
	b.clampCursor()
}

// MoveUp, MoveDown, MoveForward, MoveBackward move the cursor relatively,
// clamped to the screen (not the scroll region -- callers wanting
// scroll-region-aware movement use Index/ReverseIndex).
func (b *ScreenBuffer) MoveUp(n int)      { b.cursor.Row -= n; b.cursor.PendingWrap = false; b.clampCursor() }
func (b *ScreenBuffer) MoveDown(n int)    { b.cursor.Row += n; b.cursor.PendingWrap = false; b.clampCursor() }
func (b *ScreenBuffer) MoveForward(n int) { b.cursor.Col += n; b.cursor.PendingWrap = false; b.clampCursor() }
func (b *ScreenBuffer) MoveBackward(n int) {
	b.cursor.Col -= n
	b.cursor.PendingWrap = false
	b.clampCursor()
}

// CarriageReturn moves the cursor to column 0 of the current row.
func (b *ScreenBuffer) CarriageReturn() {
	b.cursor.Col = 0
	b.cursor.PendingWrap = false
}

// Index moves the cursor down one row; at the scroll region's bottom
// margin it scrolls the region up by one instead (spec.md §4.3 `index`).
func (b *ScreenBuffer) Index() {
	if b.cursor.Row == b.scrollBottom {
		b.ScrollUp(1)
		return
	}
	if b.cursor.Row < b.rows-1 {
		b.cursor.Row++
	}
	b.cursor.PendingWrap = false
}

// ReverseIndex moves the cursor up one row; at the scroll region's top
// margin it scrolls the region down by one instead.
func (b *ScreenBuffer) ReverseIndex() {
	if b.cursor.Row == b.scrollTop {
		b.ScrollDown(1)
		return
	}
	if b.cursor.Row > 0 {
		b.cursor.Row--
	}
	b.cursor.PendingWrap = false
}

// NextLine is carriage-return followed by index.
func (b *ScreenBuffer) NextLine() {
	b.CarriageReturn()
	b.Index()
}

// --- writing ---

// PutCodepoint writes cp (of the given column width, 1 or 2) at the
// cursor using attrs, honoring pending-wrap and the protection state
// machine, per spec.md §4.3's put_codepoint contract.
func (b *ScreenBuffer) PutCodepoint(cp rune, width int, attrs Attributes) {
	if b.cursor.PendingWrap && b.autoWrap {
		b.wrapNow()
	}

	if width == 2 && b.cursor.Col == b.cols-1 {
		if b.autoWrap {
			b.wrapNow()
		} else {
			cp = '�'
			width = 1
		}
	}

	attrs = b.applyProtection(attrs)

	switch width {
	case 2:
		row := b.cursor.Row
		col := b.cursor.Col
		b.lines[row].Cells[col] = Cell{Ch: cp, Attrs: attrs, Width: WidthLeadingWide}
		b.lines[row].Cells[col+1] = Cell{Ch: ' ', Attrs: attrs, Width: WidthTrailingWide}
		b.markDirty(row)
		b.advance(2)
	default:
		row := b.cursor.Row
		col := b.cursor.Col
		b.lines[row].Cells[col] = Cell{Ch: cp, Attrs: attrs, Width: WidthSingle}
		b.markDirty(row)
		b.advance(1)
	}
}

func (b *ScreenBuffer) applyProtection(attrs Attributes) Attributes {
	switch b.protectMode {
	case ProtectionProtected:
		attrs.Flags |= FlagProtected
	case ProtectionUnprotectedExplicit, ProtectionUnset:
		attrs.Flags &^= FlagProtected
	}
	return attrs
}

func (b *ScreenBuffer) wrapNow() {
	b.lines[b.cursor.Row].Continuation = false
	if b.cursor.Row+1 < b.rows {
		b.lines[b.cursor.Row+1].Continuation = true
	}
	b.cursor.Col = 0
	b.cursor.PendingWrap = false
	b.Index()
}

// advance moves the cursor right by width columns; if it would pass the
// right edge, it instead stays at the last column with pending-wrap set
// (spec.md §4.3).
func (b *ScreenBuffer) advance(width int) {
	next := b.cursor.Col + width
	if next >= b.cols {
		b.cursor.Col = b.cols - 1
		b.cursor.PendingWrap = true
		return
	}
	b.cursor.Col = next
}

// SetCursorStyle implements DECSCUSR (CSI n SP q).
func (b *ScreenBuffer) SetCursorStyle(style CursorStyle) { b.cursor.Style = style }

// SetCharacterProtection implements DECSCA: 0/2 select unprotected
// (unset/explicit respectively), 1 selects protected.
func (b *ScreenBuffer) SetCharacterProtection(n int) {
	switch n {
	case 1:
		b.protectMode = ProtectionProtected
	case 2:
		b.protectMode = ProtectionUnprotectedExplicit
	default:
		b.protectMode = ProtectionUnset
	}
}

// --- erase ---

func (b *ScreenBuffer) clearCell(row, col int, selective bool) {
	if selective && b.lines[row].Cells[col].Protected() {
		return
	}
	attrs := Attributes{Bg: b.template.Bg}
	switch b.lines[row].Cells[col].Width {
	case WidthLeadingWide:
		if col+1 < b.cols {
			b.lines[row].Cells[col+1] = BlankCell(attrs)
		}
	case WidthTrailingWide:
		if col > 0 {
			b.lines[row].Cells[col-1] = BlankCell(attrs)
		}
	}
	b.lines[row].Cells[col] = BlankCell(attrs)
	b.markDirty(row)
}

func (b *ScreenBuffer) clearRange(row, fromCol, toCol int, selective bool) {
	for c := fromCol; c <= toCol && c < b.cols; c++ {
		b.clearCell(row, c, selective)
	}
}

func (b *ScreenBuffer) eraseDisplay(mode int, selective bool) {
	switch mode {
	case 0:
		b.clearRange(b.cursor.Row, b.cursor.Col, b.cols-1, selective)
		for r := b.cursor.Row + 1; r < b.rows; r++ {
			b.clearRange(r, 0, b.cols-1, selective)
		}
	case 1:
		for r := 0; r < b.cursor.Row; r++ {
			b.clearRange(r, 0, b.cols-1, selective)
		}
		b.clearRange(b.cursor.Row, 0, b.cursor.Col, selective)
	case 2, 3:
		for r := 0; r < b.rows; r++ {
			b.clearRange(r, 0, b.cols-1, selective)
		}
		if mode == 3 && !selective && b.Scrollback != nil {
			b.Scrollback.Clear()
		}
	}
}

// EraseInDisplay implements spec.md §4.3's erase_in_display.
func (b *ScreenBuffer) EraseInDisplay(mode int) { b.eraseDisplay(mode, false) }

// SelectiveEraseInDisplay skips protected cells.
func (b *ScreenBuffer) SelectiveEraseInDisplay(mode int) { b.eraseDisplay(mode, true) }

func (b *ScreenBuffer) eraseLine(mode int, selective bool) {
	switch mode {
	case 0:
		b.clearRange(b.cursor.Row, b.cursor.Col, b.cols-1, selective)
	case 1:
		b.clearRange(b.cursor.Row, 0, b.cursor.Col, selective)
	case 2:
		b.clearRange(b.cursor.Row, 0, b.cols-1, selective)
	}
}

// EraseInLine implements spec.md §4.3's erase_in_line.
func (b *ScreenBuffer) EraseInLine(mode int) { b.eraseLine(mode, false) }

// SelectiveEraseInLine skips protected cells.
func (b *ScreenBuffer) SelectiveEraseInLine(mode int) { b.eraseLine(mode, true) }

// EraseCharacter blanks n cells starting at the cursor, within the line,
// never wrapping to the next line, ignoring protection.
func (b *ScreenBuffer) EraseCharacter(n int) {
	if n < 1 {
		n = 1
	}
	b.clearRange(b.cursor.Row, b.cursor.Col, b.cursor.Col+n-1, false)
}

// --- line/char insert/delete ---

// InsertLine shifts lines within the scroll region down by n, only when
// the cursor is within the region; new lines are blanked with the current
// background.
func (b *ScreenBuffer) InsertLine(n int) {
	if b.cursor.Row < b.scrollTop || b.cursor.Row > b.scrollBottom {
		return
	}
	b.shiftRegionDown(b.cursor.Row, b.scrollBottom, n)
}

// DeleteLine shifts lines within the scroll region up by n, only when the
// cursor is within the region.
func (b *ScreenBuffer) DeleteLine(n int) {
	if b.cursor.Row < b.scrollTop || b.cursor.Row > b.scrollBottom {
		return
	}
	b.shiftRegionUp(b.cursor.Row, b.scrollBottom, n)
}

func (b *ScreenBuffer) shiftRegionDown(top, bottom, n int) {
	if n < 1 {
		n = 1
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	for r := bottom; r >= top+n; r-- {
		b.lines[r] = b.lines[r-n]
		b.markDirty(r)
	}
	for r := top; r < top+n; r++ {
		b.lines[r] = newLine(b.cols, Attributes{Bg: b.template.Bg})
		b.markDirty(r)
	}
}

func (b *ScreenBuffer) shiftRegionUp(top, bottom, n int) {
	if n < 1 {
		n = 1
	}
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	for r := top; r <= bottom-n; r++ {
		b.lines[r] = b.lines[r+n]
		b.markDirty(r)
	}
	for r := bottom - n + 1; r <= bottom; r++ {
		b.lines[r] = newLine(b.cols, Attributes{Bg: b.template.Bg})
		b.markDirty(r)
	}
}

// InsertCharacter shifts cells on the current line right within
// [cursor.col, cols), dropping cells pushed past the right edge.
func (b *ScreenBuffer) InsertCharacter(n int) {
	if n < 1 {
		n = 1
	}
	row := b.cursor.Row
	cells := b.lines[row].Cells
	col := b.cursor.Col
	for c := b.cols - 1; c >= col+n; c-- {
		cells[c] = cells[c-n]
	}
	for c := col; c < col+n && c < b.cols; c++ {
		cells[c] = BlankCell(Attributes{Bg: b.template.Bg})
	}
	b.markDirty(row)
}

// DeleteCharacter shifts cells on the current line left within
// [cursor.col, cols), filling the vacated right side with blanks.
func (b *ScreenBuffer) DeleteCharacter(n int) {
	if n < 1 {
		n = 1
	}
	row := b.cursor.Row
	cells := b.lines[row].Cells
	col := b.cursor.Col
	for c := col; c < b.cols-n; c++ {
		cells[c] = cells[c+n]
	}
	for c := b.cols - n; c < b.cols; c++ {
		if c >= col {
			cells[c] = BlankCell(Attributes{Bg: b.template.Bg})
		}
	}
	b.markDirty(row)
}

// --- scroll region ---

// SetScrollRegion clamps (top, bottom) to 1 <= top < bottom <= rows
// (1-indexed input, converted to 0-indexed storage), and homes the cursor,
// per spec.md §4.3.
func (b *ScreenBuffer) SetScrollRegion(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom > b.rows {
		bottom = b.rows
	}
	if top >= bottom {
		top, bottom = 1, b.rows
	}
	b.scrollTop = top - 1
	b.scrollBottom = bottom - 1
	b.gotoOrigin()
}

// ScrollRegion returns the current 0-indexed inclusive (top, bottom).
func (b *ScreenBuffer) ScrollRegion() (top, bottom int) { return b.scrollTop, b.scrollBottom }

// ScrollUp scrolls the scroll region up by n lines (content moves up,
// blank lines appear at the bottom). When the region spans the full
// screen and this is the primary screen (Scrollback != nil), lines
// scrolled off the top are appended to scrollback.
func (b *ScreenBuffer) ScrollUp(n int) {
	if n < 1 {
		n = 1
	}
	if n > b.scrollBottom-b.scrollTop+1 {
		n = b.scrollBottom - b.scrollTop + 1
	}
	if b.scrollTop == 0 && b.scrollBottom == b.rows-1 && b.Scrollback != nil {
		for i := 0; i < n; i++ {
			b.Scrollback.Push(append([]Cell(nil), b.lines[b.scrollTop].Cells...))
			b.shiftRegionUp(b.scrollTop, b.scrollBottom, 1)
		}
		return
	}
	b.shiftRegionUp(b.scrollTop, b.scrollBottom, n)
}

// ScrollDown scrolls the scroll region down by n lines.
func (b *ScreenBuffer) ScrollDown(n int) {
	if n < 1 {
		n = 1
	}
	b.shiftRegionDown(b.scrollTop, b.scrollBottom, n)
}

// --- tab stops ---

func (b *ScreenBuffer) SetTabStop() {
	if b.cursor.Col >= 0 && b.cursor.Col < b.cols {
		b.tabStops[b.cursor.Col] = true
	}
}

func (b *ScreenBuffer) ClearTabStop(col int) {
	if col >= 0 && col < b.cols {
		b.tabStops[col] = false
	}
}

func (b *ScreenBuffer) ClearAllTabStops() {
	for i := range b.tabStops {
		b.tabStops[i] = false
	}
}

// TabForward moves the cursor to the n-th next tab stop, or the last
// column if none remain.
func (b *ScreenBuffer) TabForward(n int) {
	if n < 1 {
		n = 1
	}
	col := b.cursor.Col
	for ; n > 0; n-- {
		next := -1
		for c := col + 1; c < b.cols; c++ {
			if b.tabStops[c] {
				next = c
				break
			}
		}
		if next == -1 {
			col = b.cols - 1
			break
		}
		col = next
	}
	b.cursor.Col = col
	b.cursor.PendingWrap = false
}

// TabBackward moves the cursor to the n-th previous tab stop, or column 0.
func (b *ScreenBuffer) TabBackward(n int) {
	if n < 1 {
		n = 1
	}
	col := b.cursor.Col
	for ; n > 0; n-- {
		prev := -1
		for c := col - 1; c >= 0; c-- {
			if b.tabStops[c] {
				prev = c
				break
			}
		}
		if prev == -1 {
			col = 0
			break
		}
		col = prev
	}
	b.cursor.Col = col
	b.cursor.PendingWrap = false
}

// --- save/restore cursor (DECSC/DECRC) ---

// SaveCursor implements DECSC: position, attributes template, origin-mode,
// and active charset.
func (b *ScreenBuffer) SaveCursor() {
	b.saved = &SavedCursor{
		Row:        b.cursor.Row,
		Col:        b.cursor.Col,
		Attrs:      b.template,
		OriginMode: b.originMode,
		Charset:    b.active,
	}
}

// RestoreCursor implements DECRC. If nothing was saved, it moves the cursor
// to the home position (0,0) and leaves attributes and origin mode as they are.
func (b *ScreenBuffer) RestoreCursor() {
	if b.saved == nil {
		b.cursor.Row, b.cursor.Col = 0, 0
		b.cursor.PendingWrap = false
		return
	}
	b.cursor.Row = b.saved.Row
	b.cursor.Col = b.saved.Col
	b.cursor.PendingWrap = false
	b.template = b.saved.Attrs
	b.originMode = b.saved.OriginMode
	b.active = b.saved.Charset
	b.clampCursor()
}

// --- charset ---

func (b *ScreenBuffer) DesignateCharset(slot CharsetIndex, cs Charset) { b.charsets[slot] = cs }
func (b *ScreenBuffer) SetActiveCharset(slot CharsetIndex)             { b.active = slot }
func (b *ScreenBuffer) ActiveCharset() Charset                        { return b.charsets[b.active] }

// --- fill / reset ---

// FillWithE implements DECALN: fills the whole screen with 'E', used for
// screen-alignment testing.
func (b *ScreenBuffer) FillWithE() {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			b.lines[r].Cells[c] = Cell{Ch: 'E', Attrs: DefaultAttributes, Width: WidthSingle}
		}
		b.markDirty(r)
	}
	b.cursor.Row, b.cursor.Col = 0, 0
	b.cursor.PendingWrap = false
}

// SoftReset resets modes/attributes/scroll-region/saved-cursor but
// preserves on-screen content, per DECSTR (spec.md §4.6).
func (b *ScreenBuffer) SoftReset() {
	b.autoWrap = true
	b.originMode = false
	b.scrollTop, b.scrollBottom = 0, b.rows-1
	b.template = DefaultAttributes
	b.saved = nil
	b.protectMode = ProtectionUnset
	b.cursor.PendingWrap = false
}

// HardReset clears the screen content and tab stops in addition to what
// SoftReset resets.
func (b *ScreenBuffer) HardReset() {
	b.SoftReset()
	for r := 0; r < b.rows; r++ {
		b.lines[r] = newLine(b.cols, DefaultAttributes)
	}
	b.resetTabStops()
	b.cursor = NewCursor()
	b.markDirty(0)
	b.markDirty(b.rows - 1)
}

// --- resize ---

// Resize implements spec.md §4.3's resize contract: column growth pads
// with blanks, shrink truncates; row growth adds blank rows at the
// bottom. Row shrink removes top rows (pushing them to scrollback on the
// primary screen): all excess rows if the cursor would otherwise fall
// off-screen, else just enough to keep every non-blank bottom row; the
// remaining excess blank bottom rows are dropped. Cursor and scroll region
// are clamped/reset as needed.
func (b *ScreenBuffer) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols != b.cols {
		b.resizeCols(cols)
	}
	if rows != b.rows {
		b.resizeRows(rows)
	}
	b.cursor.PendingWrap = false
	if b.scrollTop > b.rows-1 || b.scrollBottom > b.rows-1 || b.scrollTop >= b.scrollBottom {
		b.scrollTop, b.scrollBottom = 0, b.rows-1
	}
	b.clampCursor()
	b.markDirty(0)
	b.markDirty(b.rows - 1)
}

func (b *ScreenBuffer) resizeCols(cols int) {
	for i := range b.lines {
		cells := b.lines[i].Cells
		if cols > len(cells) {
			pad := make([]Cell, cols-len(cells))
			for j := range pad {
				pad[j] = BlankCell(DefaultAttributes)
			}
			b.lines[i].Cells = append(cells, pad...)
		} else {
			trimmed := append([]Cell(nil), cells[:cols]...)
			if cols > 0 && trimmed[cols-1].Width == WidthLeadingWide {
				trimmed[cols-1] = BlankCell(DefaultAttributes)
			}
			b.lines[i].Cells = trimmed
		}
	}
	oldCols := b.cols
	b.cols = cols
	if cols > oldCols {
		newStops := make([]bool, cols)
		copy(newStops, b.tabStops)
		for c := oldCols; c < cols; c++ {
			if c%8 == 0 {
				newStops[c] = true
			}
		}
		b.tabStops = newStops
	} else {
		b.tabStops = b.tabStops[:cols]
	}
}

func (b *ScreenBuffer) resizeRows(rows int) {
	if rows > b.rows {
		for i := b.rows; i < rows; i++ {
			b.lines = append(b.lines, newLine(b.cols, DefaultAttributes))
		}
		b.rows = rows
		return
	}
	// shrinking: retire rows from the top into scrollback, as many as needed
	// to keep the cursor on-screen or, if it already is, to keep every
	// non-blank bottom row; then drop trailing blank rows.
	excess := b.rows - rows
	needed := excess
	if b.cursor.Row < rows {
		needed = 0
		for r := b.rows - 1; r >= rows; r-- {
			if !lineBlank(b.lines[r]) {
				needed = r - rows + 1
				break
			}
		}
	}
	for i := 0; i < needed && i < excess; i++ {
		if b.Scrollback != nil {
			b.Scrollback.Push(append([]Cell(nil), b.lines[i].Cells...))
		}
	}
	if needed > 0 {
		b.lines = append([]Line(nil), b.lines[needed:]...)
	}
	if len(b.lines) > rows {
		b.lines = b.lines[:rows]
	}
	for len(b.lines) < rows {
		b.lines = append(b.lines, newLine(b.cols, DefaultAttributes))
	}
	b.rows = rows
	b.cursor.Row -= needed
}

func lineBlank(l Line) bool {
	for _, c := range l.Cells {
		if c.Ch != ' ' {
			return false
		}
	}
	return true
}
