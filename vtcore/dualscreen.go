package vtcore

// DualScreen holds the primary and alternate ScreenBuffers and tracks
// which is active, per spec.md §4.5. Only the primary screen is backed by
// a ScrollbackStore; the alternate screen's Scrollback field is nil so
// ScreenBuffer.ScrollUp never appends to it.
type DualScreen struct {
	Primary, Alternate *ScreenBuffer
	onAlternate        bool
	// savedPrimaryCursor holds the cursor saved on mode 1047/1049 entry,
	// restored on exit.
	savedPrimaryCursor *SavedCursor
}

// NewDualScreen builds a DualScreen with both buffers at cols x rows.
// Scrollback backs only the primary buffer, per spec.md §4.4.
func NewDualScreen(cols, rows int, scrollback *ScrollbackStore) *DualScreen {
	return &DualScreen{
		Primary:   NewScreenBuffer(cols, rows, scrollback),
		Alternate: NewScreenBuffer(cols, rows, nil),
	}
}

// Active returns whichever screen is currently live.
func (d *DualScreen) Active() *ScreenBuffer {
	if d.onAlternate {
		return d.Alternate
	}
	return d.Primary
}

// OnAlternate reports whether the alternate screen is active.
func (d *DualScreen) OnAlternate() bool { return d.onAlternate }

// SwitchToAlternate implements modes 47/1047/1049's entry behavior.
// saveCursor additionally stashes the primary cursor+attrs (DECSC-style)
// for SwitchToPrimary's restoreCursor to recover; clear wipes the
// alternate screen content on entry (mode 1049 semantics).
func (d *DualScreen) SwitchToAlternate(saveCursor, clear bool) {
	if d.onAlternate {
		return
	}
	if saveCursor {
		d.Primary.SaveCursor()
		c := d.Primary.Cursor()
		d.savedPrimaryCursor = &SavedCursor{Row: c.Row, Col: c.Col, Attrs: d.Primary.Template(), OriginMode: d.Primary.OriginMode()}
	}
	d.onAlternate = true
	if clear {
		d.Alternate.HardReset()
	}
}

// SwitchToPrimary implements modes 47/1047/1049's exit behavior.
// restoreCursor recovers the cursor position saved at entry.
func (d *DualScreen) SwitchToPrimary(restoreCursor bool) {
	if !d.onAlternate {
		return
	}
	d.onAlternate = false
	if restoreCursor && d.savedPrimaryCursor != nil {
		d.Primary.RestoreCursor()
	}
	d.savedPrimaryCursor = nil
}

// Resize resizes both screens. Only the primary screen retires rows into
// scrollback; the alternate screen simply truncates/pads.
func (d *DualScreen) Resize(cols, rows int) {
	d.Primary.Resize(cols, rows)
	d.Alternate.Resize(cols, rows)
}
