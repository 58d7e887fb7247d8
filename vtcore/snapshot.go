package vtcore

// SnapshotRow is one row of a viewport pull per spec.md §6: a sequence of
// cells plus a continuation flag. Grounded on the teacher's snapshot.go
// SnapshotLine, dropping the Images field per the sixel/kitty drop
// decision (see DESIGN.md).
type SnapshotRow struct {
	Cells        []Cell
	Continuation bool
}

// SnapshotCursor mirrors the teacher's SnapshotCursor shape.
type SnapshotCursor struct {
	Row, Col int
	Visible  bool
	Style    CursorStyle
}

// Viewport implements spec.md §6's pull interface: viewport(height,
// offset) -> sequence of rows. offset counts lines of scrollback to show
// above the live screen's top row; 0 means "show the live screen".
func (e *Engine) Viewport(height, offset int) []SnapshotRow {
	e.mu.RLock()
	defer e.mu.RUnlock()
	screen := e.dual.Active()
	var rows []ViewportRow
	if e.dual.OnAlternate() || e.scrollback == nil {
		rows = make([]ViewportRow, 0, height)
		for r := 0; r < height && r < screen.Rows(); r++ {
			rows = append(rows, ViewportRow{Cells: screen.Line(r), Continuation: screen.LineContinuation(r)})
		}
	} else {
		rows = e.scrollback.Viewport(screen, height, offset)
	}
	out := make([]SnapshotRow, len(rows))
	for i, r := range rows {
		out[i] = SnapshotRow{Cells: r.Cells, Continuation: r.Continuation}
	}
	return out
}

// CursorSnapshot returns the active screen's cursor for rendering.
func (e *Engine) CursorSnapshot() SnapshotCursor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c := e.dual.Active().Cursor()
	return SnapshotCursor{Row: c.Row, Col: c.Col, Visible: e.modes.Has(ModeCursorVisible), Style: c.Style}
}
