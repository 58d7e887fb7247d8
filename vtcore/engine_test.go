package vtcore

import "testing"

func cellText(row []Cell) string {
	out := make([]rune, 0, len(row))
	for _, c := range row {
		if c.Width == WidthTrailingWide {
			continue
		}
		out = append(out, c.Ch)
	}
	return string(out)
}

func TestHelloWrap(t *testing.T) {
	e := New(80, 24)
	e.dual.Active().Goto(0, 78)
	e.Write([]byte("Hi!"))

	row0 := e.dual.Active().Line(0)
	if row0[78].Ch != 'H' || row0[79].Ch != 'i' {
		t.Fatalf("row0[78:80] = %q,%q", row0[78].Ch, row0[79].Ch)
	}
	row1 := e.dual.Active().Line(1)
	if row1[0].Ch != '!' {
		t.Fatalf("row1[0] = %q", row1[0].Ch)
	}
	c := e.Cursor()
	if c.Row != 1 || c.Col != 1 || c.PendingWrap {
		t.Fatalf("cursor = %+v", c)
	}
}

func TestCursorPositionAndEraseToEndOfLine(t *testing.T) {
	e := New(80, 24)
	e.Write([]byte("\x1b[5;10HX\x1b[K"))

	c := e.Cursor()
	if c.Row != 4 || c.Col != 10 {
		t.Fatalf("cursor = %+v, want (4,10)", c)
	}
	row := e.dual.Active().Line(4)
	if row[9].Ch != 'X' {
		t.Fatalf("row[9] = %q, want 'X'", row[9].Ch)
	}
	for col := 10; col < 80; col++ {
		if row[col].Ch != ' ' {
			t.Fatalf("row[%d] = %q, want blank after erase-to-end-of-line", col, row[col].Ch)
		}
	}
}

func TestScrollOffAndScrollback(t *testing.T) {
	e := New(4, 2)
	e.Write([]byte("AB\r\nCD\r\nEF"))

	if got := cellText(e.dual.Active().Line(0)); got != "CD  " {
		t.Fatalf("row0 = %q, want %q", got, "CD  ")
	}
	if got := cellText(e.dual.Active().Line(1)); got != "EF  " {
		t.Fatalf("row1 = %q, want %q", got, "EF  ")
	}
	if e.scrollback.Len() != 1 {
		t.Fatalf("scrollback len = %d, want 1", e.scrollback.Len())
	}

	view := e.Viewport(2, 1)
	if len(view) != 2 {
		t.Fatalf("viewport rows = %d, want 2", len(view))
	}
	if got := cellText(view[0].Cells); got != "AB  " {
		t.Fatalf("viewport[0] = %q, want %q", got, "AB  ")
	}
	if got := cellText(view[1].Cells); got != "CD  " {
		t.Fatalf("viewport[1] = %q, want %q", got, "CD  ")
	}
}

func TestAltScreenIsolation(t *testing.T) {
	e := New(10, 3)
	e.Write([]byte("primary"))
	e.Write([]byte("\x1b[?1049h"))
	e.Write([]byte("alt"))
	e.Write([]byte("\x1b[?1049l"))

	row := e.dual.Active().Line(0)
	if got := string([]rune{row[0].Ch, row[1].Ch, row[2].Ch, row[3].Ch, row[4].Ch, row[5].Ch, row[6].Ch}); got != "primary" {
		t.Fatalf("primary row0[0:7] = %q, want %q", got, "primary")
	}
	if e.scrollback.Len() != 0 {
		t.Fatalf("scrollback len = %d, want 0", e.scrollback.Len())
	}
	c := e.Cursor()
	if c.Row != 0 || c.Col != 7 {
		t.Fatalf("cursor = %+v, want restored to (0,7)", c)
	}
}

func TestSGRAndTruecolor(t *testing.T) {
	e := New(80, 24)
	e.Write([]byte("\x1b[1;38;2;10;20;30mA\x1b[0mB"))

	row := e.dual.Active().Line(0)
	a := row[0]
	if !a.Attrs.Flags.Has(FlagBold) {
		t.Fatalf("cell A should be bold")
	}
	if a.Attrs.Fg.Kind != ColorRGB || a.Attrs.Fg.R != 10 || a.Attrs.Fg.G != 20 || a.Attrs.Fg.B != 30 {
		t.Fatalf("cell A fg = %+v", a.Attrs.Fg)
	}
	b := row[1]
	if b.Attrs.Flags.Has(FlagBold) {
		t.Fatalf("cell B should not be bold")
	}
	if b.Attrs.Fg != DefaultColor {
		t.Fatalf("cell B fg = %+v, want default", b.Attrs.Fg)
	}
}

func TestDeviceStatusReportCursorPosition(t *testing.T) {
	var got []byte
	e := New(80, 24, WithResponseProvider(responseFunc(func(b []byte) (int, error) {
		got = append(got, b...)
		return len(b), nil
	})))
	e.Write([]byte("\x1b[5;10H\x1b[6n"))
	if string(got) != "\x1b[5;10R" {
		t.Fatalf("got %q, want %q", got, "\x1b[5;10R")
	}
}

func TestSoftResetPreservesContentResetsModes(t *testing.T) {
	e := New(80, 24)
	e.Write([]byte("\x1b[?6h")) // origin mode on
	if !e.Mode(ModeOrigin) {
		t.Fatalf("origin mode should be on")
	}
	e.Write([]byte("hello\x1b[!p"))
	if e.Mode(ModeOrigin) {
		t.Fatalf("soft reset should clear origin mode")
	}
	row := e.dual.Active().Line(0)
	if got := cellText(row)[:5]; got != "hello" {
		t.Fatalf("content should survive soft reset, got %q", got)
	}
}

type responseFunc func([]byte) (int, error)

func (f responseFunc) Write(b []byte) (int, error) { return f(b) }
