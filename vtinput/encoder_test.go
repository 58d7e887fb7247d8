package vtinput

import "testing"

func TestEncodeKeyArrowNormal(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeKey(KeyEvent{Key: KeyUp}, ModeSnapshot{})
	if string(got) != "\x1b[A" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyArrowApplication(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeKey(KeyEvent{Key: KeyUp}, ModeSnapshot{ApplicationCursorKeys: true})
	if string(got) != "\x1bOA" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyArrowWithModifier(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeKey(KeyEvent{Key: KeyRight, Mods: ModShift}, ModeSnapshot{ApplicationCursorKeys: true})
	if string(got) != "\x1b[1;2C" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyCtrlLetter(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeKey(KeyEvent{Key: KeyRune, Rune: 'c', Mods: ModCtrl}, ModeSnapshot{})
	if len(got) != 1 || got[0] != 0x03 {
		t.Fatalf("got %v, want ETX", got)
	}
}

func TestEncodeKeyAltRune(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeKey(KeyEvent{Key: KeyRune, Rune: 'x', Mods: ModAlt}, ModeSnapshot{})
	if string(got) != "\x1bx" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyFunctionLow(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeKey(KeyEvent{Key: KeyF1}, ModeSnapshot{})
	if string(got) != "\x1bOP" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyFunctionHigh(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeKey(KeyEvent{Key: KeyF5}, ModeSnapshot{})
	if string(got) != "\x1b[15~" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodePasteBracketed(t *testing.T) {
	e := NewEncoder()
	got := e.EncodePaste([]byte("hi"), ModeSnapshot{BracketedPaste: true})
	if string(got) != "\x1b[200~hi\x1b[201~" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodePasteRaw(t *testing.T) {
	e := NewEncoder()
	got := e.EncodePaste([]byte("hi"), ModeSnapshot{})
	if string(got) != "hi" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodePasteNeutralizesEmbeddedEndMarker(t *testing.T) {
	e := NewEncoder()
	malicious := []byte("before\x1b[201~rm -rf /after")
	got := e.EncodePaste(malicious, ModeSnapshot{BracketedPaste: true})
	s := string(got)
	if s[:len("\x1b[200~")] != "\x1b[200~" {
		t.Fatalf("missing start marker: %q", s)
	}
	if s[len(s)-len("\x1b[201~"):] != "\x1b[201~" {
		t.Fatalf("missing end marker: %q", s)
	}
	// the embedded end marker must not appear verbatim in the interior
	interior := s[len("\x1b[200~") : len(s)-len("\x1b[201~")]
	if want := "before\x1b[201~rm -rf /after"; interior == want {
		t.Fatalf("embedded paste-end marker was not neutralized: %q", interior)
	}
}

func TestEncodeMouseSGRPress(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Action: MousePress, Row: 4, Col: 9},
		ModeSnapshot{MouseEnabled: true, MouseSGR: true})
	if string(got) != "\x1b[<0;10;5M" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeMouseSGRRelease(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Action: MouseRelease, Row: 0, Col: 0},
		ModeSnapshot{MouseEnabled: true, MouseSGR: true})
	if string(got) != "\x1b[<0;1;1m" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeMouseLegacyClampsCoordinate(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Action: MousePress, Row: 1000, Col: 1000},
		ModeSnapshot{MouseEnabled: true})
	if len(got) != 6 {
		t.Fatalf("got %v", got)
	}
	if got[4] != byte(legacyMaxCoord+32) || got[5] != byte(legacyMaxCoord+32) {
		t.Fatalf("coordinates not clamped: %v", got)
	}
}

func TestEncodeMouseDisabledReturnsNil(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeMouse(MouseEvent{Button: MouseButtonLeft, Action: MousePress}, ModeSnapshot{})
	if got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestEncodeMouseMotionSuppressedWithoutAnyEvent(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeMouse(MouseEvent{Button: MouseButtonNone, Action: MouseMotion},
		ModeSnapshot{MouseEnabled: true, MouseSGR: true})
	if got != nil {
		t.Fatalf("got %v, want nil (motion requires any-event mode)", got)
	}
}

func TestEncodeMouseMotionReportedInAnyEventMode(t *testing.T) {
	e := NewEncoder()
	got := e.EncodeMouse(MouseEvent{Button: MouseButtonNone, Action: MouseMotion, Row: 1, Col: 1},
		ModeSnapshot{MouseEnabled: true, MouseSGR: true, MouseAnyEvent: true})
	if got == nil {
		t.Fatalf("expected a motion report")
	}
}
