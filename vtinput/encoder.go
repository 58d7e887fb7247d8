package vtinput

import "fmt"

// Encoder turns key/paste events into wire bytes. It carries no state of
// its own; every call is a pure function of its arguments, per spec.md
// §4.7's "stateless w.r.t. its own data" contract.
type Encoder struct{}

// NewEncoder returns a ready-to-use Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// EncodeKey returns the bytes to write to the child PTY for a key event,
// selecting between normal and application-cursor-keys encodings and
// applying the xterm modifyOtherKeys modifier convention, per spec.md §4.7.
func (Encoder) EncodeKey(ev KeyEvent, mode ModeSnapshot) []byte {
	switch ev.Key {
	case KeyRune:
		return encodeRune(ev.Rune, ev.Mods)
	case KeyEnter:
		return withAlt([]byte{'\r'}, ev.Mods)
	case KeyTab:
		if ev.Mods&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return withAlt([]byte{'\t'}, ev.Mods)
	case KeyBackspace:
		return withAlt([]byte{0x7f}, ev.Mods)
	case KeyEscape:
		return []byte{0x1b}
	case KeyUp:
		return encodeCursorKey('A', ev.Mods, mode)
	case KeyDown:
		return encodeCursorKey('B', ev.Mods, mode)
	case KeyRight:
		return encodeCursorKey('C', ev.Mods, mode)
	case KeyLeft:
		return encodeCursorKey('D', ev.Mods, mode)
	case KeyHome:
		return encodeCursorKey('H', ev.Mods, mode)
	case KeyEnd:
		return encodeCursorKey('F', ev.Mods, mode)
	case KeyPageUp:
		return encodeTilde(5, ev.Mods)
	case KeyPageDown:
		return encodeTilde(6, ev.Mods)
	case KeyInsert:
		return encodeTilde(2, ev.Mods)
	case KeyDelete:
		return encodeTilde(3, ev.Mods)
	case KeyF1:
		return encodeFunctionKeyLow('P', ev.Mods)
	case KeyF2:
		return encodeFunctionKeyLow('Q', ev.Mods)
	case KeyF3:
		return encodeFunctionKeyLow('R', ev.Mods)
	case KeyF4:
		return encodeFunctionKeyLow('S', ev.Mods)
	case KeyF5:
		return encodeTilde(15, ev.Mods)
	case KeyF6:
		return encodeTilde(17, ev.Mods)
	case KeyF7:
		return encodeTilde(18, ev.Mods)
	case KeyF8:
		return encodeTilde(19, ev.Mods)
	case KeyF9:
		return encodeTilde(20, ev.Mods)
	case KeyF10:
		return encodeTilde(21, ev.Mods)
	case KeyF11:
		return encodeTilde(23, ev.Mods)
	case KeyF12:
		return encodeTilde(24, ev.Mods)
	default:
		return nil
	}
}

// encodeRune handles a printable character, folding ctrl into the C0 range
// per the standard terminal convention (byte & 0x1f) and prefixing ESC for
// alt, matching xterm's meta-sends-escape default.
func encodeRune(r rune, mods Modifiers) []byte {
	if mods&ModCtrl != 0 && r < 0x80 {
		return withAlt([]byte{byte(r) & 0x1f}, mods&^ModCtrl)
	}
	return withAlt([]byte(string(r)), mods)
}

// withAlt prefixes ESC when ModAlt is set, leaving the rest of the
// modifier bitmask for the caller to have already folded in.
func withAlt(b []byte, mods Modifiers) []byte {
	if mods&ModAlt == 0 {
		return b
	}
	out := make([]byte, 0, len(b)+1)
	out = append(out, 0x1b)
	return append(out, b...)
}

// encodeCursorKey encodes an arrow/Home/End key: SS3 in application-cursor-
// keys mode with no modifiers, CSI otherwise, and the modifyOtherKeys
// parameter form whenever a modifier is held (xterm always uses CSI for
// modified cursor keys, even under DECCKM).
func encodeCursorKey(final byte, mods Modifiers, mode ModeSnapshot) []byte {
	if mods == 0 {
		if mode.ApplicationCursorKeys {
			return []byte{0x1b, 'O', final}
		}
		return []byte{0x1b, '[', final}
	}
	return []byte(fmt.Sprintf("\x1b[1;%d%c", xtermModifierCode(mods), final))
}

// encodeFunctionKeyLow encodes F1-F4: SS3 with no modifiers, CSI 1;mod with
// modifiers, per xterm's published function-key table.
func encodeFunctionKeyLow(final byte, mods Modifiers) []byte {
	if mods == 0 {
		return []byte{0x1b, 'O', final}
	}
	return []byte(fmt.Sprintf("\x1b[1;%d%c", xtermModifierCode(mods), final))
}

// encodeTilde encodes the CSI n ~ family (PageUp/PageDown/Insert/Delete/F5-F12).
func encodeTilde(n int, mods Modifiers) []byte {
	if mods == 0 {
		return []byte(fmt.Sprintf("\x1b[%d~", n))
	}
	return []byte(fmt.Sprintf("\x1b[%d;%d~", n, xtermModifierCode(mods)))
}

// pasteStart, pasteEnd are the bracketed-paste markers (CSI 200~ / 201~).
var (
	pasteStart = []byte("\x1b[200~")
	pasteEnd   = []byte("\x1b[201~")
)

// EncodePaste wraps pasted text in bracketed-paste markers when the mode is
// on, raw otherwise. Any literal occurrence of the end marker inside the
// pasted text is neutralized by breaking the ESC byte out of the sequence,
// preventing the child from seeing an attacker-controlled paste-end +
// injected command, per spec.md §4.7.
func (Encoder) EncodePaste(text []byte, mode ModeSnapshot) []byte {
	if !mode.BracketedPaste {
		return text
	}
	out := make([]byte, 0, len(text)+len(pasteStart)+len(pasteEnd))
	out = append(out, pasteStart...)
	out = append(out, neutralizePasteEnd(text)...)
	out = append(out, pasteEnd...)
	return out
}

func neutralizePasteEnd(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == 0x1b && i+6 <= len(text) && string(text[i:i+6]) == "\x1b[201~" {
			out = append(out, ' ')
			out = append(out, text[i+1:i+6]...)
			i += 5
			continue
		}
		out = append(out, text[i])
	}
	return out
}
