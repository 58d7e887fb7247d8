// Package vtinput turns front-end key/mouse/paste events into the byte
// sequences a VT100/xterm-compatible child process expects on its stdin,
// per spec.md §4.7. Encoding is a pure function of the event plus a small
// mode snapshot read from the engine (application-cursor-keys, the active
// mouse protocol, bracketed paste) -- the encoder itself holds no state
// across calls.
package vtinput

// Key identifies an abstract key identity, independent of what bytes it
// produces -- the engine's mode state decides the encoding, per spec.md
// §6's "key identity is an abstract enum" requirement.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // printable character, carried in KeyEvent.Rune
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitmask of the modifier keys held during a key or mouse
// event, per spec.md §6.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// xtermModifierCode encodes the modifier bitmask as the xterm modifyOtherKeys
// parameter (1 = none, then +1 shift, +2 alt, +4 ctrl, +8 meta), used as the
// second CSI parameter of both cursor-key and function-key sequences.
func xtermModifierCode(m Modifiers) int {
	code := 1
	if m&ModShift != 0 {
		code += 1
	}
	if m&ModAlt != 0 {
		code += 2
	}
	if m&ModCtrl != 0 {
		code += 4
	}
	if m&ModMeta != 0 {
		code += 8
	}
	return code
}

// KeyEvent describes one key press for Encoder.EncodeKey.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mods Modifiers
}

// ModeSnapshot is the subset of engine mode state the encoder needs,
// captured by the caller before each Encode* call (the encoder does not
// reach into vtcore.Engine directly, keeping it dependency-free and
// independently testable per spec.md §4.7's "stateless" contract).
type ModeSnapshot struct {
	ApplicationCursorKeys bool
	KeypadApplication     bool
	BracketedPaste        bool

	MouseEnabled     bool
	MouseSGR         bool
	MouseButtonEvent bool
	MouseAnyEvent    bool
}
