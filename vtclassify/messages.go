// Package vtclassify turns vtparse.Events into typed terminal operations:
// cursor moves, erase variants, SGR attribute deltas, mode changes, OSC
// family dispatch, and DECRQSS status requests, per spec.md §4.2.
// Classifiers are total functions -- an unrecognized final byte or OSC
// command number produces an Unrecognized/OSCUnrecognized message rather
// than panicking or erroring.
package vtclassify

// Kind identifies which typed operation a Message carries.
type Kind int

const (
	KindUnrecognized Kind = iota

	// cursor movement
	KindCursorUp
	KindCursorDown
	KindCursorForward
	KindCursorBack
	KindCursorNextLine
	KindCursorPrevLine
	KindCursorColumn
	KindCursorRow
	KindCursorPosition

	// erase
	KindEraseDisplay
	KindEraseLine
	KindSelectiveEraseDisplay
	KindSelectiveEraseLine
	KindEraseCharacter

	// scroll / line / char edit
	KindScrollUp
	KindScrollDown
	KindInsertLine
	KindDeleteLine
	KindInsertCharacter
	KindDeleteCharacter

	// region / mode
	KindSetScrollRegion
	KindSetMode
	KindResetMode
	KindSetPrivateMode
	KindResetPrivateMode
	KindSavePrivateMode
	KindRestorePrivateMode
	KindSoftReset

	// device queries
	KindDeviceAttributesPrimary
	KindDeviceAttributesSecondary
	KindDeviceStatusReport
	KindCursorPositionReport
	KindWindowManipulation

	// tabs
	KindTabForward
	KindTabBackward
	KindTabClear

	// misc CSI
	KindCursorStyle
	KindCharacterProtection
	KindSGR

	// OSC
	KindOSCSetTitle
	KindOSCSetIconName
	KindOSCSetTitleAndIcon
	KindOSCPaletteColor
	KindOSCHyperlink
	KindOSCQueryDefaultFg
	KindOSCQueryDefaultBg
	KindOSCQueryTitle
	KindOSCClipboard
	KindOSCRPC
	KindOSCUnrecognized

	// DCS
	KindDECRQSS
	KindDCSUnrecognized

	// control / print passthrough (so a single classifier can front the
	// whole vtparse.Event stream for callers that want one dispatch point)
	KindPrint
	KindControl
	KindEscUnrecognized
)

// Message is the typed output of a classifier. Only the fields relevant
// to Kind are populated; unused int/string/byte fields are zero.
type Message struct {
	Kind Kind

	N       int   // generic count/mode/param argument (CUU n, EL mode, etc.)
	Top     int   // SetScrollRegion top; CursorPosition row
	Bottom  int   // SetScrollRegion bottom; CursorPosition column
	Private bool  // not set by ClassifyCSI; private modes are distinguished by Kind (KindSetPrivateMode etc.)
	Modes   []int // SetMode/ResetMode etc. may carry multiple mode numbers

	SGR []SGRAttr // KindSGR

	Text    string // OSC title/icon/uri text, DECRQSS setting text
	Command int    // OSC command number
	Index   int    // OSC 4 palette index
	Clip    byte   // OSC 52 clipboard selector

	Action  string // KindOSCRPC
	Payload []byte // KindOSCRPC / KindDCSUnrecognized raw data

	Rune rune // KindPrint
	Byte byte // KindControl / KindEscUnrecognized final byte
}
