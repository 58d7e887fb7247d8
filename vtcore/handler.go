package vtcore

import (
	"encoding/base64"
	"fmt"

	"github.com/inkterm/vtcore/vtclassify"
	"github.com/inkterm/vtcore/vtparse"
)

// handleEvent is the Parser's emit callback: it special-cases printable
// text and two-byte ESC/C0 control sequences (which need the raw
// Intermediates vtclassify.Message doesn't carry) and otherwise routes
// through vtclassify.Classify, per spec.md §4.2's "parse events ->
// classifiers -> typed messages -> engine dispatch" pipeline. Grounded on
// the teacher's handler.go entry point, generalized from its single
// ansicode.Handler interface to this two-stage classify/apply split.
func (e *Engine) handleEvent(ev vtparse.Event) {
	screen := e.dual.Active()
	switch ev.Kind {
	case vtparse.EventPrint:
		width := codepointWidth(ev.Rune)
		screen.PutCodepoint(ev.Rune, width, screen.Template())
	case vtparse.EventControl:
		if ev.Final != 0 {
			e.handleEscFinal(screen, ev.Final, ev.Intermediates)
			return
		}
		e.handleC0(screen, ev.Byte)
	case vtparse.EventCSI, vtparse.EventOSC, vtparse.EventDCS:
		e.applyMessage(screen, vtclassify.Classify(ev))
	default: // SOS, PM, APC: no recognized protocol rides these (see DESIGN.md)
	}
}

// handleC0 executes a C0 control byte. Grounded on the teacher's
// handler.go control-byte switch.
func (e *Engine) handleC0(screen *ScreenBuffer, b byte) {
	switch b {
	case 0x07: // BEL
		e.bell.Ring()
		e.queue.push(Event{Kind: EventBell})
	case 0x08: // BS
		screen.MoveBackward(1)
	case 0x09: // HT
		screen.TabForward(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		screen.Index()
	case 0x0D: // CR
		screen.CarriageReturn()
	case 0x0E: // SO -- shift to G1
		screen.SetActiveCharset(G1)
	case 0x0F: // SI -- shift to G0
		screen.SetActiveCharset(G0)
	}
}

// handleEscFinal executes a two-byte ESC sequence (ESC + optional
// intermediates + final byte) that vtparse folds into a single
// EventControl rather than a CSI/DCS event.
func (e *Engine) handleEscFinal(screen *ScreenBuffer, final byte, intermediates []byte) {
	if len(intermediates) > 0 {
		switch intermediates[0] {
		case '(', ')', '*', '+':
			slot := [4]CharsetIndex{G0, G1, G2, G3}[intermediates[0]-'(']
			cs := CharsetASCII
			if final == '0' {
				cs = CharsetLineDrawing
			}
			screen.DesignateCharset(slot, cs)
		}
		return
	}
	switch final {
	case 'D': // IND
		screen.Index()
	case 'M': // RI
		screen.ReverseIndex()
	case 'E': // NEL
		screen.NextLine()
	case '7': // DECSC
		screen.SaveCursor()
	case '8': // DECRC
		screen.RestoreCursor()
	case 'c': // RIS
		e.hardReset()
	case '=': // DECKPAM
		e.modes = e.modes.Set(ModeKeypadApplication)
	case '>': // DECKPNM
		e.modes = e.modes.Clear(ModeKeypadApplication)
	}
}

// hardReset is HardReset's body, callable while e.mu is already held (RIS
// arrives mid-Write, which already holds the lock).
func (e *Engine) hardReset() {
	e.softReset()
	e.modes = defaultModes
	e.dual.Primary.HardReset()
	e.dual.Alternate.HardReset()
	e.scrollback.Clear()
	e.title, e.icon = "", ""
	e.titleStack = nil
	e.promptMarks = nil
}

// applyMessage dispatches a classified CSI/OSC/DCS message onto the active
// screen and engine state, per spec.md §4.3/§4.6. Grounded on the
// teacher's handler.go method-per-operation vocabulary.
func (e *Engine) applyMessage(screen *ScreenBuffer, m vtclassify.Message) {
	switch m.Kind {
	case vtclassify.KindCursorUp:
		screen.MoveUp(m.N)
	case vtclassify.KindCursorDown:
		screen.MoveDown(m.N)
	case vtclassify.KindCursorForward:
		screen.MoveForward(m.N)
	case vtclassify.KindCursorBack:
		screen.MoveBackward(m.N)
	case vtclassify.KindCursorNextLine:
		screen.MoveDown(m.N)
		screen.CarriageReturn()
	case vtclassify.KindCursorPrevLine:
		screen.MoveUp(m.N)
		screen.CarriageReturn()
	case vtclassify.KindCursorColumn:
		screen.GotoCol(m.N - 1)
	case vtclassify.KindCursorRow:
		screen.GotoRow(m.N - 1)
	case vtclassify.KindCursorPosition:
		screen.Goto(m.Top-1, m.Bottom-1)

	case vtclassify.KindEraseDisplay:
		screen.EraseInDisplay(m.N)
	case vtclassify.KindEraseLine:
		screen.EraseInLine(m.N)
	case vtclassify.KindSelectiveEraseDisplay:
		screen.SelectiveEraseInDisplay(m.N)
	case vtclassify.KindSelectiveEraseLine:
		screen.SelectiveEraseInLine(m.N)
	case vtclassify.KindEraseCharacter:
		screen.EraseCharacter(m.N)

	case vtclassify.KindScrollUp:
		screen.ScrollUp(m.N)
	case vtclassify.KindScrollDown:
		screen.ScrollDown(m.N)
	case vtclassify.KindInsertLine:
		screen.InsertLine(m.N)
	case vtclassify.KindDeleteLine:
		screen.DeleteLine(m.N)
	case vtclassify.KindInsertCharacter:
		screen.InsertCharacter(m.N)
	case vtclassify.KindDeleteCharacter:
		screen.DeleteCharacter(m.N)

	case vtclassify.KindSetScrollRegion:
		bottom := m.Bottom
		if bottom == 0 {
			bottom = screen.Rows()
		}
		screen.SetScrollRegion(m.Top, bottom)

	case vtclassify.KindSetMode:
		e.setAnsiModes(m.Modes, true)
	case vtclassify.KindResetMode:
		e.setAnsiModes(m.Modes, false)
	case vtclassify.KindSetPrivateMode:
		e.setPrivateModes(m.Modes, true)
	case vtclassify.KindResetPrivateMode:
		e.setPrivateModes(m.Modes, false)
	case vtclassify.KindSavePrivateMode:
		for _, n := range m.Modes {
			e.savedPrivateModes[n] = e.privateModeActive(n)
		}
	case vtclassify.KindRestorePrivateMode:
		for _, n := range m.Modes {
			if v, ok := e.savedPrivateModes[n]; ok {
				e.setPrivateModes([]int{n}, v)
			}
		}
	case vtclassify.KindSoftReset:
		e.softReset()

	case vtclassify.KindDeviceAttributesPrimary:
		e.sendResponse(buildDeviceResponse("\x1b[?62;22c"))
	case vtclassify.KindDeviceAttributesSecondary:
		e.sendResponse(buildDeviceResponse("\x1b[>1;10;0c"))
	case vtclassify.KindDeviceStatusReport:
		if m.N == 5 {
			e.sendResponse(buildDeviceResponse("\x1b[0n"))
		}
	case vtclassify.KindCursorPositionReport:
		c := screen.Cursor()
		row, col := c.Row, c.Col
		if screen.OriginMode() {
			top, _ := screen.ScrollRegion()
			row -= top
		}
		e.sendResponse(buildDeviceResponse("\x1b[%d;%dR", row+1, col+1))
	case vtclassify.KindWindowManipulation:
		switch m.N {
		case 18:
			e.sendResponse(buildDeviceResponse("\x1b[8;%d;%dt", screen.Rows(), screen.Cols()))
		case 22:
			e.pushTitle()
		case 23:
			e.popTitle()
		}

	case vtclassify.KindTabForward:
		screen.TabForward(m.N)
	case vtclassify.KindTabBackward:
		screen.TabBackward(m.N)
	case vtclassify.KindTabClear:
		switch m.N {
		case 3:
			screen.ClearAllTabStops()
		default:
			screen.ClearTabStop(screen.Cursor().Col)
		}

	case vtclassify.KindCursorStyle:
		screen.SetCursorStyle(decodeCursorStyle(m.N))
	case vtclassify.KindCharacterProtection:
		screen.SetCharacterProtection(m.N)

	case vtclassify.KindSGR:
		screen.SetTemplate(applySGR(screen.Template(), e.palette, m.SGR))

	case vtclassify.KindOSCSetTitle:
		e.setTitle(m.Text)
	case vtclassify.KindOSCSetIconName:
		e.setIcon(m.Text)
	case vtclassify.KindOSCSetTitleAndIcon:
		e.setTitle(m.Text)
		e.setIcon(m.Text)
	case vtclassify.KindOSCPaletteColor:
		if rgb, ok := parseXColor(m.Text); ok {
			e.palette.Entries[byte(m.Index)] = rgb
		}
	case vtclassify.KindOSCHyperlink:
		e.setHyperlink(screen, m.Text)
	case vtclassify.KindOSCQueryDefaultFg:
		e.sendResponse(buildDeviceResponse("\x1b]10;%s\x1b\\", formatXColor(e.palette.Foreground)))
	case vtclassify.KindOSCQueryDefaultBg:
		e.sendResponse(buildDeviceResponse("\x1b]11;%s\x1b\\", formatXColor(e.palette.Background)))
	case vtclassify.KindOSCQueryTitle:
		// xterm answers this with the window-title report protocol (OSC l);
		// no client in this module's scope issues the query, so it is
		// recognized but left unanswered rather than guessing a format.
	case vtclassify.KindOSCClipboard:
		e.handleClipboard(m.Clip, m.Text)
	case vtclassify.KindOSCRPC:
		if action, payload, ok := decodeRPCEnvelope(m.Payload); ok {
			e.rpc.Handle(action, payload)
		} else if len(m.Payload) > 0 {
			e.rpc.Handle(m.Action, m.Payload)
		}

	case vtclassify.KindDECRQSS:
		e.handleDECRQSS(screen, m.Text)

	case vtclassify.KindOSCUnrecognized, vtclassify.KindDCSUnrecognized, vtclassify.KindUnrecognized:
		if m.Kind == vtclassify.KindOSCUnrecognized && m.Command == 133 && len(m.Payload) > 0 {
			e.promptMarks = append(e.promptMarks, PromptMark{Kind: m.Payload[0], Row: screen.Cursor().Row})
			return
		}
		e.logger.Debug("unrecognized sequence", "kind", m.Kind)
	}
}

func (e *Engine) setAnsiModes(modes []int, on bool) {
	for _, n := range modes {
		if bit, ok := ansiModeBit(n); ok {
			if on {
				e.modes = e.modes.Set(bit)
			} else {
				e.modes = e.modes.Clear(bit)
			}
		}
	}
}

func (e *Engine) privateModeActive(n int) bool {
	switch n {
	case 47, 1047, 1049:
		return e.dual.OnAlternate()
	default:
		bit, ok := privateModeBit(n)
		return ok && e.modes.Has(bit)
	}
}

// setPrivateModes applies a batch of DEC private mode numbers, handling the
// alt-screen triplet (47/1047/1049) specially since they mutate DualScreen
// rather than a ModeFlags bit, per spec.md §4.5.
func (e *Engine) setPrivateModes(modes []int, on bool) {
	for _, n := range modes {
		switch n {
		case 47:
			if on {
				e.dual.SwitchToAlternate(false, false)
			} else {
				e.dual.SwitchToPrimary(false)
			}
		case 1047:
			if on {
				e.dual.SwitchToAlternate(false, true)
			} else {
				e.dual.SwitchToPrimary(false)
			}
		case 1049:
			if on {
				e.dual.SwitchToAlternate(true, true)
			} else {
				e.dual.SwitchToPrimary(true)
			}
		case 6:
			e.dual.Active().SetOriginMode(on)
			if bit, ok := privateModeBit(n); ok {
				e.setModeBit(bit, on)
			}
		case 7:
			e.dual.Active().SetAutoWrap(on)
			if bit, ok := privateModeBit(n); ok {
				e.setModeBit(bit, on)
			}
		default:
			if bit, ok := privateModeBit(n); ok {
				e.setModeBit(bit, on)
			}
		}
	}
	e.queue.push(Event{Kind: EventActiveChanged})
}

func (e *Engine) setModeBit(bit ModeFlags, on bool) {
	if on {
		e.modes = e.modes.Set(bit)
	} else {
		e.modes = e.modes.Clear(bit)
	}
}

func (e *Engine) setTitle(title string) {
	e.title = title
	e.titleProv.SetTitle(title)
	e.queue.push(Event{Kind: EventTitleChanged, Text: title})
}

func (e *Engine) setIcon(name string) {
	e.icon = name
	e.titleProv.SetIconName(name)
	e.queue.push(Event{Kind: EventIconChanged, Text: name})
}

// PushTitle, PopTitle implement xterm's title stack (supplemented feature,
// see SPEC_FULL.md §9), reachable directly by a host or via CSI
// window-manipulation 22/23 t (ClassifyCSI's KindWindowManipulation).
func (e *Engine) PushTitle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pushTitle()
}

func (e *Engine) PopTitle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.popTitle()
}

func (e *Engine) pushTitle() {
	e.titleStack = append(e.titleStack, e.title)
	e.titleProv.PushTitle()
}

func (e *Engine) popTitle() {
	if n := len(e.titleStack); n > 0 {
		e.title = e.titleStack[n-1]
		e.titleStack = e.titleStack[:n-1]
	}
	e.titleProv.PopTitle()
}

func (e *Engine) setHyperlink(screen *ScreenBuffer, uri string) {
	attrs := screen.Template()
	if uri == "" {
		attrs.HyperlinkID = 0
		screen.SetTemplate(attrs)
		return
	}
	e.nextHyperlinkID++
	id := e.nextHyperlinkID
	e.hyperlinks[id] = uri
	attrs.HyperlinkID = id
	screen.SetTemplate(attrs)
	e.hyperlink.Registered(id, uri)
	e.queue.push(Event{Kind: EventHyperlinkRegistered, HyperlinkID: id, HyperlinkURI: uri})
}

// HyperlinkURI resolves a Cell's HyperlinkID back to its target URI.
func (e *Engine) HyperlinkURI(id uint32) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	uri, ok := e.hyperlinks[id]
	return uri, ok
}

func (e *Engine) handleClipboard(clip byte, text string) {
	if text == "?" {
		data := e.clipboard.Read(clip)
		encoded := base64.StdEncoding.EncodeToString([]byte(data))
		e.sendResponse(buildDeviceResponse("\x1b]52;%c;%s\x1b\\", clip, encoded))
		e.queue.push(Event{Kind: EventPasteRequest, Clipboard: clip})
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return
	}
	e.clipboard.Write(clip, decoded)
}

func (e *Engine) handleDECRQSS(screen *ScreenBuffer, setting string) {
	switch setting {
	case "m":
		e.sendResponse(buildDeviceResponse("\x1bP1$r0m\x1b\\"))
	case "r":
		top, bottom := screen.ScrollRegion()
		e.sendResponse(buildDeviceResponse("\x1bP1$r%d;%dr\x1b\\", top+1, bottom+1))
	default:
		e.sendResponse(buildDeviceResponse("\x1bP0$r\x1b\\"))
	}
}

func (e *Engine) sendResponse(data []byte) {
	e.response.Write(data)
	e.queue.push(Event{Kind: EventResponseEmitted, Response: data})
}

func decodeCursorStyle(n int) CursorStyle {
	switch n {
	case 0, 1:
		return CursorBlinkingBlock
	case 2:
		return CursorSteadyBlock
	case 3:
		return CursorBlinkingUnderline
	case 4:
		return CursorSteadyUnderline
	case 5:
		return CursorBlinkingBar
	case 6:
		return CursorSteadyBar
	default:
		return CursorBlinkingBlock
	}
}

// applySGR folds a list of classified SGR attribute deltas onto attrs.
// palette is not consulted: the Color stays a sum-type reference, resolved
// to RGB at render time via Color.RGBA, per spec.md §3.
func applySGR(attrs Attributes, palette *Palette, deltas []vtclassify.SGRAttr) Attributes {
	for _, d := range deltas {
		switch d.Kind {
		case vtclassify.SGRResetAll:
			attrs = DefaultAttributes
		case vtclassify.SGRSetBold:
			attrs.Flags |= FlagBold
		case vtclassify.SGRUnsetBold:
			attrs.Flags &^= FlagBold
		case vtclassify.SGRSetFaint:
			attrs.Flags |= FlagFaint
		case vtclassify.SGRUnsetFaint:
			attrs.Flags &^= FlagFaint
		case vtclassify.SGRSetItalic:
			attrs.Flags |= FlagItalic
		case vtclassify.SGRUnsetItalic:
			attrs.Flags &^= FlagItalic
		case vtclassify.SGRSetUnderline:
			attrs.UnderlineStyle = UnderlineStyle(d.UnderlineStyle)
		case vtclassify.SGRUnsetUnderline:
			attrs.UnderlineStyle = UnderlineNone
		case vtclassify.SGRSetBlink:
			attrs.Flags |= FlagBlink
		case vtclassify.SGRSetRapidBlink:
			attrs.Flags |= FlagRapidBlink
		case vtclassify.SGRUnsetBlink:
			attrs.Flags &^= FlagBlink | FlagRapidBlink
		case vtclassify.SGRSetInverse:
			attrs.Flags |= FlagInverse
		case vtclassify.SGRUnsetInverse:
			attrs.Flags &^= FlagInverse
		case vtclassify.SGRSetHidden:
			attrs.Flags |= FlagHidden
		case vtclassify.SGRUnsetHidden:
			attrs.Flags &^= FlagHidden
		case vtclassify.SGRSetStrikethrough:
			attrs.Flags |= FlagStrikethrough
		case vtclassify.SGRUnsetStrikethrough:
			attrs.Flags &^= FlagStrikethrough
		case vtclassify.SGRSetFg:
			attrs.Fg = colorFromSpec(d.Color)
		case vtclassify.SGRDefaultFg:
			attrs.Fg = DefaultColor
		case vtclassify.SGRSetBg:
			attrs.Bg = colorFromSpec(d.Color)
		case vtclassify.SGRDefaultBg:
			attrs.Bg = DefaultColor
		case vtclassify.SGRSetUnderlineColor:
			attrs.UnderlineColor = colorFromSpec(d.Color)
		case vtclassify.SGRDefaultUnderlineColor:
			attrs.UnderlineColor = DefaultColor
		}
	}
	return attrs
}

func colorFromSpec(c vtclassify.ColorSpec) Color {
	if c.RGB {
		return RGB(c.R, c.G, c.B)
	}
	return Indexed(c.Index)
}

// parseXColor parses the two X11 color-spec forms xterm accepts in OSC
// 4/10/11 replies and requests: "#rrggbb" and "rgb:rr/gg/bb" (each channel
// 2 hex digits; wider channel widths are truncated to their high byte).
func parseXColor(s string) (RGB8, bool) {
	if len(s) == 7 && s[0] == '#' {
		r, ok1 := hexByte(s[1:3])
		g, ok2 := hexByte(s[3:5])
		b, ok3 := hexByte(s[5:7])
		if ok1 && ok2 && ok3 {
			return RGB8{r, g, b}, true
		}
		return RGB8{}, false
	}
	if len(s) > 4 && s[:4] == "rgb:" {
		parts := splitN(s[4:], '/', 3)
		if parts == nil {
			return RGB8{}, false
		}
		r, ok1 := hexByte(channelHigh(parts[0]))
		g, ok2 := hexByte(channelHigh(parts[1]))
		b, ok3 := hexByte(channelHigh(parts[2]))
		if ok1 && ok2 && ok3 {
			return RGB8{r, g, b}, true
		}
	}
	return RGB8{}, false
}

// channelHigh returns a channel's leading two hex digits (the high byte),
// so 4-digit 16-bit channels resolve to the same 8-bit value an 8-bit
// channel of the same name would.
func channelHigh(s string) string {
	if len(s) >= 2 {
		return s[:2]
	}
	if len(s) == 1 {
		return s + s
	}
	return s
}

func formatXColor(c RGB8) string {
	return fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x", c.R, c.R, c.G, c.G, c.B, c.B)
}

func hexByte(s string) (uint8, bool) {
	if len(s) != 2 {
		return 0, false
	}
	hi, ok1 := hexDigit(s[0])
	lo, ok2 := hexDigit(s[1])
	if !ok1 || !ok2 {
		return 0, false
	}
	return uint8(hi<<4 | lo), true
}

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// splitN splits s on sep into exactly n parts, or returns nil if s doesn't
// contain exactly n-1 separators.
func splitN(s string, sep byte, n int) []string {
	parts := make([]string, 0, n)
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	if len(parts) != n {
		return nil
	}
	return parts
}
