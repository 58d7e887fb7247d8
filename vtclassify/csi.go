package vtclassify

import "github.com/inkterm/vtcore/vtparse"

// arg returns params[i]'s first value, or def if the group is absent,
// empty, or out of range. This is where "default value for an omitted
// parameter is implementation-defined per CSI final byte" (spec.md §4.1)
// is applied -- the parser itself never defaults an empty parameter.
func arg(params [][]int, i, def int) int {
	if i < 0 || i >= len(params) || len(params[i]) == 0 {
		return def
	}
	return params[i][0]
}

func allArgs(params [][]int) []int {
	out := make([]int, 0, len(params))
	for _, g := range params {
		if len(g) > 0 {
			out = append(out, g[0])
		}
	}
	return out
}

// ClassifyCSI maps a parsed CSI event to a typed Message, per spec.md
// §4.2's CSI classifier. Grounded on the teacher's handler.go method
// vocabulary and other_examples' james4k-terminal csi.go switch-on-final
// shape.
func ClassifyCSI(e vtparse.Event) Message {
	p := e.Params
	private := e.Private == '?'

	switch e.Final {
	case 'A':
		return Message{Kind: KindCursorUp, N: arg(p, 0, 1)}
	case 'B':
		return Message{Kind: KindCursorDown, N: arg(p, 0, 1)}
	case 'C':
		return Message{Kind: KindCursorForward, N: arg(p, 0, 1)}
	case 'D':
		return Message{Kind: KindCursorBack, N: arg(p, 0, 1)}
	case 'E':
		return Message{Kind: KindCursorNextLine, N: arg(p, 0, 1)}
	case 'F':
		return Message{Kind: KindCursorPrevLine, N: arg(p, 0, 1)}
	case 'G', '`':
		return Message{Kind: KindCursorColumn, N: arg(p, 0, 1)}
	case 'd':
		return Message{Kind: KindCursorRow, N: arg(p, 0, 1)}
	case 'H', 'f':
		return Message{Kind: KindCursorPosition, Top: arg(p, 0, 1), Bottom: arg(p, 1, 1)}
	case 'J':
		if private {
			return Message{Kind: KindSelectiveEraseDisplay, N: arg(p, 0, 0)}
		}
		return Message{Kind: KindEraseDisplay, N: arg(p, 0, 0)}
	case 'K':
		if private {
			return Message{Kind: KindSelectiveEraseLine, N: arg(p, 0, 0)}
		}
		return Message{Kind: KindEraseLine, N: arg(p, 0, 0)}
	case 'X':
		return Message{Kind: KindEraseCharacter, N: arg(p, 0, 1)}
	case 'S':
		return Message{Kind: KindScrollUp, N: arg(p, 0, 1)}
	case 'T':
		return Message{Kind: KindScrollDown, N: arg(p, 0, 1)}
	case 'L':
		return Message{Kind: KindInsertLine, N: arg(p, 0, 1)}
	case 'M':
		return Message{Kind: KindDeleteLine, N: arg(p, 0, 1)}
	case '@':
		return Message{Kind: KindInsertCharacter, N: arg(p, 0, 1)}
	case 'P':
		return Message{Kind: KindDeleteCharacter, N: arg(p, 0, 1)}
	case 'r':
		if private {
			return Message{Kind: KindRestorePrivateMode, Modes: allArgs(p)}
		}
		return Message{Kind: KindSetScrollRegion, Top: arg(p, 0, 1), Bottom: arg(p, 1, 0)}
	case 's':
		if private {
			return Message{Kind: KindSavePrivateMode, Modes: allArgs(p)}
		}
		return Message{Kind: KindUnrecognized}
	case 'h':
		modes := allArgs(p)
		if private {
			return Message{Kind: KindSetPrivateMode, Modes: modes}
		}
		return Message{Kind: KindSetMode, Modes: modes}
	case 'l':
		modes := allArgs(p)
		if private {
			return Message{Kind: KindResetPrivateMode, Modes: modes}
		}
		return Message{Kind: KindResetMode, Modes: modes}
	case 'c':
		if private || e.Private == '>' {
			return Message{Kind: KindDeviceAttributesSecondary}
		}
		return Message{Kind: KindDeviceAttributesPrimary}
	case 'n':
		if private {
			return Message{Kind: KindUnrecognized}
		}
		if arg(p, 0, 0) == 6 {
			return Message{Kind: KindCursorPositionReport}
		}
		return Message{Kind: KindDeviceStatusReport, N: arg(p, 0, 0)}
	case 't':
		return Message{Kind: KindWindowManipulation, N: arg(p, 0, 0), Modes: allArgs(p)}
	case 'I':
		return Message{Kind: KindTabForward, N: arg(p, 0, 1)}
	case 'Z':
		return Message{Kind: KindTabBackward, N: arg(p, 0, 1)}
	case 'g':
		return Message{Kind: KindTabClear, N: arg(p, 0, 0)}
	case 'm':
		return Message{Kind: KindSGR, SGR: ClassifySGR(p)}
	case 'p':
		if len(e.Intermediates) > 0 && e.Intermediates[0] == '!' {
			return Message{Kind: KindSoftReset}
		}
		return Message{Kind: KindUnrecognized}
	case 'q':
		if len(e.Intermediates) > 0 && e.Intermediates[0] == ' ' {
			return Message{Kind: KindCursorStyle, N: arg(p, 0, 0)}
		}
		if len(e.Intermediates) > 0 && e.Intermediates[0] == '"' {
			return Message{Kind: KindCharacterProtection, N: arg(p, 0, 0)}
		}
		return Message{Kind: KindUnrecognized}
	default:
		return Message{Kind: KindUnrecognized}
	}
}
