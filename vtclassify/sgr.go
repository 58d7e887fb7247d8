package vtclassify

// SGRAttrKind enumerates the attribute deltas the SGR classifier can
// produce, per spec.md §4.2.
type SGRAttrKind int

const (
	SGRResetAll SGRAttrKind = iota
	SGRSetBold
	SGRUnsetBold
	SGRSetFaint
	SGRUnsetFaint
	SGRSetItalic
	SGRUnsetItalic
	SGRSetUnderline
	SGRUnsetUnderline
	SGRSetBlink
	SGRSetRapidBlink
	SGRUnsetBlink
	SGRSetInverse
	SGRUnsetInverse
	SGRSetHidden
	SGRUnsetHidden
	SGRSetStrikethrough
	SGRUnsetStrikethrough
	SGRSetFg
	SGRDefaultFg
	SGRSetBg
	SGRDefaultBg
	SGRSetUnderlineColor
	SGRDefaultUnderlineColor
)

// ColorSpec is a classifier-level color value: either an index (0-255) or
// an RGB triple, tagged by RGB. vtcore.Color construction happens in the
// handler, keeping vtclassify free of a vtcore dependency.
type ColorSpec struct {
	RGB          bool
	Index        uint8
	R, G, B      uint8
}

// SGRAttr is one attribute delta; Color is populated only for the
// SetFg/SetBg/SetUnderlineColor kinds, UnderlineStyle only for SetUnderline.
type SGRAttr struct {
	Kind           SGRAttrKind
	Color          ColorSpec
	UnderlineStyle int
}

// ClassifySGR consumes a CSI 'm' sequence's parameter groups and produces
// a list of attribute deltas. Both ';' and ':' separator forms for
// indexed/RGB colors are accepted, per spec.md §4.2.
func ClassifySGR(params [][]int) []SGRAttr {
	if len(params) == 0 {
		return []SGRAttr{{Kind: SGRResetAll}}
	}
	var out []SGRAttr
	for i := 0; i < len(params); i++ {
		group := params[i]
		n := 0
		if len(group) > 0 {
			n = group[0]
		}
		switch {
		case n == 0:
			out = append(out, SGRAttr{Kind: SGRResetAll})
		case n == 1:
			out = append(out, SGRAttr{Kind: SGRSetBold})
		case n == 2:
			out = append(out, SGRAttr{Kind: SGRSetFaint})
		case n == 3:
			out = append(out, SGRAttr{Kind: SGRSetItalic})
		case n == 4:
			style := 1
			if len(group) > 1 {
				style = group[1]
			}
			out = append(out, SGRAttr{Kind: SGRSetUnderline, UnderlineStyle: style})
		case n == 5:
			out = append(out, SGRAttr{Kind: SGRSetBlink})
		case n == 6:
			out = append(out, SGRAttr{Kind: SGRSetRapidBlink})
		case n == 7:
			out = append(out, SGRAttr{Kind: SGRSetInverse})
		case n == 8:
			out = append(out, SGRAttr{Kind: SGRSetHidden})
		case n == 9:
			out = append(out, SGRAttr{Kind: SGRSetStrikethrough})
		case n == 21:
			out = append(out, SGRAttr{Kind: SGRUnsetBold}) // double underline alias; treated as bold-off per common xterm usage
		case n == 22:
			out = append(out, SGRAttr{Kind: SGRUnsetBold}, SGRAttr{Kind: SGRUnsetFaint})
		case n == 23:
			out = append(out, SGRAttr{Kind: SGRUnsetItalic})
		case n == 24:
			out = append(out, SGRAttr{Kind: SGRUnsetUnderline})
		case n == 25:
			out = append(out, SGRAttr{Kind: SGRUnsetBlink})
		case n == 27:
			out = append(out, SGRAttr{Kind: SGRUnsetInverse})
		case n == 28:
			out = append(out, SGRAttr{Kind: SGRUnsetHidden})
		case n == 29:
			out = append(out, SGRAttr{Kind: SGRUnsetStrikethrough})
		case n >= 30 && n <= 37:
			out = append(out, SGRAttr{Kind: SGRSetFg, Color: ColorSpec{Index: uint8(n - 30)}})
		case n == 38:
			c, consumed := parseExtendedColor(group, params, i)
			out = append(out, SGRAttr{Kind: SGRSetFg, Color: c})
			i += consumed
		case n == 39:
			out = append(out, SGRAttr{Kind: SGRDefaultFg})
		case n >= 40 && n <= 47:
			out = append(out, SGRAttr{Kind: SGRSetBg, Color: ColorSpec{Index: uint8(n - 40)}})
		case n == 48:
			c, consumed := parseExtendedColor(group, params, i)
			out = append(out, SGRAttr{Kind: SGRSetBg, Color: c})
			i += consumed
		case n == 49:
			out = append(out, SGRAttr{Kind: SGRDefaultBg})
		case n >= 90 && n <= 97:
			out = append(out, SGRAttr{Kind: SGRSetFg, Color: ColorSpec{Index: uint8(n - 90 + 8)}})
		case n >= 100 && n <= 107:
			out = append(out, SGRAttr{Kind: SGRSetBg, Color: ColorSpec{Index: uint8(n - 100 + 8)}})
		case n == 58:
			c, consumed := parseExtendedColor(group, params, i)
			out = append(out, SGRAttr{Kind: SGRSetUnderlineColor, Color: c})
			i += consumed
		case n == 59:
			out = append(out, SGRAttr{Kind: SGRDefaultUnderlineColor})
		}
	}
	return out
}

// parseExtendedColor handles 38/48/58's two forms:
//   - colon sub-parameters within one group: 38:5:n or 38:2:r:g:b
//   - legacy ';'-separated groups: 38;5;n or 38;2;r;g;b
//
// It returns the parsed color and, for the ';'-separated form, how many
// additional top-level groups were consumed (0 for the colon form, since
// everything was already in one group).
func parseExtendedColor(group []int, params [][]int, i int) (ColorSpec, int) {
	if len(group) >= 2 {
		switch group[1] {
		case 5:
			if len(group) >= 3 {
				return ColorSpec{Index: uint8(group[2])}, 0
			}
		case 2:
			if len(group) >= 5 {
				return ColorSpec{RGB: true, R: uint8(group[2]), G: uint8(group[3]), B: uint8(group[4])}, 0
			}
		}
	}
	// legacy ';'-separated form
	if i+1 < len(params) && len(params[i+1]) > 0 {
		mode := params[i+1][0]
		switch mode {
		case 5:
			if i+2 < len(params) && len(params[i+2]) > 0 {
				return ColorSpec{Index: uint8(params[i+2][0])}, 2
			}
		case 2:
			if i+4 < len(params) {
				r, g, b := 0, 0, 0
				if len(params[i+2]) > 0 {
					r = params[i+2][0]
				}
				if len(params[i+3]) > 0 {
					g = params[i+3][0]
				}
				if len(params[i+4]) > 0 {
					b = params[i+4][0]
				}
				return ColorSpec{RGB: true, R: uint8(r), G: uint8(g), B: uint8(b)}, 4
			}
		}
	}
	return ColorSpec{}, 0
}
