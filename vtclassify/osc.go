package vtclassify

import (
	"bytes"

	"github.com/inkterm/vtcore/vtparse"
)

// ClassifyOSC maps a parsed OSC event to a typed Message, per spec.md
// §4.2's OSC classifier: 0/2 title, 1 icon name, 4 palette, 8 hyperlink,
// 10/11 default fg/bg query, 21 title query, 52 clipboard, >=1000 private
// RPC range.
func ClassifyOSC(e vtparse.Event) Message {
	switch e.Command {
	case 0:
		return Message{Kind: KindOSCSetTitleAndIcon, Text: string(e.Data)}
	case 2:
		return Message{Kind: KindOSCSetTitle, Text: string(e.Data)}
	case 1:
		return Message{Kind: KindOSCSetIconName, Text: string(e.Data)}
	case 4:
		idx, spec := splitSemi(e.Data)
		return Message{Kind: KindOSCPaletteColor, Index: atoiSafe(idx), Text: string(spec)}
	case 8:
		_, uri := splitSemi(e.Data)
		return Message{Kind: KindOSCHyperlink, Text: string(uri)}
	case 10:
		return Message{Kind: KindOSCQueryDefaultFg, Text: string(e.Data)}
	case 11:
		return Message{Kind: KindOSCQueryDefaultBg, Text: string(e.Data)}
	case 21:
		return Message{Kind: KindOSCQueryTitle}
	case 52:
		clip, payload := splitSemi(e.Data)
		var c byte = 'c'
		if len(clip) > 0 {
			c = clip[0]
		}
		return Message{Kind: KindOSCClipboard, Clip: c, Text: string(payload)}
	default:
		if e.Command >= 1000 {
			if e.Command == 1010 {
				action, params := parseRPC(e.Data)
				return Message{Kind: KindOSCRPC, Action: action, Payload: params}
			}
			return Message{Kind: KindOSCRPC, Action: "", Payload: e.Data}
		}
		return Message{Kind: KindOSCUnrecognized, Command: e.Command, Payload: e.Data}
	}
}

func splitSemi(data []byte) ([]byte, []byte) {
	i := bytes.IndexByte(data, ';')
	if i < 0 {
		return data, nil
	}
	return data[:i], data[i+1:]
}

func atoiSafe(b []byte) int {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return n
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// parseRPC returns an empty action hint and the raw OSC 1010 payload:
// JSON decoding of the {"action":...} envelope happens in the engine to
// keep vtclassify free of an encoding/json dependency.
func parseRPC(data []byte) (string, []byte) {
	return "", data
}
