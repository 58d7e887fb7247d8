package vtclassify

import "github.com/inkterm/vtcore/vtparse"

// Classify dispatches a vtparse.Event to the appropriate family classifier,
// giving TerminalEngine a single entry point per spec.md §2's data-flow
// diagram ("parse events -> SequenceClassifiers -> typed messages").
// SOS/PM/APC events pass through as KindUnrecognized messages carrying the
// raw payload in Payload;
// the engine's APC dispatch (e.g. Kitty-style out-of-band protocols) is
// out of scope here per the sixel/kitty drop decision (see DESIGN.md).
func Classify(e vtparse.Event) Message {
	switch e.Kind {
	case vtparse.EventPrint:
		return Message{Kind: KindPrint, Rune: e.Rune}
	case vtparse.EventControl:
		if e.Final != 0 {
			return Message{Kind: KindEscUnrecognized, Byte: e.Final}
		}
		return Message{Kind: KindControl, Byte: e.Byte}
	case vtparse.EventCSI:
		return ClassifyCSI(e)
	case vtparse.EventOSC:
		return ClassifyOSC(e)
	case vtparse.EventDCS:
		return ClassifyDCS(e)
	default: // SOS, PM, APC
		return Message{Kind: KindUnrecognized, Payload: e.Data}
	}
}
