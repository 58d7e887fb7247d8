package vtclassify

import "github.com/inkterm/vtcore/vtparse"

// ClassifyDCS recognizes DECRQSS ($q) per spec.md §4.2; other DCS content
// is discarded (returned as KindDCSUnrecognized so a caller can still
// observe it for diagnostics, without requiring special handling).
func ClassifyDCS(e vtparse.Event) Message {
	if e.Final == 'q' && len(e.Intermediates) == 1 && e.Intermediates[0] == '$' {
		return Message{Kind: KindDECRQSS, Text: string(e.Data)}
	}
	return Message{Kind: KindDCSUnrecognized, Payload: e.Data}
}
