package vtclassify

import (
	"testing"

	"github.com/inkterm/vtcore/vtparse"
)

func TestClassifyCursorPosition(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'H', Params: [][]int{{5}, {10}}})
	if m.Kind != KindCursorPosition || m.Top != 5 || m.Bottom != 10 {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifyCursorUpDefault(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'A', Params: nil})
	if m.Kind != KindCursorUp || m.N != 1 {
		t.Fatalf("got %+v, want default N=1", m)
	}
}

func TestClassifyPrivateMode(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'h', Private: '?', Params: [][]int{{1049}}})
	if m.Kind != KindSetPrivateMode || len(m.Modes) != 1 || m.Modes[0] != 1049 {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifySelectiveErase(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'J', Private: '?', Params: [][]int{{2}}})
	if m.Kind != KindSelectiveEraseDisplay || m.N != 2 {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifySGRTruecolorColon(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'm', Params: [][]int{{1}, {38, 2, 10, 20, 30}}})
	if m.Kind != KindSGR || len(m.SGR) != 2 {
		t.Fatalf("got %+v", m)
	}
	if m.SGR[0].Kind != SGRSetBold {
		t.Fatalf("first attr = %+v, want bold", m.SGR[0])
	}
	fg := m.SGR[1]
	if fg.Kind != SGRSetFg || !fg.Color.RGB || fg.Color.R != 10 || fg.Color.G != 20 || fg.Color.B != 30 {
		t.Fatalf("fg = %+v", fg)
	}
}

func TestClassifySGRTruecolorSemicolon(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'm', Params: [][]int{{38}, {2}, {10}, {20}, {30}}})
	if m.Kind != KindSGR || len(m.SGR) != 1 {
		t.Fatalf("got %+v", m)
	}
	fg := m.SGR[0]
	if fg.Kind != SGRSetFg || !fg.Color.RGB || fg.Color.R != 10 {
		t.Fatalf("fg = %+v", fg)
	}
}

func TestClassifySGRIndexed(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'm', Params: [][]int{{38}, {5}, {200}}})
	if m.Kind != KindSGR || len(m.SGR) != 1 || m.SGR[0].Color.Index != 200 {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifySGREmptyIsResetAll(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'm', Params: nil})
	if m.Kind != KindSGR || len(m.SGR) != 1 || m.SGR[0].Kind != SGRResetAll {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifySoftReset(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: 'p', Intermediates: []byte{'!'}})
	if m.Kind != KindSoftReset {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	m := ClassifyCSI(vtparse.Event{Final: '~'})
	if m.Kind != KindUnrecognized {
		t.Fatalf("got %+v, want Unrecognized", m)
	}
}

func TestClassifyOSCTitle(t *testing.T) {
	m := ClassifyOSC(vtparse.Event{Command: 2, Data: []byte("hello")})
	if m.Kind != KindOSCSetTitle || m.Text != "hello" {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifyOSCHyperlink(t *testing.T) {
	m := ClassifyOSC(vtparse.Event{Command: 8, Data: []byte("id=1;https://example.com")})
	if m.Kind != KindOSCHyperlink || m.Text != "https://example.com" {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifyOSCClipboard(t *testing.T) {
	m := ClassifyOSC(vtparse.Event{Command: 52, Data: []byte("c;Zm9v")})
	if m.Kind != KindOSCClipboard || m.Clip != 'c' || m.Text != "Zm9v" {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifyOSCPrivateRPC(t *testing.T) {
	m := ClassifyOSC(vtparse.Event{Command: 1010, Data: []byte(`{"action":"ping"}`)})
	if m.Kind != KindOSCRPC {
		t.Fatalf("got %+v", m)
	}
}

func TestClassifyDCSRequestStatus(t *testing.T) {
	m := ClassifyDCS(vtparse.Event{Final: 'q', Intermediates: []byte{'$'}, Data: []byte("m")})
	if m.Kind != KindDECRQSS || m.Text != "m" {
		t.Fatalf("got %+v", m)
	}
}
