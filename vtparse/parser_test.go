package vtparse

import (
	"reflect"
	"testing"
)

func collect(t *testing.T, chunks ...[]byte) []Event {
	t.Helper()
	var got []Event
	p := New(func(e Event) {
		// copy slices since the parser reuses backing arrays across Write calls
		ev := e
		if e.Data != nil {
			ev.Data = append([]byte(nil), e.Data...)
		}
		if e.Intermediates != nil {
			ev.Intermediates = append([]byte(nil), e.Intermediates...)
		}
		if e.Params != nil {
			ps := make([][]int, len(e.Params))
			for i, g := range e.Params {
				if g != nil {
					ps[i] = append([]int(nil), g...)
				}
			}
			ev.Params = ps
		}
		got = append(got, ev)
	})
	for _, c := range chunks {
		p.Write(c)
	}
	return got
}

func wholeVsSplit(t *testing.T, input []byte) []Event {
	t.Helper()
	whole := collect(t, input)
	for split := 1; split < len(input); split++ {
		byteSplit := collect(t, input[:split], input[split:])
		if !reflect.DeepEqual(whole, byteSplit) {
			t.Fatalf("byte-split at %d diverged:\n whole=%+v\n split=%+v", split, whole, byteSplit)
		}
	}
	// split every byte individually
	chunks := make([][]byte, len(input))
	for i, b := range input {
		chunks[i] = []byte{b}
	}
	perByte := collect(t, chunks...)
	if !reflect.DeepEqual(whole, perByte) {
		t.Fatalf("per-byte split diverged:\n whole=%+v\n perByte=%+v", whole, perByte)
	}
	return whole
}

func TestPrintableASCII(t *testing.T) {
	evs := wholeVsSplit(t, []byte("Hi!"))
	want := []Event{
		{Kind: EventPrint, Rune: 'H'},
		{Kind: EventPrint, Rune: 'i'},
		{Kind: EventPrint, Rune: '!'},
	}
	if !reflect.DeepEqual(evs, want) {
		t.Fatalf("got %+v, want %+v", evs, want)
	}
}

func TestC0ExecutesMidPrint(t *testing.T) {
	evs := wholeVsSplit(t, []byte("a\rb\n"))
	want := []Event{
		{Kind: EventPrint, Rune: 'a'},
		{Kind: EventControl, Byte: '\r'},
		{Kind: EventPrint, Rune: 'b'},
		{Kind: EventControl, Byte: '\n'},
	}
	if !reflect.DeepEqual(evs, want) {
		t.Fatalf("got %+v, want %+v", evs, want)
	}
}

func TestCSICursorPosition(t *testing.T) {
	evs := wholeVsSplit(t, []byte("\x1b[12;34H"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	e := evs[0]
	if e.Kind != EventCSI || e.Final != 'H' || e.Private != 0 {
		t.Fatalf("unexpected event: %+v", e)
	}
	want := [][]int{{12}, {34}}
	if !reflect.DeepEqual(e.Params, want) {
		t.Fatalf("params = %v, want %v", e.Params, want)
	}
}

func TestCSINoParams(t *testing.T) {
	evs := wholeVsSplit(t, []byte("\x1b[m"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	if len(evs[0].Params) != 0 {
		t.Fatalf("want empty params for bare CSI m, got %v", evs[0].Params)
	}
}

func TestCSIEmptyParamsNotDefaulted(t *testing.T) {
	// "CSI ; 5 m" -- first param omitted, must stay empty (nil group), not [0].
	evs := wholeVsSplit(t, []byte("\x1b[;5m"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	params := evs[0].Params
	if len(params) != 2 {
		t.Fatalf("want 2 param groups, got %v", params)
	}
	if len(params[0]) != 0 {
		t.Fatalf("first group should be empty, got %v", params[0])
	}
	if !reflect.DeepEqual(params[1], []int{5}) {
		t.Fatalf("second group = %v, want [5]", params[1])
	}
}

func TestCSISubParameters(t *testing.T) {
	// 24-bit SGR: CSI 38:2:10:20:30 m
	evs := wholeVsSplit(t, []byte("\x1b[38:2:10:20:30m"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	want := [][]int{{38, 2, 10, 20, 30}}
	if !reflect.DeepEqual(evs[0].Params, want) {
		t.Fatalf("params = %v, want %v", evs[0].Params, want)
	}
}

func TestCSIPrivatePrefix(t *testing.T) {
	evs := wholeVsSplit(t, []byte("\x1b[?1049h"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	e := evs[0]
	if e.Private != '?' || e.Final != 'h' {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !reflect.DeepEqual(e.Params, [][]int{{1049}}) {
		t.Fatalf("params = %v", e.Params)
	}
}

func TestCSIParamOverflowDiscarded(t *testing.T) {
	// 17 parameter groups, one over DefaultMaxParams; the whole sequence
	// must be silently discarded (no EventCSI emitted).
	seq := "\x1b["
	for i := 0; i < 17; i++ {
		if i > 0 {
			seq += ";"
		}
		seq += "1"
	}
	seq += "m"
	evs := wholeVsSplit(t, []byte(seq))
	for _, e := range evs {
		if e.Kind == EventCSI {
			t.Fatalf("expected overflowed CSI to be discarded, got %+v", e)
		}
	}
}

func TestOSCTitle(t *testing.T) {
	evs := wholeVsSplit(t, []byte("\x1b]0;hello\x07"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	e := evs[0]
	if e.Kind != EventOSC || e.Command != 0 || string(e.Data) != "hello" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestOSCTerminatedByST(t *testing.T) {
	evs := wholeVsSplit(t, []byte("\x1b]52;c;Zm9v\x1b\\"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	e := evs[0]
	if e.Kind != EventOSC || e.Command != 52 || string(e.Data) != "c;Zm9v" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestDCSPassthrough(t *testing.T) {
	evs := wholeVsSplit(t, []byte("\x1bP1$r2 q\x1b\\"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	e := evs[0]
	if e.Kind != EventDCS {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestSOSPMAPC(t *testing.T) {
	cases := []struct {
		in   string
		kind EventKind
	}{
		{"\x1bXhello\x1b\\", EventSOS},
		{"\x1b^hello\x1b\\", EventPM},
		{"\x1b_hello\x1b\\", EventAPC},
	}
	for _, c := range cases {
		evs := wholeVsSplit(t, []byte(c.in))
		if len(evs) != 1 || evs[0].Kind != c.kind || string(evs[0].Data) != "hello" {
			t.Fatalf("input %q: got %+v", c.in, evs)
		}
	}
}

func TestUTF8Decoding(t *testing.T) {
	// "é" (U+00E9, 2 bytes), "中" (U+4E2D, 3 bytes), "𐍈" (U+10348, 4 bytes)
	evs := wholeVsSplit(t, []byte("é中𐍈"))
	want := []Event{
		{Kind: EventPrint, Rune: 'é'},
		{Kind: EventPrint, Rune: '中'},
		{Kind: EventPrint, Rune: '𐍈'},
	}
	if !reflect.DeepEqual(evs, want) {
		t.Fatalf("got %+v, want %+v", evs, want)
	}
}

func TestInvalidUTF8ProducesReplacement(t *testing.T) {
	// 0xFF is never a valid UTF-8 lead byte.
	evs := wholeVsSplit(t, []byte{0xFF, 'x'})
	want := []Event{
		{Kind: EventPrint, Rune: '�'},
		{Kind: EventPrint, Rune: 'x'},
	}
	if !reflect.DeepEqual(evs, want) {
		t.Fatalf("got %+v, want %+v", evs, want)
	}
}

func TestTruncatedUTF8ResyncsOnESC(t *testing.T) {
	// lead byte for a 3-byte sequence, then ESC before continuation bytes arrive.
	p := New(func(Event) {})
	p.Write([]byte{0xE2})
	p.step(0x1B)
	if p.utf8Need != 0 {
		t.Fatalf("ESC should abort a partial UTF-8 sequence")
	}
}

func TestEscapeIntermediateFinal(t *testing.T) {
	// ESC ( B -- designate G0 as ASCII
	evs := wholeVsSplit(t, []byte("\x1b(B"))
	if len(evs) != 1 {
		t.Fatalf("want 1 event, got %+v", evs)
	}
	e := evs[0]
	if e.Kind != EventControl || e.Byte != 0x1B || e.Final != 'B' {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !reflect.DeepEqual(e.Intermediates, []byte{'('}) {
		t.Fatalf("intermediates = %v", e.Intermediates)
	}
}

func TestStatsOverflowCounted(t *testing.T) {
	p := New(func(Event) {})
	seq := "\x1b["
	for i := 0; i < 17; i++ {
		if i > 0 {
			seq += ";"
		}
		seq += "1"
	}
	seq += "m"
	p.Write([]byte(seq))
	if p.Stats().Overflows == 0 {
		t.Fatalf("expected overflow to be counted")
	}
}
