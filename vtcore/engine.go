package vtcore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inkterm/vtcore/vtparse"
	"github.com/unilibs/uniwidth"
)

// ErrInvalidGeometry is returned by Resize for non-positive dimensions.
var ErrInvalidGeometry = errors.New("vtcore: cols and rows must be >= 1")

// Engine is the orchestrator spec.md §4.6 describes: it consumes parse
// events, applies them to the active screen, manages mode state, emits
// response bytes for device queries, and raises screen-updated/title-
// changed/bell/response events. Grounded on the teacher's Terminal type
// (terminal.go) -- same functional-options construction, same
// Write/Resize/accessor shape -- generalized to dispatch vtclassify
// messages instead of calling into an external ansicode.Handler.
type Engine struct {
	mu sync.RWMutex

	dual       *DualScreen
	scrollback *ScrollbackStore
	modes      ModeFlags
	parser     *vtparse.Parser

	title      string
	icon       string
	titleStack []string

	hyperlinks      map[uint32]string
	nextHyperlinkID uint32

	palette *Palette

	savedPrivateModes map[int]bool

	promptMarks []PromptMark

	selection Selection

	queue eventQueue

	response  ResponseProvider
	bell      BellProvider
	titleProv TitleProvider
	clipboard ClipboardProvider
	hyperlink HyperlinkProvider
	rpc       RPCProvider

	logger *slog.Logger
}

// Option configures an Engine at construction, mirroring the teacher's
// functional-options pattern (terminal.go's Option/With* family).
type Option func(*Engine)

func WithResponseProvider(p ResponseProvider) Option   { return func(e *Engine) { e.response = p } }
func WithBellProvider(p BellProvider) Option           { return func(e *Engine) { e.bell = p } }
func WithTitleProvider(p TitleProvider) Option         { return func(e *Engine) { e.titleProv = p } }
func WithClipboardProvider(p ClipboardProvider) Option { return func(e *Engine) { e.clipboard = p } }
func WithHyperlinkProvider(p HyperlinkProvider) Option { return func(e *Engine) { e.hyperlink = p } }
func WithRPCProvider(p RPCProvider) Option             { return func(e *Engine) { e.rpc = p } }
func WithLogger(l *slog.Logger) Option                 { return func(e *Engine) { e.logger = l } }
func WithScrollbackCapacity(n int) Option {
	return func(e *Engine) { e.scrollback.SetMaxLines(n) }
}

// New builds an Engine at the given dimensions with DefaultScrollbackCapacity
// unless overridden by WithScrollbackCapacity.
func New(cols, rows int, opts ...Option) *Engine {
	scrollback := NewScrollbackStore(DefaultScrollbackCapacity)
	e := &Engine{
		dual:              NewDualScreen(cols, rows, scrollback),
		scrollback:        scrollback,
		modes:             defaultModes,
		hyperlinks:        make(map[uint32]string),
		palette:           NewPalette(),
		savedPrivateModes: make(map[int]bool),
		response:          NoopResponse{},
		bell:              NoopBell{},
		titleProv:         NoopTitle{},
		clipboard:         NoopClipboard{},
		hyperlink:         NoopHyperlink{},
		rpc:               NoopRPC{},
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.parser = vtparse.New(e.handleEvent)
	return e
}

// Palette returns the engine's live indexed/default color table, mutated by
// OSC 4 and read by a renderer resolving Cell colors to RGB.
func (e *Engine) Palette() *Palette {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.palette
}

// SetRPCHook installs (or replaces) the handler for the private OSC JSON
// channel, per spec.md §6.
func (e *Engine) SetRPCHook(p RPCProvider) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p == nil {
		p = NoopRPC{}
	}
	e.rpc = p
}

// Write feeds bytes from the PTY, per spec.md §4.6: not reentrant, applies
// everything before returning, and raises screen-updated at most once per
// call with the smallest bounding dirty-row range.
func (e *Engine) Write(data []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	screen := e.dual.Active()
	screen.ClearDirty()

	e.parser.Write(data)

	if from, to, ok := screen.DirtyRows(); ok {
		e.queue.push(Event{Kind: EventScreenUpdated, DirtyFrom: from, DirtyTo: to})
	}
	return len(data), nil
}

// Events drains queued push events in production order (spec.md §5).
func (e *Engine) Events() []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Drain()
}

// Resize resizes both screens and re-emits screen-updated.
func (e *Engine) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return ErrInvalidGeometry
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dual.Resize(cols, rows)
	e.queue.push(Event{Kind: EventScreenUpdated, DirtyFrom: 0, DirtyTo: rows - 1})
	return nil
}

// Cursor returns the active screen's cursor.
func (e *Engine) Cursor() Cursor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dual.Active().Cursor()
}

// Attributes returns the style template applied to newly-written cells.
func (e *Engine) Attributes() Attributes {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dual.Active().Template()
}

// Mode reports whether the named mode bit is set.
func (e *Engine) Mode(m ModeFlags) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modes.Has(m)
}

// Title, Icon return the current window title / icon name.
func (e *Engine) Title() string { e.mu.RLock(); defer e.mu.RUnlock(); return e.title }
func (e *Engine) Icon() string  { e.mu.RLock(); defer e.mu.RUnlock(); return e.icon }

// PromptMarks returns the OSC-133 shell-integration marks recorded so
// far (supplemented feature, see DESIGN.md/SPEC_FULL.md §9).
func (e *Engine) PromptMarks() []PromptMark {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]PromptMark(nil), e.promptMarks...)
}

// SoftReset implements DECSTR: resets modes/attrs/scroll-region/saved
// cursor on both screens but preserves content, per spec.md §4.6.
func (e *Engine) SoftReset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.softReset()
}

func (e *Engine) softReset() {
	e.dual.Primary.SoftReset()
	e.dual.Alternate.SoftReset()
	e.modes = e.modes.Clear(softResetModes) | (defaultModes & softResetModes)
}

// HardReset additionally clears both screens, scrollback, and tab stops.
func (e *Engine) HardReset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hardReset()
	e.queue.push(Event{Kind: EventScreenUpdated, DirtyFrom: 0, DirtyTo: e.dual.Active().Rows() - 1})
}

// codepointWidth classifies a rune's column width using the teacher's own
// domain dependency, github.com/unilibs/uniwidth.
func codepointWidth(r rune) int {
	if uniwidth.RuneWidth(r) >= 2 {
		return 2
	}
	return 1
}

// buildDeviceResponse formats CSI responses for §4.6's device queries.
func buildDeviceResponse(format string, args ...any) []byte {
	return []byte(fmt.Sprintf(format, args...))
}

// PromptMark records an OSC 133 shell-integration boundary (supplemented
// feature grounded on the teacher's shell_integration.go).
type PromptMark struct {
	Kind byte // 'A' prompt-start, 'B' prompt-end/command-start, 'C' command-executed, 'D' command-finished
	Row  int
}

// Selection tracks a text-selection range for copy/search (supplemented
// feature grounded on the teacher's selection methods in terminal.go).
type Selection struct {
	Active     bool
	Start, End Position
}

func (e *Engine) SetSelection(start, end Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = Selection{Active: true, Start: start, End: end}
}

func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = Selection{}
}

func (e *Engine) GetSelection() (Selection, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection, e.selection.Active
}

// GetSelectedText composes the live-screen text within the current
// selection, in row-major order.
func (e *Engine) GetSelectedText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.selection.Active {
		return ""
	}
	screen := e.dual.Active()
	var out []rune
	for r := e.selection.Start.Row; r <= e.selection.End.Row; r++ {
		line := screen.Line(r)
		if line == nil {
			continue
		}
		fromCol, toCol := 0, len(line)-1
		if r == e.selection.Start.Row {
			fromCol = e.selection.Start.Col
		}
		if r == e.selection.End.Row {
			toCol = e.selection.End.Col
		}
		for c := fromCol; c <= toCol && c < len(line); c++ {
			if line[c].Width != WidthTrailingWide {
				out = append(out, line[c].Ch)
			}
		}
		if r != e.selection.End.Row {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// decodeRPCEnvelope parses the OSC 1010 JSON body into action/payload, per
// spec.md §6's private JSON channel.
func decodeRPCEnvelope(data []byte) (string, json.RawMessage, bool) {
	var env rpcEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Action == "" {
		return "", nil, false
	}
	return env.Action, env.Params, true
}
