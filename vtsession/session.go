// Package vtsession implements Session and SessionManager (spec.md §4.9):
// the glue that wires a PTY's output into a TerminalEngine, and the
// engine's response/key/mouse output back into the PTY, plus multi-session
// bookkeeping (create/switch/close/restart).
package vtsession

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/inkterm/vtcore/vtcore"
	"github.com/inkterm/vtcore/vtinput"
	"github.com/inkterm/vtcore/vtpty"
)

// Sentinel errors for the taxonomy in spec.md §7.
var (
	ErrSessionNotFound = errors.New("vtsession: session not found")
	ErrInvalidGeometry = errors.New("vtsession: cols and rows must be >= 1")
)

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusRunning Status = iota
	StatusExited
)

// Session is a thin composition: reader-chunks -> engine.Write, key/mouse
// input -> pty.Write, and engine-emitted response bytes -> pty.Write, per
// spec.md §4.9. Grounded on dcosson-h2/internal/session/session.go's
// Session struct for the identity/lifecycle field shape, trimmed to the
// terminal-lifecycle subset relevant here (h2's Session additionally
// drives an agent harness, out of scope for this engine).
type Session struct {
	ID    string
	Title string

	Engine *vtcore.Engine
	PTY    vtpty.Bridge

	mu         sync.Mutex
	status     Status
	exitStatus vtpty.ExitStatus
	lastCols   int
	lastRows   int

	encoder *vtinput.Encoder
}

// newSession wires an already-started PTY to a fresh engine and launches
// its pump goroutine. Not exported: callers go through SessionManager.Create.
func newSession(title string, engine *vtcore.Engine, bridge vtpty.Bridge, cols, rows int) *Session {
	s := &Session{
		ID:       uuid.New().String(),
		Title:    title,
		Engine:   engine,
		PTY:      bridge,
		lastCols: cols,
		lastRows: rows,
		encoder:  vtinput.NewEncoder(),
	}
	go s.pump()
	return s
}

// pump drains PTY output into the engine and, on exit, records the final
// status -- this is the "background task per Session for the PTY reader"
// spec.md §5 describes. It never holds Session.mu while blocked on a
// channel receive.
func (s *Session) pump() {
	for chunk := range s.PTY.Output() {
		s.Engine.Write(chunk)
	}
	status := <-s.PTY.Done()
	s.mu.Lock()
	s.status = StatusExited
	s.exitStatus = status
	s.mu.Unlock()
}

// Status reports whether the session's child has exited.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ExitStatus returns the child's exit status; valid only once Status() is
// StatusExited.
func (s *Session) ExitStatus() vtpty.ExitStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitStatus
}

// WriteKey encodes a key event using the session's mode snapshot and
// writes it to the PTY.
func (s *Session) WriteKey(ev vtinput.KeyEvent) error {
	_, err := s.PTY.Write(s.encoder.EncodeKey(ev, s.modeSnapshot()))
	return err
}

// WriteMouse encodes a mouse event and writes it to the PTY, if any mouse
// mode is enabled.
func (s *Session) WriteMouse(ev vtinput.MouseEvent) error {
	bytes := s.encoder.EncodeMouse(ev, s.modeSnapshot())
	if bytes == nil {
		return nil
	}
	_, err := s.PTY.Write(bytes)
	return err
}

// WritePaste encodes pasted text (bracketed or raw, per mode) and writes
// it to the PTY.
func (s *Session) WritePaste(text []byte) error {
	_, err := s.PTY.Write(s.encoder.EncodePaste(text, s.modeSnapshot()))
	return err
}

func (s *Session) modeSnapshot() vtinput.ModeSnapshot {
	return vtinput.ModeSnapshot{
		ApplicationCursorKeys: s.Engine.Mode(vtcore.ModeApplicationCursorKeys),
		KeypadApplication:     s.Engine.Mode(vtcore.ModeKeypadApplication),
		BracketedPaste:        s.Engine.Mode(vtcore.ModeBracketedPaste),
		MouseEnabled:          s.Engine.Mode(vtcore.ModeMouseX10) || s.Engine.Mode(vtcore.ModeMouseButtonEvent) || s.Engine.Mode(vtcore.ModeMouseAnyEvent),
		MouseSGR:              s.Engine.Mode(vtcore.ModeMouseSGR),
		MouseButtonEvent:      s.Engine.Mode(vtcore.ModeMouseButtonEvent),
		MouseAnyEvent:         s.Engine.Mode(vtcore.ModeMouseAnyEvent),
	}
}

// Resize forwards to both the engine and the PTY, updating lastCols/Rows.
func (s *Session) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return ErrInvalidGeometry
	}
	if err := s.Engine.Resize(cols, rows); err != nil {
		return err
	}
	if err := s.PTY.Resize(cols, rows); err != nil {
		return err
	}
	s.mu.Lock()
	s.lastCols, s.lastRows = cols, rows
	s.mu.Unlock()
	return nil
}

// LastKnownSize returns the dimensions from the most recent Resize or
// creation.
func (s *Session) LastKnownSize() (cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCols, s.lastRows
}

// Close initiates shutdown of the session's PTY bridge.
func (s *Session) Close() error {
	return s.PTY.Shutdown()
}
