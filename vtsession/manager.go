package vtsession

import (
	"sync"

	"github.com/inkterm/vtcore/vtcore"
	"github.com/inkterm/vtcore/vtpty"
)

// DefaultLaunch is merged under any CreateOptions that leave fields unset,
// per spec.md §4.9's "options merged with default-launch".
var DefaultLaunch = vtpty.LaunchOptions{
	Command: "/bin/sh",
	Cols:    80,
	Rows:    24,
}

// CreateOptions configures Manager.Create. Zero-valued fields fall back to
// DefaultLaunch.
type CreateOptions struct {
	Title   string
	Command string
	Args    []string
	Dir     string
	Env     []string
	Cols    int
	Rows    int
}

func (o CreateOptions) launchOptions() (string, vtpty.LaunchOptions) {
	lo := DefaultLaunch
	if o.Command != "" {
		lo.Command = o.Command
	}
	if o.Args != nil {
		lo.Args = o.Args
	}
	if o.Dir != "" {
		lo.Dir = o.Dir
	}
	if o.Env != nil {
		lo.Env = o.Env
	}
	if o.Cols > 0 {
		lo.Cols = o.Cols
	}
	if o.Rows > 0 {
		lo.Rows = o.Rows
	}
	title := o.Title
	if title == "" {
		title = lo.Command
	}
	return title, lo
}

// NewBridge constructs the PTY bridge a Session uses; overridable in tests.
type NewBridge func() vtpty.Bridge

// Manager is SessionManager (spec.md §4.9): create/switch/close/restart
// over an ordered set of Sessions, serialized under one mutex. Grounded on
// the teacher's own single-struct-plus-mutex style (terminal.go's Terminal)
// generalized from "one terminal" to "a table of terminals" the way
// dcosson-h2 keeps one Session per PTY but adds no manager type of its own
// -- this type is new, composed from the same two primitives (vtcore.Engine,
// vtpty.Bridge) spec.md §4.9 specifies.
type Manager struct {
	mu sync.Mutex

	order    []string
	sessions map[string]*Session
	activeID string

	newBridge NewBridge
}

// NewManager returns an empty Manager. newBridge lets callers substitute a
// fake Bridge in tests; nil defaults to vtpty.New.
func NewManager(newBridge NewBridge) *Manager {
	if newBridge == nil {
		newBridge = func() vtpty.Bridge { return vtpty.New() }
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		newBridge: newBridge,
	}
}

// Create spawns a new Session, making it active if it is the first.
func (m *Manager) Create(opts CreateOptions) (*Session, error) {
	title, launch := opts.launchOptions()

	bridge := m.newBridge()
	if err := bridge.Start(launch); err != nil {
		return nil, err
	}

	engine := vtcore.New(launch.Cols, launch.Rows, vtcore.WithResponseProvider(bridge))
	sess := newSession(title, engine, bridge, launch.Cols, launch.Rows)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	m.order = append(m.order, sess.ID)
	if m.activeID == "" {
		m.activeID = sess.ID
	}
	return sess, nil
}

// Active returns the currently-active session, or nil if none exists.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[m.activeID]
}

// ActiveID returns the active session's id, or "" if none.
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// Get returns a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// SwitchTo changes the active session.
func (m *Manager) SwitchTo(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	m.activeID = id
	return nil
}

// SwitchNext round-robins to the next session in insertion order.
func (m *Manager) SwitchNext() error { return m.switchRelative(1) }

// SwitchPrev round-robins to the previous session in insertion order.
func (m *Manager) SwitchPrev() error { return m.switchRelative(-1) }

func (m *Manager) switchRelative(delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.order)
	if n == 0 {
		return ErrSessionNotFound
	}
	idx := 0
	for i, id := range m.order {
		if id == m.activeID {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	m.activeID = m.order[idx]
	return nil
}

// Close initiates shutdown of the named session; removal from the table
// happens once its pump observes PTY exit (via Reap).
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return sess.Close()
}

// Reap removes sessions whose child has exited from the table, advancing
// the active session if the active one was removed. Front-ends call this
// after observing a session's exit event (spec.md §4.9: "on the bridge's
// exited, remove the session; if it was active, switch to the next if
// any, else leave active-id = none").
func (m *Manager) Reap() {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0:0]
	for _, id := range m.order {
		if m.sessions[id].Status() == StatusExited {
			delete(m.sessions, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept

	if _, ok := m.sessions[m.activeID]; ok {
		return
	}
	if len(m.order) > 0 {
		m.activeID = m.order[0]
	} else {
		m.activeID = ""
	}
}

// Restart closes and re-creates a session under the same title, returning
// the new Session (its id changes; callers look up by the returned value).
func (m *Manager) Restart(id string, opts CreateOptions) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	wasActive := id == m.activeID
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	_ = sess.Close()
	if opts.Title == "" {
		opts.Title = sess.Title
	}

	m.mu.Lock()
	delete(m.sessions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	next, err := m.Create(opts)
	if err != nil {
		return nil, err
	}
	if wasActive {
		_ = m.SwitchTo(next.ID)
	}
	return next, nil
}

// ResizeActive forwards to the active session's engine and PTY.
func (m *Manager) ResizeActive(cols, rows int) error {
	sess := m.Active()
	if sess == nil {
		return ErrSessionNotFound
	}
	return sess.Resize(cols, rows)
}
