package vtsession

import (
	"testing"
	"time"

	"github.com/inkterm/vtcore/vtpty"
)

// fakeBridge is a minimal vtpty.Bridge stub so these tests never touch a
// real PTY or child process.
type fakeBridge struct {
	output  chan []byte
	done    chan vtpty.ExitStatus
	writes  [][]byte
	started bool
	closed  bool
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{
		output: make(chan []byte),
		done:   make(chan vtpty.ExitStatus, 1),
	}
}

func (f *fakeBridge) Start(opts vtpty.LaunchOptions) error {
	f.started = true
	return nil
}
func (f *fakeBridge) Write(p []byte) (int, error) {
	f.writes = append(f.writes, append([]byte(nil), p...))
	return len(p), nil
}
func (f *fakeBridge) Resize(cols, rows int) error         { return nil }
func (f *fakeBridge) Output() <-chan []byte                { return f.output }
func (f *fakeBridge) Done() <-chan vtpty.ExitStatus         { return f.done }
func (f *fakeBridge) Shutdown() error {
	if f.closed {
		return nil
	}
	f.closed = true
	close(f.output)
	f.done <- vtpty.ExitStatus{Code: 0}
	close(f.done)
	return nil
}

func newTestManager() (*Manager, *fakeBridge) {
	var bridge *fakeBridge
	m := NewManager(func() vtpty.Bridge {
		bridge = newFakeBridge()
		return bridge
	})
	return m, bridge
}

func TestManagerCreateFirstBecomesActive(t *testing.T) {
	m, _ := newTestManager()
	sess, err := m.Create(CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ActiveID() != sess.ID {
		t.Fatalf("first session should become active")
	}
}

func TestManagerSwitchNextPrevWraps(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.Create(CreateOptions{})
	var secondBridge *fakeBridge
	m.newBridge = func() vtpty.Bridge { secondBridge = newFakeBridge(); return secondBridge }
	b, _ := m.Create(CreateOptions{})
	_ = secondBridge

	if m.ActiveID() != a.ID {
		t.Fatalf("active should still be first session")
	}
	if err := m.SwitchNext(); err != nil {
		t.Fatalf("SwitchNext: %v", err)
	}
	if m.ActiveID() != b.ID {
		t.Fatalf("SwitchNext should move to second session")
	}
	if err := m.SwitchNext(); err != nil {
		t.Fatalf("SwitchNext: %v", err)
	}
	if m.ActiveID() != a.ID {
		t.Fatalf("SwitchNext should wrap back to first session")
	}
	if err := m.SwitchPrev(); err != nil {
		t.Fatalf("SwitchPrev: %v", err)
	}
	if m.ActiveID() != b.ID {
		t.Fatalf("SwitchPrev should wrap to second session")
	}
}

func TestManagerGetUnknownID(t *testing.T) {
	m, _ := newTestManager()
	if _, err := m.Get("nope"); err != ErrSessionNotFound {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestManagerCloseAndReap(t *testing.T) {
	m, bridge := newTestManager()
	sess, _ := m.Create(CreateOptions{})

	if err := m.Close(sess.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !bridge.closed {
		t.Fatalf("Close should have shut down the bridge")
	}

	// give the session's pump goroutine a chance to observe exit
	deadline := time.Now().Add(time.Second)
	for sess.Status() != StatusExited && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	m.Reap()
	if _, err := m.Get(sess.ID); err != ErrSessionNotFound {
		t.Fatalf("Reap should have removed the exited session")
	}
	if m.ActiveID() != "" {
		t.Fatalf("ActiveID should be empty after reaping the only session")
	}
}

func TestManagerResizeActiveNoSessions(t *testing.T) {
	m, _ := newTestManager()
	if err := m.ResizeActive(80, 24) ; err != ErrSessionNotFound {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}
