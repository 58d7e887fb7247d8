package vtpty

import (
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
)

// readChunkSize is the buffer size for each Read off the PTY master,
// matching the teacher corpus's own PTY read loop (dcosson-h2's
// virtualterminal.PipeOutput uses the same 4096-byte chunking).
const readChunkSize = 4096

// outputQueueDepth bounds the output channel so a slow consumer applies
// backpressure to the reader pump rather than growing memory without limit,
// per spec.md §4.8's "bounded or pooled buffer strategy".
const outputQueueDepth = 64

// PTYBridge is the creack/pty-backed Bridge implementation, grounded on
// dcosson-h2/internal/session/virtualterminal/vt.go's StartPTY/PipeOutput:
// pty.StartWithSize to spawn the child, a dedicated reader goroutine
// feeding a channel, and a mutex guarding the write path and lifecycle
// flags.
type PTYBridge struct {
	mu sync.Mutex

	cmd    *exec.Cmd
	master *os.File

	output chan []byte
	done   chan ExitStatus

	started bool
	closed  bool
}

// New returns an unstarted PTYBridge.
func New() *PTYBridge {
	return &PTYBridge{
		output: make(chan []byte, outputQueueDepth),
		done:   make(chan ExitStatus, 1),
	}
}

func (b *PTYBridge) Start(opts LaunchOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return ErrAlreadyStarted
	}
	if opts.Cols < 1 || opts.Rows < 1 {
		return ErrInvalidGeometry
	}
	if opts.Command == "" {
		return ErrStartFailed
	}

	cmd := exec.Command(opts.Command, opts.Args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), opts.Env)
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(opts.Rows),
		Cols: uint16(opts.Cols),
	})
	if err != nil {
		return ErrStartFailed
	}

	b.cmd = cmd
	b.master = master
	b.started = true

	go b.pump()
	return nil
}

// mergeEnv overlays override entries ("KEY=VALUE") onto base, keyed by
// name, matching dcosson-h2's StartPTY env-filtering approach.
func mergeEnv(base, overrides []string) []string {
	keys := make(map[string]bool, len(overrides))
	for _, kv := range overrides {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			keys[kv[:i]] = true
		}
	}
	merged := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		if i := strings.IndexByte(kv, '='); i >= 0 && keys[kv[:i]] {
			continue
		}
		merged = append(merged, kv)
	}
	return append(merged, overrides...)
}

// pump is the asynchronous reader, per spec.md §4.8: runs on a dedicated
// goroutine, reads in chunks, and enqueues onto a bounded channel; when the
// channel is full the send blocks until the consumer drains it, so a slow
// consumer applies backpressure to this loop.
func (b *PTYBridge) pump() {
	buf := make([]byte, readChunkSize)
	var readErr error
	for {
		n, err := b.master.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			b.output <- chunk
		}
		if err != nil {
			readErr = err
			break
		}
	}
	close(b.output)

	status := b.waitExit(readErr)
	b.done <- status
	close(b.done)
}

func (b *PTYBridge) waitExit(readErr error) ExitStatus {
	err := b.cmd.Wait()
	if err == nil {
		return ExitStatus{Code: 0}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return ExitStatus{Code: exitErr.ExitCode(), Err: nil}
	}
	if readErr != nil {
		return ExitStatus{Code: -1, Err: ErrIOError}
	}
	return ExitStatus{Code: -1, Err: err}
}

func (b *PTYBridge) Write(p []byte) (int, error) {
	b.mu.Lock()
	master := b.master
	started := b.started
	closed := b.closed
	b.mu.Unlock()

	if !started {
		return 0, ErrNotStarted
	}
	if closed {
		return 0, ErrIOError
	}
	n, err := master.Write(p)
	if err != nil {
		return n, ErrIOError
	}
	return n, nil
}

func (b *PTYBridge) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return ErrInvalidGeometry
	}
	b.mu.Lock()
	master := b.master
	started := b.started
	b.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	return pty.Setsize(master, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

func (b *PTYBridge) Output() <-chan []byte { return b.output }

func (b *PTYBridge) Done() <-chan ExitStatus { return b.done }

// Shutdown terminates the child, closes the PTY master, and is idempotent;
// the reader pump's own close of output/done happens once, driven by the
// master's Read returning EOF after Close.
func (b *PTYBridge) Shutdown() error {
	b.mu.Lock()
	if b.closed || !b.started {
		b.closed = true
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	cmd := b.cmd
	master := b.master
	b.mu.Unlock()

	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
	return master.Close()
}
