// Command vtcoreshell is a thin manual-smoke-test wrapper (spec.md §6's
// "CLI / configuration surface... out-of-scope core"): it spawns a real
// shell under vtsession.Manager and redraws a text rendering of the
// viewport on a fixed poll interval (--poll-ms), so the core
// packages can be exercised end-to-end from a terminal without a real
// front-end renderer.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkterm/vtcore/vtcore"
	"github.com/inkterm/vtcore/vtsession"
)

var (
	cols       int
	rows       int
	command    string
	pollMillis int
)

var rootCmd = &cobra.Command{
	Use:   "vtcoreshell",
	Short: "Run a shell under the vtcore terminal engine and dump its viewport",
	Long: `vtcoreshell spawns a shell attached to a PTY, feeds its output through
the vtcore terminal engine, and prints a plain-text rendering of the
viewport each time the screen changes. It exists to smoke-test the core
engine end-to-end; it is not a full terminal front-end.`,
	SilenceUsage: true,
	RunE:         runShell,
}

func init() {
	rootCmd.Flags().IntVar(&cols, "cols", 80, "terminal width")
	rootCmd.Flags().IntVar(&rows, "rows", 24, "terminal height")
	rootCmd.Flags().StringVar(&command, "command", defaultShell(), "command to run")
	rootCmd.Flags().IntVar(&pollMillis, "poll-ms", 100, "viewport redraw poll interval in milliseconds")
}

func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// Execute runs the root command; main's only job is to call this and
// translate a returned error into an exit code.
func Execute() error {
	return rootCmd.Execute()
}

func runShell(cmd *cobra.Command, args []string) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("vtcoreshell: cols and rows must be >= 1")
	}

	mgr := vtsession.NewManager(nil)
	sess, err := mgr.Create(vtsession.CreateOptions{
		Command: command,
		Cols:    cols,
		Rows:    rows,
	})
	if err != nil {
		return fmt.Errorf("vtcoreshell: create session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "session %s started (%s), %dx%d\n", sess.ID, command, cols, rows)

	ticker := time.NewTicker(time.Duration(pollMillis) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if sess.Status() == vtsession.StatusExited {
			status := sess.ExitStatus()
			fmt.Fprintf(cmd.OutOrStdout(), "session exited: code=%d err=%v\n", status.Code, status.Err)
			return nil
		}
		renderViewport(cmd, sess.Engine)
	}
	return nil
}

// renderViewport prints a plain-text dump of the current screen, ignoring
// styling -- the point is to prove the engine applies sequences correctly,
// not to reimplement a renderer.
func renderViewport(cmd *cobra.Command, engine *vtcore.Engine) {
	viewportRows := engine.Viewport(rows, 0)
	cur := engine.CursorSnapshot()

	var out strings.Builder
	out.WriteString("\x1b[H\x1b[2J")
	for _, row := range viewportRows {
		for _, c := range row.Cells {
			if c.Width == vtcore.WidthTrailingWide {
				continue
			}
			out.WriteRune(c.Ch)
		}
		out.WriteByte('\n')
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%scursor: %d,%d visible=%v\n", out.String(), cur.Row, cur.Col, cur.Visible)
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
