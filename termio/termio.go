// Package termio owns the one piece of terminal state that must be a
// process-wide resource rather than a value: raw-mode toggling and
// terminal size queries on the real stdin/stdout fds. Grounded on the
// teacher's terminal/infrastructure/unix.ANSITerminal, generalized from
// ANSI-only cursor plumbing to the raw-mode/size pair the input core and
// renderop's EnterRawMode/ExitRawMode ops need.
package termio

import (
	"os"

	"golang.org/x/term"
)

// Size is a terminal's dimensions in character cells.
type Size struct {
	Rows int
	Cols int
}

// RawModeGuard restores the terminal to its prior state on Close. It holds
// the saved terminal state for one fd and takes no lock of its own.
type RawModeGuard struct {
	fd    int
	state *term.State
}

// EnterRawMode puts fd (normally int(os.Stdin.Fd())) into raw mode and
// returns a guard that restores the previous termios on Close.
func EnterRawMode(fd int) (*RawModeGuard, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawModeGuard{fd: fd, state: state}, nil
}

// Close restores the terminal to the state it had before EnterRawMode.
func (g *RawModeGuard) Close() error {
	if g == nil || g.state == nil {
		return nil
	}
	return term.Restore(g.fd, g.state)
}

// GetSize returns the current terminal size for fd (normally
// int(os.Stdout.Fd())), used both at startup and on every SIGWINCH.
func GetSize(fd int) (Size, error) {
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return Size{}, err
	}
	return Size{Rows: rows, Cols: cols}, nil
}

// StdoutSize is a convenience wrapper around GetSize for the common case.
func StdoutSize() (Size, error) { return GetSize(int(os.Stdout.Fd())) }
