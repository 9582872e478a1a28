// Package pty is the PTY session manager (C8): it spawns a child process
// attached to a pseudo-terminal and publishes its output, OSC
// side-channel events, and exit status on a channel, with an optional
// input-handler for interactive (read-write) sessions.
//
// Grounded on original_source/tui/src/core/pty/mod.rs for the task
// coordination pattern (reader task / completion task / input-handler
// task) and its fd-lifecycle invariant. No pack repo imports a Go PTY
// library, so the low-level /dev/ptmx dance is built directly on
// golang.org/x/sys/unix, the one dependency every pack repo that touches
// terminals already carries (see DESIGN.md).
package pty

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/phoenix-tui/termcore/buffer"
	"github.com/phoenix-tui/termcore/coords"
	"github.com/phoenix-tui/termcore/errkind"
	"github.com/phoenix-tui/termcore/internal/obs"
	"github.com/phoenix-tui/termcore/vtparser"
)

// EventKind discriminates Event.
type EventKind int

const (
	EventOutput EventKind = iota
	EventOsc
	EventExit
)

// Event is what a session publishes on its Events channel.
type Event struct {
	Kind     EventKind
	Output   []byte
	Osc      vtparser.Event
	ExitCode int
	ExitErr  error
}

// openPTY opens a fresh pseudo-terminal pair, returning the controller
// (master) and controlled (slave) ends.
func openPTY() (master, slave *os.File, err error) {
	masterFd, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, nil, errkind.Wrap(errkind.Io, err, "open /dev/ptmx")
	}
	master = os.NewFile(uintptr(masterFd), "/dev/ptmx")

	var unlock int32
	if err := unix.IoctlSetPointerInt(masterFd, unix.TIOCSPTLCK, int(unlock)); err != nil {
		master.Close()
		return nil, nil, errkind.Wrap(errkind.Io, err, "unlock pty")
	}

	n, err := unix.IoctlGetInt(masterFd, unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, nil, errkind.Wrap(errkind.Io, err, "query pty slave number")
	}

	slavePath := fmt.Sprintf("/dev/pts/%d", n)
	slaveFd, err := unix.Open(slavePath, unix.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		master.Close()
		return nil, nil, errkind.Wrap(errkind.Io, err, "open pty slave")
	}
	slave = os.NewFile(uintptr(slaveFd), slavePath)

	return master, slave, nil
}

func setWinsize(f *os.File, rows, cols int) error {
	ws := &unix.Winsize{Row: uint16(rows), Col: uint16(cols)}
	return unix.IoctlSetWinsize(int(f.Fd()), unix.TIOCSWINSZ, ws)
}

// session holds the state common to both session kinds.
type session struct {
	id     uuid.UUID
	master *os.File
	slave  *os.File
	cmd    *exec.Cmd

	events chan Event

	readerDone chan struct{}
	closeSlave sync.Once
}

// ID uniquely identifies this session, for correlating log lines across
// the reader/completion/input-handler tasks.
func (s *session) ID() uuid.UUID { return s.id }

func spawn(name string, args []string, rows, cols int) (*session, error) {
	master, slave, err := openPTY()
	if err != nil {
		return nil, err
	}
	if err := setWinsize(master, rows, cols); err != nil {
		master.Close()
		slave.Close()
		return nil, errkind.Wrap(errkind.Io, err, "set initial pty size")
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = slave, slave, slave
	cmd.SysProcAttr = ptyProcAttr()

	if err := cmd.Start(); err != nil {
		master.Close()
		slave.Close()
		return nil, errkind.Wrap(errkind.Io, err, "spawn pty child")
	}

	id := uuid.New()
	obs.Component("pty").Debug("session spawned", "id", id, "name", name)

	return &session{
		id:         id,
		master:     master,
		slave:      slave,
		cmd:        cmd,
		events:     make(chan Event, 64),
		readerDone: make(chan struct{}),
	}, nil
}

// reader drains the controller fd, publishing Output and any OSC events
// it recognizes along the way, until it observes EOF — which only
// happens once the slave fd has been dropped (see completion).
func (s *session) reader() {
	defer close(s.readerDone)

	// A throwaway 1x1 buffer: the reader only wants vtparser's OSC-event
	// side channel, not terminal emulation, so the buffer it mutates is
	// never read back.
	scratch := buffer.New(coords.Height(1), coords.Width(1))
	parser := vtparser.New(scratch, 0, 0)

	buf := make([]byte, 4096)
	for {
		n, err := s.master.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.events <- Event{Kind: EventOutput, Output: chunk}

			parser.Feed(chunk)
			for _, ev := range parser.TakeEvents() {
				s.events <- Event{Kind: EventOsc, Osc: ev}
			}
		}
		if err != nil {
			return
		}
	}
}

// completion waits for the child, then enforces the fd-lifecycle
// invariant: drop the slave fd (the only thing still holding the
// controller side open) before joining the reader task, otherwise the
// reader's blocking Read never sees EOF.
func (s *session) completion() {
	waitErr := s.cmd.Wait()

	s.closeSlave.Do(func() { s.slave.Close() })

	<-s.readerDone

	exitCode := 0
	if s.cmd.ProcessState != nil {
		exitCode = s.cmd.ProcessState.ExitCode()
	}
	s.events <- Event{Kind: EventExit, ExitCode: exitCode, ExitErr: waitErr}
	close(s.events)

	obs.Component("pty").Debug("session exited", "id", s.id, "code", exitCode)
}

// ReadOnlySession runs a child in a PTY and exposes its output as a
// stream of Events; it has no way to write back to the child beyond its
// inherited fds.
type ReadOnlySession struct{ *session }

// StartReadOnly spawns name with args attached to a new PTY sized
// rows x cols, and starts its reader/completion tasks.
func StartReadOnly(name string, args []string, rows, cols int) (*ReadOnlySession, error) {
	s, err := spawn(name, args, rows, cols)
	if err != nil {
		return nil, err
	}
	go s.reader()
	go s.completion()
	return &ReadOnlySession{s}, nil
}

// Events returns the channel of Output/Osc/Exit events; callers loop
// until they observe an EventExit.
func (s *ReadOnlySession) Events() <-chan Event { return s.events }
