// Package input is the async input core (spec.md §4.6): a stdin reader
// loop plus a poller/dispatcher loop publish decoded Events to any number
// of subscribers, with the documented subscriber-generation race
// tolerated by construction (spec.md §8 scenario 6).
//
// Grounded on original_source's mio_poller/stdin_reader_thread design
// (no direct Go teacher analogue — the teacher's terminal package owns
// raw-mode and size, not event dispatch), translated to two goroutines
// bridged by channels per spec.md §9's "async/blocking split": a
// dedicated, always-blocked-in-syscall goroutine for the read loop, and a
// second goroutine multiplexing that data against SIGWINCH notifications
// before fanning out to subscribers.
package input

import "github.com/phoenix-tui/termcore/input/keyseq"

// EventKind discriminates the Event union this package publishes.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventPaste
	EventResize
	EventFocusGained
	EventFocusLost
	EventEOF
	EventError
)

// Event is what every subscriber receives. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Event struct {
	Kind   EventKind
	Key    keyseq.KeyEvent
	Mouse  keyseq.MouseEvent
	Paste  string
	Rows   int
	Cols   int
	Err    error
}
