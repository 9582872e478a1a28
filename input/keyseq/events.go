// Package keyseq is the input-sequence parser (spec.md §4.7): it turns a
// stream of raw bytes coming off stdin or a PTY controller fd into a
// stream of discrete input Events — keyboard, mouse, paste, and (via the
// poller in the sibling input package) resize.
//
// Grounded on the teacher's mouse/internal/infrastructure/parser package
// (sgr_parser.go's bit-mask modifier decode) for the CSI/SGR halves, and
// on original_source's bracketed-paste/CSI key decode for the parts the
// teacher's mouse-only parser doesn't cover.
package keyseq

// Modifiers is the (value-1) bitfield spec.md §4.7 specifies for CSI
// modified-key sequences: bit0=shift, bit1=alt, bit2=ctrl.
type Modifiers struct {
	Shift bool
	Alt   bool
	Ctrl  bool
}

func modifiersFromCSIValue(v int) Modifiers {
	bits := v - 1
	return Modifiers{
		Shift: bits&1 != 0,
		Alt:   bits&2 != 0,
		Ctrl:  bits&4 != 0,
	}
}

// KeyCode identifies a named (non-character) key.
type KeyCode int

const (
	KeyCharacter KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeyEvent is a single keyboard event: either a plain character (KeyCode
// == KeyCharacter, Char set) or a named key, each with an optional
// modifier set.
type KeyEvent struct {
	Code      KeyCode
	Char      rune
	Modifiers Modifiers
}

// MouseButton identifies which button an SGR mouse report names.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseEventKind distinguishes press/release/motion/scroll.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
	MouseScroll
)

// MouseEvent is a decoded SGR mouse report (spec.md §4.7's "Mouse SGR").
type MouseEvent struct {
	Kind      MouseEventKind
	Button    MouseButton
	Row       int // 0-based
	Col       int // 0-based
	Modifiers Modifiers
}

// EventKind discriminates the Event union.
type EventKind int

const (
	EventKeyboard EventKind = iota
	EventMouse
	EventPaste
	EventFocusGained
	EventFocusLost
)

// Event is the disjoint union keyseq produces: exactly one of Key, Mouse,
// or Paste is meaningful, selected by Kind.
type Event struct {
	Kind  EventKind
	Key   KeyEvent
	Mouse MouseEvent
	Paste string
}
