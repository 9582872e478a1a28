package keyseq

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type state int

const (
	stateGround state = iota
	stateEscape       // just consumed a lone ESC, waiting to see what follows
	stateSS3          // ESC O, waiting for the final byte (F1-F4)
	stateCSI          // ESC [ ..., accumulating until a final byte
	statePaste        // inside a bracketed paste, watching for the close marker
)

var pasteEndMarker = []byte("\x1b[201~")

// Parser turns a raw byte stream into Events. It is stateful across Feed
// calls so a CSI sequence (or the lone-ESC-vs-Alt-key ambiguity) split
// across two reads still resolves correctly; a caller-driven Timeout call
// resolves a lone trailing ESC once the deadline in spec.md §4.7 elapses.
type Parser struct {
	st state

	csiBuf []byte

	pasteBuf      []byte
	pasteMatch    int
	maxPasteLen   int
	pasteDropping bool // paste already emitted truncated; discard until the end marker

	utf8Pending []byte
}

// New creates a parser. maxPasteBytes bounds a bracketed-paste payload
// (spec.md §4.7): exceeding it emits the first maxPasteBytes bytes as the
// paste event at once, and the rest of the payload up to the end marker is
// discarded (never translated into key events).
func New(maxPasteBytes int) *Parser {
	if maxPasteBytes <= 0 {
		maxPasteBytes = 1 << 20
	}
	return &Parser{maxPasteLen: maxPasteBytes}
}

// Feed processes data and returns the events it produced. Property P7:
// this never panics, for any input.
func (p *Parser) Feed(data []byte) []Event {
	var events []Event
	for _, b := range data {
		events = p.advance(b, events)
	}
	return events
}

// Pending reports whether the parser is currently holding a lone ESC
// byte waiting to see whether a CSI/SS3 sequence follows. A caller
// driving this parser off a real clock arms its timeout timer exactly
// when this is true.
func (p *Parser) Pending() bool { return p.st == stateEscape }

// Timeout must be called by the caller once EscTimeout has elapsed with
// no further byte arriving after a lone ESC; it resolves the pending ESC
// to a standalone Esc key event (spec.md §4.7).
func (p *Parser) Timeout() []Event {
	if p.st == stateEscape {
		p.st = stateGround
		return []Event{{Kind: EventKeyboard, Key: KeyEvent{Code: KeyEsc}}}
	}
	return nil
}

func (p *Parser) advance(b byte, events []Event) []Event {
	switch p.st {
	case stateGround:
		return p.advanceGround(b, events)
	case stateEscape:
		return p.advanceEscape(b, events)
	case stateSS3:
		return p.advanceSS3(b, events)
	case stateCSI:
		return p.advanceCSI(b, events)
	case statePaste:
		return p.advancePaste(b, events)
	default:
		p.st = stateGround
		return events
	}
}

func (p *Parser) advanceGround(b byte, events []Event) []Event {
	switch {
	case b == 0x1B:
		p.st = stateEscape
		return events
	case b == 0x09:
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyTab}})
	case b == 0x0D:
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyEnter}})
	case b == 0x7F || b == 0x08:
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyBackspace}})
	case b < 0x20:
		// Ctrl+letter: bytes 0x01-0x1A map to Ctrl+a..Ctrl+z.
		if b >= 1 && b <= 26 {
			return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{
				Code: KeyCharacter, Char: rune('a' + b - 1), Modifiers: Modifiers{Ctrl: true},
			}})
		}
		return events
	case b < 0x80:
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyCharacter, Char: rune(b)}})
	default:
		return p.feedUTF8(b, events)
	}
}

// feedUTF8 accumulates continuation bytes the same way vtparser's Ground
// state does: utf8.FullRune distinguishes "need more bytes" from
// "invalid, drop and resync".
func (p *Parser) feedUTF8(b byte, events []Event) []Event {
	p.utf8Pending = append(p.utf8Pending, b)
	if !utf8.FullRune(p.utf8Pending) {
		if len(p.utf8Pending) >= utf8.UTFMax {
			p.utf8Pending = p.utf8Pending[:0]
		}
		return events
	}
	r, size := utf8.DecodeRune(p.utf8Pending)
	rest := p.utf8Pending[size:]
	p.utf8Pending = p.utf8Pending[:0]
	if r != utf8.RuneError {
		events = append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyCharacter, Char: r}})
	}
	for _, rb := range rest {
		events = p.advanceGround(rb, events)
	}
	return events
}

func (p *Parser) advanceEscape(b byte, events []Event) []Event {
	switch b {
	case '[':
		p.st = stateCSI
		p.csiBuf = p.csiBuf[:0]
		return events
	case 'O':
		p.st = stateSS3
		return events
	case 0x1B:
		// Two lone ESCs back to back: the first resolves as a standalone
		// Esc key, and we stay waiting to see what follows the second.
		events = append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyEsc}})
		return events
	default:
		p.st = stateGround
		// ESC followed directly by a printable byte is the conventional
		// Alt+key encoding.
		if b >= 0x20 && b < 0x7F {
			return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{
				Code: KeyCharacter, Char: rune(b), Modifiers: Modifiers{Alt: true},
			}})
		}
		events = append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyEsc}})
		return p.advanceGround(b, events)
	}
}

func (p *Parser) advanceSS3(b byte, events []Event) []Event {
	p.st = stateGround
	switch b {
	case 'P':
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyF1}})
	case 'Q':
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyF2}})
	case 'R':
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyF3}})
	case 'S':
		return append(events, Event{Kind: EventKeyboard, Key: KeyEvent{Code: KeyF4}})
	default:
		return events
	}
}

func (p *Parser) advanceCSI(b byte, events []Event) []Event {
	// Final bytes per ECMA-48: 0x40-0x7E.
	if b >= 0x40 && b <= 0x7E {
		payload := string(p.csiBuf)
		p.csiBuf = nil
		p.st = stateGround
		return p.dispatchCSI(payload, b, events)
	}
	p.csiBuf = append(p.csiBuf, b)
	if len(p.csiBuf) > 64 {
		// Runaway sequence: abandon it rather than grow unbounded.
		p.csiBuf = nil
		p.st = stateGround
	}
	return events
}

func (p *Parser) dispatchCSI(payload string, final byte, events []Event) []Event {
	if strings.HasPrefix(payload, "<") {
		return p.dispatchMouse(payload[1:], final, events)
	}

	parts := strings.Split(payload, ";")
	param := func(i int) (int, bool) {
		if i >= len(parts) || parts[i] == "" {
			return 0, false
		}
		n, err := strconv.Atoi(parts[i])
		return n, err == nil
	}

	mods := Modifiers{}
	if m, ok := param(1); ok {
		mods = modifiersFromCSIValue(m)
	}

	switch final {
	case 'A':
		return append(events, keyWithMods(KeyUp, mods))
	case 'B':
		return append(events, keyWithMods(KeyDown, mods))
	case 'C':
		return append(events, keyWithMods(KeyRight, mods))
	case 'D':
		return append(events, keyWithMods(KeyLeft, mods))
	case 'H':
		return append(events, keyWithMods(KeyHome, mods))
	case 'F':
		return append(events, keyWithMods(KeyEnd, mods))
	case '~':
		ps, _ := param(0)
		if ps == 200 {
			p.st = statePaste
			p.pasteBuf = p.pasteBuf[:0]
			p.pasteMatch = 0
			return events
		}
		if code, ok := tildeKey(ps); ok {
			return append(events, keyWithMods(code, mods))
		}
		return events
	default:
		return events
	}
}

func keyWithMods(code KeyCode, mods Modifiers) Event {
	return Event{Kind: EventKeyboard, Key: KeyEvent{Code: code, Modifiers: mods}}
}

func tildeKey(ps int) (KeyCode, bool) {
	switch ps {
	case 2:
		return KeyInsert, true
	case 3:
		return KeyDelete, true
	case 5:
		return KeyPageUp, true
	case 6:
		return KeyPageDown, true
	case 15:
		return KeyF5, true
	case 17:
		return KeyF6, true
	case 18:
		return KeyF7, true
	case 19:
		return KeyF8, true
	case 20:
		return KeyF9, true
	case 21:
		return KeyF10, true
	case 23:
		return KeyF11, true
	case 24:
		return KeyF12, true
	default:
		return 0, false
	}
}

// dispatchMouse decodes SGR mouse reports ("ESC[<b;x;yM" / "...m"),
// grounded on the teacher's SGRParser.decodeButton bit layout.
func (p *Parser) dispatchMouse(payload string, final byte, events []Event) []Event {
	parts := strings.Split(payload, ";")
	if len(parts) != 3 {
		return events
	}
	code, err1 := strconv.Atoi(parts[0])
	x, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return events
	}

	mods := Modifiers{
		Shift: code&4 != 0,
		Alt:   code&8 != 0,
		Ctrl:  code&16 != 0,
	}
	base := code & 0x63

	var button MouseButton
	var kind MouseEventKind
	switch base {
	case 0:
		button = MouseLeft
	case 1:
		button = MouseMiddle
	case 2:
		button = MouseRight
	case 64:
		button, kind = MouseWheelUp, MouseScroll
	case 65:
		button, kind = MouseWheelDown, MouseScroll
	case 32, 35:
		button = MouseNone
		kind = MouseMotion
	default:
		button = MouseNone
	}
	if kind != MouseScroll && kind != MouseMotion {
		if final == 'M' {
			kind = MousePress
		} else {
			kind = MouseRelease
		}
	}

	return append(events, Event{Kind: EventMouse, Mouse: MouseEvent{
		Kind: kind, Button: button, Row: y - 1, Col: x - 1, Modifiers: mods,
	}})
}

func (p *Parser) advancePaste(b byte, events []Event) []Event {
	if b == pasteEndMarker[p.pasteMatch] {
		p.pasteMatch++
		if p.pasteMatch == len(pasteEndMarker) {
			text := string(p.pasteBuf)
			dropping := p.pasteDropping
			p.pasteBuf = nil
			p.pasteMatch = 0
			p.pasteDropping = false
			p.st = stateGround
			if dropping {
				return events
			}
			return append(events, Event{Kind: EventPaste, Paste: text})
		}
		return events
	}

	// Mismatch: flush whatever of the marker we'd matched so far back into
	// the paste content, then re-test b against the marker from scratch.
	if p.pasteMatch > 0 {
		if !p.pasteDropping {
			p.pasteBuf = append(p.pasteBuf, pasteEndMarker[:p.pasteMatch]...)
		}
		p.pasteMatch = 0
	}
	if b == pasteEndMarker[0] {
		p.pasteMatch = 1
		return events
	}
	if p.pasteDropping {
		return events
	}
	p.pasteBuf = append(p.pasteBuf, b)
	if len(p.pasteBuf) > p.maxPasteLen {
		text := string(p.pasteBuf[:p.maxPasteLen])
		p.pasteBuf = nil
		p.pasteDropping = true
		return append(events, Event{Kind: EventPaste, Paste: text})
	}
	return events
}
