// Package vtparser implements the VT-100/ANSI escape-sequence parser (C4):
// a byte-stream DFA (Ground/Escape/CsiEntry/CsiParam/CsiIntermediate/
// OscString/...) that drives typed mutation of a buffer.OffscreenBuffer.
//
// The design follows spec.md §4.4's three layers: this file and dispatch.go
// together are the shim layer (parameter translation only); the behavior
// itself lives on buffer.OffscreenBuffer (the implementation layer,
// unit-tested independently in package buffer); parser_test.go's
// conformance tests are the integration layer, feeding raw byte sequences
// through Feed and asserting on final buffer state.
//
// Grounded on cliofy-govte's state.go/parser.go/params.go for the DFA shape
// and danielgatis-go-headless-term's handler.go for which CSI finals map to
// which cursor/erase/edit operations.
package vtparser

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/phoenix-tui/termcore/buffer"
	"github.com/phoenix-tui/termcore/coords"
)

// Parser drives a buffer.OffscreenBuffer from a raw VT100/ANSI byte stream.
// Not safe for concurrent use; the render loop owns one Parser per PTY
// session.
type Parser struct {
	buf *buffer.OffscreenBuffer

	st            state
	params        *Params
	intermediates []byte
	oscBuf        []byte
	escLen        int
	maxEscapeLen  int
	maxOSCLen     int

	utf8Pending []byte

	// Responses accumulates bytes to be written back to the pty (DSR) and
	// Events accumulates OSC side-channel events, both drained by Feed's
	// caller after each call.
	Responses [][]byte
	Events    []Event
}

// New creates a Parser over buf with the given OSC/escape length limits
// (spec.md §4.4: "OSC strings have a maximum length ... exceeding it
// aborts the sequence silently").
func New(buf *buffer.OffscreenBuffer, maxOSCLen, maxEscapeLen int) *Parser {
	if maxOSCLen <= 0 {
		maxOSCLen = 4096
	}
	if maxEscapeLen <= 0 {
		maxEscapeLen = 256
	}
	return &Parser{
		buf:          buf,
		st:           stateGround,
		params:       newParams(),
		maxOSCLen:    maxOSCLen,
		maxEscapeLen: maxEscapeLen,
	}
}

// Feed processes every byte in data, mutating the underlying buffer and
// collecting any DSR responses / OSC events. It never panics on malformed
// input: unrecognized or truncated sequences are dropped and the parser
// returns to Ground (spec.md §4.4 failure semantics).
func (ps *Parser) Feed(data []byte) {
	for _, b := range data {
		ps.advance(b)
	}
}

// TakeResponses drains and returns pending DSR response bytes.
func (ps *Parser) TakeResponses() [][]byte {
	r := ps.Responses
	ps.Responses = nil
	return r
}

// TakeEvents drains and returns pending OSC events.
func (ps *Parser) TakeEvents() []Event {
	e := ps.Events
	ps.Events = nil
	return e
}

func (ps *Parser) advance(b byte) {
	// CAN/SUB abort any in-progress sequence unconditionally.
	if ps.st != stateGround && (b == can || b == sub) {
		ps.abortToGround()
		return
	}

	switch ps.st {
	case stateGround:
		ps.advanceGround(b)
	case stateEscape:
		ps.advanceEscape(b)
	case stateCsiEntry, stateCsiParam:
		ps.advanceCsi(b)
	case stateCsiIntermediate:
		ps.advanceCsiIntermediate(b)
	case stateCsiIgnore:
		if isCsiFinalByte(b) {
			ps.st = stateGround
		}
	case stateOscString:
		ps.advanceOsc(b)
	case stateDcsPassthrough:
		ps.advanceDcsPassthrough(b)
	}
}

func (ps *Parser) abortToGround() {
	ps.st = stateGround
	ps.params.reset()
	ps.intermediates = ps.intermediates[:0]
	ps.oscBuf = ps.oscBuf[:0]
	ps.escLen = 0
	ps.utf8Pending = ps.utf8Pending[:0]
}

func (ps *Parser) advanceGround(b byte) {
	switch {
	case b == esc:
		ps.st = stateEscape
		ps.intermediates = ps.intermediates[:0]
		ps.escLen = 0
	case isExecutable(b):
		ps.execute(b)
	case b < 0x80:
		ps.printRune(rune(b))
	default:
		ps.feedUTF8Continuation(b)
	}
}

// feedUTF8Continuation accumulates multi-byte UTF-8 sequences a byte at a
// time (printable runes arrive one byte per advance() call).
func (ps *Parser) feedUTF8Continuation(b byte) {
	ps.utf8Pending = append(ps.utf8Pending, b)
	if !utf8.FullRune(ps.utf8Pending) && len(ps.utf8Pending) < utf8.UTFMax {
		return // still waiting on continuation bytes
	}
	r, _ := utf8.DecodeRune(ps.utf8Pending)
	ps.utf8Pending = ps.utf8Pending[:0]
	if r == utf8.RuneError {
		return // malformed byte(s): dropped silently, never corrupts the buffer
	}
	ps.printRune(r)
}

func (ps *Parser) execute(b byte) {
	switch b {
	case 0x08: // BS
		ps.buf.CursorBackward(1)
	case 0x09: // HT
		ps.buf.TabStop(8)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		lineFeed(ps.buf)
	case 0x0D: // CR
		ps.buf.CursorToLineStart()
	default:
		// BEL and other C0 controls carry no buffer-visible effect here.
	}
}

// printRune writes a single rune at the cursor, advancing it, handling
// auto-wrap and wide (double-width) graphemes. Full grapheme-cluster
// segmentation is package gcstring's responsibility (C2); the parser
// operates rune-at-a-time, matching how bytes actually arrive off the
// wire.
func (ps *Parser) printRune(r rune) {
	width := runewidth.RuneWidth(r)
	if width <= 0 {
		width = 1
	}
	cols := ps.buf.Cols().Int()
	_, col := ps.buf.CursorPos()
	if col.Int()+width > cols {
		if ps.buf.Support.AutoWrap {
			lineFeed(ps.buf)
			ps.buf.CursorToLineStart()
		} else {
			ps.buf.CursorToColumn(cols - width)
		}
	}
	row, col := ps.buf.CursorPos()
	style := ps.buf.Support.CurrentStyle
	_ = ps.buf.SetChar(row, col, buffer.NewPlainText(r, style))
	if width == 2 && col.Int()+1 < cols {
		_ = ps.buf.SetChar(row, coords.Col(col.Int()+1), buffer.NewVoid())
	}
	ps.buf.CursorForward(width)
}

func (ps *Parser) advanceEscape(b byte) {
	ps.escLen++
	if ps.escLen > ps.maxEscapeLen {
		ps.abortToGround()
		return
	}
	switch {
	case b == '[':
		ps.st = stateCsiEntry
		ps.params.reset()
		ps.intermediates = ps.intermediates[:0]
	case b == ']':
		ps.st = stateOscString
		ps.oscBuf = ps.oscBuf[:0]
	case b == 'P' || b == '_' || b == '^' || b == 'X':
		ps.st = stateDcsPassthrough
	case isIntermediateByte(b):
		ps.intermediates = append(ps.intermediates, b)
	case isCsiFinalByte(b) || (b >= 0x30 && b <= 0x3F):
		dispatchEsc(ps.buf, ps.intermediates, b)
		ps.st = stateGround
	default:
		ps.st = stateGround
	}
}

func (ps *Parser) advanceCsi(b byte) {
	ps.escLen++
	if ps.escLen > ps.maxEscapeLen {
		ps.abortToGround()
		return
	}
	switch {
	case b >= '0' && b <= '9':
		ps.params.digit(b)
		ps.st = stateCsiParam
	case b == ';':
		ps.params.semicolon()
		ps.st = stateCsiParam
	case b == ':':
		ps.params.colon()
		ps.st = stateCsiParam
	case b == '<' || b == '=' || b == '>' || b == '?':
		ps.intermediates = append(ps.intermediates, b)
	case isIntermediateByte(b):
		ps.intermediates = append(ps.intermediates, b)
		ps.st = stateCsiIntermediate
	case isCsiFinalByte(b):
		ps.dispatchAndReset(b)
	default:
		ps.abortToGround()
	}
}

func (ps *Parser) advanceCsiIntermediate(b byte) {
	ps.escLen++
	if ps.escLen > ps.maxEscapeLen {
		ps.abortToGround()
		return
	}
	switch {
	case isIntermediateByte(b):
		ps.intermediates = append(ps.intermediates, b)
	case isCsiFinalByte(b):
		ps.dispatchAndReset(b)
	default:
		ps.st = stateCsiIgnore
	}
}

func (ps *Parser) dispatchAndReset(final byte) {
	resp := dispatchCSI(ps.buf, ps.params, ps.intermediates, final)
	if resp != nil {
		ps.Responses = append(ps.Responses, resp)
	}
	ps.st = stateGround
}

func (ps *Parser) advanceOsc(b byte) {
	if b == bel {
		ps.finishOSC()
		return
	}
	if b == esc {
		// Tentatively treat as the start of an ST (ESC \\) terminator.
		// Since OSC strings only legally terminate with ESC \\ or BEL, and
		// we process one byte at a time, peek isn't available — instead
		// rely on the next byte check via a one-shot sub-state encoded by
		// appending ESC and validating on the following byte.
		ps.oscBuf = append(ps.oscBuf, esc)
		return
	}
	if len(ps.oscBuf) > 0 && ps.oscBuf[len(ps.oscBuf)-1] == esc {
		if b == st7 {
			ps.oscBuf = ps.oscBuf[:len(ps.oscBuf)-1]
			ps.finishOSC()
			return
		}
		// Not a valid ST: the ESC we buffered starts a new sequence of its
		// own (most real terminals treat this as OSC abandoned + ESC
		// re-dispatch). We drop the OSC and re-process b in Escape state.
		ps.oscBuf = ps.oscBuf[:0]
		ps.st = stateEscape
		ps.intermediates = ps.intermediates[:0]
		ps.escLen = 0
		ps.advanceEscape(b)
		return
	}
	if len(ps.oscBuf) >= ps.maxOSCLen {
		ps.abortToGround()
		return
	}
	ps.oscBuf = append(ps.oscBuf, b)
}

func (ps *Parser) finishOSC() {
	if ev := dispatchOSC(ps.oscBuf); ev != nil {
		ps.Events = append(ps.Events, *ev)
	}
	ps.oscBuf = ps.oscBuf[:0]
	ps.st = stateGround
}

// advanceDcsPassthrough discards DCS/SOS/PM/APC payloads until ST, since no
// DCS-level operation is in scope (spec.md §4.4 lists none).
func (ps *Parser) advanceDcsPassthrough(b byte) {
	if b == esc {
		ps.st = stateGround // approximate: next byte may or may not be '\\'
	}
}

// lineFeed moves the cursor down one row, scrolling the active region up
// by one line when already at its bottom margin.
func lineFeed(buf *buffer.OffscreenBuffer) {
	top, bottom := scrollRegion(buf)
	row, _ := buf.CursorPos()
	if row.Int() >= bottom.Int() {
		_ = buf.ShiftLinesUp(top, bottom.Add(coords.Height(1)), coords.Height(1))
		return
	}
	buf.CursorDown(1)
}

// reverseLineFeed moves the cursor up one row, scrolling the active region
// down by one line when already at its top margin.
func reverseLineFeed(buf *buffer.OffscreenBuffer) {
	top, bottom := scrollRegion(buf)
	row, _ := buf.CursorPos()
	if row.Int() <= top.Int() {
		_ = buf.ShiftLinesDown(top, bottom.Add(coords.Height(1)), coords.Height(1))
		return
	}
	buf.CursorUp(1)
}
