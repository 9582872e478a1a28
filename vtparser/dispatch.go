package vtparser

import (
	"fmt"
	"strings"

	"github.com/phoenix-tui/termcore/buffer"
	"github.com/phoenix-tui/termcore/coords"
)

// This file is the shim layer described in spec.md §4.4: one function per
// ANSI operation kind, translating already-parsed CSI/OSC/ESC/DSR
// parameters into typed calls on the offscreen buffer. No business logic
// lives here — that's buffer.OffscreenBuffer, unit-tested on its own.

// dispatchCSI handles one complete CSI sequence: params, any intermediate
// bytes (e.g. '?' for DEC private modes), and the final byte. It returns
// any bytes that must be written back to the pty (DSR responses).
func dispatchCSI(buf *buffer.OffscreenBuffer, p *Params, intermediates []byte, final byte) []byte {
	private := len(intermediates) > 0 && intermediates[0] == '?'

	switch final {
	case 'A':
		buf.CursorUp(p.Get(0, 1))
	case 'B':
		buf.CursorDown(p.Get(0, 1))
	case 'C':
		buf.CursorForward(p.Get(0, 1))
	case 'D':
		buf.CursorBackward(p.Get(0, 1))
	case 'E':
		buf.CursorToNextLineStart(p.Get(0, 1))
	case 'F':
		buf.CursorToPrevLineStart(p.Get(0, 1))
	case 'G':
		buf.CursorToColumn(p.Get(0, 1) - 1)
	case 'd':
		buf.CursorToRow(p.Get(0, 1) - 1)
	case 'H', 'f':
		row := p.Get(0, 1)
		col := p.Get(1, 1)
		buf.CursorToPosition(row-1, col-1)
	case 'J':
		dispatchED(buf, p.Get(0, 0))
	case 'K':
		dispatchEL(buf, p.Get(0, 0))
	case 'X':
		dispatchECH(buf, p.Get(0, 1))
	case '@':
		dispatchICH(buf, p.Get(0, 1))
	case 'P':
		dispatchDCH(buf, p.Get(0, 1))
	case 'L':
		dispatchIL(buf, p.Get(0, 1))
	case 'M':
		dispatchDL(buf, p.Get(0, 1))
	case 'S':
		dispatchSU(buf, p.Get(0, 1))
	case 'T':
		dispatchSD(buf, p.Get(0, 1))
	case 'r':
		dispatchDECSTBM(buf, p)
	case 'm':
		dispatchSGR(buf, p)
	case 'h':
		dispatchMode(buf, p, private, true)
	case 'l':
		dispatchMode(buf, p, private, false)
	case 'n':
		return dispatchDSR(buf, p.Get(0, 0))
	case 's':
		buf.SaveCursorPosition()
	case 'u':
		buf.RestoreCursorPosition()
	}
	return nil
}

// dispatchED implements ED (erase in display): 0 = cursor to end, 1 = start
// to cursor, 2 = entire screen.
func dispatchED(buf *buffer.OffscreenBuffer, mode int) {
	row, col := buf.CursorPos()
	rows, cols := buf.Rows().Int(), buf.Cols().Int()
	switch mode {
	case 0:
		_ = buf.FillCharRange(row, col, coords.Col(cols), buffer.NewSpacer())
		for r := row.Int() + 1; r < rows; r++ {
			_ = buf.ClearLine(coords.Row(r))
		}
	case 1:
		_ = buf.FillCharRange(row, coords.Col(0), col.Add(coords.Width(1)), buffer.NewSpacer())
		for r := 0; r < row.Int(); r++ {
			_ = buf.ClearLine(coords.Row(r))
		}
	case 2, 3:
		for r := 0; r < rows; r++ {
			_ = buf.ClearLine(coords.Row(r))
		}
	}
}

// dispatchEL implements EL (erase in line): 0 = cursor to end, 1 = start to
// cursor, 2 = entire line.
func dispatchEL(buf *buffer.OffscreenBuffer, mode int) {
	row, col := buf.CursorPos()
	cols := buf.Cols()
	switch mode {
	case 0:
		_ = buf.FillCharRange(row, col, coords.Col(cols.Int()), buffer.NewSpacer())
	case 1:
		_ = buf.FillCharRange(row, coords.Col(0), col.Add(coords.Width(1)), buffer.NewSpacer())
	case 2:
		_ = buf.ClearLine(row)
	}
}

// dispatchECH implements ECH: write n spaces in place, no shift.
func dispatchECH(buf *buffer.OffscreenBuffer, n int) {
	row, col := buf.CursorPos()
	end := col.Add(coords.Width(n))
	_ = buf.FillCharRange(row, col, end, buffer.NewSpacer())
}

// dispatchICH implements ICH: clamp cursor to cols-1 if beyond the right
// margin, then shift the remainder of the line right by n, filling the
// opened gap with spaces (spec.md §4.4 ICH/DCH edge case).
func dispatchICH(buf *buffer.OffscreenBuffer, n int) {
	row, col := clampedCursor(buf)
	cols := buf.Cols().Int()
	if col.Int() >= cols {
		return
	}
	shiftLen := cols - col.Int() - n
	if shiftLen > 0 {
		_ = buf.CopyCharsWithinLine(row, col, coords.Col(col.Int()+shiftLen), coords.Col(col.Int()+n))
	}
	end := col.Int() + n
	if end > cols {
		end = cols
	}
	_ = buf.FillCharRange(row, col, coords.Col(end), buffer.NewSpacer())
}

// dispatchDCH implements DCH: delete n cells at the cursor, shifting the
// rest of the line left, blanking on the right.
func dispatchDCH(buf *buffer.OffscreenBuffer, n int) {
	row, col := clampedCursor(buf)
	cols := buf.Cols().Int()
	if col.Int() >= cols {
		return
	}
	srcStart := col.Int() + n
	if srcStart > cols {
		srcStart = cols
	}
	if srcStart < cols {
		_ = buf.CopyCharsWithinLine(row, coords.Col(srcStart), coords.Col(cols), col)
	}
	blankStart := cols - n
	if blankStart < col.Int() {
		blankStart = col.Int()
	}
	_ = buf.FillCharRange(row, coords.Col(blankStart), coords.Col(cols), buffer.NewSpacer())
}

func clampedCursor(buf *buffer.OffscreenBuffer) (coords.RowIndex, coords.ColIndex) {
	row, col := buf.CursorPos()
	cols := buf.Cols().Int()
	if col.Int() >= cols {
		col = coords.Col(cols - 1)
	}
	return row, col
}

// dispatchIL implements IL: insert n blank lines at the cursor row, shifting
// the active scroll region's lines down.
func dispatchIL(buf *buffer.OffscreenBuffer, n int) {
	row, _ := buf.CursorPos()
	_, bottom := scrollRegion(buf)
	_ = buf.ShiftLinesDown(row, bottom.Add(coords.Height(1)), coords.Height(n))
}

// dispatchDL implements DL: delete n lines at the cursor row, shifting the
// active scroll region's lines up.
func dispatchDL(buf *buffer.OffscreenBuffer, n int) {
	row, _ := buf.CursorPos()
	_, bottom := scrollRegion(buf)
	_ = buf.ShiftLinesUp(row, bottom.Add(coords.Height(1)), coords.Height(n))
}

// dispatchSU implements SU: scroll the active region up by n lines.
func dispatchSU(buf *buffer.OffscreenBuffer, n int) {
	top, bottom := scrollRegion(buf)
	_ = buf.ShiftLinesUp(top, bottom.Add(coords.Height(1)), coords.Height(n))
}

// dispatchSD implements SD: scroll the active region down by n lines.
func dispatchSD(buf *buffer.OffscreenBuffer, n int) {
	top, bottom := scrollRegion(buf)
	_ = buf.ShiftLinesDown(top, bottom.Add(coords.Height(1)), coords.Height(n))
}

func scrollRegion(buf *buffer.OffscreenBuffer) (coords.RowIndex, coords.RowIndex) {
	if buf.Support.HasScrollRegion() {
		return buf.Support.ScrollTop.ToZeroBased(), buf.Support.ScrollBottom.ToZeroBased()
	}
	return coords.Row(0), coords.Row(buf.Rows().Int() - 1)
}

// dispatchDECSTBM implements DECSTBM: set the top/bottom scroll margins.
// With no params, clears the margins (full-screen scroll region).
func dispatchDECSTBM(buf *buffer.OffscreenBuffer, p *Params) {
	if p.IsEmpty() {
		buf.Support.ScrollTop = 0
		buf.Support.ScrollBottom = 0
		return
	}
	top := p.Get(0, 1)
	bottom := p.Get(1, buf.Rows().Int())
	if bottom <= top {
		return
	}
	buf.Support.ScrollTop = coords.TermRowFrom(top)
	buf.Support.ScrollBottom = coords.TermRowFrom(bottom)
	// Deliberately does not reset the cursor: see DESIGN.md's Open Question
	// resolution (sources disagree; the conformance tests assume no
	// automatic reset).
}

// dispatchSGR implements SGR: select graphic rendition, walking every
// parameter (semicolon-separated) and its sub-values (colon-separated for
// the extended color forms).
func dispatchSGR(buf *buffer.OffscreenBuffer, p *Params) {
	s := buf.Support.CurrentStyle
	i := 0
	for i < p.Len() {
		code := p.Get(i, 0)
		switch {
		case code == 0:
			s = buffer.Style{}
		case code == 1:
			s.Bold = true
		case code == 2:
			s.Dim = true
		case code == 3:
			s.Italic = true
		case code == 4:
			s.Underline = true
		case code == 5:
			s.Blink = true
		case code == 7:
			s.Reverse = true
		case code == 8:
			s.Hidden = true
		case code == 9:
			s.Strike = true
		case code == 22:
			s.Bold, s.Dim = false, false
		case code == 23:
			s.Italic = false
		case code == 24:
			s.Underline = false
		case code == 25:
			s.Blink = false
		case code == 27:
			s.Reverse = false
		case code == 28:
			s.Hidden = false
		case code == 29:
			s.Strike = false
		case code >= 30 && code <= 37:
			s.Fg = colorFromBasic(code - 30)
		case code == 38:
			var consumed int
			s.Fg, consumed = extendedColor(p, i)
			i += consumed
			continue
		case code == 39:
			s.Fg = buffer.Color{}
		case code >= 40 && code <= 47:
			s.Bg = colorFromBasic(code - 40)
		case code == 48:
			var consumed int
			s.Bg, consumed = extendedColor(p, i)
			i += consumed
			continue
		case code == 49:
			s.Bg = buffer.Color{}
		case code >= 90 && code <= 97:
			s.Fg = colorFromBasic(code - 90 + 8)
		case code >= 100 && code <= 107:
			s.Bg = colorFromBasic(code - 100 + 8)
		}
		i++
	}
	buf.Support.CurrentStyle = s
}

// extendedColor parses the 256-color or 24-bit RGB SGR forms starting at
// parameter i (which must hold 38 or 48), in both the semicolon-separated
// legacy form ("38;5;N" / "38;2;R;G;B") and the colon-separated form
// ("38:5:N" / "38:2::R:G:B", with an optional empty colorspace slot). It
// returns the resolved color and how many top-level parameters were
// consumed (including the leading 38/48).
func extendedColor(p *Params, i int) (buffer.Color, int) {
	if p.SubLen(i) > 1 {
		// Colon form: everything lives in this one parameter's sub-values.
		switch p.Sub(i, 1) {
		case 5:
			return colorFrom256(p.Sub(i, 2)), 1
		case 2:
			// sub-values: [38, 2, (colorspace?), r, g, b] — colorspace is
			// optional, so resolve r/g/b from the last three present.
			n := p.SubLen(i)
			if n >= 5 {
				return buffer.NewColor(uint8(p.Sub(i, n-3)), uint8(p.Sub(i, n-2)), uint8(p.Sub(i, n-1))), 1
			}
		}
		return buffer.Color{}, 1
	}
	mode := p.Get(i+1, -1)
	switch mode {
	case 5:
		return colorFrom256(p.Get(i+2, 0)), 3
	case 2:
		return buffer.NewColor(uint8(p.Get(i+2, 0)), uint8(p.Get(i+3, 0)), uint8(p.Get(i+4, 0))), 5
	}
	return buffer.Color{}, 1
}

// dispatchMode implements DECSET/DECRST ('h'/'l' with a '?' intermediate)
// and ANSI mode set/reset (without it). set=true for 'h', false for 'l'.
func dispatchMode(buf *buffer.OffscreenBuffer, p *Params, private bool, set bool) {
	if !private {
		return // no plain ANSI modes are in scope beyond what DEC covers
	}
	for _, code := range p.All() {
		switch code {
		case 7: // DECAWM
			buf.Support.AutoWrap = set
		case 25: // DECTCEM
			buf.Support.CursorVisible = set
		case 1049, 47, 1047: // alternate screen
			buf.Support.AlternateScreen = set
			if set {
				buf.Reset()
			}
		case 2004: // bracketed paste
			buf.Support.BracketedPaste = set
		case 1000, 1002, 1003, 1006: // mouse tracking variants
			buf.Support.MouseTracking = set
		}
	}
}

// dispatchDSR implements DSR: Ps=5 reports device status OK, Ps=6 reports
// the 1-based cursor position.
func dispatchDSR(buf *buffer.OffscreenBuffer, ps int) []byte {
	switch ps {
	case 5:
		return []byte("\x1b[0n")
	case 6:
		row, col := buf.CursorPos()
		termRow := coords.RowFromZeroBased(row)
		termCol := coords.ColFromZeroBased(col)
		return []byte(fmt.Sprintf("\x1b[%d;%dR", termRow.Int(), termCol.Int()))
	}
	return nil
}

// dispatchEsc handles a two/three-byte escape sequence that never entered
// CSI: IND, RI, DECSC/DECRC, RIS, and charset selection.
func dispatchEsc(buf *buffer.OffscreenBuffer, intermediates []byte, final byte) {
	if len(intermediates) > 0 {
		switch intermediates[0] {
		case '(': // G0 charset designation
			switch final {
			case 'B':
				buf.Support.CharSet = buffer.CharSetASCII
			case '0':
				buf.Support.CharSet = buffer.CharSetDECGraphics
			}
		}
		return
	}
	switch final {
	case 'c': // RIS full reset
		buf.Reset()
	case 'D': // IND
		lineFeed(buf)
	case 'M': // RI
		reverseLineFeed(buf)
	case '7': // DECSC
		buf.SaveCursorPosition()
	case '8': // DECRC
		buf.RestoreCursorPosition()
	}
}

// dispatchOSC parses a complete OSC payload ("Ps;Pt...") into an Event, or
// nil if the command is unrecognized.
func dispatchOSC(payload []byte) *Event {
	s := string(payload)
	semi := strings.IndexByte(s, ';')
	if semi < 0 {
		return nil
	}
	ps, rest := s[:semi], s[semi+1:]
	switch ps {
	case "0", "2":
		return &Event{Kind: EventTitle, Title: rest}
	case "8":
		sub := strings.IndexByte(rest, ';')
		if sub < 0 {
			return nil
		}
		return &Event{Kind: EventHyperlink, HyperlinkParams: rest[:sub], HyperlinkURI: rest[sub+1:]}
	case "4":
		sub := strings.IndexByte(rest, ';')
		if sub < 0 {
			return nil
		}
		idx := 0
		fmt.Sscanf(rest[:sub], "%d", &idx)
		return &Event{Kind: EventPaletteSet, PaletteIndex: idx, PaletteSpec: rest[sub+1:]}
	}
	return nil
}
