package vtparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/buffer"
	"github.com/phoenix-tui/termcore/coords"
)

func rowText(t *testing.T, buf *buffer.OffscreenBuffer, row int) string {
	t.Helper()
	var out []rune
	for c := 0; c < buf.Cols().Int(); c++ {
		cell, ok := buf.GetChar(coords.Row(row), coords.Col(c))
		require.True(t, ok)
		switch cell.Kind {
		case buffer.PlainText:
			out = append(out, cell.Char)
		case buffer.Void:
			// consumed by the wide rune to its left; nothing to append.
		default:
			out = append(out, ' ')
		}
	}
	return string(out)
}

func writeRow(t *testing.T, buf *buffer.OffscreenBuffer, row int, text string) {
	t.Helper()
	for i, r := range text {
		require.NoError(t, buf.SetChar(coords.Row(row), coords.Col(i), buffer.NewPlainText(r, buffer.Style{})))
	}
}

// scenario 1: DCH in the middle (spec.md §8).
func TestScenarioDCHInMiddle(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(10))
	writeRow(t, buf, 0, "ABCDEFGHIJ")
	buf.CursorToPosition(0, 3)

	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[P"))

	assert.Equal(t, "ABCEFGHIJ ", rowText(t, buf, 0))
}

// scenario 2: IL with margins (spec.md §8).
func TestScenarioILWithMargins(t *testing.T) {
	buf := buffer.New(coords.Height(10), coords.Width(6))
	for r := 0; r < 10; r++ {
		writeRow(t, buf, r, "Line0"+string(rune('0'+r)))
	}

	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[3;7r")) // DECSTBM rows 3-7 (1-based) => 0-based [2,6]
	buf.CursorToPosition(4, 0)  // row 4, 0-based (the 5th row)
	p.Feed([]byte("\x1b[L"))    // IL, default count 1

	assert.Equal(t, "Line00", rowText(t, buf, 0))
	assert.Equal(t, "Line01", rowText(t, buf, 1))
	assert.Equal(t, "Line02", rowText(t, buf, 2))
	assert.Equal(t, "Line03", rowText(t, buf, 3))
	assert.Equal(t, "      ", rowText(t, buf, 4))
	assert.Equal(t, "Line04", rowText(t, buf, 5))
	assert.Equal(t, "Line05", rowText(t, buf, 6))
	assert.Equal(t, "Line07", rowText(t, buf, 7))
	assert.Equal(t, "Line08", rowText(t, buf, 8))
	assert.Equal(t, "Line09", rowText(t, buf, 9))
}

// scenario 3: tab from col 3 (spec.md §8).
func TestScenarioTabFromCol3(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(40))
	buf.CursorToPosition(0, 3)

	p := New(buf, 0, 0)
	p.Feed([]byte("\t"))

	_, col := buf.CursorPos()
	assert.Equal(t, 8, col.Int())
}

// scenario 4: DSR CPR (spec.md §8).
func TestScenarioDSRCursorPositionReport(t *testing.T) {
	buf := buffer.New(coords.Height(20), coords.Width(80))
	buf.CursorToPosition(9, 24) // 0-based row 9, col 24 == 1-based (10,25)

	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[6n"))

	resp := p.TakeResponses()
	require.Len(t, resp, 1)
	assert.Equal(t, "\x1b[10;25R", string(resp[0]))
}

func TestDSRStatusReport(t *testing.T) {
	buf := buffer.New(coords.Height(5), coords.Width(5))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[5n"))
	resp := p.TakeResponses()
	require.Len(t, resp, 1)
	assert.Equal(t, "\x1b[0n", string(resp[0]))
}

// property P2: a reset SGR after any accepted SGR sequence restores the
// default (bit-identical) style.
func TestSGRResetRestoresDefaultStyle(t *testing.T) {
	sequences := []string{
		"\x1b[1;4;31;42m",
		"\x1b[38;2;10;20;30m",
		"\x1b[38;5;200m",
		"\x1b[7;9;5m",
	}
	for _, seq := range sequences {
		buf := buffer.New(coords.Height(1), coords.Width(1))
		p := New(buf, 0, 0)
		p.Feed([]byte(seq))
		require.False(t, buf.Support.CurrentStyle.IsEmpty(), "sequence %q should have changed the style", seq)

		p.Feed([]byte("\x1b[0m"))
		assert.True(t, buf.Support.CurrentStyle.IsEmpty(), "sequence %q then reset should restore default style", seq)
	}
}

func TestSGRTrueColorForeground(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[38;2;10;20;30m"))
	assert.Equal(t, buffer.NewColor(10, 20, 30), buf.Support.CurrentStyle.Fg)
}

func TestSGRColonForm256Color(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[38:5:200m"))
	assert.Equal(t, colorFrom256(200), buf.Support.CurrentStyle.Fg)
}

func TestModeDECAWMAndDECTCEM(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[?7l"))
	assert.False(t, buf.Support.AutoWrap)
	p.Feed([]byte("\x1b[?25l"))
	assert.False(t, buf.Support.CursorVisible)
	p.Feed([]byte("\x1b[?7h\x1b[?25h"))
	assert.True(t, buf.Support.AutoWrap)
	assert.True(t, buf.Support.CursorVisible)
}

func TestBracketedPasteModeToggle(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[?2004h"))
	assert.True(t, buf.Support.BracketedPaste)
	p.Feed([]byte("\x1b[?2004l"))
	assert.False(t, buf.Support.BracketedPaste)
}

func TestCharsetDesignation(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b(0"))
	assert.Equal(t, buffer.CharSetDECGraphics, buf.Support.CharSet)
	p.Feed([]byte("\x1b(B"))
	assert.Equal(t, buffer.CharSetASCII, buf.Support.CharSet)
}

func TestFullResetClearsEverything(t *testing.T) {
	buf := buffer.New(coords.Height(3), coords.Width(5))
	writeRow(t, buf, 0, "ABCDE")
	buf.CursorToPosition(2, 2)

	p := New(buf, 0, 0)
	p.Feed([]byte("\x1bc"))

	assert.Equal(t, "     ", rowText(t, buf, 0))
	row, col := buf.CursorPos()
	assert.Equal(t, 0, row.Int())
	assert.Equal(t, 0, col.Int())
}

func TestOSCWindowTitle(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b]0;my title\x07"))

	events := p.TakeEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTitle, events[0].Kind)
	assert.Equal(t, "my title", events[0].Title)
}

func TestOSCHyperlink(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b]8;id=1;https://example.com\x1b\\"))

	events := p.TakeEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventHyperlink, events[0].Kind)
	assert.Equal(t, "id=1", events[0].HyperlinkParams)
	assert.Equal(t, "https://example.com", events[0].HyperlinkURI)
}

func TestOSCExceedingMaxLengthIsDroppedSilently(t *testing.T) {
	buf := buffer.New(coords.Height(1), coords.Width(1))
	p := New(buf, 8, 0) // tiny OSC budget
	p.Feed([]byte("\x1b]0;this is far too long to fit\x07"))

	assert.Empty(t, p.TakeEvents())
	// parser must have recovered to Ground, not wedged.
	p.Feed([]byte("\x1b[5n"))
	assert.Len(t, p.TakeResponses(), 1)
}

// property P7: the parser never panics and always returns to a usable
// state on malformed or partial input.
func TestParserIsTotalOverMalformedInput(t *testing.T) {
	buf := buffer.New(coords.Height(5), coords.Width(5))
	p := New(buf, 0, 0)

	inputs := [][]byte{
		{esc},
		{esc, '['},
		{esc, '[', '1', ';'},
		{esc, '[', '?', '9', '9', '9'},
		{0x18},           // CAN mid-nothing
		{esc, '[', 0x18}, // CAN mid-CSI
		[]byte("\x1b]0;unterminated"),
		{0xC0}, // invalid UTF-8 continuation-less lead byte
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { p.Feed(in) })
	}
	// parser must still work afterward.
	p.Feed([]byte("\x1b[2J"))
	for r := 0; r < 5; r++ {
		assert.Equal(t, "     ", rowText(t, buf, r))
	}
}

func TestCUPMovesCursor(t *testing.T) {
	buf := buffer.New(coords.Height(10), coords.Width(10))
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[3;5H"))
	row, col := buf.CursorPos()
	assert.Equal(t, 2, row.Int())
	assert.Equal(t, 4, col.Int())
}

func TestEDEraseToEndOfScreen(t *testing.T) {
	buf := buffer.New(coords.Height(3), coords.Width(3))
	for r := 0; r < 3; r++ {
		writeRow(t, buf, r, "XXX")
	}
	buf.CursorToPosition(1, 1)
	p := New(buf, 0, 0)
	p.Feed([]byte("\x1b[0J"))

	assert.Equal(t, "XXX", rowText(t, buf, 0))
	assert.Equal(t, "X  ", rowText(t, buf, 1))
	assert.Equal(t, "   ", rowText(t, buf, 2))
}
