package renderop

import (
	"bufio"
	"io"

	"github.com/phoenix-tui/termcore/buffer"
)

// Writer is the ANSI backend converter: it translates Op values into
// terminal bytes, buffering writes and collapsing redundant sequences.
// Grounded on render/infrastructure/ansi/writer.go's buffered Writer, with
// the two specific optimizations spec.md §4.5 requires: adjacent
// MoveCursorPositionAbs ops collapse to the last one, and
// ApplyColors(Some(style)) becomes a plain ResetColor when style carries no
// colors or attributes at all.
type Writer struct {
	out *bufio.Writer

	havePendingMove bool
	pendingRow      int
	pendingCol      int

	haveStyle bool
	style     buffer.Style
}

// NewWriter wraps w with a buffered ANSI backend.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// Flush flushes the pending cursor move (if any) and the underlying
// buffer.
func (w *Writer) Flush() error {
	w.flushPendingMove()
	return w.out.Flush()
}

func (w *Writer) raw(s string) { w.flushPendingMove(); w.out.WriteString(s) }

// moveCursorAbs records a pending absolute move; consecutive calls
// collapse to just the last position, emitted lazily the next time
// anything else is written (the "adjacent MoveCursorPositionAbs ops
// collapse to the last one" optimization).
func (w *Writer) moveCursorAbs(row, col int) {
	w.havePendingMove = true
	w.pendingRow, w.pendingCol = row, col
}

func (w *Writer) flushPendingMove() {
	if !w.havePendingMove {
		return
	}
	w.out.WriteString(cursorMoveAbs(w.pendingRow, w.pendingCol))
	w.havePendingMove = false
}

// writeOp converts every non-cursor-move Op to bytes.
func (w *Writer) writeOp(op Op) {
	switch op.Kind {
	case OpEnterRawMode, OpExitRawMode, OpNoop:
		// No buffer-visible bytes: raw-mode toggles are a syscall (see
		// termio.EnterRawMode), not an ANSI sequence.
	case OpClearScreen:
		w.raw(clearScreen)
	case OpSetFgColor:
		w.raw(colorSGR(op.Color, false))
	case OpSetBgColor:
		w.raw(colorSGR(op.Color, true))
	case OpResetColor:
		w.raw(sgrReset())
		w.haveStyle, w.style = false, buffer.Style{}
	case OpApplyColors:
		w.applyColors(op.Style)
	case OpMoveCursorToColumn:
		w.raw(cursorToColumn(op.Col))
	case OpMoveCursorToNextLine:
		w.raw(cursorNextLine(op.N))
	case OpMoveCursorToPreviousLine:
		w.raw(cursorPrevLine(op.N))
	case OpClearCurrentLine:
		w.raw(clearCurrentLine)
	case OpClearToEndOfLine:
		w.raw(clearToEOL)
	case OpClearToStartOfLine:
		w.raw(clearToSOL)
	case OpPrintStyledText, OpCompositorPaintText:
		w.applyColors(op.Style)
		w.raw(op.Text)
	case OpShowCursor:
		w.raw(showCursor)
	case OpHideCursor:
		w.raw(hideCursor)
	case OpSaveCursorPosition:
		w.raw(saveCursor)
	case OpRestoreCursorPosition:
		w.raw(restoreCursor)
	case OpEnterAlternateScreen:
		w.raw(altScreenEnable)
	case OpExitAlternateScreen:
		w.raw(altScreenDisable)
	case OpEnableMouseTracking:
		w.raw(mouseEnable)
	case OpDisableMouseTracking:
		w.raw(mouseDisable)
	case OpEnableBracketedPaste:
		w.raw(pasteEnable)
	case OpDisableBracketedPaste:
		w.raw(pasteDisable)
	}
}

// applyColors implements "ApplyColors(Some(style)) is replaced by
// ResetColor when style clears all colors" and otherwise skips re-emitting
// SGR for a style the writer already has active.
func (w *Writer) applyColors(style buffer.Style) {
	if w.haveStyle && w.style.Equal(style) {
		return
	}
	if style.IsEmpty() {
		w.raw(sgrReset())
		w.haveStyle, w.style = true, style
		return
	}
	if sgr := style.ToSGR(); sgr != "" {
		w.raw(csi + sgr + "m")
	}
	w.haveStyle, w.style = true, style
}

func colorSGR(c buffer.Color, background bool) string {
	if !c.Set {
		if background {
			return sgrResetBg()
		}
		return sgrResetFg()
	}
	if background {
		return sgrBgRGB(c.R, c.G, c.B)
	}
	return sgrFgRGB(c.R, c.G, c.B)
}
