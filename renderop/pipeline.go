package renderop

import (
	"github.com/phoenix-tui/termcore/coords"
	"github.com/phoenix-tui/termcore/internal/obs"
)

// FlushKind controls whether paint() clears the screen before painting.
type FlushKind int

const (
	// FlushNormal paints without an upfront clear.
	FlushNormal FlushKind = iota
	// FlushClearFirst clears the screen before painting (e.g. full redraw).
	FlushClearFirst
)

// SharedTerminalData replaces a process-wide singleton with an explicit
// value threaded through the compositor (spec.md §9: "Shared terminal
// state"). Rows/Cols bound the sanitization clamp; CursorPos is updated by
// every absolute-position op paint() processes.
type SharedTerminalData struct {
	Rows      coords.RowHeight
	Cols      coords.ColWidth
	CursorPos Position
}

// sanitize clamps pos into [0,cols] x [0,rows] and records it as the new
// cursor position (spec.md §4.5: "clamped silently with a debug log").
func (s *SharedTerminalData) sanitize(pos Position) Position {
	row := coords.ClampToRange(pos.Row.Int(), 0, s.Rows.Int())
	col := coords.ClampToRange(pos.Col.Int(), 0, s.Cols.Int())
	clamped := Position{Row: coords.Row(row), Col: coords.Col(col)}
	if clamped != pos {
		obs.Component("renderop").Debug("absolute position clamped",
			"requested_row", pos.Row.Int(), "requested_col", pos.Col.Int(),
			"clamped_row", row, "clamped_col", col)
	}
	s.CursorPos = clamped
	return clamped
}

// Paint runs the paint algorithm spec.md §4.5 describes: iterate ZOrders in
// [Normal, High, Caret, Glass], hoist caret-show requests to the very end
// (only the last is honored), sanitize absolute positions, convert every
// remaining op through the ANSI backend, and flush once.
func (p RenderPipeline) Paint(w *Writer, flushKind FlushKind, shared *SharedTerminalData) error {
	if flushKind == FlushClearFirst {
		w.raw(clearScreen)
	}

	var hoistedShow *Op
	hoistedCount := 0

	for _, z := range zOrderPaintSequence {
		for _, op := range p[z] {
			op := op
			if op.Kind == OpShowCursor {
				hoistedShow = &op
				hoistedCount++
				continue
			}
			p.emit(w, shared, op)
		}
	}

	if hoistedShow != nil {
		if hoistedCount > 1 {
			obs.Component("renderop").Warn("multiple ShowCursor requests in one frame; honoring only the last", "count", hoistedCount)
		}
		p.emit(w, shared, *hoistedShow)
	}

	return w.Flush()
}

func (p RenderPipeline) emit(w *Writer, shared *SharedTerminalData, op Op) {
	switch op.Kind {
	case OpMoveCursorPositionAbs:
		pos := shared.sanitize(op.Pos)
		w.moveCursorAbs(pos.Row.Int(), pos.Col.Int())
	case OpMoveCursorPositionRelTo:
		pos := Position{
			Row: coords.Row(op.Origin.Row.Int() + op.Offset.Row.Int()),
			Col: coords.Col(op.Origin.Col.Int() + op.Offset.Col.Int()),
		}
		pos = shared.sanitize(pos)
		w.moveCursorAbs(pos.Row.Int(), pos.Col.Int())
	default:
		w.writeOp(op)
	}
}
