package renderop

import (
	"strings"

	"github.com/phoenix-tui/termcore/buffer"
	"github.com/phoenix-tui/termcore/coords"
)

// Compositor computes the minimal RenderOpOutput stream that transforms one
// frame's offscreen buffer into the next. Grounded on
// render/internal/domain/service/diff.go's DiffService, generalized from
// per-cell Set ops to the run-length/style-batched ops spec.md §4.5
// describes.
type Compositor struct{}

// NewCompositor returns a Compositor. Stateless: holds no buffers itself,
// so callers own the current/previous pair across frames (spec.md §9:
// "the render pipeline holds none to the buffer").
func NewCompositor() *Compositor { return &Compositor{} }

// Diff returns the ops needed to turn previous into current. Rows that are
// byte-for-byte equal are skipped entirely.
func (c *Compositor) Diff(previous, current *buffer.OffscreenBuffer) RenderOps {
	if previous == nil || current == nil {
		return nil
	}
	rows := current.Rows().Int()
	cols := current.Cols().Int()
	var ops RenderOps
	for r := 0; r < rows; r++ {
		prevRow := rowCells(previous, r, cols)
		curRow := rowCells(current, r, cols)
		if rowsEqual(prevRow, curRow) {
			continue
		}
		ops = append(ops, c.diffRow(r, prevRow, curRow, cols)...)
	}
	return ops
}

// DebugDump renders buf as a human-readable preview through
// Style.RenderWith, one terminal line per row. Unlike the ANSI backend
// (Writer), this is for logs and test failure output, not for driving a
// real terminal, so it is fine that lipgloss's own SGR encoding differs
// in byte-for-byte detail from Style.ToSGR.
func (c *Compositor) DebugDump(buf *buffer.OffscreenBuffer) string {
	rows := buf.Rows().Int()
	cols := buf.Cols().Int()
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for _, cell := range rowCells(buf, r, cols) {
			if cell.Kind == buffer.Void {
				continue
			}
			ch := cell.Char
			if ch == 0 {
				ch = ' '
			}
			b.WriteString(cell.Style.RenderWith(string(ch)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func rowCells(buf *buffer.OffscreenBuffer, row, cols int) []buffer.PixelChar {
	out := make([]buffer.PixelChar, cols)
	for c := 0; c < cols; c++ {
		cell, ok := buf.GetChar(coords.Row(row), coords.Col(c))
		if ok {
			out[c] = cell
		} else {
			out[c] = buffer.NewSpacer()
		}
	}
	return out
}

func rowsEqual(a, b []buffer.PixelChar) bool {
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (c *Compositor) diffRow(row int, prev, cur []buffer.PixelChar, cols int) RenderOps {
	firstDiff := -1
	for i := range cur {
		if !prev[i].Equal(cur[i]) {
			firstDiff = i
			break
		}
	}
	if firstDiff == -1 {
		return nil
	}

	ops := RenderOps{MoveCursorPositionAbs(Position{Row: coords.Row(row), Col: coords.Col(firstDiff)})}

	col := firstDiff
	var runText []rune
	var runStyle buffer.Style
	haveRun := false

	flush := func() {
		if !haveRun {
			return
		}
		ops = append(ops, ApplyColors(runStyle), CompositorPaintText(string(runText), runStyle))
		runText = runText[:0]
		haveRun = false
	}

	for col < cols {
		if isDefaultSpacerSuffix(cur, col, cols) {
			flush()
			ops = append(ops, ClearToEndOfLine())
			return ops
		}
		ch, style := cellGlyph(cur[col])
		if cur[col].Kind == buffer.Void {
			col++
			continue
		}
		if haveRun && !runStyle.Equal(style) {
			flush()
		}
		runText = append(runText, ch)
		runStyle = style
		haveRun = true
		col++
	}
	flush()
	return ops
}

func cellGlyph(cell buffer.PixelChar) (rune, buffer.Style) {
	switch cell.Kind {
	case buffer.PlainText:
		return cell.Char, cell.Style
	default:
		return ' ', buffer.Style{}
	}
}

// isDefaultSpacerSuffix reports whether every cell from `from` to the end
// of the row is an unstyled Spacer, the case the compositor collapses into
// a single ClearToEndOfLine.
func isDefaultSpacerSuffix(cur []buffer.PixelChar, from, cols int) bool {
	for c := from; c < cols; c++ {
		if cur[c].Kind != buffer.Spacer {
			return false
		}
	}
	return true
}
