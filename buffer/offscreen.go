package buffer

import (
	"github.com/phoenix-tui/termcore/coords"
	"github.com/phoenix-tui/termcore/errkind"
)

// CharSet identifies the active VT100 character set.
type CharSet int

const (
	// CharSetASCII is the default character set.
	CharSetASCII CharSet = iota
	// CharSetDECGraphics is the DEC Special Graphics set (line-drawing).
	CharSetDECGraphics
)

// AnsiParserSupport is the auxiliary state the VT100/ANSI parser (C4)
// threads through an OffscreenBuffer: current SGR style, saved cursor,
// scroll margins, and active character set.
type AnsiParserSupport struct {
	CurrentStyle    Style
	SavedCursorRow  coords.RowIndex
	SavedCursorCol  coords.ColIndex
	HasSavedCursor  bool
	ScrollTop       coords.TermRow // 0 means unset
	ScrollBottom    coords.TermRow // 0 means unset
	CharSet         CharSet
	AutoWrap        bool
	CursorVisible   bool
	BracketedPaste  bool
	MouseTracking   bool
	AlternateScreen bool
}

// NewAnsiParserSupport returns the default auxiliary state: auto-wrap and
// cursor visibility on, no scroll margins, ASCII charset.
func NewAnsiParserSupport() AnsiParserSupport {
	return AnsiParserSupport{
		AutoWrap:      true,
		CursorVisible: true,
		CharSet:       CharSetASCII,
	}
}

// HasScrollRegion reports whether both scroll margins are set.
func (a AnsiParserSupport) HasScrollRegion() bool {
	return a.ScrollTop != 0 && a.ScrollBottom != 0
}

// OffscreenBuffer is a 2-D grid of PixelChar with cursor state and parser
// auxiliary state. Created empty with a size; mutated only by the VT100
// parser (C4) and the compositor's source fill (C5); dropped when the frame
// completes.
type OffscreenBuffer struct {
	rows, cols coords.RowHeight
	colsW      coords.ColWidth
	cells      [][]PixelChar
	cursorRow  coords.RowIndex
	cursorCol  coords.ColIndex
	Support    AnsiParserSupport
}

// New creates an empty OffscreenBuffer of the given size, every cell a
// Spacer, cursor at (0,0).
func New(rows coords.RowHeight, cols coords.ColWidth) *OffscreenBuffer {
	if rows.Int() < 1 {
		rows = coords.Height(1)
	}
	if cols.Int() < 1 {
		cols = coords.Width(1)
	}
	cells := make([][]PixelChar, rows.Int())
	for r := range cells {
		row := make([]PixelChar, cols.Int())
		for c := range row {
			row[c] = NewSpacer()
		}
		cells[r] = row
	}
	return &OffscreenBuffer{
		rows: rows, colsW: cols,
		cells:   cells,
		Support: NewAnsiParserSupport(),
	}
}

// Rows returns the buffer's row count.
func (b *OffscreenBuffer) Rows() coords.RowHeight { return b.rows }

// Cols returns the buffer's column count.
func (b *OffscreenBuffer) Cols() coords.ColWidth { return b.colsW }

// CursorPos returns the current cursor position.
func (b *OffscreenBuffer) CursorPos() (coords.RowIndex, coords.ColIndex) {
	return b.cursorRow, b.cursorCol
}

func (b *OffscreenBuffer) inBounds(row coords.RowIndex, col coords.ColIndex) bool {
	return row.Int() >= 0 && row.Int() < b.rows.Int() && col.Int() >= 0 && col.Int() < b.colsW.Int()
}

// GetChar returns the cell at pos and true, or a zero PixelChar and false
// if pos is out of bounds.
func (b *OffscreenBuffer) GetChar(row coords.RowIndex, col coords.ColIndex) (PixelChar, bool) {
	if !b.inBounds(row, col) {
		return PixelChar{}, false
	}
	return b.cells[row.Int()][col.Int()], true
}

// SetChar overwrites the cell at pos. Returns an OutOfBounds error and
// leaves the buffer untouched if pos is invalid.
func (b *OffscreenBuffer) SetChar(row coords.RowIndex, col coords.ColIndex, ch PixelChar) error {
	if !b.inBounds(row, col) {
		return errkind.New(errkind.OutOfBounds, "position (%d,%d) outside %dx%d buffer", row, col, b.rows, b.colsW)
	}
	b.cells[row.Int()][col.Int()] = ch
	return nil
}

// FillCharRange fills cells [colStart, colEnd) on row with ch.
func (b *OffscreenBuffer) FillCharRange(row coords.RowIndex, colStart, colEnd coords.ColIndex, ch PixelChar) error {
	if row.Int() < 0 || row.Int() >= b.rows.Int() {
		return errkind.New(errkind.OutOfBounds, "row %d outside %d rows", row, b.rows)
	}
	start, end := clampRange(colStart.Int(), colEnd.Int(), b.colsW.Int())
	for c := start; c < end; c++ {
		b.cells[row.Int()][c] = ch
	}
	return nil
}

// CopyCharsWithinLine copies cells [srcStart, srcEnd) on row to dstStart,
// within the same line. Requires dstStart + len(src) <= cols.
func (b *OffscreenBuffer) CopyCharsWithinLine(row coords.RowIndex, srcStart, srcEnd coords.ColIndex, dstStart coords.ColIndex) error {
	if row.Int() < 0 || row.Int() >= b.rows.Int() {
		return errkind.New(errkind.OutOfBounds, "row %d outside %d rows", row, b.rows)
	}
	n := srcEnd.Int() - srcStart.Int()
	if n <= 0 {
		return nil
	}
	if dstStart.Int()+n > b.colsW.Int() {
		return errkind.New(errkind.OutOfBounds, "copy of %d cells from %d would overflow %d cols", n, dstStart, b.colsW)
	}
	line := b.cells[row.Int()]
	src := make([]PixelChar, n)
	copy(src, line[srcStart.Int():srcEnd.Int()])
	copy(line[dstStart.Int():dstStart.Int()+n], src)
	return nil
}

// ClearLine resets every cell in row to Spacer.
func (b *OffscreenBuffer) ClearLine(row coords.RowIndex) error {
	if row.Int() < 0 || row.Int() >= b.rows.Int() {
		return errkind.New(errkind.OutOfBounds, "row %d outside %d rows", row, b.rows)
	}
	for c := range b.cells[row.Int()] {
		b.cells[row.Int()][c] = NewSpacer()
	}
	return nil
}

// ShiftLinesUp rotates rows [start,end) up by n, clearing the last n lines
// of the range. Used for DL and SU.
func (b *OffscreenBuffer) ShiftLinesUp(start, end coords.RowIndex, n coords.RowHeight) error {
	lo, hi := clampRange(start.Int(), end.Int(), b.rows.Int())
	count := hi - lo
	shift := n.Int()
	if count <= 0 || shift <= 0 {
		return nil
	}
	if shift > count {
		shift = count
	}
	for i := lo; i < hi-shift; i++ {
		b.cells[i] = b.cells[i+shift]
	}
	for i := hi - shift; i < hi; i++ {
		b.cells[i] = blankLine(b.colsW.Int())
	}
	return nil
}

// ShiftLinesDown rotates rows [start,end) down by n, clearing the first n
// lines of the range. Used for IL and SD.
func (b *OffscreenBuffer) ShiftLinesDown(start, end coords.RowIndex, n coords.RowHeight) error {
	lo, hi := clampRange(start.Int(), end.Int(), b.rows.Int())
	count := hi - lo
	shift := n.Int()
	if count <= 0 || shift <= 0 {
		return nil
	}
	if shift > count {
		shift = count
	}
	for i := hi - 1; i >= lo+shift; i-- {
		b.cells[i] = b.cells[i-shift]
	}
	for i := lo; i < lo+shift; i++ {
		b.cells[i] = blankLine(b.colsW.Int())
	}
	return nil
}

func blankLine(cols int) []PixelChar {
	line := make([]PixelChar, cols)
	for i := range line {
		line[i] = NewSpacer()
	}
	return line
}

func clampRange(start, end, limit int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if start > end {
		start = end
	}
	return start, end
}

// --- Cursor movement ---

// scrollBounds returns the active [top, bottom] row range (0-based,
// inclusive) cursor vertical movement clamps to.
func (b *OffscreenBuffer) scrollBounds() (coords.RowIndex, coords.RowIndex) {
	if b.Support.HasScrollRegion() {
		top := b.Support.ScrollTop.ToZeroBased()
		bottom := b.Support.ScrollBottom.ToZeroBased()
		return top, bottom
	}
	return coords.Row(0), coords.Row(b.rows.Int() - 1)
}

// CursorUp moves the cursor up n rows, clamped to the active scroll region.
func (b *OffscreenBuffer) CursorUp(n int) {
	top, _ := b.scrollBounds()
	newRow := b.cursorRow.Int() - n
	if newRow < top.Int() {
		newRow = top.Int()
	}
	b.cursorRow = coords.Row(newRow)
}

// CursorDown moves the cursor down n rows, clamped to the active scroll
// region.
func (b *OffscreenBuffer) CursorDown(n int) {
	_, bottom := b.scrollBounds()
	newRow := b.cursorRow.Int() + n
	if newRow > bottom.Int() {
		newRow = bottom.Int()
	}
	b.cursorRow = coords.Row(newRow)
}

// CursorForward moves the cursor right n columns, clamped to [0, cols).
func (b *OffscreenBuffer) CursorForward(n int) {
	newCol := coords.ClampToRange(b.cursorCol.Int()+n, 0, b.colsW.Int()-1)
	b.cursorCol = coords.Col(newCol)
}

// CursorBackward moves the cursor left n columns, clamped to [0, cols).
func (b *OffscreenBuffer) CursorBackward(n int) {
	newCol := coords.ClampToRange(b.cursorCol.Int()-n, 0, b.colsW.Int()-1)
	b.cursorCol = coords.Col(newCol)
}

// CursorToPosition moves the cursor to (row, col), clamping both
// coordinates into the buffer (row into the full buffer, not just the
// scroll region — only relative moves respect margins).
func (b *OffscreenBuffer) CursorToPosition(row, col int) {
	b.cursorRow = coords.Row(coords.ClampToRange(row, 0, b.rows.Int()-1))
	b.cursorCol = coords.Col(coords.ClampToRange(col, 0, b.colsW.Int()-1))
}

// CursorToColumn moves the cursor to an absolute column on the current row.
func (b *OffscreenBuffer) CursorToColumn(col int) {
	b.cursorCol = coords.Col(coords.ClampToRange(col, 0, b.colsW.Int()-1))
}

// CursorToRow moves the cursor to an absolute row, keeping the column.
func (b *OffscreenBuffer) CursorToRow(row int) {
	b.cursorRow = coords.Row(coords.ClampToRange(row, 0, b.rows.Int()-1))
}

// CursorToLineStart moves the cursor to column 0 of the current row.
func (b *OffscreenBuffer) CursorToLineStart() {
	b.cursorCol = coords.Col(0)
}

// CursorToNextLineStart moves the cursor down n rows and to column 0.
func (b *OffscreenBuffer) CursorToNextLineStart(n int) {
	b.CursorDown(n)
	b.CursorToLineStart()
}

// CursorToPrevLineStart moves the cursor up n rows and to column 0.
func (b *OffscreenBuffer) CursorToPrevLineStart(n int) {
	b.CursorUp(n)
	b.CursorToLineStart()
}

// SaveCursorPosition stores the current cursor position for a later
// RestoreCursorPosition.
func (b *OffscreenBuffer) SaveCursorPosition() {
	b.Support.SavedCursorRow = b.cursorRow
	b.Support.SavedCursorCol = b.cursorCol
	b.Support.HasSavedCursor = true
}

// RestoreCursorPosition restores a previously saved cursor position. A
// no-op if nothing was saved.
func (b *OffscreenBuffer) RestoreCursorPosition() {
	if !b.Support.HasSavedCursor {
		return
	}
	b.cursorRow = b.Support.SavedCursorRow
	b.cursorCol = b.Support.SavedCursorCol
}

// TabStop advances the cursor to the next multiple of width (8 when width
// is not positive), clamped to cols-1, without wrapping to the next line.
func (b *OffscreenBuffer) TabStop(width int) {
	if width <= 0 {
		width = 8
	}
	next := ((b.cursorCol.Int() / width) + 1) * width
	if next > b.colsW.Int()-1 {
		next = b.colsW.Int() - 1
	}
	b.cursorCol = coords.Col(next)
}

// Reset clears the buffer, resets the cursor, saved state, margins, SGR
// style, and character set — the ESC c "full reset" operation.
func (b *OffscreenBuffer) Reset() {
	for r := range b.cells {
		for c := range b.cells[r] {
			b.cells[r][c] = NewSpacer()
		}
	}
	b.cursorRow, b.cursorCol = 0, 0
	b.Support = NewAnsiParserSupport()
}
