package renderop

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/buffer"
	"github.com/phoenix-tui/termcore/coords"
)

func TestPaintHoistsCaretShowCursorToEnd(t *testing.T) {
	p := NewPipeline()
	p.Add(ZNormal, PrintStyledText("body", buffer.Style{}))
	p.Add(ZCaret, ShowCursor())

	var out bytes.Buffer
	w := NewWriter(&out)
	shared := &SharedTerminalData{Rows: coords.Height(10), Cols: coords.Width(10)}

	require.NoError(t, p.Paint(w, FlushNormal, shared))

	// ShowCursor must be the last thing written.
	assert.True(t, bytes.HasSuffix(out.Bytes(), []byte(showCursor)))
}

func TestPaintSanitizesOutOfBoundsAbsolutePosition(t *testing.T) {
	p := NewPipeline()
	p.Add(ZNormal, MoveCursorPositionAbs(Position{Row: coords.Row(9999), Col: coords.Col(9999)}))

	var out bytes.Buffer
	w := NewWriter(&out)
	shared := &SharedTerminalData{Rows: coords.Height(24), Cols: coords.Width(80)}

	require.NoError(t, p.Paint(w, FlushNormal, shared))

	assert.Equal(t, 24, shared.CursorPos.Row.Int())
	assert.Equal(t, 80, shared.CursorPos.Col.Int())
}

func TestPaintClearsFirstWhenRequested(t *testing.T) {
	p := NewPipeline()
	var out bytes.Buffer
	w := NewWriter(&out)
	shared := &SharedTerminalData{Rows: coords.Height(10), Cols: coords.Width(10)}

	require.NoError(t, p.Paint(w, FlushClearFirst, shared))
	assert.Equal(t, clearScreen, out.String())
}
