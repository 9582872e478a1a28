package renderop

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/buffer"
)

func TestAdjacentMovesCollapseToLast(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.moveCursorAbs(1, 1)
	w.moveCursorAbs(5, 9) // should be the only move actually emitted
	w.raw("x")
	require.NoError(t, w.Flush())

	assert.Equal(t, cursorMoveAbs(5, 9)+"x", buf.String())
}

func TestApplyColorsEmptyStyleEmitsPlainReset(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)

	w.applyColors(buffer.Style{})
	require.NoError(t, w.Flush())

	assert.Equal(t, sgrReset(), out.String())
}

func TestApplyColorsSkipsRedundantSGR(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	style := buffer.Style{Bold: true}

	w.applyColors(style)
	require.NoError(t, w.Flush())
	first := out.String()
	w.applyColors(style) // same style again: must not re-emit
	require.NoError(t, w.Flush())

	assert.Equal(t, first, out.String())
}

func TestWriteOpClearScreen(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	w.writeOp(ClearScreen())
	require.NoError(t, w.Flush())
	assert.Equal(t, clearScreen, out.String())
}

func TestWriteOpModeToggles(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	w.writeOp(EnterAlternateScreen())
	w.writeOp(EnableBracketedPaste())
	w.writeOp(HideCursor())
	require.NoError(t, w.Flush())
	assert.Equal(t, altScreenEnable+pasteEnable+hideCursor, out.String())
}

func TestRawModeTogglesProduceNoBytes(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	w.writeOp(EnterRawMode())
	w.writeOp(ExitRawMode())
	w.writeOp(Noop())
	require.NoError(t, w.Flush())
	assert.Empty(t, out.String())
}
