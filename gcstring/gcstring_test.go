package gcstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/termcore/coords"
)

func TestFromASCII(t *testing.T) {
	g := From("hello")
	assert.Equal(t, 5, g.Len())
	assert.Equal(t, coords.Width(5), g.DisplayWidth())
	assert.Equal(t, coords.Bytes(5), g.BytesSize())
}

func TestFromEmoji(t *testing.T) {
	g := From("a👋b")
	require.Equal(t, 3, g.Len())
	seg, ok := g.AtLogicalIndex(2)
	require.True(t, ok)
	assert.Equal(t, coords.Width(2), seg.DisplayWidth)
}

// TestSegmentsPartitionText checks segments partition the text with no gaps
// and no overlap, and that the sum of display widths equals the total.
func TestSegmentsPartitionText(t *testing.T) {
	cases := []string{"hello", "a👋b", "Café", "こんにちは", ""}
	for _, s := range cases {
		g := From(s)
		var totalWidth coords.ColWidth
		expectedByte := 0
		for _, seg := range g.Segments() {
			assert.Equal(t, expectedByte, seg.ByteStart.Int(), "segment must start where previous ended: %q", s)
			expectedByte = seg.ByteEnd.Int()
			totalWidth = totalWidth.Add(seg.DisplayWidth)
		}
		assert.Equal(t, len(s), expectedByte, "segments must cover entire text: %q", s)
		assert.Equal(t, g.DisplayWidth(), totalWidth, "sum(segment widths) must equal total: %q", s)
	}
}

func TestStartDisplayColIsCumulative(t *testing.T) {
	g := From("ab👋cd")
	var expected coords.ColWidth
	for _, seg := range g.Segments() {
		assert.Equal(t, coords.ColIndex(expected.Int()), seg.StartDisplayCol)
		expected = expected.Add(seg.DisplayWidth)
	}
}

func TestAtDisplayColCoversWideGrapheme(t *testing.T) {
	g := From("a👋b") // a=col0, 👋=col1-2 (width2), b=col3
	seg, ok := g.AtDisplayCol(coords.Col(1))
	require.True(t, ok)
	assert.Equal(t, 2, seg.LogicalIndex)

	seg2, ok := g.AtDisplayCol(coords.Col(2))
	require.True(t, ok)
	assert.Equal(t, seg.LogicalIndex, seg2.LogicalIndex, "every column of a wide grapheme maps to the same segment")
}

// TestTruncEndToFitProperty is property P3 from spec.md §8.
func TestTruncEndToFitProperty(t *testing.T) {
	cases := []string{"hello world", "a👋b👋c", "こんにちは", "plain ascii text here"}
	for _, s := range cases {
		g := From(s)
		for w := 0; w <= g.DisplayWidth().Int(); w++ {
			truncated := g.TruncEndToFit(coords.Width(w))
			gotWidth := From(truncated).DisplayWidth()
			assert.LessOrEqual(t, gotWidth.Int(), w, "truncated width must not exceed target for %q at %d", s, w)
		}
		// Truncating to the full width returns the string unchanged.
		assert.Equal(t, s, g.TruncEndToFit(g.DisplayWidth()))
	}
}

func TestTruncEndBy(t *testing.T) {
	g := From("hello")
	assert.Equal(t, "hel", g.TruncEndBy(coords.Width(2)))
}

func TestTruncStartBy(t *testing.T) {
	g := From("hello")
	assert.Equal(t, "llo", g.TruncStartBy(coords.Width(2)))
}

func TestTruncEndToFitZeroWidth(t *testing.T) {
	g := From("hello")
	assert.Equal(t, "", g.TruncEndToFit(coords.Width(0)))
}

func TestEmptyString(t *testing.T) {
	g := From("")
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, coords.Width(0), g.DisplayWidth())
	assert.Equal(t, "", g.TruncEndToFit(coords.Width(10)))
}
