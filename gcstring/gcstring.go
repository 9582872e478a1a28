// Package gcstring implements a Unicode grapheme-cluster-segmented string:
// GCString owns immutable text plus an ordered sequence of segments, each
// recording a byte range, a 1-based logical index, a display width, and a
// starting display column.
//
// Grounded on the teacher's core/internal/domain/service/unicode_service.go
// two-tier width strategy (fast uniwidth lookup, uniseg grapheme clustering
// fallback only for truly complex Unicode) and on
// render/domain/model/buffer.go's SetString, which walks grapheme clusters
// with uniseg.FirstGraphemeClusterInString the same way Segment construction
// does here.
package gcstring

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"

	"github.com/phoenix-tui/termcore/coords"
)

// Segment describes one grapheme cluster within a GCString.
type Segment struct {
	// ByteStart and ByteEnd form the half-open byte range [start, end) in
	// the underlying text.
	ByteStart, ByteEnd coords.ByteLength
	// LogicalIndex is the 1-based position of this segment among all
	// segments of the string.
	LogicalIndex int
	// DisplayWidth is the number of terminal columns this cluster occupies.
	DisplayWidth coords.ColWidth
	// StartDisplayCol is the column at which this segment begins.
	StartDisplayCol coords.ColIndex
}

// GCString is an immutable Unicode string with precomputed grapheme
// segmentation.
type GCString struct {
	text     string
	segments []Segment
	width    coords.ColWidth
}

// From computes grapheme segments for s using a Unicode grapheme-cluster
// algorithm (uniseg) and a display-width algorithm (uniwidth's fast path,
// falling back to per-rune go-runewidth widths for clusters the fast path
// does not handle — see clusterWidth).
func From(s string) GCString {
	var segments []Segment
	var col coords.ColIndex
	byteOffset := 0
	idx := 1

	state := -1
	rest := s
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := clusterWidth(cluster)

		segments = append(segments, Segment{
			ByteStart:       coords.Bytes(byteOffset),
			ByteEnd:         coords.Bytes(byteOffset + len(cluster)),
			LogicalIndex:    idx,
			DisplayWidth:    coords.Width(w),
			StartDisplayCol: col,
		})

		byteOffset += len(cluster)
		col = col.Add(coords.Width(w))
		idx++
	}

	return GCString{text: s, segments: segments, width: coords.Width(int(col))}
}

// clusterWidth computes the display width of a single grapheme cluster.
func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	if !containsComplexUnicode(cluster) {
		return uniwidth.StringWidth(cluster)
	}
	// Slow path for clusters uniwidth's fast tables don't special-case:
	// ask go-runewidth per rune as an ambiguous-width fallback and take the
	// max so wide/ambiguous combinations aren't under-counted.
	width := 0
	for _, r := range cluster {
		w := runewidth.RuneWidth(r)
		if w > width {
			width = w
		}
	}
	if width == 0 && len([]rune(cluster)) > 1 {
		// A multi-rune cluster (e.g. emoji + ZWJ + emoji) that runewidth
		// treats as all zero-width is still visually one double-wide glyph.
		width = 2
	}
	return width
}

// containsComplexUnicode reports whether s contains constructs that require
// grapheme-aware width handling beyond a simple per-rune table lookup.
func containsComplexUnicode(s string) bool {
	for _, r := range s {
		switch {
		case r == 0x200D: // zero-width joiner
			return true
		case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
			return true
		case r >= 0x1F3FB && r <= 0x1F3FF: // emoji skin-tone modifiers
			return true
		case unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc):
			return true
		}
	}
	return false
}

// Len returns the number of grapheme segments.
func (g GCString) Len() int { return len(g.segments) }

// DisplayWidth returns the total display width across all segments.
func (g GCString) DisplayWidth() coords.ColWidth { return g.width }

// BytesSize returns the byte length of the underlying text.
func (g GCString) BytesSize() coords.ByteLength { return coords.Bytes(len(g.text)) }

// String returns the underlying text.
func (g GCString) String() string { return g.text }

// Segments returns the segment slice (read-only by convention).
func (g GCString) Segments() []Segment { return g.segments }

// AtLogicalIndex returns the segment at the given 1-based logical index.
func (g GCString) AtLogicalIndex(i int) (Segment, bool) {
	if i < 1 || i > len(g.segments) {
		return Segment{}, false
	}
	return g.segments[i-1], true
}

// AtDisplayCol returns the segment covering display column c. Every column
// of a wide grapheme maps to the same segment.
func (g GCString) AtDisplayCol(c coords.ColIndex) (Segment, bool) {
	for _, seg := range g.segments {
		end := seg.StartDisplayCol.Add(seg.DisplayWidth)
		if c.Int() >= seg.StartDisplayCol.Int() && c.Int() < end.Int() {
			return seg, true
		}
	}
	return Segment{}, false
}

// TruncEndToFit returns the longest prefix of the string whose display
// width is <= width. If a wide grapheme would be split by the cut, it is
// dropped and replaced with spaces on the truncated side so the returned
// string's width never exceeds the target but padding keeps column math
// predictable for callers that measure width(result) against the original
// target.
func (g GCString) TruncEndToFit(width coords.ColWidth) string {
	if width.Int() <= 0 || len(g.segments) == 0 {
		return ""
	}

	var sb strings.Builder
	var used coords.ColWidth
	for _, seg := range g.segments {
		if used.Int()+seg.DisplayWidth.Int() > width.Int() {
			// Remaining budget smaller than this cluster: pad with spaces
			// for the leftover columns instead of splitting the grapheme.
			remaining := width.Int() - used.Int()
			for i := 0; i < remaining; i++ {
				sb.WriteByte(' ')
			}
			return sb.String()
		}
		sb.WriteString(g.text[seg.ByteStart.Int():seg.ByteEnd.Int()])
		used = used.Add(seg.DisplayWidth)
	}
	return sb.String()
}

// TruncEndBy returns the string with the last n display columns removed.
func (g GCString) TruncEndBy(n coords.ColWidth) string {
	target := g.width.Sub(n)
	return g.TruncEndToFit(target)
}

// TruncStartBy returns the string with the first n display columns removed.
func (g GCString) TruncStartBy(n coords.ColWidth) string {
	if n.Int() <= 0 {
		return g.text
	}
	var sb strings.Builder
	var skipped coords.ColWidth
	for _, seg := range g.segments {
		if skipped.Int() < n.Int() {
			skipped = skipped.Add(seg.DisplayWidth)
			if skipped.Int() > n.Int() {
				// Splitting a wide grapheme at the start: pad the overrun
				// with spaces so width accounting still lines up.
				overrun := skipped.Int() - n.Int()
				for i := 0; i < overrun; i++ {
					sb.WriteByte(' ')
				}
			}
			continue
		}
		sb.WriteString(g.text[seg.ByteStart.Int():seg.ByteEnd.Int()])
	}
	return sb.String()
}
