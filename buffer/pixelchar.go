// Package buffer implements the offscreen cell-grid double buffer (C3):
// a 2-D grid of PixelChar, cursor state, and the ANSI parser's auxiliary
// state (current SGR style, saved cursor, scroll margins, active
// character set).
//
// Grounded on render/domain/model/buffer.go (grid layout, Get/Set bounds
// checks) and render/domain/value/{style,color}.go (the style/color value
// objects adapted here into Style/Color), both from the teacher.
package buffer

import "fmt"

// Kind tags which variant a PixelChar is.
type Kind int

const (
	// Spacer is an empty, unstyled cell (the default fill value).
	Spacer Kind = iota
	// PlainText holds a styled character.
	PlainText
	// Void is the sentinel occupying the right half of a wide grapheme.
	Void
)

// Color is an RGB terminal color. Grounded on render/domain/value/color.go.
type Color struct {
	R, G, B uint8
	// Set distinguishes "color explicitly chosen" from "default/unset",
	// since render/domain/value.Style used a *Color for the same purpose;
	// a value type with an explicit flag avoids a buffer full of pointers.
	Set bool
}

// NewColor constructs a set Color.
func NewColor(r, g, b uint8) Color { return Color{R: r, G: g, B: b, Set: true} }

// Equal reports whether two colors are the same.
func (c Color) Equal(other Color) bool {
	return c.Set == other.Set && (!c.Set || (c.R == other.R && c.G == other.G && c.B == other.B))
}

// ToANSI256 converts RGB to an approximate ANSI 256-color index using the
// standard 6x6x6 color cube (indices 16-231).
func (c Color) ToANSI256() uint8 {
	r := uint8(float64(c.R) / 255.0 * 5.0)
	g := uint8(float64(c.G) / 255.0 * 5.0)
	b := uint8(float64(c.B) / 255.0 * 5.0)
	return 16 + 36*r + 6*g + b
}

// Style is the SGR attribute set applied to a cell.
type Style struct {
	Fg, Bg                                        Color
	Bold, Dim, Italic, Underline, Blink, Reverse   bool
	Hidden, Strike                                 bool
}

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Fg.Equal(other.Fg) && s.Bg.Equal(other.Bg) &&
		s.Bold == other.Bold && s.Dim == other.Dim && s.Italic == other.Italic &&
		s.Underline == other.Underline && s.Blink == other.Blink &&
		s.Reverse == other.Reverse && s.Hidden == other.Hidden && s.Strike == other.Strike
}

// IsEmpty reports whether the style carries no attributes at all — this is
// what lets the ANSI backend (renderop.Writer) replace ApplyColors of an
// empty style with a plain reset SGR (spec.md §4.5).
func (s Style) IsEmpty() bool {
	return !s.Fg.Set && !s.Bg.Set && !s.Bold && !s.Dim && !s.Italic &&
		!s.Underline && !s.Blink && !s.Reverse && !s.Hidden && !s.Strike
}

// ToSGR renders the style as an SGR parameter sequence body (without the
// leading CSI or trailing 'm'), or "" if empty.
func (s Style) ToSGR() string {
	if s.IsEmpty() {
		return ""
	}
	var codes []int
	add := func(c int) { codes = append(codes, c) }
	if s.Bold {
		add(1)
	}
	if s.Dim {
		add(2)
	}
	if s.Italic {
		add(3)
	}
	if s.Underline {
		add(4)
	}
	if s.Blink {
		add(5)
	}
	if s.Reverse {
		add(7)
	}
	if s.Hidden {
		add(8)
	}
	if s.Strike {
		add(9)
	}
	out := ""
	for i, c := range codes {
		if i > 0 {
			out += ";"
		}
		out += fmt.Sprintf("%d", c)
	}
	if s.Fg.Set {
		if out != "" {
			out += ";"
		}
		out += fmt.Sprintf("38;2;%d;%d;%d", s.Fg.R, s.Fg.G, s.Fg.B)
	}
	if s.Bg.Set {
		if out != "" {
			out += ";"
		}
		out += fmt.Sprintf("48;2;%d;%d;%d", s.Bg.R, s.Bg.G, s.Bg.B)
	}
	return out
}

// PixelChar is a single cell in the offscreen buffer: a tagged union of
// Spacer, PlainText{char, style}, and Void (right half of a wide grapheme).
type PixelChar struct {
	Kind  Kind
	Char  rune
	Style Style
}

// NewSpacer returns an empty, unstyled cell.
func NewSpacer() PixelChar { return PixelChar{Kind: Spacer, Char: ' '} }

// NewPlainText returns a styled character cell.
func NewPlainText(ch rune, style Style) PixelChar {
	return PixelChar{Kind: PlainText, Char: ch, Style: style}
}

// NewVoid returns the sentinel for the right half of a wide grapheme.
func NewVoid() PixelChar { return PixelChar{Kind: Void} }

// Equal reports whether two cells are identical (used for diffing).
func (p PixelChar) Equal(other PixelChar) bool {
	if p.Kind != other.Kind {
		return false
	}
	if p.Kind == PlainText {
		return p.Char == other.Char && p.Style.Equal(other.Style)
	}
	return true
}

// IsEmpty reports whether the cell has no visible content.
func (p PixelChar) IsEmpty() bool {
	return p.Kind == Spacer || (p.Kind == PlainText && p.Char == ' ' && p.Style.IsEmpty())
}
