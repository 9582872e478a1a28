package buffer

import "github.com/charmbracelet/lipgloss"

// RenderWith renders text with this style via lipgloss rather than this
// package's own ToSGR encoder. Used by the compositor's debug dump
// (renderop.Compositor.DebugDump), where a human-readable terminal
// preview matters more than byte-for-byte control over the emitted SGR
// sequence. The offscreen buffer and the real ANSI backend never use
// this path: Style.ToSGR stays the source of truth for what actually
// gets sent to a terminal.
func (s Style) RenderWith(text string) string {
	ls := lipgloss.NewStyle()
	if s.Fg.Set {
		ls = ls.Foreground(lipgloss.Color(rgbHex(s.Fg)))
	}
	if s.Bg.Set {
		ls = ls.Background(lipgloss.Color(rgbHex(s.Bg)))
	}
	if s.Bold {
		ls = ls.Bold(true)
	}
	if s.Dim {
		ls = ls.Faint(true)
	}
	if s.Italic {
		ls = ls.Italic(true)
	}
	if s.Underline {
		ls = ls.Underline(true)
	}
	if s.Blink {
		ls = ls.Blink(true)
	}
	if s.Reverse {
		ls = ls.Reverse(true)
	}
	if s.Strike {
		ls = ls.Strikethrough(true)
	}
	return ls.Render(text)
}

func rgbHex(c Color) string {
	const hexDigits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	put := func(i int, v uint8) {
		b[i] = hexDigits[v>>4]
		b[i+1] = hexDigits[v&0xF]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return string(b)
}
