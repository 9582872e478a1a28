package vtparser

import "github.com/phoenix-tui/termcore/buffer"

// basic16 is the standard ANSI 16-color palette (indices 0-7 normal,
// 8-15 bright), used to resolve SGR 30-37/90-97/40-47/100-107 and the
// 256-color palette's first 16 entries to concrete RGB.
var basic16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func colorFromBasic(idx int) buffer.Color {
	c := basic16[idx%16]
	return buffer.NewColor(c[0], c[1], c[2])
}

// colorFrom256 resolves an xterm 256-color palette index (0-255) to RGB:
// 0-15 the basic palette, 16-231 the 6x6x6 color cube, 232-255 a 24-step
// grayscale ramp.
func colorFrom256(idx int) buffer.Color {
	switch {
	case idx < 16:
		return colorFromBasic(idx)
	case idx < 232:
		idx -= 16
		r := idx / 36
		g := (idx / 6) % 6
		b := idx % 6
		step := func(n int) uint8 {
			if n == 0 {
				return 0
			}
			return uint8(55 + n*40)
		}
		return buffer.NewColor(step(r), step(g), step(b))
	default:
		level := uint8(8 + (idx-232)*10)
		return buffer.NewColor(level, level, level)
	}
}
