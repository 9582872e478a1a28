// Package coords provides type-safe coordinate and bounds primitives for
// buffer space (0-based indices, 1-based lengths) and terminal space
// (1-based wire coordinates). The two spaces are never mixed: buffer-space
// values never appear in emitted ANSI sequences, and terminal-space values
// never index arrays directly.
package coords

// BoundsResult is a total, closed result of a bounds check. Every check in
// this package returns one of these instead of a bool so that callers can't
// silently collapse "out of range above" and "out of range below" into the
// same branch.
type BoundsResult int

const (
	// Within means the checked value lies inside the valid range.
	Within BoundsResult = iota
	// Overflowed means the checked value is past the end of the range.
	Overflowed
	// Below means the checked value is before the start of a viewport.
	Below
	// Above means the checked value is past the end of a viewport.
	Above
)

// String returns a human-readable name for the result.
func (b BoundsResult) String() string {
	switch b {
	case Within:
		return "Within"
	case Overflowed:
		return "Overflowed"
	case Below:
		return "Below"
	case Above:
		return "Above"
	default:
		return "Unknown"
	}
}

// Overflows reports whether idx+length would run past the given length limit.
func Overflows(idx Index, length Length, limit Length) BoundsResult {
	if int(idx)+int(length) > int(limit) {
		return Overflowed
	}
	return Within
}

// CheckViewportBounds reports where col lies relative to a viewport that
// starts at start and is width columns wide.
func CheckViewportBounds(col ColIndex, start ColIndex, width ColWidth) BoundsResult {
	if int(col) < int(start) {
		return Below
	}
	if int(col) >= int(start)+int(width) {
		return Above
	}
	return Within
}

// ClampToRange clamps v into [lo, hi] inclusive.
func ClampToRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampToMaxLength clamps a length to a maximum, never producing a negative
// result.
func ClampToMaxLength(length, max Length) Length {
	if int(length) > int(max) {
		return max
	}
	return length
}
