package coords

// TermRow is a 1-based row coordinate as it appears on the wire in ANSI
// sequences (CUP, DECSTBM, DSR responses). It is never zero: the zero value
// of this type is invalid and constructors normalize it to 1.
type TermRow uint16

// TermCol is a 1-based column coordinate as it appears on the wire.
type TermCol uint16

// TermRowFrom constructs a TermRow from a raw 1-based value, clamping
// anything less than 1 up to 1 (stands in for NonZeroU16 validation).
func TermRowFrom(n int) TermRow {
	if n < 1 {
		n = 1
	}
	return TermRow(n)
}

// TermColFrom constructs a TermCol from a raw 1-based value, clamping
// anything less than 1 up to 1.
func TermColFrom(n int) TermCol {
	if n < 1 {
		n = 1
	}
	return TermCol(n)
}

// RowFromZeroBased converts a 0-based RowIndex to 1-based terminal space.
// Infallible: RowIndex is never negative, so the result is always >= 1.
func RowFromZeroBased(r RowIndex) TermRow {
	return TermRow(int(r) + 1)
}

// ColFromZeroBased converts a 0-based ColIndex to 1-based terminal space.
func ColFromZeroBased(c ColIndex) TermCol {
	return TermCol(int(c) + 1)
}

// ToZeroBased converts a terminal-space row back to buffer space, saturating
// at 0 (a TermRow of 0 is already normalized to 1 by the constructors, so
// this only matters for values built by direct casts).
func (t TermRow) ToZeroBased() RowIndex {
	if t == 0 {
		return 0
	}
	return RowIndex(int(t) - 1)
}

// ToZeroBased converts a terminal-space column back to buffer space.
func (t TermCol) ToZeroBased() ColIndex {
	if t == 0 {
		return 0
	}
	return ColIndex(int(t) - 1)
}

// Int returns the underlying 1-based int value.
func (t TermRow) Int() int { return int(t) }

// Int returns the underlying 1-based int value.
func (t TermCol) Int() int { return int(t) }
