package coords

// Length is the common 1-based buffer-space length kind (a count of cells,
// never negative). RowHeight and ColWidth specialize it so heights can't be
// passed where widths are expected.
type Length int

// RowHeight is a count of rows.
type RowHeight int

// ColWidth is a count of columns.
type ColWidth int

// Height constructs a RowHeight, clamping negative input to 0.
func Height(n int) RowHeight {
	if n < 0 {
		n = 0
	}
	return RowHeight(n)
}

// Width constructs a ColWidth, clamping negative input to 0.
func Width(n int) ColWidth {
	if n < 0 {
		n = 0
	}
	return ColWidth(n)
}

// Len constructs a generic Length, clamping negative input to 0.
func Len(n int) Length {
	if n < 0 {
		n = 0
	}
	return Length(n)
}

// Sub returns the saturating difference h - other (never negative).
func (h RowHeight) Sub(other RowHeight) RowHeight {
	d := int(h) - int(other)
	if d < 0 {
		d = 0
	}
	return RowHeight(d)
}

// Sub returns the saturating difference w - other (never negative).
func (w ColWidth) Sub(other ColWidth) ColWidth {
	d := int(w) - int(other)
	if d < 0 {
		d = 0
	}
	return ColWidth(d)
}

// AsLength converts a RowHeight to the generic Length kind. The conversion
// is value-preserving and infallible.
func (h RowHeight) AsLength() Length { return Length(h) }

// AsLength converts a ColWidth to the generic Length kind. The conversion
// is value-preserving and infallible.
func (w ColWidth) AsLength() Length { return Length(w) }

// Int returns the underlying int value.
func (h RowHeight) Int() int { return int(h) }

// Int returns the underlying int value.
func (w ColWidth) Int() int { return int(w) }

// Int returns the underlying int value.
func (l Length) Int() int { return int(l) }
