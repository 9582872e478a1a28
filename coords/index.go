package coords

// Index is the common 0-based buffer-space index kind. RowIndex and
// ColIndex are distinct types built on top of it so that a row can never be
// passed where a column is expected (and vice versa) without an explicit
// conversion.
type Index int

// RowIndex is a 0-based row position in buffer space.
type RowIndex int

// ColIndex is a 0-based column position in buffer space.
type ColIndex int

// Row constructs a RowIndex, clamping negative input to 0.
func Row(n int) RowIndex {
	if n < 0 {
		n = 0
	}
	return RowIndex(n)
}

// Col constructs a ColIndex, clamping negative input to 0.
func Col(n int) ColIndex {
	if n < 0 {
		n = 0
	}
	return ColIndex(n)
}

// Idx constructs a generic Index, clamping negative input to 0.
func Idx(n int) Index {
	if n < 0 {
		n = 0
	}
	return Index(n)
}

// Add returns row shifted down by the given height.
func (r RowIndex) Add(h RowHeight) RowIndex {
	return RowIndex(int(r) + int(h))
}

// Sub returns the saturating (never negative) row distance between r and
// other: r - other.
func (r RowIndex) Sub(other RowIndex) RowHeight {
	d := int(r) - int(other)
	if d < 0 {
		d = 0
	}
	return RowHeight(d)
}

// Add returns col shifted right by the given width.
func (c ColIndex) Add(w ColWidth) ColIndex {
	return ColIndex(int(c) + int(w))
}

// Sub returns the saturating (never negative) column distance between c and
// other: c - other.
func (c ColIndex) Sub(other ColIndex) ColWidth {
	d := int(c) - int(other)
	if d < 0 {
		d = 0
	}
	return ColWidth(d)
}

// Int returns the underlying 0-based int value.
func (r RowIndex) Int() int { return int(r) }

// Int returns the underlying 0-based int value.
func (c ColIndex) Int() int { return int(c) }
