package coords

// ByteLength is a count of raw bytes in an underlying UTF-8 string, kept
// distinct from Length (a count of display columns/cells) so the two are
// never accidentally interchanged when truncating a GCString.
//
// Grounded on original_source's byte_length.rs: that type exists precisely
// to stop "length" from silently meaning three different things (bytes,
// runes, display columns) across a codebase.
type ByteLength int

// Bytes constructs a ByteLength, clamping negative input to 0.
func Bytes(n int) ByteLength {
	if n < 0 {
		n = 0
	}
	return ByteLength(n)
}

// Int returns the underlying int value.
func (b ByteLength) Int() int { return int(b) }

// Add returns the sum of two byte lengths.
func (b ByteLength) Add(other ByteLength) ByteLength {
	return b + other
}
