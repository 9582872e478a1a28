package vtparser

// state names the DFA's current position in a VT escape sequence.
// Grounded on cliofy-govte's state.go (Ground/Escape/CsiEntry/...), trimmed
// to the states spec.md §4.4 actually names: DCS and SOS/PM/APC passthrough
// are parsed only far enough to be dropped cleanly, since no DCS op is in
// scope.
type state uint8

const (
	stateGround state = iota
	stateEscape
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsPassthrough // consumed and discarded until the next ESC (start of ST)
)

const (
	esc = 0x1B
	bel = 0x07
	can = 0x18
	sub = 0x1A
	st7 = '\\' // 7-bit String Terminator, as ESC '\\'
)

func isCsiParamByte(b byte) bool { return b >= 0x30 && b <= 0x3F } // 0-9 : ; < = > ?
func isIntermediateByte(b byte) bool { return b >= 0x20 && b <= 0x2F }
func isCsiFinalByte(b byte) bool     { return b >= 0x40 && b <= 0x7E }
func isExecutable(b byte) bool       { return b < 0x20 || b == 0x7F }
func isPrintable(b byte) bool        { return b >= 0x20 && b != 0x7F }
