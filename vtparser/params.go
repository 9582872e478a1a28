package vtparser

// maxParams bounds the number of parameters a single CSI sequence may carry;
// beyond this the sequence is still dispatched but the shim layer is free to
// ignore the overflow (spec.md §4.4: "ignore flag indicates ... number of
// parameters exceeded the maximum supported length"), grounded on
// cliofy-govte's params.go.
const maxParams = 32

// Params accumulates the semicolon/colon-separated integer parameters of a
// CSI sequence as it is parsed, byte by byte. Each top-level parameter is a
// slice of colon-separated sub-values (used by the 256-color / RGB SGR
// forms, e.g. "38:2:r:g:b").
type Params struct {
	slots     [][]int
	hasDigits bool // whether the current sub-value has seen any digit yet
}

func newParams() *Params {
	return &Params{slots: [][]int{{0}}}
}

func (p *Params) reset() {
	p.slots = [][]int{{0}}
	p.hasDigits = false
}

// digit folds a decimal digit into the sub-value currently being
// accumulated, saturating rather than overflowing.
func (p *Params) digit(d byte) {
	if len(p.slots) > maxParams {
		return
	}
	last := len(p.slots) - 1
	sub := len(p.slots[last]) - 1
	v := p.slots[last][sub]*10 + int(d-'0')
	if v > 0xFFFF {
		v = 0xFFFF
	}
	p.slots[last][sub] = v
	p.hasDigits = true
}

// semicolon closes the current parameter and opens a new one.
func (p *Params) semicolon() {
	if len(p.slots) <= maxParams {
		p.slots = append(p.slots, []int{0})
	}
	p.hasDigits = false
}

// colon closes the current sub-value and opens a new one within the same
// top-level parameter slot.
func (p *Params) colon() {
	last := len(p.slots) - 1
	p.slots[last] = append(p.slots[last], 0)
	p.hasDigits = false
}

// Len returns how many top-level parameters were accumulated.
func (p *Params) Len() int { return len(p.slots) }

// Get returns the i'th top-level parameter's first sub-value, or def if
// absent, explicitly empty (a bare ";" between two semicolons), or zero:
// as in VT convention, a zero count or coordinate means "use the default".
func (p *Params) Get(i int, def int) int {
	if i < 0 || i >= len(p.slots) || p.slots[i][0] == 0 {
		return def
	}
	return p.slots[i][0]
}

// SubLen returns how many colon-separated sub-values parameter i carries.
func (p *Params) SubLen(i int) int {
	if i < 0 || i >= len(p.slots) {
		return 0
	}
	return len(p.slots[i])
}

// Sub returns the j'th sub-value of parameter i, or 0 if out of range.
func (p *Params) Sub(i, j int) int {
	if i < 0 || i >= len(p.slots) {
		return 0
	}
	if j < 0 || j >= len(p.slots[i]) {
		return 0
	}
	return p.slots[i][j]
}

// All returns every top-level parameter's first sub-value as a flat slice,
// used by the shim layer for variadic operations like SGR.
func (p *Params) All() []int {
	out := make([]int, len(p.slots))
	for i := range p.slots {
		out[i] = p.slots[i][0]
	}
	return out
}

// IsEmpty reports whether no parameter at all was supplied (distinguishing
// a bare "CSI H" from "CSI 0H", both of which default row/col to 1).
func (p *Params) IsEmpty() bool {
	return len(p.slots) == 1 && len(p.slots[0]) == 1 && p.slots[0][0] == 0 && !p.hasDigits
}
