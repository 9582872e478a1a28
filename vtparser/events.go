package vtparser

// EventKind tags what kind of side-channel event an OSC sequence produced.
// These never touch the offscreen buffer directly; they are surfaced to the
// caller (the terminal session / app layer) to act on.
type EventKind int

const (
	// EventTitle carries a new window title (OSC 0 or OSC 2).
	EventTitle EventKind = iota
	// EventHyperlink carries a hyperlink open/close (OSC 8).
	EventHyperlink
	// EventPaletteSet carries an 8-bit palette color assignment (OSC 4).
	EventPaletteSet
)

// Event is emitted alongside buffer mutation for side effects the offscreen
// buffer itself has no business modeling (spec.md §4.4 OSC operations).
type Event struct {
	Kind EventKind

	Title string // EventTitle

	HyperlinkParams string // EventHyperlink: the "id=..." parameter string
	HyperlinkURI    string // EventHyperlink: "" means "close the link"

	PaletteIndex int    // EventPaletteSet
	PaletteSpec  string // EventPaletteSet: raw color spec, e.g. "rgb:11/22/33"
}
