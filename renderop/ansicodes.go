package renderop

import "fmt"

// ANSI control sequence building blocks. Grounded on
// render/internal/infrastructure/ansi/codes.go from the teacher, extended
// with the 256-color/RGB and mode-toggle sequences spec.md §6 names.
const (
	csi = "\x1b["
	esc = "\x1b"
)

func sgrReset() string               { return csi + "0m" }
func sgrAttr(code int) string        { return fmt.Sprintf("%s%dm", csi, code) }
func sgrFg256(idx uint8) string      { return fmt.Sprintf("%s38;5;%dm", csi, idx) }
func sgrFgRGB(r, g, b uint8) string  { return fmt.Sprintf("%s38;2;%d;%d;%dm", csi, r, g, b) }
func sgrBg256(idx uint8) string      { return fmt.Sprintf("%s48;5;%dm", csi, idx) }
func sgrBgRGB(r, g, b uint8) string  { return fmt.Sprintf("%s48;2;%d;%d;%dm", csi, r, g, b) }
func sgrResetFg() string             { return csi + "39m" }
func sgrResetBg() string             { return csi + "49m" }

func cursorMoveAbs(row, col int) string { return fmt.Sprintf("%s%d;%dH", csi, row+1, col+1) }
func cursorToColumn(col int) string     { return fmt.Sprintf("%s%dG", csi, col+1) }
func cursorNextLine(n int) string       { return fmt.Sprintf("%s%dE", csi, n) }
func cursorPrevLine(n int) string       { return fmt.Sprintf("%s%dF", csi, n) }

const (
	clearScreen      = csi + "2J" + csi + "H"
	clearCurrentLine = csi + "2K"
	clearToEOL       = csi + "0K"
	clearToSOL       = csi + "1K"
	showCursor       = csi + "?25h"
	hideCursor       = csi + "?25l"
	saveCursor       = csi + "s"
	restoreCursor    = csi + "u"
	altScreenEnable  = csi + "?1049h"
	altScreenDisable = csi + "?1049l"
	mouseEnable      = csi + "?1000h" + csi + "?1006h"
	mouseDisable     = csi + "?1000l" + csi + "?1006l"
	pasteEnable      = csi + "?2004h"
	pasteDisable     = csi + "?2004l"
)
