// Package renderop implements the render-op IR and compositor (C5):
// apps/components produce Z-ordered RenderOpIR lists aggregated into a
// RenderPipeline; Paint hoists caret-show requests, sanitizes absolute
// positions, and routes ops straight to the ANSI backend. Compositor.Diff
// separately computes the ops that turn the previous frame into the next.
//
// Grounded on render/internal/domain/service/{diff.go,optimize.go} (the
// diff/optimize service shape) and render/internal/infrastructure/ansi/
// {codes.go,writer.go} (the ANSI constant table and buffered writer), both
// from the teacher.
package renderop

import (
	"github.com/phoenix-tui/termcore/buffer"
	"github.com/phoenix-tui/termcore/coords"
)

// OpKind tags which RenderOpIR variant an Op is — the authoritative
// enumeration from spec.md §6.
type OpKind int

const (
	OpEnterRawMode OpKind = iota
	OpExitRawMode
	OpMoveCursorPositionAbs
	OpMoveCursorPositionRelTo
	OpClearScreen
	OpSetFgColor
	OpSetBgColor
	OpResetColor
	OpApplyColors
	OpMoveCursorToColumn
	OpMoveCursorToNextLine
	OpMoveCursorToPreviousLine
	OpClearCurrentLine
	OpClearToEndOfLine
	OpClearToStartOfLine
	OpPrintStyledText
	OpShowCursor
	OpHideCursor
	OpSaveCursorPosition
	OpRestoreCursorPosition
	OpEnterAlternateScreen
	OpExitAlternateScreen
	OpEnableMouseTracking
	OpDisableMouseTracking
	OpEnableBracketedPaste
	OpDisableBracketedPaste
	OpNoop
	// OpPaintTextWithAttributes is the input-side "app wants styled text"
	// op. Neither the Compositor nor Paint lowers it to
	// OpCompositorPaintText, and the Writer emits no bytes for it.
	OpPaintTextWithAttributes
	// OpCompositorPaintText is output-only: CompositorNoClipTruncPaintTextWithAttributes
	// from spec.md §6 — paint text verbatim, the compositor already clipped it.
	OpCompositorPaintText
)

// ZOrder is the paint order a RenderOps list is stamped with.
type ZOrder int

const (
	ZNormal ZOrder = iota
	ZHigh
	ZCaret
	ZGlass
)

// zOrderPaintSequence is the fixed iteration order paint() uses.
var zOrderPaintSequence = []ZOrder{ZNormal, ZHigh, ZCaret, ZGlass}

// Op is one render-op IR instruction: a tagged union, represented as a
// struct rather than a polymorphic hierarchy so the compositor can dispatch
// on Kind with a plain switch (spec.md §9: "arena-free dynamic dispatch").
type Op struct {
	Kind OpKind

	Pos    Position // OpMoveCursorPositionAbs
	Origin Position // OpMoveCursorPositionRelTo
	Offset Position // OpMoveCursorPositionRelTo

	Color buffer.Color // OpSetFgColor / OpSetBgColor
	Style buffer.Style // OpApplyColors, OpPrintStyledText, OpCompositorPaintText

	Col int // OpMoveCursorToColumn
	N   int // OpMoveCursorToNextLine / OpMoveCursorToPreviousLine

	Text string // OpPrintStyledText / OpCompositorPaintText
}

// Position is a sanitizable (row, col) pair in buffer space, as produced by
// app/component code before compositor clamping.
type Position struct {
	Row coords.RowIndex
	Col coords.ColIndex
}

// RenderOps is an ordered list of Op belonging to one ZOrder.
type RenderOps []Op

// RenderPipeline aggregates RenderOps by ZOrder.
type RenderPipeline map[ZOrder]RenderOps

// NewPipeline returns an empty pipeline.
func NewPipeline() RenderPipeline {
	return make(RenderPipeline)
}

// Add appends ops to the given ZOrder's list.
func (p RenderPipeline) Add(z ZOrder, ops ...Op) {
	p[z] = append(p[z], ops...)
}

func simple(k OpKind) Op { return Op{Kind: k} }

// Constructors for the no-payload ops, for call-site readability.
func EnterRawMode() Op           { return simple(OpEnterRawMode) }
func ExitRawMode() Op            { return simple(OpExitRawMode) }
func ClearScreen() Op            { return simple(OpClearScreen) }
func ResetColor() Op             { return simple(OpResetColor) }
func ClearCurrentLine() Op       { return simple(OpClearCurrentLine) }
func ClearToEndOfLine() Op       { return simple(OpClearToEndOfLine) }
func ClearToStartOfLine() Op     { return simple(OpClearToStartOfLine) }
func ShowCursor() Op             { return simple(OpShowCursor) }
func HideCursor() Op             { return simple(OpHideCursor) }
func SaveCursorPosition() Op     { return simple(OpSaveCursorPosition) }
func RestoreCursorPosition() Op  { return simple(OpRestoreCursorPosition) }
func EnterAlternateScreen() Op   { return simple(OpEnterAlternateScreen) }
func ExitAlternateScreen() Op    { return simple(OpExitAlternateScreen) }
func EnableMouseTracking() Op    { return simple(OpEnableMouseTracking) }
func DisableMouseTracking() Op   { return simple(OpDisableMouseTracking) }
func EnableBracketedPaste() Op   { return simple(OpEnableBracketedPaste) }
func DisableBracketedPaste() Op  { return simple(OpDisableBracketedPaste) }
func Noop() Op                   { return simple(OpNoop) }

func MoveCursorPositionAbs(pos Position) Op {
	return Op{Kind: OpMoveCursorPositionAbs, Pos: pos}
}

func MoveCursorPositionRelTo(origin, offset Position) Op {
	return Op{Kind: OpMoveCursorPositionRelTo, Origin: origin, Offset: offset}
}

func SetFgColor(c buffer.Color) Op { return Op{Kind: OpSetFgColor, Color: c} }
func SetBgColor(c buffer.Color) Op { return Op{Kind: OpSetBgColor, Color: c} }

// ApplyColors emits fg/bg SGR only for whichever of style's colors are set.
func ApplyColors(style buffer.Style) Op { return Op{Kind: OpApplyColors, Style: style} }

func MoveCursorToColumn(col int) Op       { return Op{Kind: OpMoveCursorToColumn, Col: col} }
func MoveCursorToNextLine(n int) Op       { return Op{Kind: OpMoveCursorToNextLine, N: n} }
func MoveCursorToPreviousLine(n int) Op   { return Op{Kind: OpMoveCursorToPreviousLine, N: n} }

func PrintStyledText(text string, style buffer.Style) Op {
	return Op{Kind: OpPrintStyledText, Text: text, Style: style}
}

// CompositorPaintText is the output-only "already clipped, paint verbatim"
// op (spec.md §6's CompositorNoClipTruncPaintTextWithAttributes).
func CompositorPaintText(text string, style buffer.Style) Op {
	return Op{Kind: OpCompositorPaintText, Text: text, Style: style}
}
