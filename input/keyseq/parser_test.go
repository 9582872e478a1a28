package keyseq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainCharacterProducesKeyboardEvent(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("a"))
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyCharacter, Char: 'a'}, events[0].Key)
}

func TestControlByteProducesCtrlLetter(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte{0x03}) // Ctrl+C
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyCharacter, Char: 'c', Modifiers: Modifiers{Ctrl: true}}, events[0].Key)
}

func TestNamedControlBytes(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte{0x09, 0x0D, 0x7F})
	require.Len(t, events, 3)
	assert.Equal(t, KeyTab, events[0].Key.Code)
	assert.Equal(t, KeyEnter, events[1].Key.Code)
	assert.Equal(t, KeyBackspace, events[2].Key.Code)
}

func TestArrowKeys(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("\x1b[A\x1b[B\x1b[C\x1b[D"))
	require.Len(t, events, 4)
	assert.Equal(t, KeyUp, events[0].Key.Code)
	assert.Equal(t, KeyDown, events[1].Key.Code)
	assert.Equal(t, KeyRight, events[2].Key.Code)
	assert.Equal(t, KeyLeft, events[3].Key.Code)
}

func TestModifiedArrowKeyDecodesModifierBitfield(t *testing.T) {
	p := New(0)
	// CSI 1;5A == Ctrl+Up: modifier value 5 -> bits (5-1)=4 -> bit2=ctrl.
	events := p.Feed([]byte("\x1b[1;5A"))
	require.Len(t, events, 1)
	assert.Equal(t, KeyUp, events[0].Key.Code)
	assert.Equal(t, Modifiers{Ctrl: true}, events[0].Key.Modifiers)
}

func TestFunctionKeysViaSS3(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("\x1bOP\x1bOQ"))
	require.Len(t, events, 2)
	assert.Equal(t, KeyF1, events[0].Key.Code)
	assert.Equal(t, KeyF2, events[1].Key.Code)
}

func TestTildeFunctionKeys(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("\x1b[3~\x1b[5~"))
	require.Len(t, events, 2)
	assert.Equal(t, KeyDelete, events[0].Key.Code)
	assert.Equal(t, KeyPageUp, events[1].Key.Code)
}

func TestLoneEscResolvedByTimeout(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte{0x1B})
	assert.Empty(t, events, "a lone ESC must be buffered, not emitted immediately")

	events = p.Timeout()
	require.Len(t, events, 1)
	assert.Equal(t, KeyEsc, events[0].Key.Code)
}

func TestEscFollowedByLetterIsAltKey(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("\x1bx"))
	require.Len(t, events, 1)
	assert.Equal(t, KeyEvent{Code: KeyCharacter, Char: 'x', Modifiers: Modifiers{Alt: true}}, events[0].Key)
}

// Scenario 5 (spec.md §8): bracketed paste yields one Paste event and no
// key events, even though the payload contains embedded newlines.
func TestBracketedPasteScenario(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("\x1b[200~hello\nworld\x1b[201~"))
	require.Len(t, events, 1)
	assert.Equal(t, EventPaste, events[0].Kind)
	assert.Equal(t, "hello\nworld", events[0].Paste)
}

func TestBracketedPasteSplitAcrossFeedCalls(t *testing.T) {
	p := New(0)
	var events []Event
	events = append(events, p.Feed([]byte("\x1b[200~par"))...)
	events = append(events, p.Feed([]byte("tial\x1b[20"))...)
	events = append(events, p.Feed([]byte("1~"))...)
	require.Len(t, events, 1)
	assert.Equal(t, "partial", events[0].Paste)
}

func TestBracketedPasteWithEmbeddedEscNotMatchingMarker(t *testing.T) {
	p := New(0)
	// An ESC inside the paste that doesn't turn out to be the close
	// marker must be preserved as literal paste content.
	events := p.Feed([]byte("\x1b[200~a\x1bZb\x1b[201~"))
	require.Len(t, events, 1)
	assert.Equal(t, "a\x1bZb", events[0].Paste)
}

func TestBracketedPasteTruncatesAtMaxBytes(t *testing.T) {
	p := New(8)
	payload := strings.Repeat("x", 100)
	events := p.Feed([]byte("\x1b[200~" + payload))
	require.Len(t, events, 1, "exceeding the bound must truncate and close the paste")
	assert.Equal(t, EventPaste, events[0].Kind)
	assert.Len(t, events[0].Paste, 8)
}

func TestSGRMousePressAndRelease(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("\x1b[<0;10;20M\x1b[<0;10;20m"))
	require.Len(t, events, 2)
	assert.Equal(t, MousePress, events[0].Mouse.Kind)
	assert.Equal(t, MouseLeft, events[0].Mouse.Button)
	assert.Equal(t, 9, events[0].Mouse.Col)
	assert.Equal(t, 19, events[0].Mouse.Row)
	assert.Equal(t, MouseRelease, events[1].Mouse.Kind)
}

func TestSGRMouseWheel(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("\x1b[<64;1;1M"))
	require.Len(t, events, 1)
	assert.Equal(t, MouseScroll, events[0].Mouse.Kind)
	assert.Equal(t, MouseWheelUp, events[0].Mouse.Button)
}

func TestUTF8MultiByteCharacter(t *testing.T) {
	p := New(0)
	events := p.Feed([]byte("héllo"))
	require.Len(t, events, 5)
	assert.Equal(t, 'h', events[0].Key.Char)
	assert.Equal(t, 'é', events[1].Key.Char)
}

// Property P7: the parser never panics, for any byte sequence, even
// malformed CSI/paste/UTF-8 input.
func TestParserIsTotalOverMalformedInput(t *testing.T) {
	inputs := [][]byte{
		{0x1B, '['},
		{0x1B, '[', '<', ';', ';', 'M'},
		{0xC0},
		{0x1B, '[', '2', '0', '0', '~', 0xFF, 0xFE},
		{0x1B, 'O'},
		append([]byte("\x1b["), []byte(strings.Repeat("9", 100))...),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { New(1024).Feed(in) })
	}
}
