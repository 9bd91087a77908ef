package editor

import (
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/remindr/richtext"
)

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) ReadText() (string, error) { return c.s, c.err }
func (c *memClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.s = s
	return nil
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.SetCaret(0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(runes("X"))
	if got := m.Value(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.Engine().Selection(); got != richtext.Caret(2) {
		t.Fatalf("caret after insert: got %v, want %v", got, richtext.Caret(2))
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Value(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.Value(); got != "a" {
		t.Fatalf("text after delete: got %q, want %q", got, "a")
	}
}

func TestUpdate_WordMovesAndSelection(t *testing.T) {
	m := New(Config{Text: "hello big world"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if got := m.Engine().Selection(); got != richtext.Caret(10) {
		t.Fatalf("caret after word left: got %v, want %v", got, richtext.Caret(10))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlShiftLeft})
	if got, want := m.Engine().Selection(), (richtext.Selection{Anchor: 10, Head: 6}); got != want {
		t.Fatalf("selection after shift word left: got %v, want %v", got, want)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if got, want := m.Engine().Selection(), (richtext.Selection{Anchor: 0, Head: 15}); got != want {
		t.Fatalf("selection after select all: got %v, want %v", got, want)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if got := m.Engine().Selection(); got != richtext.Caret(0) {
		t.Fatalf("caret after home: got %v, want %v", got, richtext.Caret(0))
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	m := New(Config{Text: "ab", ReadOnly: true})
	m = m.SetCaret(0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Engine().Selection(); got != richtext.Caret(1) {
		t.Fatalf("caret after move: got %v, want %v", got, richtext.Caret(1))
	}
	m, _ = m.Update(runes("X"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if got := m.Value(); got != "ab" {
		t.Fatalf("text in read-only: got %q, want %q", got, "ab")
	}
	if got := m.Spans(); got != nil {
		t.Fatalf("spans in read-only: got %v, want none", got)
	}
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.Blur()
	m, _ = m.Update(runes("X"))
	if got := m.Value(); got != "ab" {
		t.Fatalf("text while blurred: got %q, want %q", got, "ab")
	}
}

func TestUpdate_UndoRedo(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(runes("a"))
	m, _ = m.Update(runes("b"))
	if got := m.Value(); got != "ab" {
		t.Fatalf("text after typing: got %q, want %q", got, "ab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.Value(); got != "a" {
		t.Fatalf("text after undo: got %q, want %q", got, "a")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.Value(); got != "ab" {
		t.Fatalf("text after redo: got %q, want %q", got, "ab")
	}
}

func TestUpdate_StyleToggles(t *testing.T) {
	m := New(Config{Text: "hello"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i"), Alt: true})
	want := []richtext.Span{
		{Start: 0, End: 5, Style: richtext.Bold},
		{Start: 0, End: 5, Style: richtext.Italic},
	}
	if got := m.Spans(); !reflect.DeepEqual(got, want) {
		t.Fatalf("spans: got %v, want %v", got, want)
	}
	if got := m.Value(); got != "hello" {
		t.Fatalf("alt+i must not insert text: got %q", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	want = want[1:]
	if got := m.Spans(); !reflect.DeepEqual(got, want) {
		t.Fatalf("spans after second toggle: got %v, want %v", got, want)
	}
}

func TestUpdate_CopyCutPaste(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{Text: "hello", Clipboard: cb})
	m = m.SetCaret(0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := cb.s; got != "he" {
		t.Fatalf("clipboard after copy: got %q, want %q", got, "he")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.Value(); got != "llo" {
		t.Fatalf("text after cut: got %q, want %q", got, "llo")
	}
	if got := m.Engine().Selection(); got != richtext.Caret(0) {
		t.Fatalf("caret after cut: got %v, want %v", got, richtext.Caret(0))
	}

	cb.s = "he\r\n"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.Value(); got != "he\nllo" {
		t.Fatalf("text after paste: got %q, want %q", got, "he\nllo")
	}
}

func TestUpdate_CutKeepsTextOnClipboardError(t *testing.T) {
	cb := &memClipboard{err: errors.New("no clipboard")}
	m := New(Config{Text: "hello", Clipboard: cb})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.Value(); got != "hello" {
		t.Fatalf("text after failed cut: got %q, want %q", got, "hello")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.Value(); got != "hello" {
		t.Fatalf("text after failed paste: got %q, want %q", got, "hello")
	}
}

func TestUpdate_BracketedPasteInsertsLiterally(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/x\r\ny"), Paste: true})
	if got := m.Value(); got != "/x\ny" {
		t.Fatalf("text after paste: got %q, want %q", got, "/x\ny")
	}
}

func TestUpdate_TabSpaces(t *testing.T) {
	var signals []Signal
	m := New(Config{Text: "", TabSpaces: 2, OnSignal: func(s Signal) { signals = append(signals, s) }})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Value(); got != "  " {
		t.Fatalf("text after tab: got %q, want %q", got, "  ")
	}
	if len(signals) != 0 {
		t.Fatalf("signals: got %v, want none", signals)
	}
}

func TestUpdate_NewlineBinding(t *testing.T) {
	m := New(Config{Text: "ab"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if got := m.Value(); got != "ab\n" {
		t.Fatalf("text after alt+enter: got %q, want %q", got, "ab\n")
	}
}
