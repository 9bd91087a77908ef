package richtext

import "testing"

func TestUTF16Input_CompositionCommit(t *testing.T) {
	var events []Event
	e := New("", Options{OnEvent: func(ev Event) { events = append(events, ev) }})
	in := NewUTF16Input(e)

	in.ReplaceAndMarkTextInRange(nil, "ｎ", &Range{Start: 0, End: 1})
	if got, want := e.Content(), "ｎ"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, ok := e.MarkedRange(); !ok || got != (Range{Start: 0, End: 3}) {
		t.Fatalf("marked=%v,%v, want {0 3},true", got, ok)
	}
	if got, want := e.Selection(), (Selection{Anchor: 0, Head: 3}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if got, ok := in.MarkedTextRange(); !ok || got != (Range{Start: 0, End: 1}) {
		t.Fatalf("utf16 marked=%v,%v, want {0 1},true", got, ok)
	}
	if got, want := e.HistoryLen(), 1; got != want {
		t.Fatalf("history=%d, want %d", got, want)
	}

	in.ReplaceTextInRange(nil, "ん")
	if got, want := e.Content(), "ん"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if _, ok := e.MarkedRange(); ok {
		t.Fatalf("commit must clear the mark")
	}
	if got, want := e.Selection(), Caret(3); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if got, want := e.HistoryLen(), 2; got != want {
		t.Fatalf("history=%d, want %d", got, want)
	}
	if len(events) != 2 {
		t.Fatalf("events=%d, want 2", len(events))
	}
}

func TestEngine_ReplaceAndMark_ReplacesPreviousComposition(t *testing.T) {
	e := New("ab", Options{})
	e.ReplaceAndMarkInRange(nil, "k", nil)
	e.ReplaceAndMarkInRange(nil, "か", nil)

	if got, want := e.Content(), "abか"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, ok := e.MarkedRange(); !ok || got != (Range{Start: 2, End: 5}) {
		t.Fatalf("marked=%v,%v, want {2 5},true", got, ok)
	}
	if got, want := e.Selection(), Caret(5); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	e.ReplaceAndMarkInRange(nil, "", nil)
	if got, want := e.Content(), "ab"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if _, ok := e.MarkedRange(); ok {
		t.Fatalf("empty composition must clear the mark")
	}
}

func TestEngine_Undo_DiscardsComposition(t *testing.T) {
	e := New("ab", Options{})
	e.ReplaceAndMarkInRange(nil, "x", nil)
	if !e.CanUndo() {
		t.Fatalf("expected composition to be undoable")
	}

	e.Undo()
	if got, want := e.Content(), "ab"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if _, ok := e.MarkedRange(); ok {
		t.Fatalf("undo must clear the mark")
	}
	if e.CanUndo() {
		t.Fatalf("only the composition should have been undone")
	}
}

func TestEngine_ReplaceInRange_ExplicitRange(t *testing.T) {
	e := New("hello world", Options{})
	e.ReplaceInRange(&Range{Start: 6, End: 11}, "there")
	if got, want := e.Content(), "hello there"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(11); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestEngine_ReplaceInRange_Selection(t *testing.T) {
	e := New("hello", Options{})
	e.SetSelection(Selection{Anchor: 0, Head: 1})
	e.ReplaceInRange(nil, "J")
	if got, want := e.Content(), "Jello"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
}

func TestEngine_Unmark(t *testing.T) {
	e := New("", Options{})
	e.ReplaceAndMarkInRange(nil, "abc", nil)
	v := e.Version()
	e.Unmark()
	if _, ok := e.MarkedRange(); ok {
		t.Fatalf("expected no mark")
	}
	if got, want := e.Content(), "abc"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if e.Version() == v {
		t.Fatalf("unmark must bump version")
	}
	if got, want := e.HistoryLen(), 2; got != want {
		t.Fatalf("history=%d, want %d", got, want)
	}
	e.Unmark()
	if got, want := e.HistoryLen(), 2; got != want {
		t.Fatalf("history=%d, want %d", got, want)
	}
}

func TestUTF16Input_Ranges(t *testing.T) {
	e := New("a😀b", Options{})
	in := NewUTF16Input(e)

	text, actual := in.TextForRange(Range{Start: 3, End: 1})
	if text != "😀" || actual != (Range{Start: 1, End: 3}) {
		t.Fatalf("text=%q range=%v, want %q {1 3}", text, actual, "😀")
	}

	// Mid-surrogate start rounds up to the end of the emoji.
	text, actual = in.TextForRange(Range{Start: 2, End: 4})
	if text != "b" || actual != (Range{Start: 3, End: 4}) {
		t.Fatalf("text=%q range=%v, want %q {3 4}", text, actual, "b")
	}

	e.SetSelection(Selection{Anchor: 6, Head: 1})
	r, reversed := in.SelectedTextRange()
	if r != (Range{Start: 1, End: 4}) || !reversed {
		t.Fatalf("selected=%v reversed=%v, want {1 4} true", r, reversed)
	}
}

func TestEngine_ReplaceAndMark_EmptyAtCaret_NoOp(t *testing.T) {
	var events []Event
	e := New("ab", Options{OnEvent: func(ev Event) { events = append(events, ev) }})
	v := e.Version()

	e.ReplaceAndMarkInRange(nil, "", nil)
	if e.Version() != v {
		t.Fatalf("version changed: %d -> %d", v, e.Version())
	}
	if len(events) != 0 {
		t.Fatalf("events=%v, want none", events)
	}
	if _, ok := e.MarkedRange(); ok {
		t.Fatalf("no-op must not mark")
	}
}
