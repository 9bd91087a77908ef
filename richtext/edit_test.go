package richtext

import (
	"reflect"
	"testing"
)

func TestEngine_New_CaretAtEnd(t *testing.T) {
	e := New("hello", Options{})
	if got, want := e.Selection(), Caret(5); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if got, want := e.HistoryLen(), 1; got != want {
		t.Fatalf("history=%d, want %d", got, want)
	}
	if e.CanUndo() || e.CanRedo() {
		t.Fatalf("fresh engine must not undo/redo")
	}
}

func TestEngine_InsertText_AppendsAtCaret(t *testing.T) {
	var events []Event
	e := New("ab", Options{OnEvent: func(ev Event) { events = append(events, ev) }})
	before := e.HistoryLen()

	e.InsertText("c")
	if got, want := e.Content(), "abc"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(3); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if got, want := e.HistoryLen(), before+1; got != want {
		t.Fatalf("history=%d, want %d", got, want)
	}
	if len(events) != 1 || events[0].Kind != EventChange || events[0].Content != "abc" {
		t.Fatalf("events=%v, want one change with %q", events, "abc")
	}
}

func TestEngine_InsertText_ReplacesSelection(t *testing.T) {
	e := New("hello", Options{})
	e.SetSelection(Selection{Anchor: 4, Head: 1}) // "ell", reversed

	e.InsertText("i")
	if got, want := e.Content(), "hio"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(2); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestEngine_InsertText_EmptyAtCaret_NoOp(t *testing.T) {
	calls := 0
	e := New("ab", Options{OnEvent: func(Event) { calls++ }})
	v := e.Version()

	e.InsertText("")
	if calls != 0 {
		t.Fatalf("events=%d, want 0", calls)
	}
	if e.Version() != v || e.HistoryLen() != 1 {
		t.Fatalf("no-op insert mutated state")
	}
}

func TestEngine_InsertText_SpanAdjustment(t *testing.T) {
	e := New("", Options{})
	e.Load("abcdef", []Span{
		{Start: 0, End: 2, Style: Bold},   // ends at insertion point: untouched
		{Start: 1, End: 4, Style: Italic}, // contains insertion point: extended
		{Start: 2, End: 4, Style: Code},   // starts at insertion point: shifted
		{Start: 4, End: 6, Style: Underline},
	})
	e.SetSelection(Caret(2))

	e.InsertText("XY")
	if got, want := e.Content(), "abXYcdef"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	want := []Span{
		{Start: 0, End: 2, Style: Bold},
		{Start: 1, End: 6, Style: Italic},
		{Start: 4, End: 6, Style: Code},
		{Start: 6, End: 8, Style: Underline},
	}
	if got := e.Spans(); !reflect.DeepEqual(got, want) {
		t.Fatalf("spans=%v, want %v", got, want)
	}
}

func TestEngine_DeleteRange_ClipsSpanAtEnd(t *testing.T) {
	e := New("", Options{})
	e.Load("hello", []Span{{Start: 0, End: 5, Style: Bold}})

	e.DeleteRange(2, 5)
	if got, want := e.Content(), "he"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Spans(), []Span{{Start: 0, End: 2, Style: Bold}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("spans=%v, want %v", got, want)
	}
	if got, want := e.Selection(), Caret(2); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestEngine_DeleteRange_SpanRules(t *testing.T) {
	cases := []struct {
		name string
		span Span
		want []Span
	}{
		{name: "before", span: Span{Start: 0, End: 2, Style: Bold}, want: []Span{{Start: 0, End: 2, Style: Bold}}},
		{name: "after", span: Span{Start: 6, End: 9, Style: Bold}, want: []Span{{Start: 3, End: 6, Style: Bold}}},
		{name: "contained", span: Span{Start: 3, End: 6, Style: Bold}, want: nil},
		{name: "deletion inside span", span: Span{Start: 1, End: 8, Style: Bold}, want: []Span{{Start: 1, End: 5, Style: Bold}}},
		{name: "overlap at span start", span: Span{Start: 1, End: 4, Style: Bold}, want: []Span{{Start: 1, End: 3, Style: Bold}}},
		{name: "overlap at span end", span: Span{Start: 4, End: 8, Style: Bold}, want: []Span{{Start: 3, End: 5, Style: Bold}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New("", Options{})
			e.Load("0123456789", []Span{tc.span})
			e.DeleteRange(3, 6)
			if got, want := e.Content(), "0126789"; got != want {
				t.Fatalf("content=%q, want %q", got, want)
			}
			if got := e.Spans(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("spans=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestEngine_DeleteRange_ClampsAndSnaps(t *testing.T) {
	e := New("aπb", Options{}) // π is 2 bytes at [1,3)
	e.DeleteRange(2, 100)      // 2 is mid-character, ties snap left
	if got, want := e.Content(), "a"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
}

func TestEngine_Backspace_DeletesPreviousScalar(t *testing.T) {
	var kinds []EventKind
	e := New("aé😀", Options{OnEvent: func(ev Event) { kinds = append(kinds, ev.Kind) }})

	if !e.Backspace() {
		t.Fatalf("expected backspace to delete")
	}
	if got, want := e.Content(), "aé"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(3); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if want := []EventKind{EventChange, EventBackspace}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("events=%v, want %v", kinds, want)
	}
}

func TestEngine_Backspace_EmptyBuffer_NoOp(t *testing.T) {
	calls := 0
	e := New("", Options{OnEvent: func(Event) { calls++ }})

	if e.Backspace() {
		t.Fatalf("expected backspace no-op")
	}
	if e.Content() != "" || e.HistoryLen() != 1 || calls != 0 {
		t.Fatalf("no-op backspace changed state: content=%q history=%d events=%d", e.Content(), e.HistoryLen(), calls)
	}
}

func TestEngine_Backspace_DeletesSelection(t *testing.T) {
	e := New("hello world", Options{})
	e.SetSelection(Selection{Anchor: 5, Head: 11})
	e.Backspace()
	if got, want := e.Content(), "hello"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(5); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestEngine_DeleteForward(t *testing.T) {
	var kinds []EventKind
	e := New("テスト", Options{OnEvent: func(ev Event) { kinds = append(kinds, ev.Kind) }})
	e.SetSelection(Caret(3))

	if !e.DeleteForward() {
		t.Fatalf("expected delete")
	}
	if got, want := e.Content(), "テト"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(3); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if want := []EventKind{EventChange, EventDelete}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("events=%v, want %v", kinds, want)
	}

	e.MoveCaret(End, false)
	if e.DeleteForward() {
		t.Fatalf("expected no-op at end")
	}
}

func TestEngine_RoundTrip_InsertThenBackspace(t *testing.T) {
	texts := []string{"a", "hello world", "πテ😀é", "line\nbreak"}
	for _, text := range texts {
		e := New("", Options{})
		e.InsertText(text)
		for range []rune(text) {
			e.Backspace()
		}
		if e.Content() != "" {
			t.Fatalf("text %q: content=%q, want empty", text, e.Content())
		}
		if got, want := e.Selection(), Caret(0); got != want {
			t.Fatalf("text %q: selection=%v, want %v", text, got, want)
		}
	}
}

func TestEngine_CopyCutPaste(t *testing.T) {
	e := New("hello world", Options{})
	if _, ok := e.CopySelectedText(); ok {
		t.Fatalf("copy on caret must report false")
	}

	e.SetSelection(Selection{Anchor: 11, Head: 6})
	v := e.Version()
	s, ok := e.CopySelectedText()
	if !ok || s != "world" {
		t.Fatalf("copy=%q,%v, want %q,true", s, ok, "world")
	}
	if e.Version() != v {
		t.Fatalf("copy mutated state")
	}

	s, ok = e.CutSelectedText()
	if !ok || s != "world" {
		t.Fatalf("cut=%q,%v, want %q,true", s, ok, "world")
	}
	if got, want := e.Content(), "hello "; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}

	e.MoveCaret(Start, false)
	e.PasteText(s)
	if got, want := e.Content(), "worldhello "; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(5); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestEngine_SetContent_NoChangeEvent(t *testing.T) {
	calls := 0
	e := New("x", Options{OnEvent: func(Event) { calls++ }})
	e.Load("x", []Span{{Start: 0, End: 1, Style: Bold}})

	e.SetContent("reset")
	if calls != 0 {
		t.Fatalf("events=%d, want 0", calls)
	}
	if e.Spans() != nil {
		t.Fatalf("spans=%v, want none", e.Spans())
	}
	if got, want := e.Selection(), Caret(5); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if got, want := e.HistoryLen(), 2; got != want {
		t.Fatalf("history=%d, want %d", got, want)
	}
}

func TestEngine_TextForRange(t *testing.T) {
	e := New("héllo", Options{})
	e.SetSelection(Caret(0))
	if got, want := e.TextForRange(Range{Start: 1, End: 3}), "é"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := e.TextForRange(Range{Start: 6, End: -4}), "héllo"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestEngine_InvalidUTF8_ReplacedOnEntry(t *testing.T) {
	cases := []struct {
		name string
		run  func() *Engine
		want string
	}{
		{name: "new", run: func() *Engine { return New("a\x80", Options{}) }, want: "a\uFFFD"},
		{name: "paste", run: func() *Engine {
			e := New("", Options{})
			e.PasteText("a\x80")
			return e
		}, want: "a\uFFFD"},
		{name: "set content", run: func() *Engine {
			e := New("", Options{})
			e.SetContent("\xffb")
			return e
		}, want: "\uFFFDb"},
		{name: "load", run: func() *Engine {
			e := New("", Options{})
			e.Load("x\xe3\x81", []Span{{Start: 0, End: 1, Style: Bold}})
			return e
		}, want: "x\uFFFD"},
		{name: "compose", run: func() *Engine {
			e := New("", Options{})
			e.ReplaceAndMarkInRange(nil, "\x80", nil)
			return e
		}, want: "\uFFFD"},
	}
	for _, tc := range cases {
		e := tc.run()
		if got := e.Content(); got != tc.want {
			t.Fatalf("%s: content=%q, want %q", tc.name, got, tc.want)
		}
		if got, want := e.Selection(), Caret(len(tc.want)); got != want {
			t.Fatalf("%s: selection=%v, want %v", tc.name, got, want)
		}
	}
}

func TestEngine_InvalidUTF8_BackspaceDeletesOneCharacter(t *testing.T) {
	e := New("", Options{})
	e.PasteText("a\x80")
	if !e.Backspace() {
		t.Fatalf("backspace must delete")
	}
	if got, want := e.Content(), "a"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(1); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	e.MoveCaret(Left, true)
	if got, want := e.Selection(), (Selection{Anchor: 1, Head: 0}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	e = New("xa", Options{})
	e.InsertText("\x80")
	e.Backspace()
	if got, want := e.Content(), "xa"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
}

func TestEngine_CaretUsesSnappedStart(t *testing.T) {
	e := New("aé", Options{})
	// 2 falls inside "é" and snaps left to 1
	e.DeleteRange(2, 3)
	if got, want := e.Content(), "a"; got != want {
		t.Fatalf("content=%q, want %q", got, want)
	}
	if got, want := e.Selection(), Caret(1); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}
