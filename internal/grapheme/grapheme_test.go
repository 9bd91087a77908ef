package grapheme

import "testing"

const family = "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"

func TestSplitAndCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "e\u0301" + family + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "e\u0301" {
		t.Fatalf("split[1]=%q, want %q", got[1], "e\u0301")
	}
	if got[2] != family {
		t.Fatalf("split[2]=%q, want family emoji", got[2])
	}
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want %d", c, 4)
	}
}

func TestLayout_ByteRangesAndWidths(t *testing.T) {
	text := "a" + "e\u0301" + "テ" + family
	got := Layout(text, 4)
	want := []Cluster{
		{Start: 0, End: 1, Text: "a", Width: 1},
		{Start: 1, End: 4, Text: "e\u0301", Width: 1},
		{Start: 4, End: 7, Text: "テ", Width: 2},
		{Start: 7, End: len(text), Text: family, Width: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("clusters=%d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cluster %d=%+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLayout_TabsAndNewlines(t *testing.T) {
	got := Layout("ab\tc\n\td", 4)
	widths := make([]int, len(got))
	for i, c := range got {
		widths[i] = c.Width
	}
	want := []int{1, 1, 2, 1, 0, 4, 1}
	if len(widths) != len(want) {
		t.Fatalf("widths=%v, want %v", widths, want)
	}
	for i := range want {
		if widths[i] != want[i] {
			t.Fatalf("widths=%v, want %v", widths, want)
		}
	}
	if got, want := StringWidth("ab\tc", 4), 5; got != want {
		t.Fatalf("width=%d, want %d", got, want)
	}
}

func TestClassifiers(t *testing.T) {
	if !IsSpace("\t") {
		t.Fatalf("tab should be space")
	}
	if IsSpace("a") || IsSpace("") {
		t.Fatalf("letter and empty should not be space")
	}
	if !IsPunct("!") {
		t.Fatalf("exclamation should be punct")
	}
	if IsPunct("a") {
		t.Fatalf("letter should not be punct")
	}
}
