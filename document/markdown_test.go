package document

import (
	"testing"

	"github.com/iw2rmb/remindr/richtext"
)

func TestMarkdown_Document(t *testing.T) {
	d := &Document{
		Title: "Groceries",
		Nodes: []Node{
			NewHeading("Today", 2),
			NewText("buy milk", []richtext.Span{{Start: 4, End: 8, Style: richtext.Bold}}),
			NewDivider(),
		},
	}
	want := "# Groceries\n\n### Today\n\nbuy **milk**\n\n---\n"
	if got := Markdown(d); got != want {
		t.Fatalf("markdown: got %q, want %q", got, want)
	}
}

func TestNodeMarkdown_Styles(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		spans []richtext.Span
		want  string
	}{
		{name: "plain", text: "abc", want: "abc"},
		{name: "code", text: "run go", spans: []richtext.Span{{Start: 4, End: 6, Style: richtext.Code}}, want: "run `go`"},
		{
			name:  "nested",
			text:  "abcd",
			spans: []richtext.Span{{Start: 0, End: 4, Style: richtext.Bold}, {Start: 0, End: 4, Style: richtext.Italic}},
			want:  "***abcd***",
		},
		{name: "underline", text: "u", spans: []richtext.Span{{Start: 0, End: 1, Style: richtext.Underline}}, want: "<u>u</u>"},
		{name: "strike keeps spaces outside", text: "a b ", spans: []richtext.Span{{Start: 1, End: 4, Style: richtext.Strikethrough}}, want: "a ~~b~~ "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NodeMarkdown(NewText(tc.text, tc.spans)); got != tc.want {
				t.Fatalf("markdown: got %q, want %q", got, tc.want)
			}
		})
	}
}
