package editor

import (
	"reflect"
	"testing"

	"github.com/iw2rmb/remindr/internal/grapheme"
)

func TestWrapRows(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []visualRow
	}{
		{name: "empty", text: "", width: 4, want: []visualRow{{0, 0}}},
		{name: "no wrap", text: "abcdef", width: 0, want: []visualRow{{0, 6}}},
		{name: "grapheme fallback", text: "abcdef", width: 2, want: []visualRow{{0, 2}, {2, 4}, {4, 6}}},
		{name: "long word", text: "abcdefghij", width: 4, want: []visualRow{{0, 4}, {4, 8}, {8, 10}}},
		{name: "word break", text: "hello world", width: 6, want: []visualRow{{0, 6}, {6, 11}}},
		{name: "newline", text: "ab\ncd", width: 0, want: []visualRow{{0, 3}, {3, 5}}},
		{name: "trailing newline", text: "ab\n", width: 0, want: []visualRow{{0, 3}, {3, 3}}},
		{name: "wide clusters", text: "テテテ", width: 3, want: []visualRow{{0, 1}, {1, 2}, {2, 3}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := wrapRows(grapheme.Layout(tc.text, 4), tc.width)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("rows: got %v, want %v", got, tc.want)
			}
		})
	}
}
