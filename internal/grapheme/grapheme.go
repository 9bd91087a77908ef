// Package grapheme measures text for terminal rendering: user-perceived
// character clusters with their byte ranges and cell widths.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster of a string. Start and End are byte
// offsets into that string; Width is the number of terminal cells it
// occupies when drawn.
type Cluster struct {
	Start int
	End   int
	Text  string
	Width int
}

// Layout splits text into clusters and assigns cell widths. Tabs advance
// to the next multiple of tabWidth; a newline takes no cells and resets
// the column.
func Layout(text string, tabWidth int) []Cluster {
	if text == "" {
		return nil
	}
	out := make([]Cluster, 0, len(text))
	g := uniseg.NewGraphemes(text)
	col := 0
	for g.Next() {
		start, end := g.Positions()
		c := Cluster{Start: start, End: end, Text: g.Str()}
		switch c.Text {
		case "\n", "\r\n":
			col = 0
		default:
			c.Width = Width(c.Text, col, tabWidth)
			col += c.Width
		}
		out = append(out, c)
	}
	return out
}

// Width returns the cell width of cluster drawn at visual column col.
func Width(cluster string, col, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - col%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		// runewidth reports zero for some emoji sequences uniseg knows.
		w = uniseg.StringWidth(cluster)
	}
	if w < 0 {
		w = 0
	}
	return w
}

// StringWidth returns the total cell width of text laid out from column 0.
func StringWidth(text string, tabWidth int) int {
	n := 0
	for _, c := range Layout(text, tabWidth) {
		n += c.Width
	}
	return n
}

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
