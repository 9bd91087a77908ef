package editor

import (
	"github.com/iw2rmb/remindr/internal/grapheme"
)

// visualRow is a half-open range of cluster indices drawn on one terminal
// row. A trailing newline cluster belongs to the row it ends.
type visualRow struct {
	start int
	end   int
}

func isNewline(c grapheme.Cluster) bool {
	return c.Text == "\n" || c.Text == "\r\n"
}

// wrapRows breaks clusters into rows at newlines and, when width > 0, at
// the last whitespace run that fits. A word longer than width is broken at
// the cluster that overflows. A final newline (or empty input) yields an
// empty trailing row so the caret has somewhere to go.
func wrapRows(cs []grapheme.Cluster, width int) []visualRow {
	var rows []visualRow
	for i := 0; i < len(cs); {
		start := i
		used := 0
		lastBreak := -1
		for i < len(cs) {
			c := cs[i]
			if isNewline(c) {
				i++
				break
			}
			if width > 0 && used > 0 && used+c.Width > width {
				if lastBreak > start && !grapheme.IsSpace(c.Text) {
					i = lastBreak
				}
				break
			}
			used += c.Width
			i++
			if grapheme.IsSpace(c.Text) {
				lastBreak = i
			}
		}
		rows = append(rows, visualRow{start: start, end: i})
	}
	if len(cs) == 0 || isNewline(cs[len(cs)-1]) {
		rows = append(rows, visualRow{start: len(cs), end: len(cs)})
	}
	return rows
}
