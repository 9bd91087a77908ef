package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/remindr/internal/grapheme"
)

func (m *Model) renderContent() string {
	st := m.cfg.Style
	text := m.eng.Content()
	if text == "" && m.cfg.Placeholder != "" {
		return m.renderPlaceholder()
	}

	clusters := grapheme.Layout(text, m.cfg.TabWidth)
	rows := wrapRows(clusters, m.cfg.Width)
	highlights := m.eng.BuildHighlights()

	sel := m.eng.Selection()
	selStart, selEnd := sel.Normalized()
	marked, hasMarked := m.eng.MarkedRange()
	head := -1
	if m.focused {
		head = sel.Head
	}

	hl := 0
	styleAt := func(c grapheme.Cluster) lipgloss.Style {
		for hl < len(highlights) && highlights[hl].Range.End <= c.Start {
			hl++
		}
		base := st.Text
		if hl < len(highlights) && highlights[hl].Range.Start <= c.Start {
			base = highlightStyle(st.Text, highlights[hl].Style)
		}
		if hasMarked && c.Start >= marked.Start && c.End <= marked.End {
			base = st.Marked.Inherit(base)
		}
		return base
	}

	out := make([]string, 0, len(rows))
	for ri, row := range rows {
		var sb strings.Builder
		for _, c := range clusters[row.start:row.end] {
			if isNewline(c) {
				if c.Start == head {
					sb.WriteString(st.Cursor.Render(" "))
				}
				continue
			}
			cell := c.Text
			if cell == "\t" {
				cell = strings.Repeat(" ", c.Width)
			}
			switch {
			case c.Start == head:
				sb.WriteString(st.Cursor.Render(cell))
			case c.Start >= selStart && c.End <= selEnd && selStart < selEnd:
				sb.WriteString(st.Selection.Render(cell))
			default:
				sb.WriteString(styleAt(c).Render(cell))
			}
		}
		// Caret after the last character is drawn as a 1-cell placeholder.
		if ri == len(rows)-1 && head == len(text) {
			sb.WriteString(st.Cursor.Render(" "))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderPlaceholder() string {
	st := m.cfg.Style
	ph := m.cfg.Placeholder
	if !m.focused {
		return st.Placeholder.Render(ph)
	}
	cs := grapheme.Split(ph)
	return st.Cursor.Render(cs[0]) + st.Placeholder.Render(strings.Join(cs[1:], ""))
}

// CaretCell returns the visual row and cell column of the caret, for hosts
// positioning popups next to it.
func (m Model) CaretCell() (row, col int) {
	text := m.eng.Content()
	head := m.eng.Selection().Head
	clusters := grapheme.Layout(text, m.cfg.TabWidth)
	rows := wrapRows(clusters, m.cfg.Width)
	for ri, r := range rows {
		col = 0
		for _, c := range clusters[r.start:r.end] {
			if c.Start >= head {
				return ri, col
			}
			col += c.Width
		}
		if ri == len(rows)-1 {
			return ri, col
		}
	}
	return 0, 0
}
