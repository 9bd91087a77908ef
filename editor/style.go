package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/remindr/richtext"
)

// Style controls the editor's rendering.
type Style struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style

	// Marked decorates uncommitted input-method text.
	Marked lipgloss.Style

	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuDetail   lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Marked:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("60")),

		MenuItem:     lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		MenuSelected: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")),
		MenuDetail:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// highlightStyle layers engine highlight attributes over base.
func highlightStyle(base lipgloss.Style, h richtext.HighlightStyle) lipgloss.Style {
	st := base
	if h.FontWeight == richtext.WeightBold {
		st = st.Bold(true)
	}
	if h.FontStyle == richtext.FontStyleItalic {
		st = st.Italic(true)
	}
	if h.Underline {
		st = st.Underline(true)
	}
	if h.Strikethrough {
		st = st.Strikethrough(true)
	}
	if h.Background != "" {
		st = st.Background(lipgloss.Color(h.Background))
	}
	if h.Foreground != "" {
		st = st.Foreground(lipgloss.Color(h.Foreground))
	}
	return st
}
