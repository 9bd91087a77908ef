package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/remindr/editor"
	"github.com/iw2rmb/remindr/internal/config"
	"github.com/iw2rmb/remindr/richtext"
)

type theme struct {
	text    editor.Style
	heading [4]editor.Style
	title   editor.Style
	code    richtext.Theme

	divider   lipgloss.Style
	focusBar  lipgloss.Style
	tabActive lipgloss.Style
	tab       lipgloss.Style
	status    lipgloss.Style
	errorText lipgloss.Style
	help      lipgloss.Style
	listItem  lipgloss.Style
	listSel   lipgloss.Style
	empty     lipgloss.Style
}

func newTheme(c config.Theme) theme {
	base := editor.DefaultStyle()
	if c.Selection != "" {
		base.Selection = base.Selection.Background(lipgloss.Color(c.Selection))
	}
	if c.Marked != "" {
		base.Marked = base.Marked.Foreground(lipgloss.Color(c.Marked))
	}
	base.Placeholder = base.Placeholder.Italic(true)

	t := theme{
		text: base,
		code: richtext.Theme{CodeBackground: c.CodeBackground, CodeForeground: c.CodeForeground},

		divider:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		focusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		tabActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		listItem:  lipgloss.NewStyle().PaddingLeft(2),
		listSel:   lipgloss.NewStyle().PaddingLeft(1).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("62")).Foreground(lipgloss.Color("230")),
		empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
	if t.code.CodeBackground == "" && t.code.CodeForeground == "" {
		t.code = richtext.DefaultTheme()
	}

	t.title = base
	t.title.Text = base.Text.Bold(true).Foreground(lipgloss.Color("230"))
	colors := [4]string{"", "212", "111", "150"}
	for level := 1; level <= 3; level++ {
		st := base
		st.Text = base.Text.Bold(true).Foreground(lipgloss.Color(colors[level]))
		t.heading[level] = st
	}
	return t
}
