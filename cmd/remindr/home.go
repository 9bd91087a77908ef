package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/remindr/store"
)

type (
	openDocMsg struct {
		id    int64
		title string
	}
	newDocMsg    struct{}
	deleteDocMsg struct{ id int64 }
)

// homeScreen lists documents.
type homeScreen struct {
	docs    []store.Summary
	cursor  int
	loading bool
	keys    homeKeyMap
	theme   theme
}

func newHomeScreen(t theme) homeScreen {
	return homeScreen{keys: defaultHomeKeyMap(), theme: t, loading: true}
}

func (h homeScreen) setDocs(docs []store.Summary) homeScreen {
	h.docs = docs
	h.loading = false
	if h.cursor >= len(docs) {
		h.cursor = len(docs) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
	return h
}

func (h homeScreen) selected() (store.Summary, bool) {
	if h.cursor < 0 || h.cursor >= len(h.docs) {
		return store.Summary{}, false
	}
	return h.docs[h.cursor], true
}

func (h homeScreen) Update(msg tea.KeyMsg) (homeScreen, tea.Cmd) {
	switch {
	case key.Matches(msg, h.keys.Quit):
		return h, tea.Quit
	case key.Matches(msg, h.keys.Up):
		if h.cursor > 0 {
			h.cursor--
		}
	case key.Matches(msg, h.keys.Down):
		if h.cursor < len(h.docs)-1 {
			h.cursor++
		}
	case key.Matches(msg, h.keys.New):
		return h, func() tea.Msg { return newDocMsg{} }
	case key.Matches(msg, h.keys.Open):
		if d, ok := h.selected(); ok {
			return h, func() tea.Msg { return openDocMsg{id: d.ID, title: d.Title} }
		}
	case key.Matches(msg, h.keys.Delete):
		if d, ok := h.selected(); ok {
			return h, func() tea.Msg { return deleteDocMsg{id: d.ID} }
		}
	}
	return h, nil
}

func (h homeScreen) View(height int) string {
	var sb strings.Builder
	switch {
	case h.loading:
		sb.WriteString(h.theme.empty.Render("  Loading documents…"))
	case len(h.docs) == 0:
		sb.WriteString(h.theme.empty.Render("  No documents yet. Press n to create one."))
	default:
		start := 0
		if height > 0 && h.cursor >= height {
			start = h.cursor - height + 1
		}
		for i := start; i < len(h.docs); i++ {
			if height > 0 && i-start >= height {
				break
			}
			d := h.docs[i]
			line := displayTitle(d.Title)
			if !d.UpdatedAt.IsZero() {
				line += h.theme.help.Render(fmt.Sprintf("  %s", d.UpdatedAt.Format("Jan 2 15:04")))
			}
			if i == h.cursor {
				sb.WriteString(h.theme.listSel.Render(line))
			} else {
				sb.WriteString(h.theme.listItem.Render(line))
			}
			if i < len(h.docs)-1 {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func (h homeScreen) help() string {
	return h.theme.help.Render("enter open · n new · d delete · q quit")
}
