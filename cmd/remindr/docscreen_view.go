package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/remindr/session"
)

// layout renders the scrollable body and records where each block starts.
// Index 0 of tops is the title; block i starts at tops[i+1].
func (s docScreen) layout() (string, []int) {
	var lines []string
	tops := make([]int, 0, len(s.blocks)+1)

	add := func(view string, focused bool) {
		tops = append(tops, len(lines))
		mark := "  "
		if focused {
			mark = s.theme.focusBar.Render("▌") + " "
		}
		for _, l := range strings.Split(view, "\n") {
			lines = append(lines, mark+l)
		}
	}

	add(s.title.View(), s.focus == titleFocus)
	lines = append(lines, "")

	for i, b := range s.blocks {
		focused := i == s.focus
		if b.editable() {
			add(b.field.View(), focused)
			continue
		}
		w := s.fieldWidth()
		if w <= 0 {
			w = 3
		}
		rule := strings.Repeat("─", w)
		if focused {
			add(s.theme.focusBar.Render(rule), true)
		} else {
			add(s.theme.divider.Render(rule), false)
		}
	}
	if len(s.blocks) == 0 {
		lines = append(lines, "  "+s.theme.empty.Render("Press enter in the title to start writing"))
	}
	return strings.Join(lines, "\n"), tops
}

func (s *docScreen) ensureFocusVisible() {
	if s.preview || s.vp.Height <= 0 {
		return
	}
	content, tops := s.layout()
	s.vp.SetContent(content)

	idx := s.focus + 1
	if idx < 0 || idx >= len(tops) {
		return
	}
	top := tops[idx]
	bottom := lipgloss.Height(content)
	if idx+1 < len(tops) {
		bottom = tops[idx+1]
	}
	row, _ := s.caretCell()
	caret := top + row
	switch {
	case caret < s.vp.YOffset:
		s.vp.SetYOffset(caret)
	case caret >= s.vp.YOffset+s.vp.Height:
		s.vp.SetYOffset(caret - s.vp.Height + 1)
	case bottom-top <= s.vp.Height && bottom > s.vp.YOffset+s.vp.Height:
		s.vp.SetYOffset(bottom - s.vp.Height)
	}
}

func (s docScreen) caretCell() (row, col int) {
	switch {
	case s.focus == titleFocus:
		return s.title.CaretCell()
	case s.focus >= 0 && s.focus < len(s.blocks) && s.blocks[s.focus].editable():
		return s.blocks[s.focus].field.CaretCell()
	}
	return 0, 0
}

func (s docScreen) View() string {
	if s.preview {
		return s.previewVP.View()
	}
	content, tops := s.layout()
	vp := s.vp
	vp.SetContent(content)
	body := vp.View()

	if s.menu.Visible() {
		idx := s.focus + 1
		if idx >= 0 && idx < len(tops) {
			row, col := s.caretCell()
			y := tops[idx] + row - vp.YOffset
			body = s.menu.Overlay(body, gutter+col, y, vp.Width, vp.Height)
		}
	}
	return body
}

func (s docScreen) statusLine() string {
	if s.err != nil {
		return s.theme.errorText.Render("error: " + s.err.Error())
	}
	state := "saved"
	if s.sess != nil {
		if s.sess.Persistence() == session.Pending {
			state = "saving…"
		} else if s.sess.Dirty() {
			state = "edited"
		}
	}
	help := "esc documents · ctrl+k turn into · ctrl+p preview · ctrl+w close · ctrl+q quit"
	if s.preview {
		help = "ctrl+p/esc back to editing"
	}
	return s.theme.status.Render(state) + "  " + s.theme.help.Render(help)
}
