package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/remindr/richtext"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.eng == nil {
		return m, nil
	}
	// Edits the host made directly on the engine are not reported.
	m.sink.changed = false
	defer m.flushChange()

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.eng.PasteText(normalizeNewlines(string(msg.Runes)))
		}
		return m, nil
	}

	km := m.cfg.KeyMap
	e := m.eng
	ro := m.cfg.ReadOnly

	sel := e.Selection()
	edge := Signal{
		Empty:   e.Len() == 0,
		AtStart: sel == richtext.Caret(0),
		AtEnd:   sel == richtext.Caret(e.Len()),
	}

	switch {
	case key.Matches(msg, km.Left):
		e.MoveCaret(richtext.Left, false)
	case key.Matches(msg, km.Right):
		e.MoveCaret(richtext.Right, false)
	case key.Matches(msg, km.ShiftLeft):
		e.MoveCaret(richtext.Left, true)
	case key.Matches(msg, km.ShiftRight):
		e.MoveCaret(richtext.Right, true)
	case key.Matches(msg, km.WordLeft):
		e.MoveCaret(richtext.WordLeft, false)
	case key.Matches(msg, km.WordRight):
		e.MoveCaret(richtext.WordRight, false)
	case key.Matches(msg, km.ShiftWordLeft):
		e.MoveCaret(richtext.WordLeft, true)
	case key.Matches(msg, km.ShiftWordRight):
		e.MoveCaret(richtext.WordRight, true)
	case key.Matches(msg, km.Home):
		e.MoveCaret(richtext.Start, false)
	case key.Matches(msg, km.End):
		e.MoveCaret(richtext.End, false)
	case key.Matches(msg, km.ShiftHome):
		e.MoveCaret(richtext.Start, true)
	case key.Matches(msg, km.ShiftEnd):
		e.MoveCaret(richtext.End, true)
	case key.Matches(msg, km.SelectAll):
		e.SelectAll()

	case key.Matches(msg, km.Up):
		edge.Kind = SignalUp
		m.signal(edge)
	case key.Matches(msg, km.Down):
		edge.Kind = SignalDown
		m.signal(edge)

	case key.Matches(msg, km.Backspace):
		if !ro {
			e.Backspace()
		}
		m.flushChange()
		edge.Kind = SignalBackspace
		m.signal(edge)
	case key.Matches(msg, km.Delete):
		if !ro {
			e.DeleteForward()
		}
		m.flushChange()
		edge.Kind = SignalDelete
		m.signal(edge)
	case key.Matches(msg, km.Newline):
		if !ro {
			e.InsertText("\n")
		}
	case key.Matches(msg, km.Enter):
		e.Unmark()
		edge.Kind = SignalEnter
		m.signal(edge)
	case key.Matches(msg, km.Tab):
		if m.cfg.TabSpaces > 0 {
			if !ro {
				e.InsertText(strings.Repeat(" ", m.cfg.TabSpaces))
			}
			return m, nil
		}
		edge.Kind = SignalTab
		m.signal(edge)

	case key.Matches(msg, km.Undo):
		if !ro {
			_ = e.Undo()
		}
	case key.Matches(msg, km.Redo):
		if !ro {
			_ = e.Redo()
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if !ro {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		if !ro {
			m.pasteClipboard()
		}

	case key.Matches(msg, km.Bold):
		m.toggleStyle(richtext.Bold)
	case key.Matches(msg, km.Italic):
		m.toggleStyle(richtext.Italic)
	case key.Matches(msg, km.Underline):
		m.toggleStyle(richtext.Underline)
	case key.Matches(msg, km.Strikethrough):
		m.toggleStyle(richtext.Strikethrough)
	case key.Matches(msg, km.Code):
		m.toggleStyle(richtext.Code)

	case msg.Type == tea.KeySpace:
		if !ro {
			e.InsertText(" ")
		}
		m.flushChange()
		edge.Kind = SignalSpace
		m.signal(edge)

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			if ro {
				return m, nil
			}
			text := string(msg.Runes)
			e.InsertText(text)
			switch text {
			case "/":
				m.flushChange()
				edge.Kind = SignalSlash
				m.signal(edge)
			case " ":
				m.flushChange()
				edge.Kind = SignalSpace
				m.signal(edge)
			}
		}
	}

	return m, nil
}

func (m Model) toggleStyle(s richtext.Style) {
	if m.cfg.ReadOnly || m.eng.Selection().IsEmpty() {
		return
	}
	m.eng.ApplyStyle(s)
	// Styles are persisted with the content, so the host hears about them.
	m.sink.changed = true
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, ok := m.eng.CopySelectedText()
	if !ok {
		return
	}
	_ = m.cfg.Clipboard.WriteText(s)
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, ok := m.eng.CopySelectedText()
	if !ok {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		// Keep the text when it could not be handed to the clipboard.
		return
	}
	m.eng.CutSelectedText()
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.eng.PasteText(normalizeNewlines(s))
}

// Normalize newlines from external sources.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
