package richtext

import (
	"unicode"
	"unicode/utf8"
)

// MoveCaret moves the head in dir. Without extend the selection collapses:
// Left/Right on a non-empty selection land on its near edge instead of
// stepping, while word moves and Start/End always jump from the head.
// Navigation is not recorded in history.
func (e *Engine) MoveCaret(dir Direction, extend bool) {
	head := e.sel.Head
	var next int

	switch dir {
	case Left:
		if !extend && !e.sel.IsEmpty() {
			start, _ := e.sel.Normalized()
			e.setSelection(Caret(start))
			return
		}
		next = prevCharBoundary(e.content, head)
	case Right:
		if !extend && !e.sel.IsEmpty() {
			_, end := e.sel.Normalized()
			e.setSelection(Caret(end))
			return
		}
		next = nextCharBoundary(e.content, head)
	case WordLeft:
		next = prevWordBoundary(e.content, head)
	case WordRight:
		next = nextWordBoundary(e.content, head)
	case Start:
		next = 0
	case End:
		next = len(e.content)
	default:
		return
	}

	if extend {
		e.setSelection(Selection{Anchor: e.sel.Anchor, Head: next})
		return
	}
	e.setSelection(Caret(next))
}

// Word boundary rules:
// - skip the whitespace run in the move direction
// - then skip the following non-whitespace run
func prevWordBoundary(text string, off int) int {
	i := clampInt(off, 0, len(text))
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		if !unicode.IsSpace(r) {
			break
		}
		i -= size
	}
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:i])
		if unicode.IsSpace(r) {
			break
		}
		i -= size
	}
	return i
}

func nextWordBoundary(text string, off int) int {
	i := clampInt(off, 0, len(text))
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordBoundsAt returns the run of letters, digits and underscores around
// off. Outside a word it returns an empty range at off.
func (e *Engine) WordBoundsAt(off int) (start, end int) {
	off = e.snap(off)
	start, end = off, off
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(e.content[:start])
		if !isWordRune(r) {
			break
		}
		start -= size
	}
	for end < len(e.content) {
		r, size := utf8.DecodeRuneInString(e.content[end:])
		if !isWordRune(r) {
			break
		}
		end += size
	}
	return start, end
}

// SelectWordAt selects the word around off (double-click behavior).
func (e *Engine) SelectWordAt(off int) {
	start, end := e.WordBoundsAt(off)
	e.setSelection(Selection{Anchor: start, Head: end})
}
