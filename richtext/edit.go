package richtext

import "strings"

// validText replaces invalid UTF-8 sequences so every stored offset stays on
// a scalar boundary.
func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

// splice replaces [start, end) with text and adjusts spans. Every content
// mutation goes through here; callers own selection, mark, history and
// notification. It returns the snapped start and the length of the text
// actually inserted.
func (e *Engine) splice(start, end int, text string) (int, int) {
	text = validText(text)
	start, end = e.snapRange(start, end)
	e.noteSelection()
	e.content = e.content[:start] + text + e.content[end:]
	spans := adjustForDelete(e.spans, start, end)
	spans = adjustForInsert(spans, start, len(text))
	e.spans = normalizeSpans(spans)
	e.version++
	return start, len(text)
}

// commit finishes a committing edit: caret placement, mark cleared, history
// pushed, EventChange emitted.
func (e *Engine) commit(caret int) {
	e.sel = Caret(caret)
	e.clearMark()
	e.pushHistory()
	e.emit(EventChange)
}

// InsertText replaces the selection (if any) with text and leaves the caret
// after the inserted text.
func (e *Engine) InsertText(text string) {
	start, end := e.sel.Normalized()
	if start == end && text == "" {
		return
	}
	at, n := e.splice(start, end, text)
	e.commit(at + n)
}

// PasteText inserts externally supplied clipboard text.
func (e *Engine) PasteText(text string) { e.InsertText(text) }

// DeleteRange removes [start, end) and collapses the caret to start.
// Offsets are clamped and snapped; an empty range is a no-op.
func (e *Engine) DeleteRange(start, end int) {
	start, end = e.snapRange(start, end)
	if start == end {
		return
	}
	at, _ := e.splice(start, end, "")
	e.commit(at)
}

// Backspace deletes the selection, or the character before the caret.
// It reports whether anything was deleted; at offset 0 with an empty
// selection it does nothing.
func (e *Engine) Backspace() bool {
	start, end := e.sel.Normalized()
	if start == end {
		if start == 0 {
			return false
		}
		start = prevCharBoundary(e.content, start)
	}
	at, _ := e.splice(start, end, "")
	e.commit(at)
	e.emit(EventBackspace)
	return true
}

// DeleteForward deletes the selection, or the character after the caret.
// At the end of the buffer with an empty selection it does nothing.
func (e *Engine) DeleteForward() bool {
	start, end := e.sel.Normalized()
	if start == end {
		if end >= len(e.content) {
			return false
		}
		end = nextCharBoundary(e.content, end)
	}
	at, _ := e.splice(start, end, "")
	e.commit(at)
	e.emit(EventDelete)
	return true
}

// TextForRange returns the text in r, independent of selection and marks.
func (e *Engine) TextForRange(r Range) string {
	start, end := e.snapRange(r.Start, r.End)
	return e.content[start:end]
}

// SelectedText returns the normalized selection's text.
func (e *Engine) SelectedText() string {
	start, end := e.sel.Normalized()
	return e.content[start:end]
}

// CopySelectedText returns the selected text for the host clipboard. It
// reports false for an empty selection and never mutates state.
func (e *Engine) CopySelectedText() (string, bool) {
	if e.sel.IsEmpty() {
		return "", false
	}
	return e.SelectedText(), true
}

// CutSelectedText returns the selected text and deletes it.
func (e *Engine) CutSelectedText() (string, bool) {
	s, ok := e.CopySelectedText()
	if !ok {
		return "", false
	}
	start, end := e.sel.Normalized()
	at, _ := e.splice(start, end, "")
	e.commit(at)
	return s, true
}
