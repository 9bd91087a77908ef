package richtext

type snapshot struct {
	content string
	spans   []Span
	sel     Selection
}

// history is a linear log of snapshots with a cursor at the current entry.
type history struct {
	entries []snapshot
	index   int
}

func (h *history) reset(s snapshot) {
	h.entries = []snapshot{s}
	h.index = 0
}

func (e *Engine) snapshot() snapshot {
	return snapshot{
		content: e.content,
		spans:   e.Spans(),
		sel:     e.sel,
	}
}

func (e *Engine) restore(s snapshot) {
	e.content = s.content
	e.spans = append([]Span(nil), s.spans...)
	e.sel = Selection{
		Anchor: e.snap(s.sel.Anchor),
		Head:   e.snap(s.sel.Head),
	}
	e.clearMark()
	e.composing = false
	e.version++
}

func (e *Engine) historyLimit() int {
	if e.opt.HistoryLimit < 1 {
		return 1
	}
	return e.opt.HistoryLimit
}

// pushHistory records the current state, discarding any redo tail and
// evicting the oldest entries past the limit.
func (e *Engine) pushHistory() {
	h := &e.hist
	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, e.snapshot())
	h.index = len(h.entries) - 1

	if over := len(h.entries) - e.historyLimit(); over > 0 {
		h.entries = append([]snapshot(nil), h.entries[over:]...)
		h.index -= over
		if h.index < 0 {
			h.index = 0
		}
	}
	e.composing = false
}

// noteSelection stores the live selection in the current entry before an
// edit so that undoing the edit restores the caret it started from.
func (e *Engine) noteSelection() {
	if e.composing {
		return
	}
	e.hist.entries[e.hist.index].sel = e.sel
}

// HistoryLen reports the number of recorded entries.
func (e *Engine) HistoryLen() int { return len(e.hist.entries) }

func (e *Engine) CanUndo() bool { return e.composing || e.hist.index > 0 }

func (e *Engine) CanRedo() bool { return e.hist.index < len(e.hist.entries)-1 }

// Undo steps back one history entry and emits EventChange. An uncommitted
// composition is discarded first, restoring the current entry. At the
// oldest entry Undo is a silent no-op and returns false.
func (e *Engine) Undo() bool {
	h := &e.hist
	if e.composing {
		e.restore(h.entries[h.index])
		e.emit(EventChange)
		return true
	}
	if h.index == 0 {
		return false
	}

	// Caret moves are not history entries; remember where the caret was so
	// a following Redo lands back on it.
	h.entries[h.index].sel = e.sel

	h.index--
	e.restore(h.entries[h.index])
	e.emit(EventChange)
	return true
}

// Redo steps forward one history entry and emits EventChange. At the newest
// entry Redo is a silent no-op and returns false.
func (e *Engine) Redo() bool {
	h := &e.hist
	if h.index >= len(h.entries)-1 {
		return false
	}
	if !e.composing {
		h.entries[h.index].sel = e.sel
	}

	h.index++
	e.restore(h.entries[h.index])
	e.emit(EventChange)
	return true
}
