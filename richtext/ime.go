package richtext

// targetRange resolves the range an input-method replacement applies to:
// the explicit range, else the marked range, else the selection.
func (e *Engine) targetRange(r *Range) (int, int) {
	if r != nil {
		return e.snapRange(r.Start, r.End)
	}
	if e.hasMarked {
		return e.marked.Start, e.marked.End
	}
	return e.sel.Normalized()
}

// ReplaceInRange commits text over r (or the marked range, or the
// selection), leaving the caret after it and clearing the mark.
func (e *Engine) ReplaceInRange(r *Range, text string) {
	start, end := e.targetRange(r)
	if start == end && text == "" && !e.hasMarked {
		return
	}
	at, n := e.splice(start, end, text)
	e.commit(at + n)
}

// ReplaceAndMarkInRange replaces like ReplaceInRange but keeps the inserted
// text as an uncommitted composition: it becomes the marked range (an empty
// text clears the mark). sel, relative to the replacement start, becomes the
// selection; nil places the caret after the inserted text. No history entry
// is pushed until the composition is committed.
func (e *Engine) ReplaceAndMarkInRange(r *Range, text string, sel *Range) {
	text = validText(text)
	start, end := e.targetRange(r)
	if start == end && text == "" && !e.hasMarked {
		return
	}
	start, _ = e.splice(start, end, text)

	if text != "" {
		e.marked = Range{Start: start, End: start + len(text)}
		e.hasMarked = true
	} else {
		e.clearMark()
	}

	if sel != nil {
		a := SnapOffset(text, sel.Start)
		b := SnapOffset(text, sel.End)
		e.sel = Selection{Anchor: start + a, Head: start + b}
	} else {
		e.sel = Caret(start + len(text))
	}
	e.composing = true
	e.emit(EventChange)
}

// Unmark drops the marked range without touching content. A pending
// composition is accepted as is and recorded in history.
func (e *Engine) Unmark() {
	if !e.hasMarked {
		return
	}
	e.clearMark()
	e.version++
	if e.composing {
		e.pushHistory()
	}
}

// UTF16Input adapts an Engine to text-input systems that address text in
// UTF-16 code units. Every range crossing this boundary is converted
// against the engine's current content.
type UTF16Input struct {
	e *Engine
}

func NewUTF16Input(e *Engine) UTF16Input { return UTF16Input{e: e} }

// TextForRange returns the text for a UTF-16 range together with the range
// actually used after snapping.
func (in UTF16Input) TextForRange(r Range) (string, Range) {
	br := in.e.RangeFromUTF16(r.Normalize())
	return in.e.TextForRange(br), in.e.RangeToUTF16(br)
}

// SelectedTextRange returns the normalized selection in UTF-16 units and
// whether the head precedes the anchor.
func (in UTF16Input) SelectedTextRange() (Range, bool) {
	sel := in.e.Selection()
	return in.e.RangeToUTF16(sel.Range()), sel.Reversed()
}

func (in UTF16Input) MarkedTextRange() (Range, bool) {
	r, ok := in.e.MarkedRange()
	if !ok {
		return Range{}, false
	}
	return in.e.RangeToUTF16(r), true
}

func (in UTF16Input) UnmarkText() { in.e.Unmark() }

func (in UTF16Input) ReplaceTextInRange(r *Range, text string) {
	in.e.ReplaceInRange(in.toBytes(r), text)
}

// ReplaceAndMarkTextInRange takes the new selection in UTF-16 units relative
// to the inserted text.
func (in UTF16Input) ReplaceAndMarkTextInRange(r *Range, text string, sel *Range) {
	var bsel *Range
	if sel != nil {
		bsel = &Range{
			Start: OffsetFromUTF16(text, sel.Start),
			End:   OffsetFromUTF16(text, sel.End),
		}
	}
	in.e.ReplaceAndMarkInRange(in.toBytes(r), text, bsel)
}

func (in UTF16Input) toBytes(r *Range) *Range {
	if r == nil {
		return nil
	}
	br := in.e.RangeFromUTF16(r.Normalize())
	return &br
}
