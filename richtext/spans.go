package richtext

import "sort"

// adjustForDelete applies the span rules for removing [start, end).
func adjustForDelete(spans []Span, start, end int) []Span {
	n := end - start
	if n <= 0 {
		return spans
	}
	out := spans[:0]
	for _, sp := range spans {
		switch {
		case sp.End <= start:
			// before the deletion
		case sp.Start >= end:
			sp.Start -= n
			sp.End -= n
		case sp.Start >= start && sp.End <= end:
			continue
		case sp.Start < start && sp.End > end:
			sp.End -= n
		case sp.Start < start:
			sp.End = start
		default:
			sp.Start = start
			sp.End -= n
		}
		if sp.Start >= sp.End {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// adjustForInsert shifts spans starting at or after pos and extends spans
// strictly containing it.
func adjustForInsert(spans []Span, pos, n int) []Span {
	if n <= 0 {
		return spans
	}
	for i := range spans {
		sp := &spans[i]
		if sp.Start >= pos {
			sp.Start += n
			sp.End += n
		} else if sp.End > pos {
			sp.End += n
		}
	}
	return spans
}

// normalizeSpans merges overlapping or touching spans of the same style and
// sorts the result by start, then style.
func normalizeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sorted := append([]Span(nil), spans...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Style != sorted[j].Style {
			return sorted[i].Style < sorted[j].Style
		}
		return sorted[i].Start < sorted[j].Start
	})

	merged := make([]Span, 0, len(sorted))
	for _, sp := range sorted {
		if sp.Start >= sp.End {
			continue
		}
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.Style == sp.Style && sp.Start <= last.End {
				if sp.End > last.End {
					last.End = sp.End
				}
				continue
			}
		}
		merged = append(merged, sp)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].Style < merged[j].Style
	})
	return merged
}

// covers reports whether every point of [start, end) lies inside some span
// of style.
func covers(spans []Span, style Style, start, end int) bool {
	var same []Span
	for _, sp := range spans {
		if sp.Style == style && sp.Overlaps(start, end) {
			same = append(same, sp)
		}
	}
	sort.Slice(same, func(i, j int) bool { return same[i].Start < same[j].Start })

	pos := start
	for _, sp := range same {
		if sp.Start > pos {
			return false
		}
		if sp.End > pos {
			pos = sp.End
		}
		if pos >= end {
			return true
		}
	}
	return pos >= end
}

// subtractStyle removes [start, end) from every span of style.
func subtractStyle(spans []Span, style Style, start, end int) []Span {
	out := make([]Span, 0, len(spans)+1)
	for _, sp := range spans {
		if sp.Style != style || !sp.Overlaps(start, end) {
			out = append(out, sp)
			continue
		}
		switch {
		case sp.Start >= start && sp.End <= end:
			// fully removed
		case sp.Start < start && sp.End > end:
			out = append(out,
				Span{Start: sp.Start, End: start, Style: style},
				Span{Start: end, End: sp.End, Style: style},
			)
		case sp.Start < start:
			out = append(out, Span{Start: sp.Start, End: start, Style: style})
		default:
			out = append(out, Span{Start: end, End: sp.End, Style: style})
		}
	}
	return normalizeSpans(out)
}

// ApplyStyle toggles style over the normalized selection. When the whole
// selection already carries style it is removed from exactly that range;
// otherwise it is added and merged. The change is recorded in history but
// emits no EventChange since content is unchanged.
func (e *Engine) ApplyStyle(style Style) {
	if !style.Valid() {
		return
	}
	start, end := e.sel.Normalized()
	if start == end {
		return
	}

	e.noteSelection()
	if covers(e.spans, style, start, end) {
		e.spans = subtractStyle(e.spans, style, start, end)
	} else {
		e.spans = normalizeSpans(append(e.spans, Span{Start: start, End: end, Style: style}))
	}
	e.version++
	e.pushHistory()
}

// HasStyle reports whether the whole normalized selection carries style. For
// a caret it reports whether a span of style strictly contains the caret.
func (e *Engine) HasStyle(style Style) bool {
	start, end := e.sel.Normalized()
	if start == end {
		for _, sp := range e.spans {
			if sp.Style == style && sp.Start < start && sp.End > start {
				return true
			}
		}
		return false
	}
	return covers(e.spans, style, start, end)
}
