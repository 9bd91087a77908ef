package richtext

// DefaultHistoryLimit bounds the undo log when Options.HistoryLimit is zero.
const DefaultHistoryLimit = 100

type Options struct {
	// HistoryLimit caps the number of history entries. Zero means
	// DefaultHistoryLimit; a negative value keeps only the current state.
	HistoryLimit int

	// Theme supplies the colors BuildHighlights assigns to Code spans.
	Theme Theme

	// OnEvent receives change notifications synchronously.
	OnEvent func(Event)
}

// Engine is the editing state of one text field: buffer, selection, spans,
// marked range and history, kept consistent as a unit.
type Engine struct {
	content string
	spans   []Span
	sel     Selection

	marked    Range
	hasMarked bool

	// composing is set while content holds an uncommitted composition that
	// the current history entry does not reflect.
	composing bool

	version uint64

	opt  Options
	hist history
}

// New creates an engine holding text with the caret at the end.
func New(text string, opt Options) *Engine {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = DefaultHistoryLimit
	}
	if opt.Theme == (Theme{}) {
		opt.Theme = DefaultTheme()
	}
	text = validText(text)
	e := &Engine{
		content: text,
		sel:     Caret(len(text)),
		opt:     opt,
	}
	e.hist.reset(e.snapshot())
	return e
}

func (e *Engine) Content() string { return e.content }

func (e *Engine) Len() int { return len(e.content) }

func (e *Engine) Selection() Selection { return e.sel }

// Spans returns a copy of the current spans, sorted by start then style.
func (e *Engine) Spans() []Span {
	if len(e.spans) == 0 {
		return nil
	}
	return append([]Span(nil), e.spans...)
}

// Version increases on every effective state change (content, spans,
// selection or mark).
func (e *Engine) Version() uint64 { return e.version }

// SetContent replaces the buffer wholesale: spans and mark are cleared, the
// caret moves to the end and a history entry is pushed. No EventChange is
// emitted; a programmatic reset is initialization, not an edit.
func (e *Engine) SetContent(text string) {
	text = validText(text)
	e.content = text
	e.spans = nil
	e.sel = Caret(len(text))
	e.clearMark()
	e.version++
	e.pushHistory()
}

// Load restores persisted content and spans. Spans are clamped, snapped and
// merged; empty ones are dropped. History restarts from this state and no
// event is emitted.
func (e *Engine) Load(text string, spans []Span) {
	text = validText(text)
	e.content = text
	e.spans = e.sanitizeSpans(spans)
	e.sel = Caret(len(text))
	e.clearMark()
	e.composing = false
	e.version++
	e.hist.reset(e.snapshot())
}

// SetSelection assigns the selection after clamping both ends into the
// buffer and snapping them to character boundaries.
func (e *Engine) SetSelection(s Selection) {
	e.setSelection(Selection{
		Anchor: e.snap(s.Anchor),
		Head:   e.snap(s.Head),
	})
}

func (e *Engine) SelectAll() {
	e.setSelection(Selection{Anchor: 0, Head: len(e.content)})
}

func (e *Engine) setSelection(s Selection) {
	if s == e.sel {
		return
	}
	e.sel = s
	e.version++
}

// MarkedRange returns the current composition range, if any.
func (e *Engine) MarkedRange() (Range, bool) {
	if !e.hasMarked {
		return Range{}, false
	}
	return e.marked, true
}

func (e *Engine) clearMark() {
	e.marked = Range{}
	e.hasMarked = false
}

func (e *Engine) sanitizeSpans(in []Span) []Span {
	out := make([]Span, 0, len(in))
	for _, sp := range in {
		if !sp.Style.Valid() {
			continue
		}
		start, end := e.snap(sp.Start), e.snap(sp.End)
		if end < start {
			start, end = end, start
		}
		if start == end {
			continue
		}
		out = append(out, Span{Start: start, End: end, Style: sp.Style})
	}
	return normalizeSpans(out)
}
