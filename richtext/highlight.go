package richtext

import "sort"

// Theme holds the colors Code spans render with. Colors are opaque strings
// for the host (hex "#rrggbb" or an ANSI index).
type Theme struct {
	CodeBackground string
	CodeForeground string
}

func DefaultTheme() Theme {
	return Theme{
		CodeBackground: "#3b3f46",
		CodeForeground: "#e5c07b",
	}
}

type FontWeight uint8

const (
	WeightUnset FontWeight = iota
	WeightBold
)

type FontStyle uint8

const (
	FontStyleUnset FontStyle = iota
	FontStyleItalic
)

// HighlightStyle is the combined rendering attributes of a segment. Zero
// values mean "unset".
type HighlightStyle struct {
	FontWeight    FontWeight
	FontStyle     FontStyle
	Underline     bool
	Strikethrough bool
	Background    string
	Foreground    string
}

func (h HighlightStyle) IsZero() bool { return h == HighlightStyle{} }

// merge overlays the set attributes of o onto h.
func (h HighlightStyle) merge(o HighlightStyle) HighlightStyle {
	if o.FontWeight != WeightUnset {
		h.FontWeight = o.FontWeight
	}
	if o.FontStyle != FontStyleUnset {
		h.FontStyle = o.FontStyle
	}
	if o.Underline {
		h.Underline = true
	}
	if o.Strikethrough {
		h.Strikethrough = true
	}
	if o.Background != "" {
		h.Background = o.Background
	}
	if o.Foreground != "" {
		h.Foreground = o.Foreground
	}
	return h
}

// Highlight is one non-overlapping styled segment.
type Highlight struct {
	Range Range
	Style HighlightStyle
}

func (t Theme) styleFor(s Style) HighlightStyle {
	switch s {
	case Bold:
		return HighlightStyle{FontWeight: WeightBold}
	case Italic:
		return HighlightStyle{FontStyle: FontStyleItalic}
	case Underline:
		return HighlightStyle{Underline: true}
	case Strikethrough:
		return HighlightStyle{Strikethrough: true}
	case Code:
		return HighlightStyle{Background: t.CodeBackground, Foreground: t.CodeForeground}
	default:
		return HighlightStyle{}
	}
}

// BuildHighlights flattens the spans into sorted, non-overlapping segments.
// Every span boundary is a cut point; each minimal segment combines the
// attributes of all spans covering it, later spans winning per attribute.
// Segments without any attribute are omitted.
func (e *Engine) BuildHighlights() []Highlight {
	if len(e.spans) == 0 {
		return nil
	}

	cuts := make([]int, 0, len(e.spans)*2)
	for _, sp := range e.spans {
		cuts = append(cuts, sp.Start, sp.End)
	}
	sort.Ints(cuts)
	uniq := cuts[:1]
	for _, c := range cuts[1:] {
		if c != uniq[len(uniq)-1] {
			uniq = append(uniq, c)
		}
	}

	var out []Highlight
	for i := 0; i+1 < len(uniq); i++ {
		start, end := uniq[i], uniq[i+1]
		var hs HighlightStyle
		for _, sp := range e.spans {
			if sp.Start <= start && sp.End >= end {
				hs = hs.merge(e.opt.Theme.styleFor(sp.Style))
			}
		}
		if hs.IsZero() {
			continue
		}
		out = append(out, Highlight{Range: Range{Start: start, End: end}, Style: hs})
	}
	return out
}

// CodeRanges returns the ranges of Code spans.
func (e *Engine) CodeRanges() []Range {
	var out []Range
	for _, sp := range e.spans {
		if sp.Style == Code {
			out = append(out, sp.Range())
		}
	}
	return out
}
