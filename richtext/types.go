package richtext

import "fmt"

// Style is one formatting attribute a span can carry.
type Style uint8

const (
	Bold Style = iota
	Italic
	Underline
	Strikethrough
	Code
)

var styleNames = [...]string{
	Bold:          "bold",
	Italic:        "italic",
	Underline:     "underline",
	Strikethrough: "strikethrough",
	Code:          "code",
}

// Styles lists every style in declaration order.
func Styles() []Style {
	return []Style{Bold, Italic, Underline, Strikethrough, Code}
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// Valid reports whether s is one of the declared styles.
func (s Style) Valid() bool { return int(s) < len(styleNames) }

// MarshalText encodes s as its lowercase name.
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("richtext: invalid style %d", uint8(s))
	}
	return []byte(styleNames[s]), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Style) UnmarshalText(b []byte) error {
	st, ok := ParseStyle(string(b))
	if !ok {
		return fmt.Errorf("richtext: unknown style %q", string(b))
	}
	*s = st
	return nil
}

// ParseStyle maps a style name ("bold", "italic", ...) to a Style.
func ParseStyle(name string) (Style, bool) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), true
		}
	}
	return 0, false
}

// Span labels the half-open byte range [Start, End) with one style.
type Span struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Style Style `json:"style"`
}

// Overlaps reports whether s shares at least one byte with [start, end).
func (s Span) Overlaps(start, end int) bool {
	return s.Start < end && s.End > start
}

// Contains reports whether s covers all of [start, end).
func (s Span) Contains(start, end int) bool {
	return s.Start <= start && s.End >= end
}

// Range returns the bytes s covers.
func (s Span) Range() Range { return Range{Start: s.Start, End: s.End} }

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	if r.End < r.Start {
		return r.Start - r.End
	}
	return r.End - r.Start
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

// Normalize orders Start <= End.
func (r Range) Normalize() Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

// Selection is an (anchor, head) pair of byte offsets. Anchor is the fixed
// end; Head moves under shift-extension. Anchor may exceed Head.
type Selection struct {
	Anchor int
	Head   int
}

// Caret returns an empty selection at off.
func Caret(off int) Selection { return Selection{Anchor: off, Head: off} }

func (s Selection) IsEmpty() bool { return s.Anchor == s.Head }

func (s Selection) Len() int {
	if s.Anchor <= s.Head {
		return s.Head - s.Anchor
	}
	return s.Anchor - s.Head
}

// Normalized returns (min, max) of the selection ends.
func (s Selection) Normalized() (start, end int) {
	if s.Anchor <= s.Head {
		return s.Anchor, s.Head
	}
	return s.Head, s.Anchor
}

// Reversed reports whether the head sits before the anchor.
func (s Selection) Reversed() bool { return s.Head < s.Anchor }

func (s Selection) Range() Range {
	start, end := s.Normalized()
	return Range{Start: start, End: end}
}

// Direction is a caret movement direction.
type Direction uint8

const (
	Left Direction = iota
	Right
	WordLeft
	WordRight
	Start
	End
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case WordLeft:
		return "word-left"
	case WordRight:
		return "word-right"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
