package richtext

import (
	"unicode/utf16"
	"unicode/utf8"
)

// SnapOffset clamps off into [0, len(text)] and moves it to the nearest
// UTF-8 scalar boundary. Ties snap left.
func SnapOffset(text string, off int) int {
	off = clampInt(off, 0, len(text))
	if off == len(text) || utf8.RuneStart(text[off]) {
		return off
	}
	lo := off
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := off
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	if off-lo <= hi-off {
		return lo
	}
	return hi
}

func (e *Engine) snap(off int) int { return SnapOffset(e.content, off) }

func (e *Engine) snapRange(start, end int) (int, int) {
	start, end = e.snap(start), e.snap(end)
	if end < start {
		start, end = end, start
	}
	return start, end
}

// UTF16FromOffset converts a byte offset into a UTF-16 code unit offset by
// counting the code units of the prefix. O(off).
func UTF16FromOffset(text string, off int) int {
	off = SnapOffset(text, off)
	n := 0
	for _, r := range text[:off] {
		n += utf16.RuneLen(r)
	}
	return n
}

// OffsetFromUTF16 converts a UTF-16 code unit offset into a byte offset by
// walking characters and accumulating their UTF-16 widths. An offset that
// splits a surrogate pair resolves to the end of that character; offsets
// past the end resolve to len(text).
func OffsetFromUTF16(text string, u16 int) int {
	if u16 <= 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		n += utf16.RuneLen(r)
		i += size
		if n >= u16 {
			return i
		}
	}
	return len(text)
}

// RangeToUTF16 converts a byte range of the current content to UTF-16 units.
func (e *Engine) RangeToUTF16(r Range) Range {
	return Range{
		Start: UTF16FromOffset(e.content, r.Start),
		End:   UTF16FromOffset(e.content, r.End),
	}
}

// RangeFromUTF16 converts a UTF-16 range of the current content to bytes.
func (e *Engine) RangeFromUTF16(r Range) Range {
	return Range{
		Start: OffsetFromUTF16(e.content, r.Start),
		End:   OffsetFromUTF16(e.content, r.End),
	}
}

func prevCharBoundary(text string, off int) int {
	if off <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(text[:off])
	return off - size
}

func nextCharBoundary(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[off:])
	return off + size
}
