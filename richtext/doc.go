// Package richtext implements the pure rich-text editing engine behind a
// single editable field.
//
// The engine owns a UTF-8 buffer, a selection, style spans, an optional
// marked (IME composition) range and a bounded linear undo history.
// Positions are byte offsets into the buffer and always fall on UTF-8
// scalar boundaries; host-supplied offsets are clamped and snapped.
//
// The engine is synchronous and single-owner: it performs no I/O, holds no
// locks and never blocks. Hosts serialize calls per engine.
package richtext
